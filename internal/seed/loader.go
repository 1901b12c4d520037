// Package seed loads the product seed file and upserts it into the store.
package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rogerio-castellano/inventory-console/internal/inventory"
)

// DateLayout is the seed file's MM/DD/YYYY date format. Single-digit months
// and days are accepted as well.
const DateLayout = "1/2/2006"

const (
	colName     = "product_name"
	colPrice    = "product_price"
	colQuantity = "product_quantity"
	colDate     = "date_updated"
)

// Record is one normalized seed row.
type Record struct {
	Name      string
	Price     int64
	Quantity  int
	UpdatedAt time.Time
}

// LoadFile reads every record of the seed file at path.
func LoadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	records, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Load parses a seed CSV. Any malformed row fails the whole load.
func Load(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV header: %w", err)
	}

	index := map[string]int{}
	for i, h := range headers {
		h = strings.TrimPrefix(h, "\ufeff")
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range []string{colName, colPrice, colQuantity, colDate} {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	var records []Record
	for row := 2; ; row++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %w", err)
		}

		rec, err := parseRecord(fields, index)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRecord(fields []string, index map[string]int) (Record, error) {
	name := strings.TrimSpace(fields[index[colName]])
	if name == "" {
		return Record{}, errors.New("missing product name")
	}

	price, err := inventory.ParseCurrency(fields[index[colPrice]])
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", colPrice, err)
	}

	qtyRaw := strings.TrimSpace(fields[index[colQuantity]])
	qty, err := strconv.Atoi(qtyRaw)
	if err != nil || qty < 0 {
		return Record{}, fmt.Errorf("%s: invalid quantity %q", colQuantity, qtyRaw)
	}

	dateRaw := strings.TrimSpace(fields[index[colDate]])
	updated, err := time.Parse(DateLayout, dateRaw)
	if err != nil {
		return Record{}, fmt.Errorf("%s: invalid date %q: %w", colDate, dateRaw, err)
	}

	return Record{Name: name, Price: price, Quantity: qty, UpdatedAt: updated}, nil
}
