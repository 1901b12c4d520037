// Package backup exports the product table as CSV.
package backup

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rogerio-castellano/inventory-console/internal/models"
)

// Header is the first row of every backup file.
var Header = []string{"product_name", "product_price", "product_quantity", "date_updated"}

const (
	timestampLayout      = "2006-01-02 15:04:05"
	timestampLayoutMicro = "2006-01-02 15:04:05.000000"
)

// FormatTimestamp renders t as "YYYY-MM-DD HH:MM:SS", adding six fractional
// digits only when t has sub-second precision.
func FormatTimestamp(t time.Time) string {
	if t.Nanosecond()/1000 != 0 {
		return t.Format(timestampLayoutMicro)
	}
	return t.Format(timestampLayout)
}

// Write writes the header and one row per product. Prices stay in cents.
func Write(w io.Writer, products []models.Product) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, p := range products {
		row := []string{
			p.Name,
			strconv.FormatInt(p.Price, 10),
			strconv.Itoa(p.Quantity),
			FormatTimestamp(p.UpdatedAt),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile replaces path with a fresh backup. The data goes to a temporary
// file in the same directory first, so path is either fully rewritten or
// left untouched.
func WriteFile(path string, products []models.Product) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create backup: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = Write(tmp, products); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace backup: %w", err)
	}
	return nil
}
