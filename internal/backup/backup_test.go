package backup

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rogerio-castellano/inventory-console/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite_SingleProduct(t *testing.T) {
	ts := time.Date(2018, 11, 1, 0, 0, 0, 0, time.UTC)
	var buf bytes.Buffer

	err := Write(&buf, []models.Product{{ID: 1, Name: "Widget", Price: 329, Quantity: 5, UpdatedAt: ts}})
	require.NoError(t, err)

	want := "product_name,product_price,product_quantity,date_updated\n" +
		"Widget,329,5,2018-11-01 00:00:00\n"
	assert.Equal(t, want, buf.String())
}

func TestWrite_QuotesNamesWithCommas(t *testing.T) {
	ts := time.Date(2020, 2, 3, 4, 5, 6, 0, time.UTC)
	var buf bytes.Buffer

	err := Write(&buf, []models.Product{{Name: "Salt, Coarse", Price: 99, Quantity: 0, UpdatedAt: ts}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "\"Salt, Coarse\",99,0,2020-02-03 04:05:06\n")
}

func TestWrite_EmptyTableHasHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil))
	assert.Equal(t, "product_name,product_price,product_quantity,date_updated\n", buf.String())
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "2024-05-17 14:30:00", FormatTimestamp(time.Date(2024, 5, 17, 14, 30, 0, 0, time.UTC)))
	assert.Equal(t, "2024-05-17 14:30:00.250000", FormatTimestamp(time.Date(2024, 5, 17, 14, 30, 0, 250_000_000, time.UTC)))
	assert.Equal(t, "2024-05-17 14:30:00", FormatTimestamp(time.Date(2024, 5, 17, 14, 30, 0, 999, time.UTC)))
}

func TestWriteFile_Overwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inventory_backup.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale contents\n"), 0o644))

	ts := time.Date(2018, 11, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, WriteFile(path, []models.Product{{Name: "Widget", Price: 329, Quantity: 5, UpdatedAt: ts}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "product_name,product_price,product_quantity,date_updated\nWidget,329,5,2018-11-01 00:00:00\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestWriteFile_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "inventory_backup.csv")
	err := WriteFile(path, nil)
	assert.Error(t, err)
	assert.NoFileExists(t, path)
}
