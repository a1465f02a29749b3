package internal

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteRecordsXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "review.xlsx")
	records := []Record{
		rec("0101", "100", "Miete", "15.25"),
		rec("0101", "0", "Kasse", "-2"),
	}

	require.NoError(t, WriteRecordsXLSX(path, sampleHeader, records))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{XLSXSheet}, f.GetSheetList())

	rows, err := f.GetRows(XLSXSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Waehrung", rows[0][0])
	assert.Equal(t, "Nachricht", rows[0][12])
	assert.Equal(t, "EUR", rows[1][0])
	assert.Equal(t, "15.25", rows[1][1])
	assert.Equal(t, "Miete", rows[1][4])
	assert.Equal(t, "0", rows[2][7])
	assert.Equal(t, "-2", rows[2][1])
}

func TestWriteRecordsXLSX_Unwritable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "review.xlsx")

	err := WriteRecordsXLSX(path, sampleHeader, nil)

	var writeErr *FileWriteError
	assert.ErrorAs(t, err, &writeErr)
}
