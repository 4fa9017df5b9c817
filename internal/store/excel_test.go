package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// seedWorkbook writes a two-sheet workbook: "items" with data and "log" with
// just a header.
func seedWorkbook(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.xlsx")

	f := excelize.NewFile()
	defer f.Close()

	_, err := f.NewSheet("items")
	require.NoError(t, err)
	header := []interface{}{"sku_code", "qty"}
	require.NoError(t, f.SetSheetRow("items", "A1", &header))
	row1 := []interface{}{"A-01", "100"}
	require.NoError(t, f.SetSheetRow("items", "A2", &row1))
	row2 := []interface{}{"A-02", "200"}
	require.NoError(t, f.SetSheetRow("items", "A3", &row2))

	_, err = f.NewSheet("log")
	require.NoError(t, err)
	logHeader := []interface{}{"submission_id", "status"}
	require.NoError(t, f.SetSheetRow("log", "A1", &logHeader))

	require.NoError(t, f.DeleteSheet("Sheet1"))
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestExcelStore_ReadAndHeader(t *testing.T) {
	s := NewExcelStore(seedWorkbook(t), nil)
	ctx := context.Background()

	header, err := s.Header(ctx, "items")
	require.NoError(t, err)
	assert.Equal(t, []string{"sku_code", "qty"}, header)

	rows, err := s.Read(ctx, "items")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "A-01", rows[0]["sku_code"])
	assert.Equal(t, "200", rows[1]["qty"])

	// Header-only sheet reads as empty, not as an error.
	rows, err = s.Read(ctx, "log")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestExcelStore_MissingTable(t *testing.T) {
	s := NewExcelStore(seedWorkbook(t), nil)
	ctx := context.Background()

	_, err := s.Read(ctx, "nope")
	assert.ErrorIs(t, err, ErrTableNotFound)

	err = s.Replace(ctx, "nope", []string{"a"}, nil)
	assert.ErrorIs(t, err, ErrTableNotFound)

	err = s.Append(ctx, "nope", Row{"a": "1"})
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestExcelStore_MissingWorkbook(t *testing.T) {
	s := NewExcelStore(filepath.Join(t.TempDir(), "absent.xlsx"), nil)

	_, err := s.Read(context.Background(), "items")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestExcelStore_ReplaceRewritesWholeTable(t *testing.T) {
	s := NewExcelStore(seedWorkbook(t), nil)
	ctx := context.Background()

	err := s.Replace(ctx, "items", []string{"sku_code", "qty", "note"}, []Row{
		{"sku_code": "Z-09", "qty": "7", "note": "new"},
	})
	require.NoError(t, err)

	header, err := s.Header(ctx, "items")
	require.NoError(t, err)
	assert.Equal(t, []string{"sku_code", "qty", "note"}, header)

	rows, err := s.Read(ctx, "items")
	require.NoError(t, err)
	require.Len(t, rows, 1, "previous rows are gone")
	assert.Equal(t, "Z-09", rows[0]["sku_code"])
	assert.Equal(t, "new", rows[0]["note"])

	// The other sheet is untouched.
	logHeader, err := s.Header(ctx, "log")
	require.NoError(t, err)
	assert.Equal(t, []string{"submission_id", "status"}, logHeader)
}

func TestExcelStore_AppendKeepsExistingRows(t *testing.T) {
	s := NewExcelStore(seedWorkbook(t), nil)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, "log", Row{"submission_id": "B1_1", "status": "submitted"}))
	require.NoError(t, s.Append(ctx, "log", Row{"submission_id": "B1_2", "status": "submitted"}))

	rows, err := s.Read(ctx, "log")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "B1_1", rows[0]["submission_id"])
	assert.Equal(t, "B1_2", rows[1]["submission_id"])
}

func TestExcelStore_AppendIgnoresUnknownColumns(t *testing.T) {
	s := NewExcelStore(seedWorkbook(t), nil)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, "log", Row{"submission_id": "B1_1", "bogus": "x"}))
	rows, err := s.Read(ctx, "log")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	_, ok := rows[0]["bogus"]
	assert.False(t, ok)
}

func TestExcelStore_ErrorsAreClassified(t *testing.T) {
	s := NewExcelStore(seedWorkbook(t), nil)

	_, err := s.Read(context.Background(), "nope")
	assert.False(t, errors.Is(err, ErrStoreUnavailable), "missing table is not an availability failure")
}
