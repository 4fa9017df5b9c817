package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/xuri/excelize/v2"
)

// WorkbookTransport syncs the workbook file with a remote location.
// Implemented by infra.ObjectStore (MinIO); nil means the workbook is local.
type WorkbookTransport interface {
	Download(ctx context.Context, localPath string) error
	Upload(ctx context.Context, localPath string) error
}

// ExcelStore is the workbook-backed Tabular implementation. One sheet per
// table, first row is the header. The workbook is re-opened on every
// operation so that upstream refreshes (a replaced baseline sheet) are
// picked up without restarting the service.
//
// The mutex only serializes access within this process; two service
// instances writing the same workbook still race (last writer wins).
type ExcelStore struct {
	path   string
	remote WorkbookTransport
	mu     sync.Mutex
}

func NewExcelStore(path string, remote WorkbookTransport) *ExcelStore {
	return &ExcelStore{path: path, remote: remote}
}

var _ Tabular = (*ExcelStore)(nil)

// open pulls the workbook from the remote (when configured) and opens it.
func (s *ExcelStore) open(ctx context.Context) (*excelize.File, error) {
	if s.remote != nil {
		if err := s.remote.Download(ctx, s.path); err != nil {
			return nil, fmt.Errorf("%w: download workbook: %v", ErrStoreUnavailable, err)
		}
	}
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook %s: %v", ErrStoreUnavailable, s.path, err)
	}
	return f, nil
}

// flush saves the workbook and pushes it back to the remote. A failure here
// leaves the persisted state unknown to the caller.
func (s *ExcelStore) flush(ctx context.Context, f *excelize.File) error {
	if err := f.Save(); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	if s.remote != nil {
		if err := s.remote.Upload(ctx, s.path); err != nil {
			return fmt.Errorf("upload workbook: %w", err)
		}
	}
	return nil
}

func sheetExists(f *excelize.File, table string) bool {
	idx, err := f.GetSheetIndex(table)
	return err == nil && idx >= 0
}

func (s *ExcelStore) Read(ctx context.Context, table string) ([]Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if !sheetExists(f, table) {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}
	raw, err := f.GetRows(table)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrStoreUnavailable, table, err)
	}
	if len(raw) == 0 {
		return []Row{}, nil
	}

	header := raw[0]
	rows := make([]Row, 0, len(raw)-1)
	for _, cells := range raw[1:] {
		row := make(Row, len(header))
		empty := true
		for i, col := range header {
			if col == "" {
				continue
			}
			val := ""
			if i < len(cells) {
				val = cells[i]
			}
			if val != "" {
				empty = false
			}
			row[col] = val
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (s *ExcelStore) Header(ctx context.Context, table string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return sheetHeader(f, table)
}

func sheetHeader(f *excelize.File, table string) ([]string, error) {
	if !sheetExists(f, table) {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}
	raw, err := f.GetRows(table)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrStoreUnavailable, table, err)
	}
	if len(raw) == 0 {
		return []string{}, nil
	}
	return raw[0], nil
}

func (s *ExcelStore) Replace(ctx context.Context, table string, header []string, rows []Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer f.Close()

	if !sheetExists(f, table) {
		return fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}

	// Clear-and-rewrite: delete the sheet and recreate it at the same name.
	if err := f.DeleteSheet(table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	if _, err := f.NewSheet(table); err != nil {
		return fmt.Errorf("recreate %s: %w", table, err)
	}
	if err := writeRow(f, table, 1, toCells(header)); err != nil {
		return err
	}
	for i, row := range rows {
		if err := writeRow(f, table, i+2, rowCells(header, row)); err != nil {
			return err
		}
	}
	return s.flush(ctx, f)
}

func (s *ExcelStore) Append(ctx context.Context, table string, row Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer f.Close()

	if !sheetExists(f, table) {
		return fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}
	raw, err := f.GetRows(table)
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", ErrStoreUnavailable, table, err)
	}
	if len(raw) == 0 {
		return fmt.Errorf("append %s: table has no header row", table)
	}
	if err := writeRow(f, table, len(raw)+1, rowCells(raw[0], row)); err != nil {
		return err
	}
	return s.flush(ctx, f)
}

func writeRow(f *excelize.File, table string, rowNum int, cells []interface{}) error {
	if err := f.SetSheetRow(table, fmt.Sprintf("A%d", rowNum), &cells); err != nil {
		return fmt.Errorf("write %s row %d: %w", table, rowNum, err)
	}
	return nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

func rowCells(header []string, row Row) []interface{} {
	cells := make([]interface{}, len(header))
	for i, col := range header {
		cells[i] = row[col]
	}
	return cells
}
