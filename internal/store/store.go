// Package store implements the tabular store adapter: named tables read from
// and written back to the shared spreadsheet (or its SQL replacement).
// The adapter carries no business logic — it moves rows.
package store

import (
	"context"
	"errors"
)

// Row is one table row, mapping column name → raw cell text.
type Row map[string]string

var (
	// ErrStoreUnavailable means the store connection could not be established.
	// Fatal for the current operation; callers surface it, they do not retry.
	ErrStoreUnavailable = errors.New("tabular store unavailable")

	// ErrTableNotFound means the named table does not exist in the store.
	ErrTableNotFound = errors.New("table not found")
)

// Tabular is the data access contract the workflow layer depends on.
// Services depend on this interface, not on the concrete Excel/SQL
// implementation, enabling clean unit testing via stubs.
//
// Replace is NOT transactional on the workbook backend: a failure mid-write
// can leave the destination truncated or half-written. Callers must treat a
// Replace error as "unknown persisted state" and report it rather than retry
// silently. There is no optimistic-concurrency check either — two concurrent
// Replace calls to the same table race and the last writer wins.
type Tabular interface {
	// Read returns the ordered rows of a table. A table that exists but has
	// no data rows yields an empty slice, not an error.
	Read(ctx context.Context, table string) ([]Row, error)

	// Header returns the table's column names in declared order.
	Header(ctx context.Context, table string) ([]string, error)

	// Replace clears the destination table and writes header + rows in full.
	Replace(ctx context.Context, table string, header []string, rows []Row) error

	// Append adds one row to the end of the table.
	Append(ctx context.Context, table string, row Row) error
}
