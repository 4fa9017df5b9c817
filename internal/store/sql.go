package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SQLStore is the Postgres-backed Tabular implementation, for deployments
// that migrated off the shared workbook. Rows are stored as JSONB documents
// keyed by (table_name, row_index); Replace runs delete+insert inside one
// transaction — a real table swap instead of the workbook's clear-and-rewrite,
// but with the same observable last-writer-wins semantics.
type SQLStore struct {
	db *gorm.DB
}

// storedTable declares a logical table and its column order.
type storedTable struct {
	Name   string                      `gorm:"column:table_name;primaryKey"`
	Header datatypes.JSONSlice[string] `gorm:"column:header"`
}

func (storedTable) TableName() string { return "store_tables" }

// storedRow is one logical row of a logical table.
type storedRow struct {
	ID       uint64            `gorm:"column:id;primaryKey;autoIncrement"`
	Table    string            `gorm:"column:table_name;index:idx_store_rows_table"`
	RowIndex int               `gorm:"column:row_index"`
	Data     datatypes.JSONMap `gorm:"column:data"`
}

func (storedRow) TableName() string { return "store_rows" }

func NewSQLStore(db *gorm.DB) (*SQLStore, error) {
	if err := db.AutoMigrate(&storedTable{}, &storedRow{}); err != nil {
		return nil, fmt.Errorf("migrate store tables: %w", err)
	}
	return &SQLStore{db: db}, nil
}

var _ Tabular = (*SQLStore)(nil)

func (s *SQLStore) table(ctx context.Context, table string) (*storedTable, error) {
	var t storedTable
	err := s.db.WithContext(ctx).First(&t, "table_name = ?", table).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return &t, nil
}

func (s *SQLStore) Read(ctx context.Context, table string) ([]Row, error) {
	if _, err := s.table(ctx, table); err != nil {
		return nil, err
	}
	var stored []storedRow
	err := s.db.WithContext(ctx).
		Where("table_name = ?", table).
		Order("row_index ASC").
		Find(&stored).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	rows := make([]Row, len(stored))
	for i, sr := range stored {
		row := make(Row, len(sr.Data))
		for k, v := range sr.Data {
			if str, ok := v.(string); ok {
				row[k] = str
			} else {
				row[k] = fmt.Sprint(v)
			}
		}
		rows[i] = row
	}
	return rows, nil
}

func (s *SQLStore) Header(ctx context.Context, table string) ([]string, error) {
	t, err := s.table(ctx, table)
	if err != nil {
		return nil, err
	}
	return []string(t.Header), nil
}

func (s *SQLStore) Replace(ctx context.Context, table string, header []string, rows []Row) error {
	if _, err := s.table(ctx, table); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&storedTable{}).
			Where("table_name = ?", table).
			Update("header", datatypes.NewJSONSlice(header)).Error; err != nil {
			return err
		}
		if err := tx.Where("table_name = ?", table).Delete(&storedRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		stored := make([]storedRow, len(rows))
		for i, row := range rows {
			stored[i] = storedRow{Table: table, RowIndex: i, Data: rowToJSONMap(row)}
		}
		return tx.Create(&stored).Error
	})
	if err != nil {
		return fmt.Errorf("replace %s: %w", table, err)
	}
	return nil
}

func (s *SQLStore) Append(ctx context.Context, table string, row Row) error {
	if _, err := s.table(ctx, table); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var next int64
		if err := tx.Model(&storedRow{}).
			Where("table_name = ?", table).
			Select("COALESCE(MAX(row_index), -1) + 1").
			Scan(&next).Error; err != nil {
			return err
		}
		return tx.Create(&storedRow{Table: table, RowIndex: int(next), Data: rowToJSONMap(row)}).Error
	})
	if err != nil {
		return fmt.Errorf("append %s: %w", table, err)
	}
	return nil
}

// CreateTable declares a logical table if it does not exist yet. Used by the
// seeding command; the workflow layer never creates tables.
func (s *SQLStore) CreateTable(ctx context.Context, table string, header []string) error {
	t := storedTable{Name: table, Header: datatypes.NewJSONSlice(header)}
	err := s.db.WithContext(ctx).
		Where("table_name = ?", table).
		FirstOrCreate(&t).Error
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func rowToJSONMap(row Row) datatypes.JSONMap {
	m := make(datatypes.JSONMap, len(row))
	for k, v := range row {
		m[k] = v
	}
	return m
}
