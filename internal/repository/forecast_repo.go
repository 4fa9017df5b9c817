package repository

import (
	"context"
	"errors"

	"rofoportal/internal/model"
	"rofoportal/internal/store"

	"github.com/shopspring/decimal"
)

// ForecastRepository reads the upstream planning tables. A missing table is
// an empty result here, never an error — only connection failures propagate.
type ForecastRepository interface {
	// Baseline returns the raw rofo_current rows plus the table header
	// (needed to recover month-column order).
	Baseline(ctx context.Context) ([]store.Row, []string, error)

	// StockBySKU returns on-hand stock keyed by sku_code. Non-numeric
	// quantities are skipped.
	StockBySKU(ctx context.Context) (map[string]decimal.Decimal, error)

	// BrandGroupBySKU returns the canonical sku_code → Brand_Group mapping
	// from the sales_history reference table.
	BrandGroupBySKU(ctx context.Context) (map[string]string, error)
}

type forecastRepo struct{ tab store.Tabular }

func NewForecastRepository(tab store.Tabular) ForecastRepository {
	return &forecastRepo{tab: tab}
}

// readOrEmpty converts ErrTableNotFound into an empty row-set.
func (r *forecastRepo) readOrEmpty(ctx context.Context, table string) ([]store.Row, error) {
	rows, err := r.tab.Read(ctx, table)
	if errors.Is(err, store.ErrTableNotFound) {
		return []store.Row{}, nil
	}
	return rows, err
}

func (r *forecastRepo) Baseline(ctx context.Context) ([]store.Row, []string, error) {
	rows, err := r.readOrEmpty(ctx, model.TableBaseline)
	if err != nil {
		return nil, nil, err
	}
	header, err := r.tab.Header(ctx, model.TableBaseline)
	if errors.Is(err, store.ErrTableNotFound) {
		return rows, []string{}, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return rows, header, nil
}

func (r *forecastRepo) StockBySKU(ctx context.Context) (map[string]decimal.Decimal, error) {
	rows, err := r.readOrEmpty(ctx, model.TableStock)
	if err != nil {
		return nil, err
	}
	stock := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		sku := row[model.ColSKUCode]
		if sku == "" {
			continue
		}
		if qty, ok := model.ParseQty(row[model.ColStockQty]); ok {
			stock[sku] = qty
		}
	}
	return stock, nil
}

func (r *forecastRepo) BrandGroupBySKU(ctx context.Context) (map[string]string, error) {
	rows, err := r.readOrEmpty(ctx, model.TableSalesHistory)
	if err != nil {
		return nil, err
	}
	groups := make(map[string]string, len(rows))
	for _, row := range rows {
		sku := row[model.ColSKUCode]
		if sku == "" {
			continue
		}
		if group := row[model.ColBrandGroup]; group != "" {
			groups[sku] = group
		}
	}
	return groups, nil
}
