package model

import (
	"github.com/shopspring/decimal"
)

// ForecastRow is one in-scope SKU with its baseline quantities per month and
// on-hand stock. Baseline data is read-only within this service; it is
// refreshed from the store on every load.
type ForecastRow struct {
	SKUCode     string
	ProductName string
	Brand       string
	BrandGroup  string
	Tier        string
	// Months maps month key → baseline quantity. Cells that were empty or
	// non-numeric in the source table are absent from the map.
	Months   map[string]decimal.Decimal
	StockQty decimal.Decimal
}

// ForecastTable is the resolved working table for one role.
type ForecastTable struct {
	MonthKeys []string
	Rows      []ForecastRow
}

// Baseline returns the baseline quantity for (sku, month), if present.
func (t *ForecastTable) Baseline(sku, month string) (decimal.Decimal, bool) {
	for i := range t.Rows {
		if t.Rows[i].SKUCode == sku {
			q, ok := t.Rows[i].Months[month]
			return q, ok
		}
	}
	return decimal.Decimal{}, false
}

// HasSKU reports whether the table contains the given SKU.
func (t *ForecastTable) HasSKU(sku string) bool {
	for i := range t.Rows {
		if t.Rows[i].SKUCode == sku {
			return true
		}
	}
	return false
}

// Violation is one out-of-bounds adjustment. It carries enough data to render
// a precise user-facing message without another store round-trip.
type Violation struct {
	SKU       string          `json:"sku"`
	Month     string          `json:"month"`
	Baseline  decimal.Decimal `json:"baseline"`
	Candidate decimal.Decimal `json:"candidate"`
	Lower     decimal.Decimal `json:"lower"`
	Upper     decimal.Decimal `json:"upper"`
}

// LogEntry is one append-only row of the input_log audit table.
type LogEntry struct {
	SubmissionID   string `json:"submission_id"`
	Username       string `json:"username"`
	Role           string `json:"role"`
	SubmissionDate string `json:"submission_date"`
	Status         string `json:"status"`
}
