package dto

import (
	"rofoportal/internal/model"

	"github.com/shopspring/decimal"
)

// SampleRow is one line of the admin side-by-side comparison: baseline vs
// each role's submitted value for the sample month. Nil means "no value"
// (role has not submitted that SKU/month), which is not an error.
type SampleRow struct {
	SKUCode     string           `json:"sku_code"`
	ProductName string           `json:"product_name"`
	Baseline    *decimal.Decimal `json:"baseline"`
	Channel     *decimal.Decimal `json:"channel"`
	Brand1      *decimal.Decimal `json:"brand1"`
	Brand2      *decimal.Decimal `json:"brand2"`
}

// AdminSummaryResponse is the read-only cross-role dashboard payload.
type AdminSummaryResponse struct {
	TotalSKUs      int             `json:"total_skus"`
	SubmittedCount int             `json:"submitted_count"`
	TotalStock     decimal.Decimal `json:"total_stock"`
	SampleMonth    string          `json:"sample_month"`
	Sample         []SampleRow     `json:"sample"`
}

type LogListResponse struct {
	Entries []model.LogEntry `json:"entries"`
	Total   int              `json:"total"`
}
