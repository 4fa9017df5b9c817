package dto

import (
	"rofoportal/internal/model"

	"github.com/shopspring/decimal"
)

// ForecastRowResponse is one SKU of the role's working table.
type ForecastRowResponse struct {
	SKUCode     string                     `json:"sku_code"`
	ProductName string                     `json:"product_name"`
	Brand       string                     `json:"brand"`
	BrandGroup  string                     `json:"brand_group"`
	Tier        string                     `json:"sku_tier"`
	Months      map[string]decimal.Decimal `json:"months"`
	StockQty    decimal.Decimal            `json:"stock_qty"`
}

// ForecastTableResponse is the Loading-state payload of a role view.
// NoData distinguishes "role has no SKUs in scope" from a store failure
// (which never reaches this shape — it is a 503).
type ForecastTableResponse struct {
	Role             string                `json:"role"`
	MonthKeys        []string              `json:"month_keys"`
	NoData           bool                  `json:"no_data"`
	HasCampaignField bool                  `json:"has_campaign_field"`
	Rows             []ForecastRowResponse `json:"rows"`
}

// Candidates maps sku_code → month key → candidate quantity. Cells the user
// left untouched are simply absent.
type Candidates map[string]map[string]decimal.Decimal

// DraftRequest carries the in-progress edits of a session. Drafts live on the
// login session and vanish with it; there is no partial auto-save to the store.
type DraftRequest struct {
	Candidates   Candidates `json:"candidates"`
	CampaignName string     `json:"campaign_name"`
	Notes        string     `json:"notes"`
}

type DraftResponse struct {
	Candidates   Candidates `json:"candidates"`
	CampaignName string     `json:"campaign_name"`
	Notes        string     `json:"notes"`
}

// SubmitRequest triggers validation and persistence. Empty Candidates means
// "submit the current session draft".
type SubmitRequest struct {
	Candidates   Candidates `json:"candidates"`
	CampaignName string     `json:"campaign_name"`
	Notes        string     `json:"notes"`
}

// ViolationMessage is one rendered bound violation.
type ViolationMessage struct {
	model.Violation
	Message string `json:"message"`
}

// RejectedResponse is returned with HTTP 422 when validation fails. At most
// five violations are rendered; OmittedCount says how many more there were.
type RejectedResponse struct {
	Detail       string             `json:"detail"`
	Violations   []ViolationMessage `json:"violations"`
	OmittedCount int                `json:"omitted_count"`
}

// SubmitResponse is the Saved-state payload. LogAppended=false flags the
// known inconsistency where the table replace succeeded but the audit log
// write did not (the submission itself stands).
type SubmitResponse struct {
	SubmissionID string `json:"submission_id"`
	RowCount     int    `json:"row_count"`
	LogAppended  bool   `json:"log_appended"`
}
