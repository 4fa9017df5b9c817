package model

// Named tables in the shared tabular store. Sheet names when the store is the
// Excel workbook, logical table names when backed by Postgres.
const (
	TableBaseline     = "rofo_current"
	TableStock        = "stock_onhand"
	TableSalesHistory = "sales_history"
	TableInputLog     = "input_log"
	TableUsers        = "users"

	TableChannelInput = "channel_input"
	TableBrand1Input  = "brand1_input"
	TableBrand2Input  = "brand2_input"
)

// Column names shared across tables. The capitalization is inherited from the
// upstream planning workbook and must match it exactly.
const (
	ColSKUCode     = "sku_code"
	ColProductName = "Product_Name"
	ColBrand       = "Brand"
	ColBrandGroup  = "Brand_Group"
	ColSKUTier     = "SKU_Tier"
	ColStockQty    = "Stock_Qty"

	ColCampaignName = "campaign_name"
	ColNotes        = "notes"
	ColLastUpdated  = "last_updated"
	ColSubmittedBy  = "submitted_by"

	ColSubmissionID   = "submission_id"
	ColUsername       = "username"
	ColPasswordHash   = "password_hash"
	ColRole           = "role"
	ColSubmissionDate = "submission_date"
	ColStatus         = "status"
)

// StatusSubmitted is the only status the recorder ever writes to the log.
const StatusSubmitted = "submitted"

// TimestampLayout is the ISO-like format used in last_updated / submission_date.
const TimestampLayout = "2006-01-02 15:04:05"
