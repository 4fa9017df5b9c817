package service

import (
	"context"
	"fmt"

	"rofoportal/internal/dto"
	"rofoportal/internal/model"
	"rofoportal/internal/repository"
	"rofoportal/internal/store"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// sampleSize limits the side-by-side rows on the summary dashboard. The full
// comparison is available via Export.
const sampleSize = 10

// AdminService is the read-only cross-role view: totals, a comparison sample,
// the audit log, and a downloadable workbook export.
type AdminService interface {
	Summary(ctx context.Context) (*dto.AdminSummaryResponse, error)
	Export(ctx context.Context) ([]byte, error)
	Log(ctx context.Context) (*dto.LogListResponse, error)
}

type adminService struct {
	forecasts   repository.ForecastRepository
	submissions repository.SubmissionRepository
}

func NewAdminService(forecasts repository.ForecastRepository, submissions repository.SubmissionRepository) AdminService {
	return &adminService{forecasts: forecasts, submissions: submissions}
}

// roleTables pairs each editable role with its destination table, in the
// fixed column order of the comparison views.
func roleTables() []struct{ role, table string } {
	return []struct{ role, table string }{
		{model.RoleChannel, model.TableChannelInput},
		{model.RoleBrand1, model.TableBrand1Input},
		{model.RoleBrand2, model.TableBrand2Input},
	}
}

func (s *adminService) Summary(ctx context.Context) (*dto.AdminSummaryResponse, error) {
	baseline, header, err := s.forecasts.Baseline(ctx)
	if err != nil {
		return nil, err
	}
	stock, err := s.forecasts.StockBySKU(ctx)
	if err != nil {
		return nil, err
	}

	submitted := make([]map[string]store.Row, 0, 3)
	for _, rt := range roleTables() {
		bySKU, err := s.submissions.SubmittedBySKU(ctx, rt.table)
		if err != nil {
			return nil, err
		}
		submitted = append(submitted, bySKU)
	}

	totalStock := decimal.Zero
	for _, qty := range stock {
		totalStock = totalStock.Add(qty)
	}

	entries, err := s.submissions.LogEntries(ctx)
	if err != nil {
		return nil, err
	}
	submittedCount := 0
	for _, e := range entries {
		if e.Status == model.StatusSubmitted {
			submittedCount++
		}
	}

	monthKeys := model.MonthKeys(header)
	sampleMonth := ""
	if len(monthKeys) > 0 {
		sampleMonth = monthKeys[0]
	}

	resp := &dto.AdminSummaryResponse{
		TotalSKUs:      0,
		SubmittedCount: submittedCount,
		TotalStock:     totalStock,
		SampleMonth:    sampleMonth,
		Sample:         []dto.SampleRow{},
	}
	for _, raw := range baseline {
		sku := raw[model.ColSKUCode]
		if sku == "" {
			continue
		}
		resp.TotalSKUs++
		if sampleMonth == "" || len(resp.Sample) >= sampleSize {
			continue
		}
		sample := dto.SampleRow{
			SKUCode:     sku,
			ProductName: raw[model.ColProductName],
			Baseline:    cellValue(raw, sampleMonth),
		}
		sample.Channel = submittedValue(submitted[0], sku, sampleMonth)
		sample.Brand1 = submittedValue(submitted[1], sku, sampleMonth)
		sample.Brand2 = submittedValue(submitted[2], sku, sampleMonth)
		resp.Sample = append(resp.Sample, sample)
	}
	return resp, nil
}

// Export renders the full baseline-vs-submissions comparison as a workbook:
// one row per (SKU, month), one column per source.
func (s *adminService) Export(ctx context.Context) ([]byte, error) {
	baseline, header, err := s.forecasts.Baseline(ctx)
	if err != nil {
		return nil, err
	}
	submitted := make([]map[string]store.Row, 0, 3)
	for _, rt := range roleTables() {
		bySKU, err := s.submissions.SubmittedBySKU(ctx, rt.table)
		if err != nil {
			return nil, err
		}
		submitted = append(submitted, bySKU)
	}
	monthKeys := model.MonthKeys(header)

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "comparison"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	cols := []interface{}{model.ColSKUCode, model.ColProductName, "month", "baseline"}
	for _, rt := range roleTables() {
		cols = append(cols, rt.role)
	}
	if err := f.SetSheetRow(sheet, "A1", &cols); err != nil {
		return nil, err
	}

	rowNum := 2
	for _, raw := range baseline {
		sku := raw[model.ColSKUCode]
		if sku == "" {
			continue
		}
		for _, month := range monthKeys {
			cells := []interface{}{
				sku,
				raw[model.ColProductName],
				month,
				exportCell(cellValue(raw, month)),
			}
			for _, bySKU := range submitted {
				cells = append(cells, exportCell(submittedValue(bySKU, sku, month)))
			}
			if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", rowNum), &cells); err != nil {
				return nil, err
			}
			rowNum++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write export workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *adminService) Log(ctx context.Context) (*dto.LogListResponse, error) {
	entries, err := s.submissions.LogEntries(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.LogListResponse{Entries: entries, Total: len(entries)}, nil
}

// cellValue parses a numeric table cell; nil means blank or non-numeric.
func cellValue(row store.Row, col string) *decimal.Decimal {
	if qty, ok := model.ParseQty(row[col]); ok {
		return &qty
	}
	return nil
}

func submittedValue(bySKU map[string]store.Row, sku, month string) *decimal.Decimal {
	row, ok := bySKU[sku]
	if !ok {
		return nil
	}
	return cellValue(row, month)
}

// exportCell keeps "no value" as an empty cell rather than a zero.
func exportCell(v *decimal.Decimal) interface{} {
	if v == nil {
		return ""
	}
	return v.String()
}
