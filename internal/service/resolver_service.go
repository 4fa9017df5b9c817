package service

import (
	"context"

	"rofoportal/internal/model"
	"rofoportal/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ResolverService derives the current working forecast table for one role:
// baseline rows scoped to the role's brand groups, left-joined with stock.
type ResolverService interface {
	Resolve(ctx context.Context, role model.RoleConfig) (*model.ForecastTable, error)
}

type resolverService struct {
	repo repository.ForecastRepository
}

func NewResolverService(repo repository.ForecastRepository) ResolverService {
	return &resolverService{repo: repo}
}

// Resolve fetches fresh baseline, brand-group reference, and stock data on
// every call — the store is the source of truth, nothing is cached.
//
// sales_history is the canonical sku → brand-group source. rofo_current
// carries its own Brand_Group column, and the two can disagree; a divergent
// value is logged and otherwise ignored, never merged.
//
// An empty result (role matches no SKUs) is not an error: callers must render
// it as a distinct no-data condition.
func (s *resolverService) Resolve(ctx context.Context, role model.RoleConfig) (*model.ForecastTable, error) {
	baseline, header, err := s.repo.Baseline(ctx)
	if err != nil {
		return nil, err
	}
	canonical, err := s.repo.BrandGroupBySKU(ctx)
	if err != nil {
		return nil, err
	}
	stock, err := s.repo.StockBySKU(ctx)
	if err != nil {
		return nil, err
	}

	inScope := make(map[string]bool, len(role.BrandGroups))
	for _, g := range role.BrandGroups {
		inScope[g] = true
	}

	monthKeys := model.MonthKeys(header)
	table := &model.ForecastTable{MonthKeys: monthKeys, Rows: []model.ForecastRow{}}

	for _, raw := range baseline {
		sku := raw[model.ColSKUCode]
		if sku == "" {
			continue
		}
		group, known := canonical[sku]
		if !known || !inScope[group] {
			continue
		}
		if own := raw[model.ColBrandGroup]; own != "" && own != group {
			log.Warn().
				Str("sku", sku).
				Str("baseline_group", own).
				Str("canonical_group", group).
				Msg("brand group divergence between rofo_current and sales_history")
		}

		row := model.ForecastRow{
			SKUCode:     sku,
			ProductName: raw[model.ColProductName],
			Brand:       raw[model.ColBrand],
			BrandGroup:  group,
			Tier:        raw[model.ColSKUTier],
			Months:      make(map[string]decimal.Decimal),
		}
		for _, month := range monthKeys {
			if qty, ok := model.ParseQty(raw[month]); ok {
				row.Months[month] = qty
			}
		}
		// Left join: missing stock is zero, not an error.
		row.StockQty = stock[sku]
		table.Rows = append(table.Rows, row)
	}

	if len(table.Rows) == 0 {
		log.Warn().Str("role", role.Name).Msg("no SKUs in scope for role")
	}
	return table, nil
}
