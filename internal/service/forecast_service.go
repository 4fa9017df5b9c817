package service

import (
	"context"
	"errors"
	"fmt"

	"rofoportal/internal/dto"
	"rofoportal/internal/model"

	"github.com/rs/zerolog/log"
)

// maxRenderedViolations caps how many violations a rejection response carries.
const maxRenderedViolations = 5

// ErrNoDraft is returned when a submit falls back to the session draft and
// there is none.
var ErrNoDraft = errors.New("no draft on this session")

// ErrNoForecastData is returned when a submit targets a role whose resolved
// table has no rows. Recording would replace the destination table with an
// empty snapshot, wiping any prior submission while asserting nothing.
var ErrNoForecastData = errors.New("no forecast rows in scope")

// ForecastService drives a role's view lifecycle: load the working table,
// park edits on the session draft, and submit.
type ForecastService interface {
	Load(ctx context.Context, role model.RoleConfig) (*dto.ForecastTableResponse, error)
	SaveDraft(ctx context.Context, sessionID string, req dto.DraftRequest) error
	GetDraft(ctx context.Context, sessionID string) (*dto.DraftResponse, error)
	Submit(ctx context.Context, role model.RoleConfig, sessionID, username string, req dto.SubmitRequest) (*dto.SubmitResponse, *dto.RejectedResponse, error)
}

type forecastService struct {
	resolver ResolverService
	submit   SubmitService
	sessions SessionStore
}

func NewForecastService(resolver ResolverService, submit SubmitService, sessions SessionStore) ForecastService {
	return &forecastService{resolver: resolver, submit: submit, sessions: sessions}
}

func (s *forecastService) Load(ctx context.Context, role model.RoleConfig) (*dto.ForecastTableResponse, error) {
	table, err := s.resolver.Resolve(ctx, role)
	if err != nil {
		return nil, err
	}

	resp := &dto.ForecastTableResponse{
		Role:             role.Name,
		MonthKeys:        table.MonthKeys,
		NoData:           len(table.Rows) == 0,
		HasCampaignField: role.HasCampaignField,
		Rows:             make([]dto.ForecastRowResponse, 0, len(table.Rows)),
	}
	for _, row := range table.Rows {
		resp.Rows = append(resp.Rows, dto.ForecastRowResponse{
			SKUCode:     row.SKUCode,
			ProductName: row.ProductName,
			Brand:       row.Brand,
			BrandGroup:  row.BrandGroup,
			Tier:        row.Tier,
			Months:      row.Months,
			StockQty:    row.StockQty,
		})
	}
	return resp, nil
}

func (s *forecastService) SaveDraft(ctx context.Context, sessionID string, req dto.DraftRequest) error {
	return s.sessions.SaveDraft(ctx, sessionID, &model.Draft{
		Candidates:   req.Candidates,
		CampaignName: req.CampaignName,
		Notes:        req.Notes,
	})
}

func (s *forecastService) GetDraft(ctx context.Context, sessionID string) (*dto.DraftResponse, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Draft == nil {
		return &dto.DraftResponse{Candidates: dto.Candidates{}}, nil
	}
	return &dto.DraftResponse{
		Candidates:   sess.Draft.Candidates,
		CampaignName: sess.Draft.CampaignName,
		Notes:        sess.Draft.Notes,
	}, nil
}

// Submit validates the candidate values against a fresh baseline and, when
// they all pass, records the submission. An empty request body means "submit
// the current session draft". The second return value is non-nil when the
// submission was rejected on bounds (render it with HTTP 422).
func (s *forecastService) Submit(ctx context.Context, role model.RoleConfig, sessionID, username string, req dto.SubmitRequest) (*dto.SubmitResponse, *dto.RejectedResponse, error) {
	candidates := req.Candidates
	campaignName := req.CampaignName
	notes := req.Notes

	if len(candidates) == 0 {
		sess, err := s.sessions.Get(ctx, sessionID)
		if err != nil {
			return nil, nil, err
		}
		if sess.Draft == nil {
			return nil, nil, ErrNoDraft
		}
		candidates = sess.Draft.Candidates
		if campaignName == "" {
			campaignName = sess.Draft.CampaignName
		}
		if notes == "" {
			notes = sess.Draft.Notes
		}
	}

	// Baseline is re-resolved here: validation always runs against the
	// store's current values, not the ones the form was rendered from.
	table, err := s.resolver.Resolve(ctx, role)
	if err != nil {
		return nil, nil, err
	}
	if len(table.Rows) == 0 {
		return nil, nil, ErrNoForecastData
	}

	if violations := ValidateAdjustments(table, candidates); len(violations) > 0 {
		return nil, renderRejection(violations), nil
	}

	result, err := s.submit.Record(ctx, role, table, username, candidates, campaignName, notes)
	if err != nil {
		return nil, nil, err
	}

	if err := s.sessions.ClearDraft(ctx, sessionID); err != nil {
		log.Warn().Err(err).Str("session_id", sessionID).Msg("could not clear draft after submit")
	}
	return result, nil, nil
}

// renderRejection formats at most maxRenderedViolations entries; the rest are
// only counted. Violations arrive sorted by SKU then month.
func renderRejection(violations []model.Violation) *dto.RejectedResponse {
	rendered := violations
	omitted := 0
	if len(rendered) > maxRenderedViolations {
		omitted = len(rendered) - maxRenderedViolations
		rendered = rendered[:maxRenderedViolations]
	}

	resp := &dto.RejectedResponse{
		Detail:       fmt.Sprintf("%d value(s) outside the allowed adjustment range", len(violations)),
		Violations:   make([]dto.ViolationMessage, 0, len(rendered)),
		OmittedCount: omitted,
	}
	for _, v := range rendered {
		resp.Violations = append(resp.Violations, dto.ViolationMessage{
			Violation: v,
			Message: fmt.Sprintf("%s %s: %s is outside [%s, %s] (baseline %s)",
				v.SKU, v.Month, v.Candidate, v.Lower, v.Upper, v.Baseline),
		})
	}
	return resp
}
