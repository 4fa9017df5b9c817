package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rofoportal/internal/dto"
	"rofoportal/internal/model"
	"rofoportal/internal/repository"
	"rofoportal/internal/store"
	"rofoportal/internal/worker"

	"github.com/rs/zerolog/log"
)

// ErrPersistFailure means the destination table write was rejected by the
// store. Nothing was logged; the caller should surface a 502.
var ErrPersistFailure = errors.New("could not persist submission")

// SubmitService records a validated submission: full replace of the role's
// destination table, then one append to the audit log.
type SubmitService interface {
	Record(ctx context.Context, role model.RoleConfig, table *model.ForecastTable, username string, candidates dto.Candidates, campaignName, notes string) (*dto.SubmitResponse, error)
}

type submitService struct {
	repo       repository.SubmissionRepository
	dispatcher *worker.Dispatcher
	now        func() time.Time
}

func NewSubmitService(repo repository.SubmissionRepository, dispatcher *worker.Dispatcher) SubmitService {
	return &submitService{repo: repo, dispatcher: dispatcher, now: time.Now}
}

// Record persists an accepted submission. Candidates must already have passed
// bound validation; this layer only merges them over the baseline and writes.
//
// The two writes are not atomic. A replace failure aborts before the log is
// touched, so a failed submission never appears logged. The inverse gap is
// tolerated: when the replace lands but the log append fails, the submission
// stands and the response carries log_appended=false.
func (s *submitService) Record(ctx context.Context, role model.RoleConfig, table *model.ForecastTable, username string, candidates dto.Candidates, campaignName, notes string) (*dto.SubmitResponse, error) {
	now := s.now()
	submissionID := role.IDPrefix + now.Format("20060102150405")
	timestamp := now.Format(model.TimestampLayout)

	header := submissionHeader(role, table.MonthKeys)
	rows := submissionRows(role, table, candidates, campaignName, notes, timestamp, username)

	if err := s.repo.ReplaceTable(ctx, role.DestinationTable, header, rows); err != nil {
		if errors.Is(err, store.ErrStoreUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistFailure, err)
	}

	logAppended := true
	entry := model.LogEntry{
		SubmissionID:   submissionID,
		Username:       username,
		Role:           role.Name,
		SubmissionDate: timestamp,
		Status:         model.StatusSubmitted,
	}
	if err := s.repo.AppendLog(ctx, entry); err != nil {
		// The table replace already landed; the submission stands either way.
		log.Error().Err(err).
			Str("submission_id", submissionID).
			Msg("submission recorded but audit log append failed")
		logAppended = false
	}

	if s.dispatcher != nil {
		payload := worker.NotifyJobPayload{
			SubmissionID:   submissionID,
			Username:       username,
			Role:           role.Name,
			SubmissionDate: timestamp,
			RowCount:       len(rows),
		}
		if err := s.dispatcher.EnqueueNotify(ctx, payload); err != nil {
			log.Warn().Err(err).Str("submission_id", submissionID).Msg("failed to enqueue admin notification")
		}
	}

	return &dto.SubmitResponse{
		SubmissionID: submissionID,
		RowCount:     len(rows),
		LogAppended:  logAppended,
	}, nil
}

// submissionHeader lays out the destination table columns: identity, months
// in baseline order, then the free-text and provenance columns.
func submissionHeader(role model.RoleConfig, monthKeys []string) []string {
	header := []string{
		model.ColSKUCode,
		model.ColProductName,
		model.ColBrand,
		model.ColBrandGroup,
		model.ColSKUTier,
	}
	header = append(header, monthKeys...)
	if role.HasCampaignField {
		header = append(header, model.ColCampaignName)
	}
	header = append(header, model.ColNotes, model.ColLastUpdated, model.ColSubmittedBy)
	return header
}

// submissionRows merges the candidates over the baseline. Every in-scope SKU
// is written, adjusted or not, so the destination table is always a complete
// snapshot of the role's view at submission time.
func submissionRows(role model.RoleConfig, table *model.ForecastTable, candidates dto.Candidates, campaignName, notes, timestamp, username string) []store.Row {
	rows := make([]store.Row, 0, len(table.Rows))
	for _, fr := range table.Rows {
		row := store.Row{
			model.ColSKUCode:     fr.SKUCode,
			model.ColProductName: fr.ProductName,
			model.ColBrand:       fr.Brand,
			model.ColBrandGroup:  fr.BrandGroup,
			model.ColSKUTier:     fr.Tier,
			model.ColNotes:       notes,
			model.ColLastUpdated: timestamp,
			model.ColSubmittedBy: username,
		}
		if role.HasCampaignField {
			row[model.ColCampaignName] = campaignName
		}
		for _, month := range table.MonthKeys {
			value, hasBaseline := fr.Months[month]
			if override, ok := candidates[fr.SKUCode][month]; ok && hasBaseline {
				value = override
			} else if !hasBaseline {
				row[month] = ""
				continue
			}
			row[month] = value.String()
		}
		rows = append(rows, row)
	}
	return rows
}
