package repository

import (
	"context"
	"errors"

	"rofoportal/internal/model"
	"rofoportal/internal/store"
)

// SubmissionRepository persists accepted submissions and the audit log.
type SubmissionRepository interface {
	// ReplaceTable overwrites a role's destination table in full.
	// "Last writer wins": no merge with the previous content.
	ReplaceTable(ctx context.Context, table string, header []string, rows []store.Row) error

	// AppendLog adds one entry to the append-only input_log table.
	AppendLog(ctx context.Context, entry model.LogEntry) error

	// LogEntries returns the full audit log, oldest first.
	LogEntries(ctx context.Context) ([]model.LogEntry, error)

	// SubmittedBySKU returns a role's current submission rows keyed by
	// sku_code. A missing or empty table yields an empty map.
	SubmittedBySKU(ctx context.Context, table string) (map[string]store.Row, error)
}

type submissionRepo struct{ tab store.Tabular }

func NewSubmissionRepository(tab store.Tabular) SubmissionRepository {
	return &submissionRepo{tab: tab}
}

func (r *submissionRepo) ReplaceTable(ctx context.Context, table string, header []string, rows []store.Row) error {
	return r.tab.Replace(ctx, table, header, rows)
}

func (r *submissionRepo) AppendLog(ctx context.Context, entry model.LogEntry) error {
	return r.tab.Append(ctx, model.TableInputLog, store.Row{
		model.ColSubmissionID:   entry.SubmissionID,
		model.ColUsername:       entry.Username,
		model.ColRole:           entry.Role,
		model.ColSubmissionDate: entry.SubmissionDate,
		model.ColStatus:         entry.Status,
	})
}

func (r *submissionRepo) LogEntries(ctx context.Context) ([]model.LogEntry, error) {
	rows, err := r.tab.Read(ctx, model.TableInputLog)
	if errors.Is(err, store.ErrTableNotFound) {
		return []model.LogEntry{}, nil
	}
	if err != nil {
		return nil, err
	}
	entries := make([]model.LogEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, model.LogEntry{
			SubmissionID:   row[model.ColSubmissionID],
			Username:       row[model.ColUsername],
			Role:           row[model.ColRole],
			SubmissionDate: row[model.ColSubmissionDate],
			Status:         row[model.ColStatus],
		})
	}
	return entries, nil
}

func (r *submissionRepo) SubmittedBySKU(ctx context.Context, table string) (map[string]store.Row, error) {
	rows, err := r.tab.Read(ctx, table)
	if errors.Is(err, store.ErrTableNotFound) {
		return map[string]store.Row{}, nil
	}
	if err != nil {
		return nil, err
	}
	bySKU := make(map[string]store.Row, len(rows))
	for _, row := range rows {
		if sku := row[model.ColSKUCode]; sku != "" {
			bySKU[sku] = row
		}
	}
	return bySKU, nil
}
