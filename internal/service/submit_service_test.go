package service

import (
	"context"
	"testing"
	"time"

	"rofoportal/internal/dto"
	"rofoportal/internal/model"
	"rofoportal/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	at := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func resolveFixture(t *testing.T, roleName string) (*model.ForecastTable, model.RoleConfig) {
	t.Helper()
	role := mustRole(roleName)
	table, err := NewResolverService(fixtureRepo()).Resolve(context.Background(), role)
	require.NoError(t, err)
	return table, role
}

func TestRecord_WritesFullSnapshotAndLog(t *testing.T) {
	repo := newStubSubmissionRepo()
	svc := &submitService{repo: repo, now: fixedClock()}
	table, role := resolveFixture(t, model.RoleBrand1)

	resp, err := svc.Record(context.Background(), role, table, "brand1_user",
		dto.Candidates{"A-01": {"Feb-26": dec("120")}}, "Spring push", "reviewed")
	require.NoError(t, err)

	assert.Equal(t, "B1_20260210093000", resp.SubmissionID)
	assert.Equal(t, 2, resp.RowCount)
	assert.True(t, resp.LogAppended)

	rows := repo.tables[model.TableBrand1Input]
	require.Len(t, rows, 2)

	// Adjusted cell carries the candidate, untouched cells keep the baseline.
	assert.Equal(t, "120", rows[0]["Feb-26"])
	assert.Equal(t, "200", rows[0]["Mar-26"])
	assert.Equal(t, "50", rows[1]["Feb-26"])
	assert.Equal(t, "", rows[1]["Mar-26"], "blank baseline stays blank")

	assert.Equal(t, "Spring push", rows[0][model.ColCampaignName])
	assert.Equal(t, "reviewed", rows[0][model.ColNotes])
	assert.Equal(t, "brand1_user", rows[0][model.ColSubmittedBy])
	assert.Equal(t, "2026-02-10 09:30:00", rows[0][model.ColLastUpdated])

	require.Len(t, repo.logs, 1)
	entry := repo.logs[0]
	assert.Equal(t, "B1_20260210093000", entry.SubmissionID)
	assert.Equal(t, model.RoleBrand1, entry.Role)
	assert.Equal(t, model.StatusSubmitted, entry.Status)
	assert.Equal(t, "2026-02-10 09:30:00", entry.SubmissionDate)
}

func TestRecord_ChannelHasNoCampaignColumn(t *testing.T) {
	repo := newStubSubmissionRepo()
	svc := &submitService{repo: repo, now: fixedClock()}
	table, role := resolveFixture(t, model.RoleChannel)

	resp, err := svc.Record(context.Background(), role, table, "channel_user", nil, "ignored", "")
	require.NoError(t, err)
	assert.Equal(t, "CH_20260210093000", resp.SubmissionID)

	assert.NotContains(t, repo.headers[model.TableChannelInput], model.ColCampaignName)
	for _, row := range repo.tables[model.TableChannelInput] {
		_, ok := row[model.ColCampaignName]
		assert.False(t, ok)
	}
}

func TestRecord_ReplaceFailureWritesNoLog(t *testing.T) {
	repo := newStubSubmissionRepo()
	repo.replaceErr = errStubDown
	svc := &submitService{repo: repo, now: fixedClock()}
	table, role := resolveFixture(t, model.RoleBrand1)

	_, err := svc.Record(context.Background(), role, table, "brand1_user", nil, "", "")
	assert.ErrorIs(t, err, ErrPersistFailure)
	assert.Empty(t, repo.logs, "failed submissions must never appear logged")
}

func TestRecord_StoreUnavailablePassesThrough(t *testing.T) {
	repo := newStubSubmissionRepo()
	repo.replaceErr = store.ErrStoreUnavailable
	svc := &submitService{repo: repo, now: fixedClock()}
	table, role := resolveFixture(t, model.RoleBrand1)

	_, err := svc.Record(context.Background(), role, table, "brand1_user", nil, "", "")
	assert.ErrorIs(t, err, store.ErrStoreUnavailable)
	assert.NotErrorIs(t, err, ErrPersistFailure)
}

func TestRecord_LogAppendFailureDoesNotFailSubmission(t *testing.T) {
	repo := newStubSubmissionRepo()
	repo.appendErr = errStubDown
	svc := &submitService{repo: repo, now: fixedClock()}
	table, role := resolveFixture(t, model.RoleBrand2)

	resp, err := svc.Record(context.Background(), role, table, "brand2_user", nil, "", "")
	require.NoError(t, err)
	assert.False(t, resp.LogAppended)
	assert.Len(t, repo.tables[model.TableBrand2Input], 1, "table replace still stands")
}

func TestRecord_ReplayOverwritesPreviousSubmission(t *testing.T) {
	repo := newStubSubmissionRepo()
	svc := &submitService{repo: repo, now: fixedClock()}
	table, role := resolveFixture(t, model.RoleBrand1)

	_, err := svc.Record(context.Background(), role, table, "brand1_user",
		dto.Candidates{"A-01": {"Feb-26": dec("120")}}, "", "")
	require.NoError(t, err)
	_, err = svc.Record(context.Background(), role, table, "brand1_user",
		dto.Candidates{"A-01": {"Feb-26": dec("80")}}, "", "")
	require.NoError(t, err)

	rows := repo.tables[model.TableBrand1Input]
	require.Len(t, rows, 2, "replace, not append")
	assert.Equal(t, "80", rows[0]["Feb-26"])
	assert.Len(t, repo.logs, 2, "the log keeps both submissions")
}
