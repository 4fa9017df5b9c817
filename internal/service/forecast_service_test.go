package service

import (
	"context"
	"testing"

	"rofoportal/internal/dto"
	"rofoportal/internal/model"
	"rofoportal/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newForecastFixture(t *testing.T) (ForecastService, *stubSubmissionRepo, *stubSessionStore, string) {
	t.Helper()
	subRepo := newStubSubmissionRepo()
	sessions := newStubSessionStore()
	resolver := NewResolverService(fixtureRepo())
	submit := &submitService{repo: subRepo, now: fixedClock()}
	svc := NewForecastService(resolver, submit, sessions)

	sess, err := sessions.Create(context.Background(), "brand1_user", model.RoleBrand1)
	require.NoError(t, err)
	return svc, subRepo, sessions, sess.ID
}

func TestLoad_RendersRoleView(t *testing.T) {
	svc, _, _, _ := newForecastFixture(t)

	resp, err := svc.Load(context.Background(), mustRole(model.RoleBrand1))
	require.NoError(t, err)
	assert.Equal(t, model.RoleBrand1, resp.Role)
	assert.True(t, resp.HasCampaignField)
	assert.False(t, resp.NoData)
	assert.Equal(t, []string{"Feb-26", "Mar-26"}, resp.MonthKeys)
	require.Len(t, resp.Rows, 2)
	assert.True(t, resp.Rows[0].StockQty.Equal(dec("50")))
}

func TestLoad_FlagsEmptyScopeAsNoData(t *testing.T) {
	repo := fixtureRepo()
	repo.groups = map[string]string{}
	svc := NewForecastService(NewResolverService(repo), nil, newStubSessionStore())

	resp, err := svc.Load(context.Background(), mustRole(model.RoleBrand1))
	require.NoError(t, err)
	assert.True(t, resp.NoData)
	assert.Empty(t, resp.Rows)
}

func TestDraft_RoundTripOnSession(t *testing.T) {
	svc, _, _, sessionID := newForecastFixture(t)

	err := svc.SaveDraft(context.Background(), sessionID, dto.DraftRequest{
		Candidates:   dto.Candidates{"A-01": {"Feb-26": dec("120")}},
		CampaignName: "Spring push",
	})
	require.NoError(t, err)

	draft, err := svc.GetDraft(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, "Spring push", draft.CampaignName)
	assert.True(t, draft.Candidates["A-01"]["Feb-26"].Equal(dec("120")))
}

func TestGetDraft_EmptyWhenNoneSaved(t *testing.T) {
	svc, _, _, sessionID := newForecastFixture(t)

	draft, err := svc.GetDraft(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Empty(t, draft.Candidates)
}

func TestSubmit_AcceptedWritesAndClearsDraft(t *testing.T) {
	svc, subRepo, sessions, sessionID := newForecastFixture(t)
	role := mustRole(model.RoleBrand1)

	require.NoError(t, svc.SaveDraft(context.Background(), sessionID, dto.DraftRequest{
		Candidates: dto.Candidates{"A-01": {"Feb-26": dec("130")}},
		Notes:      "draft notes",
	}))

	// Empty body: submits the session draft.
	resp, rejected, err := svc.Submit(context.Background(), role, sessionID, "brand1_user", dto.SubmitRequest{})
	require.NoError(t, err)
	require.Nil(t, rejected)
	assert.Equal(t, "B1_20260210093000", resp.SubmissionID)
	assert.True(t, resp.LogAppended)

	rows := subRepo.tables[model.TableBrand1Input]
	require.Len(t, rows, 2)
	assert.Equal(t, "130", rows[0]["Feb-26"])
	assert.Equal(t, "draft notes", rows[0][model.ColNotes])

	sess, err := sessions.Get(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Nil(t, sess.Draft, "draft cleared after accepted submit")
}

func TestSubmit_ExplicitCandidatesBypassDraft(t *testing.T) {
	svc, subRepo, _, sessionID := newForecastFixture(t)
	role := mustRole(model.RoleBrand1)

	resp, rejected, err := svc.Submit(context.Background(), role, sessionID, "brand1_user", dto.SubmitRequest{
		Candidates: dto.Candidates{"A-01": {"Mar-26": dec("250")}},
	})
	require.NoError(t, err)
	require.Nil(t, rejected)
	assert.Equal(t, 2, resp.RowCount)
	assert.Equal(t, "250", subRepo.tables[model.TableBrand1Input][0]["Mar-26"])
}

func TestSubmit_RejectedRendersAtMostFiveViolations(t *testing.T) {
	repo := fixtureRepo()
	// Six month columns, all with baseline 100, gives six violations at once.
	months := []string{"Feb-26", "Mar-26", "Apr-26", "May-26", "Jun-26", "Jul-26"}
	repo.header = append([]string{model.ColSKUCode, model.ColBrandGroup}, months...)
	row := map[string]string{model.ColSKUCode: "A-01", model.ColBrandGroup: "Brand Group 1"}
	candidates := map[string]decimal.Decimal{}
	for _, m := range months {
		row[m] = "100"
		candidates[m] = dec("500")
	}
	repo.baseline = repo.baseline[:0]
	repo.baseline = append(repo.baseline, row)

	sessions := newStubSessionStore()
	sess, _ := sessions.Create(context.Background(), "brand1_user", model.RoleBrand1)
	svc := NewForecastService(NewResolverService(repo),
		&submitService{repo: newStubSubmissionRepo(), now: fixedClock()}, sessions)

	resp, rejected, err := svc.Submit(context.Background(), mustRole(model.RoleBrand1),
		sess.ID, "brand1_user", dto.SubmitRequest{Candidates: dto.Candidates{"A-01": candidates}})
	require.NoError(t, err)
	assert.Nil(t, resp)
	require.NotNil(t, rejected)
	assert.Len(t, rejected.Violations, 5)
	assert.Equal(t, 1, rejected.OmittedCount)
	assert.Contains(t, rejected.Detail, "6")
	assert.Contains(t, rejected.Violations[0].Message, "[60, 140]")
}

func TestSubmit_RejectionLeavesStoreUntouched(t *testing.T) {
	svc, subRepo, sessions, sessionID := newForecastFixture(t)
	role := mustRole(model.RoleBrand1)

	require.NoError(t, svc.SaveDraft(context.Background(), sessionID, dto.DraftRequest{
		Candidates: dto.Candidates{"A-01": {"Feb-26": dec("9999")}},
	}))

	_, rejected, err := svc.Submit(context.Background(), role, sessionID, "brand1_user", dto.SubmitRequest{})
	require.NoError(t, err)
	require.NotNil(t, rejected)
	assert.Empty(t, subRepo.tables, "nothing persisted on rejection")
	assert.Empty(t, subRepo.logs)

	sess, err := sessions.Get(context.Background(), sessionID)
	require.NoError(t, err)
	assert.NotNil(t, sess.Draft, "draft survives a rejection")
}

func TestSubmit_EmptyScopeDoesNotRecord(t *testing.T) {
	repo := fixtureRepo()
	repo.groups = map[string]string{}
	subRepo := newStubSubmissionRepo()
	// A prior submission that must survive the failed attempt.
	subRepo.tables[model.TableBrand1Input] = []store.Row{{model.ColSKUCode: "A-01", "Feb-26": "120"}}
	sessions := newStubSessionStore()
	sess, err := sessions.Create(context.Background(), "brand1_user", model.RoleBrand1)
	require.NoError(t, err)
	svc := NewForecastService(NewResolverService(repo),
		&submitService{repo: subRepo, now: fixedClock()}, sessions)

	resp, rejected, err := svc.Submit(context.Background(), mustRole(model.RoleBrand1),
		sess.ID, "brand1_user", dto.SubmitRequest{
			Candidates: dto.Candidates{"A-01": {"Feb-26": dec("120")}},
		})
	assert.ErrorIs(t, err, ErrNoForecastData)
	assert.Nil(t, resp)
	assert.Nil(t, rejected)
	require.Len(t, subRepo.tables[model.TableBrand1Input], 1, "prior table not wiped")
	assert.Empty(t, subRepo.logs, "no log row for a submission that asserted nothing")
}

func TestSubmit_NoBodyAndNoDraft(t *testing.T) {
	svc, _, _, sessionID := newForecastFixture(t)

	_, _, err := svc.Submit(context.Background(), mustRole(model.RoleBrand1),
		sessionID, "brand1_user", dto.SubmitRequest{})
	assert.ErrorIs(t, err, ErrNoDraft)
}
