package service

import (
	"context"
	"errors"
	"fmt"

	"rofoportal/internal/model"
	"rofoportal/internal/repository"
	"rofoportal/internal/store"

	"github.com/shopspring/decimal"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubForecastRepo is an in-memory ForecastRepository for testing.
type stubForecastRepo struct {
	header   []string
	baseline []store.Row
	stock    map[string]decimal.Decimal
	groups   map[string]string
	err      error
}

func (r *stubForecastRepo) Baseline(_ context.Context) ([]store.Row, []string, error) {
	if r.err != nil {
		return nil, nil, r.err
	}
	return r.baseline, r.header, nil
}

func (r *stubForecastRepo) StockBySKU(_ context.Context) (map[string]decimal.Decimal, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.stock == nil {
		return map[string]decimal.Decimal{}, nil
	}
	return r.stock, nil
}

func (r *stubForecastRepo) BrandGroupBySKU(_ context.Context) (map[string]string, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.groups, nil
}

var _ repository.ForecastRepository = (*stubForecastRepo)(nil)

// stubSubmissionRepo captures replaced tables and appended log entries.
type stubSubmissionRepo struct {
	tables     map[string][]store.Row
	headers    map[string][]string
	logs       []model.LogEntry
	replaceErr error
	appendErr  error
}

func newStubSubmissionRepo() *stubSubmissionRepo {
	return &stubSubmissionRepo{
		tables:  make(map[string][]store.Row),
		headers: make(map[string][]string),
	}
}

func (r *stubSubmissionRepo) ReplaceTable(_ context.Context, table string, header []string, rows []store.Row) error {
	if r.replaceErr != nil {
		return r.replaceErr
	}
	r.headers[table] = header
	r.tables[table] = rows
	return nil
}

func (r *stubSubmissionRepo) AppendLog(_ context.Context, entry model.LogEntry) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.logs = append(r.logs, entry)
	return nil
}

func (r *stubSubmissionRepo) LogEntries(_ context.Context) ([]model.LogEntry, error) {
	return r.logs, nil
}

func (r *stubSubmissionRepo) SubmittedBySKU(_ context.Context, table string) (map[string]store.Row, error) {
	bySKU := make(map[string]store.Row)
	for _, row := range r.tables[table] {
		if sku := row[model.ColSKUCode]; sku != "" {
			bySKU[sku] = row
		}
	}
	return bySKU, nil
}

var _ repository.SubmissionRepository = (*stubSubmissionRepo)(nil)

// stubSessionStore is an in-memory SessionStore.
type stubSessionStore struct {
	sessions map[string]*model.Session
	seq      int
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*model.Session)}
}

func (s *stubSessionStore) Create(_ context.Context, username, role string) (*model.Session, error) {
	s.seq++
	sess := &model.Session{
		ID:       fmt.Sprintf("sess-%d", s.seq),
		Username: username,
		Role:     role,
	}
	s.sessions[sess.ID] = sess
	return sess, nil
}

func (s *stubSessionStore) Get(_ context.Context, id string) (*model.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *stubSessionStore) SaveDraft(_ context.Context, id string, draft *model.Draft) error {
	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	sess.Draft = draft
	return nil
}

func (s *stubSessionStore) ClearDraft(_ context.Context, id string) error {
	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	sess.Draft = nil
	return nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

var _ SessionStore = (*stubSessionStore)(nil)

// stubUserRepo serves a fixed user set.
type stubUserRepo struct {
	users map[string]*model.User
	err   error
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

// ── Fixtures ──────────────────────────────────────────────────────────────────

var errStubDown = errors.New("stub down")

// fixtureRepo returns a repo with three SKUs: two in Brand Group 1, one in
// Brand Group 2. Months are Feb-26 and Mar-26; A-01 has stock 50.
func fixtureRepo() *stubForecastRepo {
	return &stubForecastRepo{
		header: []string{
			model.ColSKUCode, model.ColProductName, model.ColBrand,
			model.ColBrandGroup, model.ColSKUTier, "Feb-26", "Mar-26",
		},
		baseline: []store.Row{
			{
				model.ColSKUCode: "A-01", model.ColProductName: "Serum",
				model.ColBrand: "Aurel", model.ColBrandGroup: "Brand Group 1",
				model.ColSKUTier: "A", "Feb-26": "100", "Mar-26": "200",
			},
			{
				model.ColSKUCode: "A-02", model.ColProductName: "Cream",
				model.ColBrand: "Aurel", model.ColBrandGroup: "Brand Group 1",
				model.ColSKUTier: "B", "Feb-26": "50", "Mar-26": "",
			},
			{
				model.ColSKUCode: "B-01", model.ColProductName: "Sunscreen",
				model.ColBrand: "Veya", model.ColBrandGroup: "Brand Group 2",
				model.ColSKUTier: "A", "Feb-26": "1000", "Mar-26": "1100",
			},
		},
		stock: map[string]decimal.Decimal{
			"A-01": decimal.NewFromInt(50),
		},
		groups: map[string]string{
			"A-01": "Brand Group 1",
			"A-02": "Brand Group 1",
			"B-01": "Brand Group 2",
		},
	}
}

func mustRole(name string) model.RoleConfig {
	role, ok := model.ResolveRole(name)
	if !ok {
		panic("unknown role " + name)
	}
	return role
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
