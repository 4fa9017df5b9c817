package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Draft holds a session's in-flight adjustment inputs. Transient by design:
// it lives and dies with the session and is never written to the store until
// a submission passes validation.
type Draft struct {
	Candidates   map[string]map[string]decimal.Decimal `json:"candidates"`
	CampaignName string                                `json:"campaign_name"`
	Notes        string                                `json:"notes"`
}

// Session is the explicit per-login context object: created on successful
// login, deleted on logout, expired by TTL. Nothing about the authenticated
// user is held as process-global state.
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	Draft     *Draft    `json:"draft,omitempty"`
}
