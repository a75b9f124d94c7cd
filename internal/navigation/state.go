package navigation

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/till-api/internal/domain/enum"
	"github.com/sangkips/till-api/internal/sale"
	"github.com/shopspring/decimal"
)

// Identity is the operator signed in at a terminal
type Identity struct {
	UserID      uuid.UUID `json:"user_id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	StaffCode   string    `json:"staff_code,omitempty"`
	Roles       []string  `json:"roles,omitempty"`
}

// DocumentSummary is one order or quotation listed on the dashboard
type DocumentSummary struct {
	ID         uuid.UUID       `json:"id"`
	DocumentNo string          `json:"document_no"`
	Kind       enum.SaleKind   `json:"kind"`
	Total      decimal.Decimal `json:"total"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// DashboardContext scopes the order/quotation dashboard flow
type DashboardContext struct {
	Mode            enum.DashboardMode `json:"mode"`
	Customer        *sale.Customer     `json:"customer,omitempty"`
	Documents       []DocumentSummary  `json:"documents"`
	DocumentsLoaded bool               `json:"documents_loaded"`
}

// Complete reports whether both mode and customer are set
func (d *DashboardContext) Complete() bool {
	return d != nil && d.Customer != nil
}

func (d *DashboardContext) clone() *DashboardContext {
	if d == nil {
		return nil
	}
	out := *d
	if d.Customer != nil {
		c := *d.Customer
		out.Customer = &c
	}
	out.Documents = append([]DocumentSummary(nil), d.Documents...)
	return &out
}

// State is everything a terminal knows between intents
type State struct {
	Screen         Screen            `json:"screen"`
	Draft          *sale.Draft       `json:"draft,omitempty"`
	Dashboard      *DashboardContext `json:"dashboard,omitempty"`
	User           *Identity         `json:"user,omitempty"`
	Settings       sale.Settings     `json:"settings"`
	SettingsLoaded bool              `json:"settings_loaded"`
}

// Authenticated reports whether an operator is signed in
func (s State) Authenticated() bool {
	return s.User != nil
}

// Clone returns a copy that shares no memory with s
func (s State) Clone() State {
	out := s
	out.Draft = s.Draft.Clone()
	out.Dashboard = s.Dashboard.clone()
	if s.User != nil {
		u := *s.User
		u.Roles = append([]string(nil), s.User.Roles...)
		out.User = &u
	}
	return out
}

// Event is an intent plus the payload some intents need
type Event struct {
	Intent   Intent
	User     *Identity
	Customer *sale.Customer
}
