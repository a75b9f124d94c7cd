package navigation

import (
	"github.com/sangkips/till-api/internal/domain/enum"
	"github.com/sangkips/till-api/internal/sale"
)

// DraftFactory builds fresh drafts for the start and create-new intents
type DraftFactory interface {
	New(kind enum.SaleKind, settings sale.Settings, customer *sale.Customer) *sale.Draft
	NewTouchSale(settings sale.Settings) *sale.Draft
}

type effect uint8

const (
	effectLoadSettings effect = 1 << iota
	effectLoadDocuments
)

// Result is the outcome of firing one event
type Result struct {
	State   State
	Applied bool
	effects effect
}

// LoadSettings reports whether the transition asks for the user's settings
func (r Result) LoadSettings() bool { return r.effects&effectLoadSettings != 0 }

// LoadDocuments reports whether the transition asks for the dashboard documents
func (r Result) LoadDocuments() bool { return r.effects&effectLoadDocuments != 0 }

type rule struct {
	guard func(s State, ev Event) bool
	apply func(m Machine, s State, ev Event) (State, effect)
}

// Machine is the pure transition function of a terminal
type Machine struct {
	factory  DraftFactory
	defaults sale.Settings
}

// NewMachine creates a machine. defaults are the settings in force before
// a user's own settings have loaded and after logout.
func NewMachine(factory DraftFactory, defaults sale.Settings) Machine {
	return Machine{factory: factory, defaults: defaults}
}

// Defaults returns the fallback settings
func (m Machine) Defaults() sale.Settings {
	return m.defaults
}

// Initial is the state of a terminal nobody has used yet
func (m Machine) Initial() State {
	return State{Screen: ScreenLogin, Settings: m.defaults}
}

// Fire computes the state after ev. An event whose precondition does not
// hold leaves the state untouched and reports Applied=false.
func (m Machine) Fire(s State, ev Event) Result {
	r, ok := transitions[ev.Intent]
	if !ok || (r.guard != nil && !r.guard(s, ev)) {
		return Result{State: s}
	}
	next, eff := r.apply(m, s.Clone(), ev)
	return Result{State: next, Applied: true, effects: eff}
}

var transitions = map[Intent]rule{
	IntentLogin: {
		guard: func(_ State, ev Event) bool { return ev.User != nil },
		apply: func(m Machine, s State, ev Event) (State, effect) {
			u := *ev.User
			u.Roles = append([]string(nil), ev.User.Roles...)
			s = m.resetSession(s)
			s.User = &u
			s.Screen = ScreenMenu
			return s, effectLoadSettings
		},
	},
	IntentLogout: {
		guard: func(s State, _ Event) bool { return s.Authenticated() },
		apply: func(m Machine, s State, _ Event) (State, effect) {
			s = m.resetSession(s)
			s.Screen = ScreenLogin
			return s, 0
		},
	},
	IntentStartCashSale:      startSale(enum.SaleKindCashSale),
	IntentStartAccountSale:   startSale(enum.SaleKindAccountSale),
	IntentStartCashReturn:    startSale(enum.SaleKindCashReturn),
	IntentStartAccountReturn: startSale(enum.SaleKindAccountReturn),
	IntentStartTouchSale: {
		apply: func(m Machine, s State, _ Event) (State, effect) {
			s.Draft = m.factory.NewTouchSale(s.Settings)
			s.Dashboard = nil
			s.Screen = ScreenTouchSale
			return s, 0
		},
	},
	IntentStartSalesOrders: startDashboard(enum.DashboardModeOrder),
	IntentStartQuotations:  startDashboard(enum.DashboardModeQuotation),
	IntentSelectCustomer: {
		guard: func(s State, ev Event) bool {
			return s.Screen == ScreenDashboard && s.Dashboard != nil && ev.Customer != nil
		},
		apply: func(_ Machine, s State, ev Event) (State, effect) {
			c := *ev.Customer
			s.Dashboard.Customer = &c
			s.Dashboard.Documents = []DocumentSummary{}
			s.Dashboard.DocumentsLoaded = false
			return s, effectLoadDocuments
		},
	},
	IntentCreateNew: {
		guard: func(s State, _ Event) bool {
			return s.Screen == ScreenDashboard && s.Dashboard.Complete()
		},
		apply: func(m Machine, s State, _ Event) (State, effect) {
			s.Draft = m.factory.New(s.Dashboard.Mode.SaleKind(), s.Settings, s.Dashboard.Customer)
			s.Screen = ScreenSaleHeader
			return s, 0
		},
	},
	IntentProceed: {
		guard: func(s State, _ Event) bool {
			return s.Screen == ScreenSaleHeader && s.Draft != nil
		},
		apply: func(_ Machine, s State, _ Event) (State, effect) {
			s.Screen = ScreenSaleItems
			return s, 0
		},
	},
	IntentBack: {
		guard: func(s State, _ Event) bool {
			_, ok := backTarget(s)
			return ok
		},
		apply: func(_ Machine, s State, _ Event) (State, effect) {
			target, _ := backTarget(s)
			switch target {
			case ScreenDashboard:
				s.Draft = nil
			case ScreenMenu:
				s.Draft = nil
				s.Dashboard = nil
			}
			s.Screen = target
			return s, 0
		},
	},
	IntentComplete: toMenu(nil),
	IntentCancel:   toMenu(nil),
	IntentOpenInventoryDashboard: {
		guard: authenticated,
		apply: func(_ Machine, s State, _ Event) (State, effect) {
			s.Draft, s.Dashboard = nil, nil
			s.Screen = ScreenInventoryDashboard
			return s, 0
		},
	},
	IntentOpenSalesStats: {
		guard: authenticated,
		apply: func(_ Machine, s State, _ Event) (State, effect) {
			s.Draft, s.Dashboard = nil, nil
			s.Screen = ScreenSalesStats
			return s, 0
		},
	},
	IntentBackToMenu: toMenu(authenticated),
}

func authenticated(s State, _ Event) bool {
	return s.Authenticated()
}

func startSale(kind enum.SaleKind) rule {
	return rule{
		apply: func(m Machine, s State, _ Event) (State, effect) {
			s.Draft = m.factory.New(kind, s.Settings, nil)
			s.Dashboard = nil
			s.Screen = ScreenSaleHeader
			return s, 0
		},
	}
}

func startDashboard(mode enum.DashboardMode) rule {
	return rule{
		apply: func(_ Machine, s State, _ Event) (State, effect) {
			s.Draft = nil
			s.Dashboard = &DashboardContext{Mode: mode, Documents: []DocumentSummary{}}
			s.Screen = ScreenDashboard
			return s, 0
		},
	}
}

func toMenu(guard func(State, Event) bool) rule {
	return rule{
		guard: guard,
		apply: func(_ Machine, s State, _ Event) (State, effect) {
			s.Draft, s.Dashboard = nil, nil
			s.Screen = ScreenMenu
			return s, 0
		},
	}
}

// backTarget returns where "back" leads from s, if anywhere
func backTarget(s State) (Screen, bool) {
	switch s.Screen {
	case ScreenSaleHeader:
		if s.Draft == nil {
			return 0, false
		}
		if s.Dashboard.Complete() {
			return ScreenDashboard, true
		}
		return ScreenMenu, true
	case ScreenSaleItems:
		if s.Draft == nil {
			return 0, false
		}
		return ScreenSaleHeader, true
	case ScreenTouchSale, ScreenDashboard, ScreenInventoryDashboard, ScreenSalesStats:
		return ScreenMenu, true
	}
	return 0, false
}

func (m Machine) resetSession(s State) State {
	s.User = nil
	s.Settings = m.defaults
	s.SettingsLoaded = false
	s.Draft = nil
	s.Dashboard = nil
	return s
}
