package navigation

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/till-api/internal/domain/enum"
	"github.com/sangkips/till-api/internal/sale"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// gatedSettings returns canned settings, optionally holding a user's load
// until its gate is closed.
type gatedSettings struct {
	mu     sync.Mutex
	gates  map[uuid.UUID]chan struct{}
	values map[uuid.UUID]*sale.Settings
	errs   map[uuid.UUID]error
}

func newGatedSettings() *gatedSettings {
	return &gatedSettings{
		gates:  map[uuid.UUID]chan struct{}{},
		values: map[uuid.UUID]*sale.Settings{},
		errs:   map[uuid.UUID]error{},
	}
}

func (g *gatedSettings) FetchUserSettings(ctx context.Context, userID uuid.UUID) (*sale.Settings, error) {
	g.mu.Lock()
	gate, v, err := g.gates[userID], g.values[userID], g.errs[userID]
	g.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return v, err
}

type gatedDocuments struct {
	mu    sync.Mutex
	gates map[uuid.UUID]chan struct{}
}

func (g *gatedDocuments) FetchDashboardDocuments(ctx context.Context, mode enum.DashboardMode, customerID uuid.UUID) ([]DocumentSummary, error) {
	g.mu.Lock()
	gate := g.gates[customerID]
	g.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return []DocumentSummary{{ID: customerID, DocumentNo: "ORD-" + customerID.String()[:4], Kind: mode.SaleKind(), Total: decimal.NewFromInt(10)}}, nil
}

func newTestController(settings SettingsLoader, docs DocumentLoader) (*Controller, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	c := NewController(context.Background(), newTestMachine(), Options{
		TerminalID: "T1",
		Settings:   settings,
		Documents:  docs,
		Logger:     log,
	})
	return c, hook
}

func TestControllerAppliesLoadedSettings(t *testing.T) {
	loader := newGatedSettings()
	user := testUser()
	loader.values[user.UserID] = &sale.Settings{DefaultWarehouse: "WH2", SalesRepCode: "SP4"}

	c, _ := newTestController(loader, nil)
	if _, ok := c.Fire(Event{Intent: IntentLogin, User: user}); !ok {
		t.Fatalf("login not applied")
	}
	c.Wait()

	s := c.State()
	if !s.SettingsLoaded || s.Settings.DefaultWarehouse != "WH2" || s.Settings.SalesRepCode != "SP4" {
		t.Fatalf("settings not applied: %+v", s.Settings)
	}
	if s.Settings.DefaultTillNumber != testDefaults.DefaultTillNumber {
		t.Fatalf("missing fields should fall back to defaults: %+v", s.Settings)
	}

	s, _ = c.Fire(Event{Intent: IntentStartCashSale})
	if s.Draft.Header.WarehouseCode != "WH2" || s.Draft.Header.SalesRepCode != "SP4" {
		t.Fatalf("draft ignored loaded settings: %+v", s.Draft.Header)
	}
}

func TestControllerSettingsFailureKeepsDefaults(t *testing.T) {
	loader := newGatedSettings()
	user := testUser()
	loader.errs[user.UserID] = errors.New("settings service down")

	c, hook := newTestController(loader, nil)
	c.Fire(Event{Intent: IntentLogin, User: user})
	c.Wait()

	s := c.State()
	if s.Screen != ScreenMenu || s.User == nil {
		t.Fatalf("login should not be blocked by a settings failure: %+v", s)
	}
	if s.SettingsLoaded || s.Settings != testDefaults {
		t.Fatalf("defaults not kept: %+v", s.Settings)
	}
	if entry := hook.LastEntry(); entry == nil || entry.Level != logrus.ErrorLevel {
		t.Fatalf("settings failure was not logged as an error")
	}
}

func TestControllerDiscardsSettingsAfterLogout(t *testing.T) {
	loader := newGatedSettings()
	user := testUser()
	gate := make(chan struct{})
	loader.gates[user.UserID] = gate
	loader.values[user.UserID] = &sale.Settings{DefaultWarehouse: "LATE"}

	c, _ := newTestController(loader, nil)
	c.Fire(Event{Intent: IntentLogin, User: user})
	c.Fire(Event{Intent: IntentLogout})
	close(gate)
	c.Wait()

	s := c.State()
	if s.User != nil || s.Settings != testDefaults || s.SettingsLoaded {
		t.Fatalf("late settings leaked into a logged-out terminal: %+v", s)
	}
}

func TestControllerDiscardsSettingsOfPreviousUser(t *testing.T) {
	loader := newGatedSettings()
	first, second := testUser(), testUser()
	gate := make(chan struct{})
	loader.gates[first.UserID] = gate
	loader.values[first.UserID] = &sale.Settings{DefaultWarehouse: "FIRST"}
	loader.values[second.UserID] = &sale.Settings{DefaultWarehouse: "SECOND"}

	c, _ := newTestController(loader, nil)
	c.Fire(Event{Intent: IntentLogin, User: first})
	c.Fire(Event{Intent: IntentLogin, User: second})
	close(gate)
	c.Wait()

	s := c.State()
	if s.User.UserID != second.UserID || s.Settings.DefaultWarehouse != "SECOND" {
		t.Fatalf("got user %s with warehouse %q", s.User.Username, s.Settings.DefaultWarehouse)
	}
}

func TestControllerKeepsLatestCustomerDocuments(t *testing.T) {
	docs := &gatedDocuments{gates: map[uuid.UUID]chan struct{}{}}
	a, b := testCustomer("A"), testCustomer("B")
	gateA, gateB := make(chan struct{}), make(chan struct{})
	docs.gates[a.ID], docs.gates[b.ID] = gateA, gateB

	c, _ := newTestController(newGatedSettings(), docs)
	c.Fire(Event{Intent: IntentLogin, User: testUser()})
	c.Fire(Event{Intent: IntentStartSalesOrders})
	c.Fire(Event{Intent: IntentSelectCustomer, Customer: a})
	c.Fire(Event{Intent: IntentSelectCustomer, Customer: b})

	// B finishes first, then the older request for A
	close(gateB)
	close(gateA)
	c.Wait()

	s := c.State()
	if s.Dashboard.Customer.ID != b.ID || !s.Dashboard.DocumentsLoaded {
		t.Fatalf("unexpected dashboard: %+v", s.Dashboard)
	}
	if len(s.Dashboard.Documents) != 1 || s.Dashboard.Documents[0].ID != b.ID {
		t.Fatalf("dashboard shows documents of another customer: %+v", s.Dashboard.Documents)
	}
}

func TestControllerEditDraft(t *testing.T) {
	c, _ := newTestController(newGatedSettings(), nil)
	c.Fire(Event{Intent: IntentLogin, User: testUser()})

	if _, err := c.EditDraft(func(*sale.Draft) error { return nil }); !errors.Is(err, ErrNoDraft) {
		t.Fatalf("err = %v, want ErrNoDraft", err)
	}

	c.Fire(Event{Intent: IntentStartCashSale})
	line := sale.Line{ProductID: "P1", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(3)}
	s, err := c.EditDraft(func(d *sale.Draft) error { return d.AddLine(line) })
	if err != nil || len(s.Draft.Lines) != 1 {
		t.Fatalf("AddLine via EditDraft: %v %+v", err, s.Draft)
	}

	boom := errors.New("boom")
	_, err = c.EditDraft(func(d *sale.Draft) error {
		d.Lines = nil
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if got := c.State(); len(got.Draft.Lines) != 1 {
		t.Fatalf("failed edit changed the draft: %+v", got.Draft)
	}
}

func TestControllerStateIsACopy(t *testing.T) {
	c, _ := newTestController(newGatedSettings(), nil)
	c.Fire(Event{Intent: IntentLogin, User: testUser()})
	s, _ := c.Fire(Event{Intent: IntentStartTouchSale})

	s.Draft.Lines[0].Description = "tampered"
	if c.State().Draft.Lines[0].Description == "tampered" {
		t.Fatalf("caller could mutate the controller's draft")
	}
}

func TestGenerations(t *testing.T) {
	g := NewGenerations()
	first := g.Next("r")
	if !g.IsCurrent(first) {
		t.Fatalf("fresh token should be current")
	}
	second := g.Next("r")
	if g.IsCurrent(first) || !g.IsCurrent(second) {
		t.Fatalf("newer token should supersede older")
	}
	other := g.Next("other")
	g.Invalidate("r")
	if g.IsCurrent(second) || !g.IsCurrent(other) {
		t.Fatalf("invalidate should only affect its resource")
	}
	if g.IsCurrent(Token{}) {
		t.Fatalf("zero token should never be current")
	}
}
