package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/till-api/internal/domain/entity"
	"github.com/sangkips/till-api/internal/domain/enum"
	"github.com/sangkips/till-api/internal/domain/repository"
	"github.com/sangkips/till-api/internal/navigation"
	"github.com/sangkips/till-api/internal/reporting"
	"github.com/sangkips/till-api/internal/sale"
	"github.com/sangkips/till-api/pkg/apperror"
	"github.com/sangkips/till-api/pkg/pagination"
	"github.com/sangkips/till-api/pkg/printer"
	"github.com/sangkips/till-api/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

var tillDefaults = sale.Settings{DefaultWarehouse: "MAIN", DefaultTillNumber: "01", DeliveryMethod: "collect"}

func quietLogger() logrus.FieldLogger {
	log, _ := test.NewNullLogger()
	return log
}

type fixture struct {
	terminals *TerminalService
	txnRepo   *memTransactions
	customers *memCustomers
	settings  *memSettings
	txns      *TransactionService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		txnRepo:   &memTransactions{},
		customers: &memCustomers{},
		settings:  newMemSettings(),
	}
	f.txns = NewTransactionService(f.txnRepo, quietLogger())
	f.terminals = NewTerminalService(context.Background(), TerminalDeps{
		Machine:   navigation.NewMachine(sale.NewFactory("MAIN"), tillDefaults),
		Settings:  NewSettingsService(f.settings, tillDefaults),
		Documents: f.txns,
		Customers: NewCustomerService(f.customers, "US"),
		Committer: f.txns,
		Logger:    quietLogger(),
	})
	return f
}

func cashier() *navigation.Identity {
	return &navigation.Identity{UserID: uuid.New(), Username: "jane", DisplayName: "Jane Doe", StaffCode: "SP1"}
}

func milk(qty int64) sale.Line {
	return sale.Line{ProductID: "MILK", Description: "Milk 500ml", Quantity: decimal.NewFromInt(qty), UnitPrice: decimal.NewFromInt(50)}
}

func fire(t *testing.T, f *fixture, user *navigation.Identity, intent navigation.Intent) navigation.State {
	t.Helper()
	out, err := f.terminals.Fire(context.Background(), &FireInput{TerminalID: "T1", UserID: user.UserID, Intent: intent})
	if err != nil {
		t.Fatalf("%s: %v", intent, err)
	}
	if !out.Applied {
		t.Fatalf("%s was not applied on %s", intent, out.State.Screen)
	}
	return out.State
}

func TestCompleteSaleStoresTransaction(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user := cashier()
	f.terminals.SignIn(ctx, "T1", user)
	f.terminals.Wait()

	fire(t, f, user, navigation.IntentStartCashSale)
	if _, err := f.terminals.AddLine(ctx, "T1", user.UserID, milk(2)); err != nil {
		t.Fatalf("AddLine: %v", err)
	}

	out, err := f.terminals.CompleteSale(ctx, "T1", user.UserID)
	if err != nil {
		t.Fatalf("CompleteSale: %v", err)
	}
	if out.Transaction == nil || out.Transaction.DocumentNo != "INV-01-000001" {
		t.Fatalf("transaction = %+v", out.Transaction)
	}
	if !out.Transaction.Total.Equal(decimal.NewFromInt(100)) || out.Transaction.SalesPersonCode != "SP1" {
		t.Errorf("stored %s by %q", out.Transaction.Total, out.Transaction.SalesPersonCode)
	}
	if out.State.Screen != navigation.ScreenMenu || out.State.Draft != nil {
		t.Fatalf("state after complete: %s draft=%v", out.State.Screen, out.State.Draft)
	}
	if len(f.txnRepo.txns) != 1 || len(f.txnRepo.txns[0].Lines) != 1 {
		t.Fatalf("repository holds %+v", f.txnRepo.txns)
	}
}

func TestCompleteSaleFailureKeepsDraft(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user := cashier()
	f.terminals.SignIn(ctx, "T1", user)

	fire(t, f, user, navigation.IntentStartCashSale)
	if _, err := f.terminals.AddLine(ctx, "T1", user.UserID, milk(1)); err != nil {
		t.Fatalf("AddLine: %v", err)
	}

	f.txnRepo.createErr = errors.New("database unavailable")
	if _, err := f.terminals.CompleteSale(ctx, "T1", user.UserID); err == nil {
		t.Fatalf("expected commit error")
	}
	st := f.terminals.State("T1")
	if st.Screen != navigation.ScreenSaleHeader || st.Draft == nil || len(st.Draft.Lines) != 1 {
		t.Fatalf("draft lost after failed commit: %+v", st)
	}
}

func TestCompleteEmptyDraftStoresNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user := cashier()
	f.terminals.SignIn(ctx, "T1", user)
	fire(t, f, user, navigation.IntentStartCashSale)

	out, err := f.terminals.Fire(ctx, &FireInput{TerminalID: "T1", UserID: user.UserID, Intent: navigation.IntentComplete})
	if err != nil || out.Transaction != nil || out.State.Screen != navigation.ScreenMenu {
		t.Fatalf("out = %+v, err = %v", out, err)
	}
	if len(f.txnRepo.txns) != 0 {
		t.Fatalf("empty draft was stored")
	}
}

func TestReturnsAreStoredNegative(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user := cashier()
	f.terminals.SignIn(ctx, "T1", user)

	fire(t, f, user, navigation.IntentStartCashReturn)
	if _, err := f.terminals.AddLine(ctx, "T1", user.UserID, milk(2)); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	out, err := f.terminals.CompleteSale(ctx, "T1", user.UserID)
	if err != nil {
		t.Fatalf("CompleteSale: %v", err)
	}
	txn := out.Transaction
	if !strings.HasPrefix(txn.DocumentNo, "CRN-01-") || !txn.Total.Equal(decimal.NewFromInt(-100)) || !txn.ItemCount.Equal(decimal.NewFromInt(-2)) {
		t.Fatalf("return stored as %s total %s items %s", txn.DocumentNo, txn.Total, txn.ItemCount)
	}
}

func TestTerminalOwnership(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner, other := cashier(), cashier()

	_, err := f.terminals.Fire(ctx, &FireInput{TerminalID: "T1", UserID: owner.UserID, Intent: navigation.IntentStartCashSale})
	if !errors.Is(err, ErrTerminalNotSignedIn) {
		t.Fatalf("err = %v, want ErrTerminalNotSignedIn", err)
	}

	f.terminals.SignIn(ctx, "T1", owner)
	_, err = f.terminals.Fire(ctx, &FireInput{TerminalID: "T1", UserID: other.UserID, Intent: navigation.IntentLogout})
	if !errors.Is(err, ErrTerminalInUse) {
		t.Fatalf("err = %v, want ErrTerminalInUse", err)
	}

	if _, err := f.terminals.Fire(ctx, &FireInput{TerminalID: "T1", UserID: owner.UserID, Intent: navigation.IntentLogin}); err == nil {
		t.Fatalf("login through Fire should be rejected")
	}

	// a second terminal is independent
	f.terminals.SignIn(ctx, "T2", other)
	if f.terminals.State("T1").User.UserID != owner.UserID {
		t.Fatalf("terminals share state")
	}
}

func TestEditWithoutDraft(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user := cashier()
	f.terminals.SignIn(ctx, "T1", user)

	_, err := f.terminals.AddLine(ctx, "T1", user.UserID, milk(1))
	if err != apperror.ErrNoDraft {
		t.Fatalf("err = %v, want ErrNoDraft", err)
	}

	fire(t, f, user, navigation.IntentStartCashSale)
	_, err = f.terminals.RemoveLine(ctx, "T1", user.UserID, 3)
	if appErr := apperror.GetAppError(err); appErr.Code != 404 {
		t.Fatalf("err = %v, want not found", err)
	}
	_, err = f.terminals.AddLine(ctx, "T1", user.UserID, sale.Line{ProductID: "X", Quantity: decimal.Zero})
	if appErr := apperror.GetAppError(err); appErr.Code != 422 {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestSelectCustomerLoadsDashboardDocuments(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user := cashier()
	customer := entity.Customer{ID: uuid.New(), AccountNumber: "ACC001", Name: "Kilimani Hardware"}
	f.customers.customers = append(f.customers.customers, customer)
	for i, kind := range []enum.SaleKind{enum.SaleKindOrder, enum.SaleKindQuotation, enum.SaleKindOrder} {
		f.txnRepo.txns = append(f.txnRepo.txns, entity.Transaction{
			ID: uuid.New(), DocumentNo: "DOC-" + string(rune('A'+i)), Kind: kind,
			CustomerID: &customer.ID, Total: decimal.NewFromInt(int64(10 * (i + 1))),
			OccurredAt: time.Date(2026, 3, 1+i, 9, 0, 0, 0, time.UTC),
		})
	}

	f.terminals.SignIn(ctx, "T1", user)
	fire(t, f, user, navigation.IntentStartSalesOrders)
	out, err := f.terminals.Fire(ctx, &FireInput{TerminalID: "T1", UserID: user.UserID, Intent: navigation.IntentSelectCustomer, CustomerID: &customer.ID})
	if err != nil || !out.Applied {
		t.Fatalf("select customer: %v %+v", err, out)
	}
	f.terminals.Wait()

	dash := f.terminals.State("T1").Dashboard
	if dash.Customer.Name != "Kilimani Hardware" || !dash.DocumentsLoaded {
		t.Fatalf("dashboard = %+v", dash)
	}
	if len(dash.Documents) != 2 || dash.Documents[0].DocumentNo != "DOC-C" {
		t.Fatalf("documents = %+v", dash.Documents)
	}

	missing := uuid.New()
	if _, err := f.terminals.Fire(ctx, &FireInput{TerminalID: "T1", UserID: user.UserID, Intent: navigation.IntentSelectCustomer, CustomerID: &missing}); err == nil {
		t.Fatalf("unknown customer should fail")
	}
}

func TestSignInAppliesStoredSettings(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user := cashier()
	f.settings.byUser[user.UserID] = &entity.UserSettings{UserID: user.UserID, DefaultWarehouse: "WH2", DefaultTillNumber: "07", SalesRepCode: "SP9"}

	f.terminals.SignIn(ctx, "T1", user)
	f.terminals.Wait()

	st := fire(t, f, user, navigation.IntentStartAccountSale)
	if st.Draft.Header.WarehouseCode != "WH2" || st.Draft.Header.SalesRepCode != "SP9" {
		t.Fatalf("header = %+v", st.Draft.Header)
	}
	if !st.Draft.Header.DueDate.After(st.Draft.Header.DocumentDate) {
		t.Fatalf("account sale should have a later due date")
	}
}

func TestSettingsService(t *testing.T) {
	ctx := context.Background()
	repo := newMemSettings()
	svc := NewSettingsService(repo, tillDefaults)
	id := uuid.New()

	got, err := svc.FetchUserSettings(ctx, id)
	if err != nil || got != nil {
		t.Fatalf("FetchUserSettings without a row = %+v, %v", got, err)
	}

	s, err := svc.GetSettings(ctx, id)
	if err != nil || s.DefaultWarehouse != "MAIN" || !s.VATInclusive {
		t.Fatalf("GetSettings = %+v, %v", s, err)
	}

	wh := "WH3"
	if _, err := svc.UpdateSettings(ctx, &UpdateSettingsInput{UserID: id, DefaultWarehouse: &wh}); err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	got, _ = svc.FetchUserSettings(ctx, id)
	if got.DefaultWarehouse != "WH3" || got.DefaultTillNumber != "01" {
		t.Fatalf("after update = %+v", got)
	}
}

func TestAuthLogin(t *testing.T) {
	ctx := context.Background()
	hash, err := utils.HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	users := newMemUsers(
		&entity.User{Username: "jane", FirstName: "Jane", LastName: "Doe", Password: hash, Active: true, StaffCode: "SP1",
			Roles: []entity.Role{{Name: entity.RoleCashier}}},
		&entity.User{Username: "gone", Password: hash, Active: false},
	)
	svc := NewAuthService(users, utils.NewJWTManager("k", time.Hour, time.Hour), nil)

	out, err := svc.Login(ctx, &LoginInput{Username: "jane", Password: "s3cret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	id := out.Identity()
	if id.DisplayName != "Jane Doe" || id.StaffCode != "SP1" || len(id.Roles) != 1 || out.AccessToken == "" {
		t.Fatalf("identity = %+v", id)
	}

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "jane", "nope"},
		{"unknown user", "bob", "s3cret"},
		{"inactive user", "gone", "s3cret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, &LoginInput{Username: tt.username, Password: tt.password})
			if err != apperror.ErrInvalidCredentials {
				t.Fatalf("err = %v", err)
			}
		})
	}

	refreshed, err := svc.RefreshToken(ctx, out.RefreshToken)
	if err != nil || refreshed.User.Username != "jane" {
		t.Fatalf("RefreshToken: %v", err)
	}

	if _, err := svc.GoogleAuthURL("x"); err == nil {
		t.Fatalf("google sign-in without a provider should fail")
	}
}

func TestCustomerSearchModes(t *testing.T) {
	ctx := context.Background()
	e164 := "+16502530000"
	repo := &memCustomers{customers: []entity.Customer{{ID: uuid.New(), AccountNumber: "A1", Name: "Acme Stores", PhoneE164: &e164}}}
	svc := NewCustomerService(repo, "US")

	res, err := svc.SearchCustomers(ctx, "(650) 253-0000", SearchByPhone, pagination.DefaultPagination())
	if err != nil || len(res.Items) != 1 || repo.lastQuery.PhoneE164 != e164 {
		t.Fatalf("phone search: %v %+v %+v", err, res, repo.lastQuery)
	}

	if _, err := svc.SearchCustomers(ctx, "12", SearchByPhone, pagination.DefaultPagination()); err == nil {
		t.Fatalf("invalid phone should be rejected")
	}
	if _, err := svc.SearchCustomers(ctx, "  ", SearchAny, pagination.DefaultPagination()); err == nil {
		t.Fatalf("empty term should be rejected")
	}

	if _, err := ParseSearchMode("fuzzy"); err == nil {
		t.Fatalf("unknown mode should be rejected")
	}
	if m, _ := ParseSearchMode(""); m != SearchAny {
		t.Fatalf("default mode = %s", m)
	}
}

func TestImportSkipsDuplicates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.txnRepo.txns = append(f.txnRepo.txns, entity.Transaction{ID: uuid.New(), DocumentNo: "INV-OLD"})

	records, err := reporting.DecodeRecords(strings.NewReader(`[
		{"DocumentNo": "INV-OLD", "Total": 5},
		{"DocumentNo": "INV-NEW", "CustomerName": "Walk-in", "Total": "12.00", "Timestamp": "2026-03-02T10:00:00Z"},
		{"documentno": "INV-NEW", "total": 12},
		{"DocumentNo": "INV-BAD", "Kind": "barter"}
	]`))
	if err != nil {
		t.Fatalf("DecodeRecords: %v", err)
	}

	res, err := f.txns.Import(ctx, records, uuid.New())
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.Imported != 1 || res.Skipped != 3 {
		t.Fatalf("result = %+v", res)
	}
	stored, _ := f.txnRepo.GetByDocumentNo(ctx, "INV-NEW")
	if stored == nil || stored.Kind != enum.SaleKindCashSale || !stored.Total.Equal(decimal.NewFromInt(12)) {
		t.Fatalf("stored = %+v", stored)
	}
}

func TestFetchAllWalksPages(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < pagination.MaxPerPage+20; i++ {
		f.txnRepo.txns = append(f.txnRepo.txns, entity.Transaction{ID: uuid.New(), OccurredAt: base.Add(time.Duration(i) * time.Minute)})
	}

	all, err := f.txns.FetchAll(ctx, repository.TransactionFilter{}, 0)
	if err != nil || len(all) != pagination.MaxPerPage+20 {
		t.Fatalf("FetchAll = %d, %v", len(all), err)
	}
	capped, err := f.txns.FetchAll(ctx, repository.TransactionFilter{}, 10)
	if !errors.Is(err, ErrTooManyTransactions) || capped != nil {
		t.Fatalf("over limit: got %d transactions, err = %v", len(capped), err)
	}
	exact, err := f.txns.FetchAll(ctx, repository.TransactionFilter{}, pagination.MaxPerPage+20)
	if err != nil || len(exact) != pagination.MaxPerPage+20 {
		t.Fatalf("at limit = %d, %v", len(exact), err)
	}
}

func TestImportedCustomersKeepTheirGroups(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	records, err := reporting.DecodeRecords(strings.NewReader(`[
		{"DocumentNo": "INV-1", "CustomerId": "A", "CustomerName": "Alice", "Total": 100, "Timestamp": "2026-03-02T10:00:00Z"},
		{"DocumentNo": "INV-2", "CustomerId": "B", "CustomerName": "Bob", "Total": 50, "Timestamp": "2026-03-02T11:00:00Z"},
		{"DocumentNo": "INV-3", "CustomerId": "A", "CustomerName": "Alice", "Total": 30, "Timestamp": "2026-03-02T12:00:00Z"}
	]`))
	if err != nil {
		t.Fatalf("DecodeRecords: %v", err)
	}
	if res, err := f.txns.Import(ctx, records, uuid.New()); err != nil || res.Imported != 3 {
		t.Fatalf("Import = %+v, %v", res, err)
	}
	stored, _ := f.txnRepo.GetByDocumentNo(ctx, "INV-1")
	if stored == nil || stored.CustomerID != nil || stored.CustomerCode != "A" {
		t.Fatalf("stored = %+v", stored)
	}

	svc := NewStatsService(f.txns, 10, 1000)
	rep, err := svc.Build(ctx, &StatsInput{
		From: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		View: reporting.ViewCustomers,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(rep.Customers) != 2 {
		t.Fatalf("customers = %+v", rep.Customers)
	}
	want := map[string]struct {
		name  string
		count int
		total int64
	}{
		"A": {"Alice", 2, 130},
		"B": {"Bob", 1, 50},
	}
	for _, r := range rep.Customers {
		w, ok := want[r.Entry.ID]
		if !ok {
			t.Fatalf("unexpected customer group %q", r.Entry.ID)
		}
		if r.Entry.Name != w.name || r.Entry.Count != w.count || !r.Entry.Total.Equal(decimal.NewFromInt(w.total)) {
			t.Errorf("customer %s = %+v", r.Entry.ID, r.Entry)
		}
	}
}

func TestStatsServiceRejectsOversizedPeriod(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	day := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		f.txnRepo.txns = append(f.txnRepo.txns, entity.Transaction{
			ID: uuid.New(), DocumentNo: uuid.NewString(), Kind: enum.SaleKindCashSale,
			Total: decimal.NewFromInt(10), OccurredAt: day.Add(time.Duration(9+i) * time.Hour),
		})
	}

	svc := NewStatsService(f.txns, 10, 3)
	svc.now = func() time.Time { return day.Add(18 * time.Hour) }

	_, err := svc.Build(ctx, &StatsInput{View: reporting.ViewCustomers})
	if err == nil {
		t.Fatalf("a period over the record cap should be rejected")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != 422 {
		t.Fatalf("code = %d, want 422", appErr.Code)
	}

	svc.maxRecords = 5
	rep, err := svc.Build(ctx, &StatsInput{View: reporting.ViewCustomers})
	if err != nil {
		t.Fatalf("Build at the cap: %v", err)
	}
	if rep.Records != 5 || rep.KPIs.TransactionCount != 5 {
		t.Fatalf("records = %d transactions = %d", rep.Records, rep.KPIs.TransactionCount)
	}
}

func TestStatsServiceBuild(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	day := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	add := func(kind enum.SaleKind, customer string, total int64, at time.Time) {
		f.txnRepo.txns = append(f.txnRepo.txns, entity.Transaction{
			ID: uuid.New(), DocumentNo: uuid.NewString(), Kind: kind, CustomerName: customer,
			Total: decimal.NewFromInt(total), ItemCount: decimal.NewFromInt(1), OccurredAt: at,
		})
	}
	add(enum.SaleKindCashSale, "A", 100, day.Add(9*time.Hour))
	add(enum.SaleKindCashReturn, "A", -30, day.Add(10*time.Hour))
	add(enum.SaleKindOrder, "B", 999, day.Add(11*time.Hour))
	add(enum.SaleKindCashSale, "C", 40, day.Add(-time.Hour))

	svc := NewStatsService(f.txns, 10, 1000)
	svc.now = func() time.Time { return day.Add(18 * time.Hour) }

	rep, err := svc.Build(ctx, &StatsInput{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if rep.KPIs.TransactionCount != 2 || !rep.KPIs.TotalSales.Equal(decimal.NewFromInt(70)) {
		t.Fatalf("kpis = %+v", rep.KPIs)
	}
	if !f.txnRepo.lastList.WithLines {
		t.Errorf("all view needs lines for the item rollup")
	}

	if _, err := svc.Build(ctx, &StatsInput{From: day, To: day}); err == nil {
		t.Fatalf("empty range should be rejected")
	}

	var buf bytes.Buffer
	if err := svc.Export(ctx, &buf, &StatsInput{View: reporting.ViewCustomers}); err != nil || buf.Len() == 0 {
		t.Fatalf("Export: %v (%d bytes)", err, buf.Len())
	}
}

func TestPrinterServicePrintsReceipt(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	rec := printer.NewRecorder()
	svc := NewPrinterService(rec, f.txns, PrinterOptions{Type: "none", StoreName: "Corner Shop", CharWidth: 32}, quietLogger())

	id := uuid.New()
	f.txnRepo.txns = append(f.txnRepo.txns, entity.Transaction{
		ID: id, DocumentNo: "CRN-01-000004", Kind: enum.SaleKindCashReturn, Total: decimal.NewFromInt(-100),
		ItemCount: decimal.NewFromInt(-2), OccurredAt: time.Now(),
		Lines: []entity.TransactionLine{{ProductCode: "MILK", Description: "Milk", Quantity: decimal.NewFromInt(-2), UnitPrice: decimal.NewFromInt(50), Value: decimal.NewFromInt(-100)}},
	})

	receipt, err := svc.PrintTransactionReceipt(ctx, id, "Jane")
	if err != nil {
		t.Fatalf("PrintTransactionReceipt: %v", err)
	}
	if receipt.Title != "CREDIT NOTE" || len(receipt.Items) != 1 || !receipt.Items[0].Discount.IsZero() {
		t.Fatalf("receipt = %+v", receipt)
	}
	jobs := rec.Jobs()
	if len(jobs) != 1 || !bytes.Contains(jobs[0], []byte("-100.00")) || !bytes.Contains(jobs[0], []byte("Corner Shop")) {
		t.Fatalf("printed %q", jobs)
	}
	if status := svc.GetStatus(ctx); status.Configured || status.Connected {
		t.Fatalf("status = %+v", status)
	}

	rep := reporting.Build([]reporting.Record{{SalesPersonID: "SP1", SalesPersonName: "Jane", Total: decimal.NewFromInt(10)}}, reporting.Options{})
	data, err := svc.PrintXReport(ctx, rep, "Jane")
	if err != nil || !bytes.Contains(data, []byte("X-REPORT")) || !bytes.Contains(data, []byte("Jane (1)")) {
		t.Fatalf("x-report %q, %v", data, err)
	}
}
