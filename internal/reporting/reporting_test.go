package reporting

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/sangkips/till-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func randomRecords(r *rand.Rand, n int) []Record {
	customers := []string{"A", "B", "C", ""}
	staff := []string{"S1", "S2", ""}
	out := make([]Record, n)
	for i := range out {
		out[i] = Record{
			ID:            string(rune('a' + i%26)),
			DocumentNo:    "INV-" + string(rune('A'+i%26)),
			CustomerID:    customers[r.Intn(len(customers))],
			SalesPersonID: staff[r.Intn(len(staff))],
			PickerID:      staff[r.Intn(len(staff))],
			Total:         decimal.New(int64(r.Intn(20000)-2000), -2),
			ItemCount:     decimal.NewFromInt(int64(r.Intn(12))),
		}
	}
	return out
}

func TestCustomerRollupConservesCountAndTotal(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for round := 0; round < 50; round++ {
		records := randomRecords(r, r.Intn(40))

		var count int
		total := decimal.Zero
		for _, c := range RollupCustomers(records) {
			count += c.Count
			total = total.Add(c.Total)
		}
		if count != len(records) {
			t.Fatalf("round %d: counts sum to %d, want %d", round, count, len(records))
		}
		if want := ComputeKPIs(records).TotalSales; !total.Equal(want) {
			t.Fatalf("round %d: totals sum to %s, want %s", round, total, want)
		}
	}
}

func TestCustomerRollupExample(t *testing.T) {
	records := []Record{
		{CustomerID: "A", CustomerName: "A", Total: d("100")},
		{CustomerID: "B", CustomerName: "B", Total: d("50")},
		{CustomerID: "A", CustomerName: "A", Total: d("30")},
	}
	got := RollupCustomers(records)
	if len(got) != 2 {
		t.Fatalf("got %d rollups, want 2", len(got))
	}
	if got[0].ID != "A" || got[0].Count != 2 || !got[0].Total.Equal(d("130")) {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].ID != "B" || got[1].Count != 1 || !got[1].Total.Equal(d("50")) {
		t.Errorf("second = %+v", got[1])
	}
}

func TestWalkInCustomersShareOneGroup(t *testing.T) {
	got := RollupCustomers([]Record{{Total: d("5")}, {Total: d("7")}})
	if len(got) != 1 || got[0].ID != WalkInID || got[0].Name != "Walk-in" || got[0].Count != 2 {
		t.Fatalf("got %+v", got)
	}
}

func TestRankingIsStableAndDescending(t *testing.T) {
	records := []Record{
		{CustomerID: "first", Total: d("10")},
		{CustomerID: "big", Total: d("99")},
		{CustomerID: "second", Total: d("10")},
		{CustomerID: "third", Total: d("10")},
	}
	got := RollupCustomers(records)
	want := []string{"big", "first", "second", "third"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d = %s, want %s", i, got[i].ID, id)
		}
	}

	r := rand.New(rand.NewSource(11))
	for round := 0; round < 30; round++ {
		items := RollupItems(randomRecords(r, 30), RankByValue)
		for i := 0; i+1 < len(items); i++ {
			if items[i].Value.LessThan(items[i+1].Value) {
				t.Fatalf("round %d: not descending at %d", round, i)
			}
		}
	}
}

func TestTopNKeepsRankedPrefix(t *testing.T) {
	ranked := RollupCustomers(randomRecords(rand.New(rand.NewSource(3)), 40))
	for _, n := range []int{0, 1, 2, len(ranked), len(ranked) + 5} {
		got := TopN(ranked, n)
		want := n
		if n <= 0 || n > len(ranked) {
			want = len(ranked)
		}
		if len(got) != want {
			t.Fatalf("TopN(%d) length %d, want %d", n, len(got), want)
		}
		for i := range got {
			if got[i].ID != ranked[i].ID {
				t.Fatalf("TopN(%d) reordered position %d", n, i)
			}
		}
	}
}

func TestItemRollup(t *testing.T) {
	records := []Record{
		{DocumentNo: "INV-1", Lines: []Line{
			{ProductCode: "MILK", Description: "Milk", Quantity: d("2"), Value: d("4")},
			{ProductCode: "BREAD", Description: "Bread", Quantity: d("1"), Value: d("9")},
		}},
		{DocumentNo: "INV-2", Lines: []Line{
			{ProductCode: "MILK", Description: "Milk", Quantity: d("5"), Value: d("4")},
		}},
		{DocumentNo: "INV-3", ItemCount: d("3"), Total: d("1")},
	}

	byValue := RollupItems(records, RankByValue)
	if len(byValue) != 3 {
		t.Fatalf("got %d items, want 3", len(byValue))
	}
	if byValue[0].Code != "BREAD" || byValue[1].Code != "MILK" || byValue[2].Code != "INV-3" {
		t.Fatalf("value order = %s %s %s", byValue[0].Code, byValue[1].Code, byValue[2].Code)
	}
	if !byValue[1].Quantity.Equal(d("7")) || !byValue[1].Value.Equal(d("8")) {
		t.Errorf("milk = %+v", byValue[1])
	}

	byQty := RollupItems(records, RankByQuantity)
	if byQty[0].Code != "MILK" || byQty[1].Code != "INV-3" || byQty[2].Code != "BREAD" {
		t.Fatalf("quantity order = %s %s %s", byQty[0].Code, byQty[1].Code, byQty[2].Code)
	}
}

func TestStaffRollup(t *testing.T) {
	records := []Record{
		{SalesPersonID: "S1", SalesPersonName: "Ann", PickerID: "P1", PickerName: "Pat", Total: d("10"), ItemCount: d("1")},
		{SalesPersonID: "S2", SalesPersonName: "Ben", PickerID: "P2", PickerName: "Sam", Total: d("40"), ItemCount: d("2")},
		{SalesPersonID: "S1", SalesPersonName: "Ann", PickerID: "P1", PickerName: "Pat", Total: d("20"), ItemCount: d("6")},
		{Total: d("1000"), ItemCount: d("100")},
	}

	sales := RollupStaff(records, enum.StaffRoleSalesPerson)
	if len(sales) != 2 {
		t.Fatalf("unattributed records must be skipped, got %d entries", len(sales))
	}
	if sales[0].ID != "S2" || sales[1].ID != "S1" {
		t.Fatalf("sales order = %s, %s", sales[0].ID, sales[1].ID)
	}
	if sales[1].Count != 2 || !sales[1].Average.Equal(d("15")) || !sales[1].ItemsPicked.IsZero() {
		t.Errorf("S1 = %+v", sales[1])
	}

	pickers := RollupStaff(records, enum.StaffRolePicker)
	if pickers[0].ID != "P1" || !pickers[0].ItemsPicked.Equal(d("7")) || pickers[0].Role != enum.StaffRolePicker {
		t.Fatalf("pickers = %+v", pickers)
	}
}

func TestKPIs(t *testing.T) {
	empty := ComputeKPIs(nil)
	if !empty.AverageBasket.IsZero() || !empty.AverageItems.IsZero() || empty.TransactionCount != 0 {
		t.Fatalf("empty KPIs = %+v", empty)
	}

	k := ComputeKPIs([]Record{
		{Total: d("10"), ItemCount: d("1")},
		{Total: d("20"), ItemCount: d("2")},
		{Total: d("5"), ItemCount: d("1")},
	})
	if !k.TotalSales.Equal(d("35")) || k.TransactionCount != 3 {
		t.Fatalf("KPIs = %+v", k)
	}
	if !k.AverageBasket.Equal(d("11.67")) || !k.AverageItems.Equal(d("1.33")) {
		t.Errorf("averages = %s, %s", k.AverageBasket, k.AverageItems)
	}
}

func TestFractions(t *testing.T) {
	tests := []struct {
		name   string
		values []decimal.Decimal
		want   []float64
	}{
		{"empty", nil, []float64{}},
		{"all zero", []decimal.Decimal{d("0"), d("0")}, []float64{0, 0}},
		{"max is one", []decimal.Decimal{d("50"), d("100"), d("25")}, []float64{0.5, 1, 0.25}},
		{"below floor", []decimal.Decimal{d("0.5"), d("0.25")}, []float64{0.5, 0.25}},
		{"negative clamps", []decimal.Decimal{d("-10"), d("10")}, []float64{0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fractions(tt.values)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("fraction[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}

	r := rand.New(rand.NewSource(5))
	for round := 0; round < 50; round++ {
		values := make([]decimal.Decimal, 1+r.Intn(20))
		maxAt := 0
		for i := range values {
			values[i] = decimal.NewFromInt(int64(r.Intn(500)))
			if values[i].GreaterThan(values[maxAt]) {
				maxAt = i
			}
		}
		got := Fractions(values)
		for _, f := range got {
			if f < 0 || f > 1 {
				t.Fatalf("fraction %v out of range", f)
			}
		}
		if values[maxAt].GreaterThanOrEqual(one) && got[maxAt] != 1 {
			t.Fatalf("max element scaled to %v", got[maxAt])
		}
	}
}

func TestDecodeRecordsAcceptsAnyCasing(t *testing.T) {
	payload := `{"data": [
		{"DocumentNo": "INV-1", "CUSTOMERID": "C1", "customername": " Alice ", "Total": "12.50", "ItemCount": 2},
		{"documentNo": "INV-2", "customerId": "C2", "Lines": [
			{"productcode": "MILK", "Quantity": 2, "VALUE": "3.00"},
			{"ProductCode": "BREAD", "quantity": 1, "value": 1.5}
		]}
	]}`
	records, err := DecodeRecords(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("DecodeRecords: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records", len(records))
	}
	first := records[0]
	if first.ID != "INV-1" || first.CustomerID != "C1" || first.CustomerName != "Alice" || !first.Total.Equal(d("12.5")) {
		t.Errorf("first = %+v", first)
	}
	second := records[1]
	if !second.Total.Equal(d("4.5")) || !second.ItemCount.Equal(d("3")) || second.Lines[0].ProductCode != "MILK" {
		t.Errorf("second = %+v", second)
	}

	bare, err := DecodeRecords(strings.NewReader(`[{"documentno": "X"}]`))
	if err != nil || len(bare) != 1 || bare[0].DocumentNo != "X" {
		t.Fatalf("bare array: %v %+v", err, bare)
	}

	if _, err := DecodeRecords(strings.NewReader(`{"data": 5}`)); err == nil {
		t.Fatalf("expected an error for a malformed payload")
	}
}

func TestBuildRespectsViewAndTopN(t *testing.T) {
	records := randomRecords(rand.New(rand.NewSource(9)), 60)

	rep := Build(records, Options{View: ViewCustomers, TopN: 2})
	if rep.Items != nil || rep.SalesPersons != nil || rep.Pickers != nil {
		t.Fatalf("customers view carried other rollups")
	}
	if len(rep.Customers) != 2 {
		t.Fatalf("top 2 gave %d customers", len(rep.Customers))
	}
	if rep.KPIs.TransactionCount != len(records) {
		t.Fatalf("KPIs must cover all records")
	}

	all := Build(records, Options{})
	if all.View != ViewAll || all.Items == nil || all.Customers == nil || all.SalesPersons == nil || all.Pickers == nil {
		t.Fatalf("all view incomplete: %+v", all)
	}
}

func TestParseView(t *testing.T) {
	if v, err := ParseView(""); err != nil || v != ViewAll {
		t.Fatalf("empty view: %v %v", v, err)
	}
	if _, err := ParseView("weekly"); err == nil {
		t.Fatalf("expected error for unknown view")
	}
	if r, err := ParseItemRanking("quantity"); err != nil || r != RankByQuantity {
		t.Fatalf("quantity ranking: %v %v", r, err)
	}
}

func TestWriteXLSX(t *testing.T) {
	rep := Build([]Record{
		{CustomerID: "A", CustomerName: "Alice", SalesPersonID: "S1", Total: d("10"), ItemCount: d("1")},
	}, Options{View: ViewCustomers})

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, rep); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != sheetSummary || sheets[1] != sheetCustomers {
		t.Fatalf("sheets = %v", sheets)
	}
	name, err := f.GetCellValue(sheetCustomers, "A2")
	if err != nil || name != "Alice" {
		t.Fatalf("A2 = %q, %v", name, err)
	}
}
