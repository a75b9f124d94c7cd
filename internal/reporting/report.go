package reporting

import (
	"fmt"
	"time"

	"github.com/sangkips/till-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// View selects which rollup a report carries
type View string

const (
	ViewAll          View = "all"
	ViewItems        View = "items"
	ViewCustomers    View = "customers"
	ViewSalesPersons View = "sales-persons"
	ViewPickers      View = "pickers"
)

// ParseView accepts the view names used in query strings. Empty means all.
func ParseView(s string) (View, error) {
	switch v := View(s); v {
	case "":
		return ViewAll, nil
	case ViewAll, ViewItems, ViewCustomers, ViewSalesPersons, ViewPickers:
		return v, nil
	}
	return "", fmt.Errorf("unknown view %q", s)
}

// ParseItemRanking accepts "value" or "quantity". Empty means value.
func ParseItemRanking(s string) (ItemRanking, error) {
	switch r := ItemRanking(s); r {
	case "":
		return RankByValue, nil
	case RankByValue, RankByQuantity:
		return r, nil
	}
	return "", fmt.Errorf("unknown item ranking %q", s)
}

// Options shape a report
type Options struct {
	View        View
	ItemRanking ItemRanking
	TopN        int
	From        time.Time
	To          time.Time
}

// Ranked pairs a rollup entry with its bar length relative to the leader
type Ranked[T any] struct {
	Entry    T       `json:"entry"`
	Fraction float64 `json:"fraction"`
}

// Report is one aggregation pass over a record set
type Report struct {
	From         time.Time                `json:"from"`
	To           time.Time                `json:"to"`
	View         View                     `json:"view"`
	Records      int                      `json:"records"`
	KPIs         KPIs                     `json:"kpis"`
	Items        []Ranked[ItemRollup]     `json:"items,omitempty"`
	Customers    []Ranked[CustomerRollup] `json:"customers,omitempty"`
	SalesPersons []Ranked[StaffRollup]    `json:"sales_persons,omitempty"`
	Pickers      []Ranked[StaffRollup]    `json:"pickers,omitempty"`
}

// Build runs every rollup the view asks for. KPIs always cover the whole
// record set; only the rollup lists are truncated to the top N.
func Build(records []Record, opts Options) *Report {
	if opts.View == "" {
		opts.View = ViewAll
	}
	if opts.ItemRanking == "" {
		opts.ItemRanking = RankByValue
	}

	rep := &Report{
		From: opts.From,
		To:   opts.To,
		View:    opts.View,
		Records: len(records),
		KPIs:    ComputeKPIs(records),
	}
	wants := func(v View) bool { return opts.View == ViewAll || opts.View == v }

	if wants(ViewItems) {
		items := TopN(RollupItems(records, opts.ItemRanking), opts.TopN)
		measure := func(i ItemRollup) decimal.Decimal { return i.Value }
		if opts.ItemRanking == RankByQuantity {
			measure = func(i ItemRollup) decimal.Decimal { return i.Quantity }
		}
		rep.Items = withFractions(items, measure)
	}
	if wants(ViewCustomers) {
		rep.Customers = withFractions(TopN(RollupCustomers(records), opts.TopN),
			func(c CustomerRollup) decimal.Decimal { return c.Total })
	}
	if wants(ViewSalesPersons) {
		rep.SalesPersons = withFractions(TopN(RollupStaff(records, enum.StaffRoleSalesPerson), opts.TopN),
			func(s StaffRollup) decimal.Decimal { return s.Total })
	}
	if wants(ViewPickers) {
		rep.Pickers = withFractions(TopN(RollupStaff(records, enum.StaffRolePicker), opts.TopN),
			func(s StaffRollup) decimal.Decimal { return s.ItemsPicked })
	}
	return rep
}

func withFractions[T any](entries []T, measure func(T) decimal.Decimal) []Ranked[T] {
	values := make([]decimal.Decimal, len(entries))
	for i, e := range entries {
		values[i] = measure(e)
	}
	fractions := Fractions(values)

	out := make([]Ranked[T], len(entries))
	for i, e := range entries {
		out[i] = Ranked[T]{Entry: e, Fraction: fractions[i]}
	}
	return out
}
