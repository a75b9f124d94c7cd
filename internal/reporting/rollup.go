package reporting

import (
	"slices"

	"github.com/sangkips/till-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// WalkInID groups records that carry no customer id
const WalkInID = "walk-in"

// ItemRanking selects the measure the item rollup is ordered by
type ItemRanking string

const (
	RankByValue    ItemRanking = "value"
	RankByQuantity ItemRanking = "quantity"
)

// ItemRollup is the sum of one product code across records
type ItemRollup struct {
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Value       decimal.Decimal `json:"value"`
}

// CustomerRollup is the spend of one customer across records
type CustomerRollup struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	AccountNumber string          `json:"account_number,omitempty"`
	Count         int             `json:"count"`
	Total         decimal.Decimal `json:"total"`
}

// StaffRollup is the activity of one staff member in one role
type StaffRollup struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Role        enum.StaffRole  `json:"role"`
	Count       int             `json:"count"`
	Total       decimal.Decimal `json:"total"`
	Average     decimal.Decimal `json:"average"`
	ItemsPicked decimal.Decimal `json:"items_picked"`
}

// RollupItems groups record lines by product code. A record without lines
// counts as one line keyed by its document number. The result is ranked
// descending by the chosen measure; equal entries keep first-seen order.
func RollupItems(records []Record, ranking ItemRanking) []ItemRollup {
	index := make(map[string]int)
	out := make([]ItemRollup, 0)

	add := func(code, desc string, qty, value decimal.Decimal) {
		i, ok := index[code]
		if !ok {
			index[code] = len(out)
			out = append(out, ItemRollup{Code: code, Description: desc, Quantity: qty, Value: value})
			return
		}
		out[i].Quantity = out[i].Quantity.Add(qty)
		out[i].Value = out[i].Value.Add(value)
		if out[i].Description == "" {
			out[i].Description = desc
		}
	}

	for _, r := range records {
		if len(r.Lines) == 0 {
			add(r.DocumentNo, r.CustomerName, r.ItemCount, r.Total)
			continue
		}
		for _, l := range r.Lines {
			add(l.ProductCode, l.Description, l.Quantity, l.Value)
		}
	}

	if ranking == RankByQuantity {
		rankDesc(out, func(i ItemRollup) decimal.Decimal { return i.Quantity })
	} else {
		rankDesc(out, func(i ItemRollup) decimal.Decimal { return i.Value })
	}
	return out
}

// RollupCustomers groups records by customer id, ranked by total spent
func RollupCustomers(records []Record) []CustomerRollup {
	index := make(map[string]int)
	out := make([]CustomerRollup, 0)

	for _, r := range records {
		id, name := r.CustomerID, r.CustomerName
		if id == "" {
			id = WalkInID
			if name == "" {
				name = "Walk-in"
			}
		}
		i, ok := index[id]
		if !ok {
			index[id] = len(out)
			out = append(out, CustomerRollup{ID: id, Name: name, AccountNumber: r.CustomerAccount, Count: 1, Total: r.Total})
			continue
		}
		out[i].Count++
		out[i].Total = out[i].Total.Add(r.Total)
	}

	rankDesc(out, func(c CustomerRollup) decimal.Decimal { return c.Total })
	return out
}

// RollupStaff groups records by the staff member holding role. Records
// without a staff id for that role are not attributed to anyone. Sales
// people rank by total, pickers by items picked.
func RollupStaff(records []Record, role enum.StaffRole) []StaffRollup {
	index := make(map[string]int)
	out := make([]StaffRollup, 0)

	for _, r := range records {
		id, name := r.SalesPersonID, r.SalesPersonName
		if role == enum.StaffRolePicker {
			id, name = r.PickerID, r.PickerName
		}
		if id == "" {
			continue
		}
		i, ok := index[id]
		if !ok {
			i = len(out)
			index[id] = i
			out = append(out, StaffRollup{ID: id, Name: name, Role: role})
		}
		out[i].Count++
		out[i].Total = out[i].Total.Add(r.Total)
		if role == enum.StaffRolePicker {
			out[i].ItemsPicked = out[i].ItemsPicked.Add(r.ItemCount)
		}
	}

	for i := range out {
		out[i].Average = average(out[i].Total, out[i].Count)
	}

	if role == enum.StaffRolePicker {
		rankDesc(out, func(s StaffRollup) decimal.Decimal { return s.ItemsPicked })
	} else {
		rankDesc(out, func(s StaffRollup) decimal.Decimal { return s.Total })
	}
	return out
}

// TopN returns the first n entries of an already ranked slice. n <= 0 keeps all.
func TopN[T any](ranked []T, n int) []T {
	if n <= 0 || n >= len(ranked) {
		return ranked
	}
	return ranked[:n]
}

func rankDesc[T any](s []T, key func(T) decimal.Decimal) {
	slices.SortStableFunc(s, func(a, b T) int {
		return key(b).Cmp(key(a))
	})
}

func average(total decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return total.DivRound(decimal.NewFromInt(int64(count)), 2)
}
