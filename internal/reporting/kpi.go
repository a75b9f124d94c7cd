package reporting

import "github.com/shopspring/decimal"

// KPIs are the headline figures of a record set
type KPIs struct {
	TotalSales       decimal.Decimal `json:"total_sales"`
	TransactionCount int             `json:"transaction_count"`
	AverageBasket    decimal.Decimal `json:"average_basket"`
	TotalItems       decimal.Decimal `json:"total_items"`
	AverageItems     decimal.Decimal `json:"average_items"`
}

// ComputeKPIs sums the records. Averages are zero for an empty set.
func ComputeKPIs(records []Record) KPIs {
	k := KPIs{TotalSales: decimal.Zero, TotalItems: decimal.Zero, TransactionCount: len(records)}
	for _, r := range records {
		k.TotalSales = k.TotalSales.Add(r.Total)
		k.TotalItems = k.TotalItems.Add(r.ItemCount)
	}
	k.AverageBasket = average(k.TotalSales, k.TransactionCount)
	k.AverageItems = average(k.TotalItems, k.TransactionCount)
	return k
}
