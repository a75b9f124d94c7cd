package request

// TransactionFilterRequest represents transaction list filters
type TransactionFilterRequest struct {
	From       string `form:"from"`
	To         string `form:"to"`
	Kind       string `form:"kind"`
	CustomerID string `form:"customer_id"`
	TillNumber string `form:"till_number"`
	WithLines  bool   `form:"with_lines"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}

// StatsRequest selects the period and view of a statistics report
type StatsRequest struct {
	From        string `form:"from"`
	To          string `form:"to"`
	View        string `form:"view"`
	ItemRanking string `form:"rank_by"`
	TopN        int    `form:"top" binding:"omitempty,min=1,max=500"`
	TillNumber  string `form:"till_number"`
}
