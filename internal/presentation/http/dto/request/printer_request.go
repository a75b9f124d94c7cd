package request

// PrintReceiptRequest is the request body for printing a receipt.
type PrintReceiptRequest struct {
	TransactionID string `json:"transaction_id" binding:"required,uuid"`
}

// PrintXReportRequest selects the period printed on an X-report
type PrintXReportRequest struct {
	From       string `json:"from"`
	To         string `json:"to"`
	TillNumber string `json:"till_number"`
}
