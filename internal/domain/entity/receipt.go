package entity

import "github.com/shopspring/decimal"

// ReceiptHeader holds the store header printed at the top of a slip
type ReceiptHeader struct {
	StoreName  string `json:"store_name"`
	TillNumber string `json:"till_number,omitempty"`
	Warehouse  string `json:"warehouse,omitempty"`
}

// ReceiptItem is a single printed line
type ReceiptItem struct {
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
}

// Receipt is composed from a committed transaction at print time; it is not stored.
type Receipt struct {
	Header     ReceiptHeader   `json:"header"`
	Title      string          `json:"title"`
	DocumentNo string          `json:"document_no"`
	Date       string          `json:"date"`
	Cashier    string          `json:"cashier,omitempty"`
	Customer   string          `json:"customer,omitempty"`
	Reference  string          `json:"reference,omitempty"`
	Items      []ReceiptItem   `json:"items"`
	ItemCount  decimal.Decimal `json:"item_count"`
	Total      decimal.Decimal `json:"total"`
}
