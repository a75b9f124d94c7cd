package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/till-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// FireIntentRequest sends one navigation intent to the terminal
type FireIntentRequest struct {
	Intent     string     `json:"intent" binding:"required"`
	CustomerID *uuid.UUID `json:"customer_id"`
}

// UpdateHeaderRequest replaces the header of the open draft
type UpdateHeaderRequest struct {
	DocumentDate       time.Time `json:"document_date" binding:"required"`
	DeliveryDate       time.Time `json:"delivery_date"`
	DueDate            time.Time `json:"due_date"`
	Reference          string    `json:"reference"`
	WarehouseCode      string    `json:"warehouse_code" binding:"required"`
	SalesRepCode       string    `json:"sales_rep_code"`
	VATInclusive       bool      `json:"vat_inclusive"`
	DeliveryMethod     string    `json:"delivery_method" binding:"required"`
	AddressSelection   string    `json:"address_selection" binding:"required"`
	OriginalInvoiceRef *string   `json:"original_invoice_ref"`
}

// AddLineRequest appends a product line to the open draft
type AddLineRequest struct {
	ProductID      string            `json:"product_id" binding:"required"`
	Description    string            `json:"description"`
	Quantity       decimal.Decimal   `json:"quantity"`
	UnitPrice      decimal.Decimal   `json:"unit_price"`
	DiscountAmount decimal.Decimal   `json:"discount_amount"`
	DiscountType   enum.DiscountType `json:"discount_type"`
}
