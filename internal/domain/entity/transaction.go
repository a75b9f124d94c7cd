package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/till-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is a committed till document: an invoice, return, order or quotation.
// Imported documents whose customer is not one of ours keep the source's
// customer code in CustomerCode and leave CustomerID nil.
type Transaction struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	DocumentNo         string          `gorm:"size:50;uniqueIndex;not null" json:"document_no"`
	Kind               enum.SaleKind   `gorm:"type:smallint;not null;index" json:"kind"`
	CustomerID         *uuid.UUID      `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CustomerCode       string          `gorm:"size:100;index" json:"customer_code,omitempty"`
	CustomerName       string          `gorm:"size:255" json:"customer_name"`
	CustomerAccount    string          `gorm:"size:50" json:"customer_account,omitempty"`
	SalesPersonCode    string          `gorm:"size:50;index" json:"sales_person_code,omitempty"`
	SalesPersonName    string          `gorm:"size:255" json:"sales_person_name,omitempty"`
	PickerCode         string          `gorm:"size:50;index" json:"picker_code,omitempty"`
	PickerName         string          `gorm:"size:255" json:"picker_name,omitempty"`
	WarehouseCode      string          `gorm:"size:50" json:"warehouse_code"`
	TillNumber         string          `gorm:"size:20" json:"till_number"`
	Reference          string          `gorm:"size:100" json:"reference,omitempty"`
	OriginalInvoiceRef *string         `gorm:"size:50" json:"original_invoice_ref,omitempty"`
	Total              decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"total"`
	ItemCount          decimal.Decimal `gorm:"type:decimal(15,3);not null" json:"item_count"`
	OccurredAt         time.Time       `gorm:"not null;index" json:"occurred_at"`
	UserID             *uuid.UUID      `gorm:"type:uuid;index" json:"user_id,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	DeletedAt          gorm.DeletedAt  `gorm:"index" json:"-"`

	Lines []TransactionLine `gorm:"foreignKey:TransactionID" json:"lines,omitempty"`
}

// BeforeCreate generates a UUID before creating a new transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

// TransactionLine is one product line of a committed transaction
type TransactionLine struct {
	ID             uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	TransactionID  uuid.UUID         `gorm:"type:uuid;not null;index" json:"transaction_id"`
	LineNo         int               `gorm:"not null" json:"line_no"`
	ProductCode    string            `gorm:"size:100;not null;index" json:"product_code"`
	Description    string            `gorm:"size:255" json:"description"`
	Quantity       decimal.Decimal   `gorm:"type:decimal(15,3);not null" json:"quantity"`
	UnitPrice      decimal.Decimal   `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	DiscountAmount decimal.Decimal   `gorm:"type:decimal(15,2);default:0" json:"discount_amount"`
	DiscountType   enum.DiscountType `gorm:"type:smallint;default:0" json:"discount_type"`
	Value          decimal.Decimal   `gorm:"type:decimal(15,2);not null" json:"value"`
}

// BeforeCreate generates a UUID before creating a new line
func (l *TransactionLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TransactionLine model
func (TransactionLine) TableName() string {
	return "transaction_lines"
}
