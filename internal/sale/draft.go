package sale

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sangkips/till-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

var (
	ErrLineIndex        = errors.New("line index out of range")
	ErrDiscountTooLarge = errors.New("discount exceeds line value")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// decimal fields are checked through their float value so gt/gte/lte tags apply
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// Customer is the customer a draft is bound to
type Customer struct {
	ID              uuid.UUID `json:"id"`
	AccountNumber   string    `json:"account_number"`
	Name            string    `json:"name"`
	OnAccount       bool      `json:"on_account"`
	DeliveryAddress string    `json:"delivery_address,omitempty"`
}

// Header carries the document-level fields of a draft
type Header struct {
	DocumentDate       time.Time `json:"document_date" validate:"required"`
	DeliveryDate       time.Time `json:"delivery_date"`
	DueDate            time.Time `json:"due_date"`
	Reference          string    `json:"reference" validate:"max=100"`
	WarehouseCode      string    `json:"warehouse_code" validate:"required,max=50"`
	SalesRepCode       string    `json:"sales_rep_code" validate:"max=50"`
	VATInclusive       bool      `json:"vat_inclusive"`
	DeliveryMethod     string    `json:"delivery_method" validate:"oneof=collect deliver courier"`
	AddressSelection   string    `json:"address_selection" validate:"oneof=none billing delivery"`
	OriginalInvoiceRef *string   `json:"original_invoice_ref,omitempty" validate:"omitempty,max=50"`
}

// Line is one product line of a draft
type Line struct {
	ProductID      string            `json:"product_id" validate:"required,max=100"`
	Description    string            `json:"description" validate:"max=255"`
	Quantity       decimal.Decimal   `json:"quantity" validate:"gt=0"`
	UnitPrice      decimal.Decimal   `json:"unit_price" validate:"gte=0"`
	DiscountAmount decimal.Decimal   `json:"discount_amount" validate:"gte=0"`
	DiscountType   enum.DiscountType `json:"discount_type"`
}

// Gross is quantity times unit price
func (l Line) Gross() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// Discount is the money value taken off the gross amount
func (l Line) Discount() decimal.Decimal {
	switch l.DiscountType {
	case enum.DiscountTypeAmount:
		return l.DiscountAmount
	case enum.DiscountTypePercent:
		return l.Gross().Mul(l.DiscountAmount).Div(decimal.NewFromInt(100)).Round(2)
	}
	return decimal.Zero
}

// Net is the line value after discount
func (l Line) Net() decimal.Decimal {
	return l.Gross().Sub(l.Discount())
}

// Validate checks field constraints and that the discount does not exceed the line
func (l Line) Validate() error {
	if err := validate.Struct(l); err != nil {
		return err
	}
	if l.DiscountType == enum.DiscountTypePercent && l.DiscountAmount.GreaterThan(decimal.NewFromInt(100)) {
		return ErrDiscountTooLarge
	}
	if l.Discount().GreaterThan(l.Gross()) {
		return ErrDiscountTooLarge
	}
	return nil
}

// Validate checks the header field constraints
func (h Header) Validate() error {
	return validate.Struct(h)
}

// Draft is a sale, return, order or quotation being assembled at a till
type Draft struct {
	Kind     enum.SaleKind `json:"kind"`
	Customer *Customer     `json:"customer,omitempty"`
	Header   Header        `json:"header"`
	Lines    []Line        `json:"lines"`
}

// Clone returns a deep copy so callers never share the controller's draft
func (d *Draft) Clone() *Draft {
	if d == nil {
		return nil
	}
	out := *d
	if d.Customer != nil {
		c := *d.Customer
		out.Customer = &c
	}
	if d.Header.OriginalInvoiceRef != nil {
		ref := *d.Header.OriginalInvoiceRef
		out.Header.OriginalInvoiceRef = &ref
	}
	out.Lines = append(make([]Line, 0, len(d.Lines)), d.Lines...)
	return &out
}

// Total sums the net value of every line
func (d *Draft) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range d.Lines {
		total = total.Add(l.Net())
	}
	return total
}

// ItemCount sums line quantities
func (d *Draft) ItemCount() decimal.Decimal {
	count := decimal.Zero
	for _, l := range d.Lines {
		count = count.Add(l.Quantity)
	}
	return count
}

// IsEmpty reports whether the draft has no lines
func (d *Draft) IsEmpty() bool {
	return len(d.Lines) == 0
}

// SetHeader replaces the header after validating it
func (d *Draft) SetHeader(h Header) error {
	if err := h.Validate(); err != nil {
		return err
	}
	if !d.Kind.IsReturn() {
		h.OriginalInvoiceRef = nil
	}
	d.Header = h
	return nil
}

// AddLine appends a validated line
func (d *Draft) AddLine(l Line) error {
	if err := l.Validate(); err != nil {
		return err
	}
	d.Lines = append(d.Lines, l)
	return nil
}

// RemoveLine drops the line at index i, keeping the order of the rest
func (d *Draft) RemoveLine(i int) error {
	if i < 0 || i >= len(d.Lines) {
		return fmt.Errorf("%w: %d", ErrLineIndex, i)
	}
	d.Lines = append(d.Lines[:i], d.Lines[i+1:]...)
	return nil
}
