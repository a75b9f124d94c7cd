package reporting

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sangkips/till-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Record is the canonical transaction shape the rollups work on. Payloads
// from any source are normalized to it once, at the boundary.
type Record struct {
	ID              string          `json:"id"`
	DocumentNo      string          `json:"documentNo"`
	Kind            string          `json:"kind,omitempty"`
	CustomerID      string          `json:"customerId"`
	CustomerName    string          `json:"customerName"`
	CustomerAccount string          `json:"customerAccount"`
	SalesPersonID   string          `json:"salesPersonId"`
	SalesPersonName string          `json:"salesPersonName"`
	PickerID        string          `json:"pickerId"`
	PickerName      string          `json:"pickerName"`
	Total           decimal.Decimal `json:"total"`
	ItemCount       decimal.Decimal `json:"itemCount"`
	Timestamp       time.Time       `json:"timestamp"`
	Lines           []Line          `json:"lines,omitempty"`
}

// Line is the per-product detail of a record, when the source has it
type Line struct {
	ProductCode string          `json:"productCode"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Value       decimal.Decimal `json:"value"`
}

// DecodeRecords reads either a bare JSON array of records or an object
// wrapping them under "data". Field names match regardless of case, so
// "CustomerName" and "customername" both land in CustomerName.
func DecodeRecords(r io.Reader) ([]Record, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return []Record{}, nil
	}

	var records []Record
	if raw[0] == '{' {
		var wrapped struct {
			Data []Record `json:"data"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, fmt.Errorf("decode records: %w", err)
		}
		records = wrapped.Data
	} else if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}

	out := make([]Record, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.Normalize())
	}
	return out, nil
}

// Normalize trims identifiers and fills fields a source may leave out: the
// id falls back to the document number, and a zero total or item count is
// taken from the lines.
func (r Record) Normalize() Record {
	r.ID = strings.TrimSpace(r.ID)
	r.DocumentNo = strings.TrimSpace(r.DocumentNo)
	r.CustomerID = strings.TrimSpace(r.CustomerID)
	r.CustomerName = strings.TrimSpace(r.CustomerName)
	r.CustomerAccount = strings.TrimSpace(r.CustomerAccount)
	r.SalesPersonID = strings.TrimSpace(r.SalesPersonID)
	r.SalesPersonName = strings.TrimSpace(r.SalesPersonName)
	r.PickerID = strings.TrimSpace(r.PickerID)
	r.PickerName = strings.TrimSpace(r.PickerName)
	if r.ID == "" {
		r.ID = r.DocumentNo
	}

	if len(r.Lines) > 0 {
		lines := make([]Line, len(r.Lines))
		var total, qty decimal.Decimal
		for i, l := range r.Lines {
			l.ProductCode = strings.TrimSpace(l.ProductCode)
			l.Description = strings.TrimSpace(l.Description)
			lines[i] = l
			total = total.Add(l.Value)
			qty = qty.Add(l.Quantity)
		}
		r.Lines = lines
		if r.Total.IsZero() {
			r.Total = total
		}
		if r.ItemCount.IsZero() {
			r.ItemCount = qty
		}
	}
	return r
}

// FromTransaction converts a stored transaction to a record
func FromTransaction(t entity.Transaction) Record {
	rec := Record{
		ID:              t.ID.String(),
		DocumentNo:      t.DocumentNo,
		Kind:            t.Kind.String(),
		CustomerName:    t.CustomerName,
		CustomerAccount: t.CustomerAccount,
		SalesPersonID:   t.SalesPersonCode,
		SalesPersonName: t.SalesPersonName,
		PickerID:        t.PickerCode,
		PickerName:      t.PickerName,
		Total:           t.Total,
		ItemCount:       t.ItemCount,
		Timestamp:       t.OccurredAt,
	}
	switch {
	case t.CustomerID != nil:
		rec.CustomerID = t.CustomerID.String()
	case t.CustomerCode != "":
		rec.CustomerID = t.CustomerCode
	}
	for _, l := range t.Lines {
		rec.Lines = append(rec.Lines, Line{
			ProductCode: l.ProductCode,
			Description: l.Description,
			Quantity:    l.Quantity,
			Value:       l.Value,
		})
	}
	return rec
}

// FromTransactions converts a slice of stored transactions
func FromTransactions(ts []entity.Transaction) []Record {
	out := make([]Record, 0, len(ts))
	for _, t := range ts {
		out = append(out, FromTransaction(t))
	}
	return out
}
