package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// SaleKind tags the kind of document a sale draft will become
type SaleKind int

const (
	SaleKindCashSale SaleKind = iota
	SaleKindAccountSale
	SaleKindCashReturn
	SaleKindAccountReturn
	SaleKindTouchSale
	SaleKindOrder
	SaleKindQuotation
)

var saleKindNames = [...]string{"sale", "account-sale", "cash-return", "account-return", "touch-sale", "order", "quotation"}

func (k SaleKind) String() string {
	if !k.IsValid() {
		return fmt.Sprintf("SaleKind(%d)", int(k))
	}
	return saleKindNames[k]
}

// IsValid reports whether k is one of the declared kinds
func (k SaleKind) IsValid() bool {
	return k >= SaleKindCashSale && int(k) < len(saleKindNames)
}

// IsReturn reports whether the kind reverses an earlier invoice
func (k SaleKind) IsReturn() bool {
	return k == SaleKindCashReturn || k == SaleKindAccountReturn
}

// IsAccount reports whether the kind is charged to a customer account
func (k SaleKind) IsAccount() bool {
	return k == SaleKindAccountSale || k == SaleKindAccountReturn
}

// ParseSaleKind maps a kind name to its value
func ParseSaleKind(s string) (SaleKind, error) {
	for i, name := range saleKindNames {
		if name == s {
			return SaleKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown sale kind %q", s)
}

func (k SaleKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *SaleKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*k = SaleKind(i)
		return nil
	}
	parsed, err := ParseSaleKind(str)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func (k SaleKind) Value() (driver.Value, error) {
	return int64(k), nil
}

func (k *SaleKind) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*k = SaleKindCashSale
	case int64:
		*k = SaleKind(v)
	case int:
		*k = SaleKind(v)
	}
	return nil
}
