package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// DiscountType tells how a line discount amount is read
type DiscountType int

const (
	DiscountTypeNone DiscountType = iota
	DiscountTypeAmount
	DiscountTypePercent
)

func (d DiscountType) String() string {
	switch d {
	case DiscountTypeNone:
		return "none"
	case DiscountTypeAmount:
		return "amount"
	case DiscountTypePercent:
		return "percent"
	}
	return fmt.Sprintf("DiscountType(%d)", int(d))
}

func (d DiscountType) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *DiscountType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*d = DiscountType(i)
		return nil
	}
	switch str {
	case "", "none":
		*d = DiscountTypeNone
	case "amount":
		*d = DiscountTypeAmount
	case "percent", "percentage":
		*d = DiscountTypePercent
	default:
		return fmt.Errorf("unknown discount type %q", str)
	}
	return nil
}

func (d DiscountType) Value() (driver.Value, error) {
	return int64(d), nil
}

func (d *DiscountType) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = DiscountTypeNone
	case int64:
		*d = DiscountType(v)
	case int:
		*d = DiscountType(v)
	}
	return nil
}
