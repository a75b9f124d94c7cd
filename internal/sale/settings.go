package sale

// Settings are the till defaults a draft is built from
type Settings struct {
	DefaultWarehouse  string `json:"default_warehouse"`
	DefaultTillNumber string `json:"default_till_number"`
	SalesRepCode      string `json:"sales_rep_code"`
	DeliveryMethod    string `json:"delivery_method"`
	VATInclusive      bool   `json:"vat_inclusive"`
}

// WithFallback fills every empty field of s from def
func (s Settings) WithFallback(def Settings) Settings {
	if s.DefaultWarehouse == "" {
		s.DefaultWarehouse = def.DefaultWarehouse
	}
	if s.DefaultTillNumber == "" {
		s.DefaultTillNumber = def.DefaultTillNumber
	}
	if s.SalesRepCode == "" {
		s.SalesRepCode = def.SalesRepCode
	}
	if s.DeliveryMethod == "" {
		s.DeliveryMethod = def.DeliveryMethod
	}
	return s
}
