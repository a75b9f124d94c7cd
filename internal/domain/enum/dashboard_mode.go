package enum

import (
	"encoding/json"
	"fmt"
)

// DashboardMode selects which documents the sales dashboard works with
type DashboardMode int

const (
	DashboardModeOrder DashboardMode = iota
	DashboardModeQuotation
)

func (m DashboardMode) String() string {
	switch m {
	case DashboardModeOrder:
		return "order"
	case DashboardModeQuotation:
		return "quotation"
	}
	return fmt.Sprintf("DashboardMode(%d)", int(m))
}

// SaleKind returns the kind of draft created from this dashboard
func (m DashboardMode) SaleKind() SaleKind {
	if m == DashboardModeQuotation {
		return SaleKindQuotation
	}
	return SaleKindOrder
}

// ParseDashboardMode maps a mode name to its value
func ParseDashboardMode(s string) (DashboardMode, error) {
	switch s {
	case "order", "orders":
		return DashboardModeOrder, nil
	case "quotation", "quotations":
		return DashboardModeQuotation, nil
	}
	return 0, fmt.Errorf("unknown dashboard mode %q", s)
}

func (m DashboardMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *DashboardMode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseDashboardMode(str)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
