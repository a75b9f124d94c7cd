package navigation

import (
	"encoding/json"
	"fmt"
)

// Screen names the view a terminal is showing. Exactly one is active.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenMenu
	ScreenSaleHeader
	ScreenSaleItems
	ScreenTouchSale
	ScreenDashboard
	ScreenInventoryDashboard
	ScreenSalesStats
)

var screenNames = [...]string{
	"login", "menu", "sale-header", "sale-items", "touch-sale",
	"dashboard", "inventory-dashboard", "sales-stats",
}

// Screens lists every screen in declaration order
func Screens() []Screen {
	out := make([]Screen, len(screenNames))
	for i := range screenNames {
		out[i] = Screen(i)
	}
	return out
}

func (s Screen) String() string {
	if s < 0 || int(s) >= len(screenNames) {
		return fmt.Sprintf("Screen(%d)", int(s))
	}
	return screenNames[s]
}

// HasDraftEditor reports whether the screen edits the current draft
func (s Screen) HasDraftEditor() bool {
	return s == ScreenSaleHeader || s == ScreenSaleItems || s == ScreenTouchSale
}

func (s Screen) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}
