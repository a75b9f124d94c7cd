package navigation

import (
	"encoding/json"
	"fmt"
)

// Intent is a named user action sent to a terminal
type Intent int

const (
	IntentLogin Intent = iota
	IntentLogout
	IntentStartCashSale
	IntentStartAccountSale
	IntentStartCashReturn
	IntentStartAccountReturn
	IntentStartTouchSale
	IntentStartSalesOrders
	IntentStartQuotations
	IntentSelectCustomer
	IntentCreateNew
	IntentProceed
	IntentBack
	IntentComplete
	IntentCancel
	IntentOpenInventoryDashboard
	IntentOpenSalesStats
	IntentBackToMenu
)

var intentNames = [...]string{
	"login",
	"logout",
	"start-cash-sale",
	"start-account-sale",
	"start-cash-return",
	"start-account-return",
	"start-touch-sale",
	"start-sales-orders",
	"start-quotations",
	"select-customer",
	"create-new",
	"proceed",
	"back",
	"complete",
	"cancel",
	"open-inventory-dashboard",
	"open-sales-stats",
	"back-to-menu",
}

// Intents lists every intent in declaration order
func Intents() []Intent {
	out := make([]Intent, len(intentNames))
	for i := range intentNames {
		out[i] = Intent(i)
	}
	return out
}

func (i Intent) String() string {
	if i < 0 || int(i) >= len(intentNames) {
		return fmt.Sprintf("Intent(%d)", int(i))
	}
	return intentNames[i]
}

// ParseIntent maps an intent name to its value
func ParseIntent(s string) (Intent, error) {
	for i, name := range intentNames {
		if name == s {
			return Intent(i), nil
		}
	}
	return 0, fmt.Errorf("unknown intent %q", s)
}

func (i Intent) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

func (i *Intent) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseIntent(s)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}
