package sale

import (
	"fmt"
	"strings"
	"time"

	"github.com/sangkips/till-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

const (
	DeliveryCollect  = "collect"
	AddressNone      = "none"
	AddressBilling   = "billing"
	AddressDelivery  = "delivery"
	accountTermsDays = 30
)

// StarterLines are the quick-pick items every touch sale opens with
var StarterLines = []Line{
	{ProductID: "BREAD-700", Description: "White bread 700g", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(65)},
	{ProductID: "MILK-500", Description: "Fresh milk 500ml", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(60)},
	{ProductID: "SUGAR-1K", Description: "Sugar 1kg", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(180)},
	{ProductID: "BAG-LRG", Description: "Carrier bag", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10)},
}

// Factory builds fresh drafts from till settings
type Factory struct {
	defaultWarehouse string
	starter          []Line
	now              func() time.Time
}

// NewFactory creates a draft factory. defaultWarehouse is used when the
// user's settings do not name one.
func NewFactory(defaultWarehouse string) *Factory {
	return &Factory{
		defaultWarehouse: defaultWarehouse,
		starter:          StarterLines,
		now:              time.Now,
	}
}

// WithClock overrides the clock used for document dates
func (f *Factory) WithClock(now func() time.Time) *Factory {
	f.now = now
	return f
}

// WithStarterLines overrides the touch-sale starter set
func (f *Factory) WithStarterLines(lines []Line) *Factory {
	f.starter = lines
	return f
}

// New builds an empty draft of the given kind, optionally bound to a customer
func (f *Factory) New(kind enum.SaleKind, settings Settings, customer *Customer) *Draft {
	today := startOfDay(f.now())

	warehouse := settings.DefaultWarehouse
	if warehouse == "" {
		warehouse = f.defaultWarehouse
	}
	delivery := settings.DeliveryMethod
	if delivery == "" {
		delivery = DeliveryCollect
	}

	due := today
	if kind.IsAccount() || (customer != nil && customer.OnAccount) {
		due = today.AddDate(0, 0, accountTermsDays)
	}

	address := AddressNone
	var bound *Customer
	if customer != nil {
		c := *customer
		bound = &c
		address = AddressBilling
		if c.DeliveryAddress != "" && delivery != DeliveryCollect {
			address = AddressDelivery
		}
	}

	return &Draft{
		Kind:     kind,
		Customer: bound,
		Header: Header{
			DocumentDate:     today,
			DeliveryDate:     today,
			DueDate:          due,
			WarehouseCode:    warehouse,
			SalesRepCode:     settings.SalesRepCode,
			VATInclusive:     settings.VATInclusive,
			DeliveryMethod:   delivery,
			AddressSelection: address,
		},
		Lines: []Line{},
	}
}

// NewTouchSale builds a touch-sale draft holding a copy of the starter lines
func (f *Factory) NewTouchSale(settings Settings) *Draft {
	d := f.New(enum.SaleKindTouchSale, settings, nil)
	d.Lines = append(make([]Line, 0, len(f.starter)), f.starter...)
	return d
}

func startOfDay(t time.Time) time.Time {
	y, m, day := t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, t.Location())
}

// ParseStarterLines reads touch-sale items written as "CODE:Description:price"
func ParseStarterLines(items []string) ([]Line, error) {
	lines := make([]Line, 0, len(items))
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), ":", 3)
		if len(parts) != 3 || parts[0] == "" {
			return nil, fmt.Errorf("touch item %q: want CODE:Description:price", item)
		}
		price, err := decimal.NewFromString(parts[2])
		if err != nil || price.IsNegative() {
			return nil, fmt.Errorf("touch item %q: invalid price", item)
		}
		lines = append(lines, Line{
			ProductID:   parts[0],
			Description: parts[1],
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   price,
		})
	}
	return lines, nil
}
