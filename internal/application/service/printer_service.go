package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/till-api/internal/domain/entity"
	"github.com/sangkips/till-api/internal/domain/enum"
	"github.com/sangkips/till-api/internal/reporting"
	"github.com/sangkips/till-api/pkg/printer"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// PrinterService formats till slips and sends them to the receipt printer
type PrinterService struct {
	printer     printer.Printer
	txns        *TransactionService
	printerType string
	storeName   string
	width       int
	log         logrus.FieldLogger
}

// PrinterOptions configures the slips a PrinterService prints
type PrinterOptions struct {
	Type      string
	StoreName string
	CharWidth int
}

// NewPrinterService creates a new printer service
func NewPrinterService(p printer.Printer, txns *TransactionService, opts PrinterOptions, log logrus.FieldLogger) *PrinterService {
	return &PrinterService{
		printer:     p,
		txns:        txns,
		printerType: opts.Type,
		storeName:   opts.StoreName,
		width:       opts.CharWidth,
		log:         log,
	}
}

// PrinterStatus returns the current printer status information
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status
func (s *PrinterService) GetStatus(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(ctx),
		Type:       s.printerType,
	}
}

// PrintTransactionReceipt prints the slip of a stored transaction. The
// receipt is returned even when printing fails so the till can show it.
func (s *PrinterService) PrintTransactionReceipt(ctx context.Context, id uuid.UUID, cashier string) (*entity.Receipt, error) {
	txn, err := s.txns.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	receipt := ReceiptFor(txn, s.storeName, cashier)
	if err := s.printer.Print(ctx, FormatReceipt(receipt, s.width)); err != nil {
		s.log.WithError(err).WithField("document_no", txn.DocumentNo).Error("receipt print failed")
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}
	return receipt, nil
}

// PrintXReport prints the mid-day summary of a statistics report
func (s *PrinterService) PrintXReport(ctx context.Context, rep *reporting.Report, cashier string) ([]byte, error) {
	data := FormatXReport(rep, s.storeName, cashier, s.width)
	if err := s.printer.Print(ctx, data); err != nil {
		s.log.WithError(err).Error("x-report print failed")
		return data, fmt.Errorf("failed to print x-report: %w", err)
	}
	return data, nil
}

// ReceiptFor builds the printable receipt of a transaction
func ReceiptFor(txn *entity.Transaction, storeName, cashier string) *entity.Receipt {
	r := &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName:  storeName,
			TillNumber: txn.TillNumber,
			Warehouse:  txn.WarehouseCode,
		},
		Title:      receiptTitle(txn),
		DocumentNo: txn.DocumentNo,
		Date:       txn.OccurredAt.Format("2006-01-02 15:04"),
		Cashier:    cashier,
		Customer:   txn.CustomerName,
		Reference:  txn.Reference,
		Items:      make([]entity.ReceiptItem, 0, len(txn.Lines)),
		ItemCount:  txn.ItemCount,
		Total:      txn.Total,
	}
	for _, l := range txn.Lines {
		name := l.Description
		if name == "" {
			name = l.ProductCode
		}
		r.Items = append(r.Items, entity.ReceiptItem{
			Name:      name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Discount:  l.Quantity.Abs().Mul(l.UnitPrice).Sub(l.Value.Abs()),
			Total:     l.Value,
		})
	}
	return r
}

func receiptTitle(txn *entity.Transaction) string {
	switch {
	case txn.Kind.IsReturn():
		return "CREDIT NOTE"
	case txn.Kind == enum.SaleKindOrder:
		return "SALES ORDER"
	case txn.Kind == enum.SaleKindQuotation:
		return "QUOTATION"
	}
	return "TAX INVOICE"
}

// FormatReceipt converts a Receipt into ESC/POS bytes
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		Text(r.Title).
		SetBold(false)
	if r.Header.TillNumber != "" {
		doc.Text("Till " + r.Header.TillNumber)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-').
		KeyValue("Document:", r.DocumentNo).
		KeyValue("Date:", r.Date)
	if r.Cashier != "" {
		doc.KeyValue("Cashier:", r.Cashier)
	}
	if r.Customer != "" {
		doc.KeyValue("Customer:", r.Customer)
	}
	if r.Reference != "" {
		doc.KeyValue("Ref:", r.Reference)
	}
	doc.Separator('-')

	for _, item := range r.Items {
		doc.KeyValue(item.Quantity.String()+" x "+item.Name, money(item.Total))
		if item.Discount.IsPositive() {
			doc.KeyValue("  less discount", money(item.Discount.Neg()))
		}
	}

	doc.Separator('-').
		KeyValue("Items:", quantity(r.ItemCount)).
		SetBold(true).
		KeyValue("TOTAL:", money(r.Total)).
		SetBold(false).
		Separator('-')

	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Thank you for shopping with us").
		SetAlign(printer.AlignLeft).
		FeedLines(3).
		PartialCut()

	return doc.Bytes()
}

// FormatXReport prints the KPIs and the leading sales people of a report
func FormatXReport(rep *reporting.Report, storeName, cashier string, width int) []byte {
	doc := printer.NewDocument(width)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		Text(storeName).
		Text("X-REPORT").
		SetBold(false).
		SetAlign(printer.AlignLeft).
		Separator('=').
		KeyValue("From:", rep.From.Format("2006-01-02 15:04")).
		KeyValue("To:", rep.To.Format("2006-01-02 15:04")).
		KeyValue("Printed:", time.Now().Format("2006-01-02 15:04"))
	if cashier != "" {
		doc.KeyValue("By:", cashier)
	}

	k := rep.KPIs
	doc.Separator('-').
		KeyValue("Transactions:", fmt.Sprint(k.TransactionCount)).
		KeyValue("Items sold:", quantity(k.TotalItems)).
		KeyValue("Avg basket:", money(k.AverageBasket)).
		KeyValue("Avg items:", quantity(k.AverageItems)).
		SetBold(true).
		KeyValue("TOTAL SALES:", money(k.TotalSales)).
		SetBold(false)

	if len(rep.SalesPersons) > 0 {
		doc.Separator('-').Text("Sales people")
		for _, sp := range rep.SalesPersons {
			name := sp.Entry.Name
			if name == "" {
				name = sp.Entry.ID
			}
			doc.KeyValue(fmt.Sprintf("%s (%d)", name, sp.Entry.Count), money(sp.Entry.Total))
		}
	}

	doc.Separator('=').
		FeedLines(3).
		PartialCut()
	return doc.Bytes()
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func quantity(d decimal.Decimal) string {
	return d.Round(3).String()
}
