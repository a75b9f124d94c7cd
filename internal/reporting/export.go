package reporting

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	sheetSummary      = "Summary"
	sheetItems        = "Items"
	sheetCustomers    = "Customers"
	sheetSalesPersons = "Sales Persons"
	sheetPickers      = "Pickers"
)

// WriteXLSX writes the report as a workbook with a summary sheet and one
// sheet per rollup the report carries.
func WriteXLSX(w io.Writer, rep *Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return err
	}
	summary := [][]any{
		{"From", rep.From.Format("2006-01-02")},
		{"To", rep.To.Format("2006-01-02")},
		{"Records", rep.Records},
		{"Total sales", rep.KPIs.TotalSales.InexactFloat64()},
		{"Transactions", rep.KPIs.TransactionCount},
		{"Average basket", rep.KPIs.AverageBasket.InexactFloat64()},
		{"Items sold", rep.KPIs.TotalItems.InexactFloat64()},
		{"Average items per sale", rep.KPIs.AverageItems.InexactFloat64()},
	}
	if err := writeRows(f, sheetSummary, summary); err != nil {
		return err
	}

	if rep.Items != nil {
		rows := [][]any{{"Code", "Description", "Quantity", "Value"}}
		for _, r := range rep.Items {
			rows = append(rows, []any{r.Entry.Code, r.Entry.Description, r.Entry.Quantity.InexactFloat64(), r.Entry.Value.InexactFloat64()})
		}
		if err := addSheet(f, sheetItems, rows); err != nil {
			return err
		}
	}
	if rep.Customers != nil {
		rows := [][]any{{"Customer", "Account", "Transactions", "Total"}}
		for _, r := range rep.Customers {
			rows = append(rows, []any{r.Entry.Name, r.Entry.AccountNumber, r.Entry.Count, r.Entry.Total.InexactFloat64()})
		}
		if err := addSheet(f, sheetCustomers, rows); err != nil {
			return err
		}
	}
	if rep.SalesPersons != nil {
		if err := addSheet(f, sheetSalesPersons, staffRows(rep.SalesPersons)); err != nil {
			return err
		}
	}
	if rep.Pickers != nil {
		if err := addSheet(f, sheetPickers, staffRows(rep.Pickers)); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func staffRows(entries []Ranked[StaffRollup]) [][]any {
	rows := [][]any{{"Code", "Name", "Transactions", "Total", "Average", "Items picked"}}
	for _, r := range entries {
		rows = append(rows, []any{
			r.Entry.ID, r.Entry.Name, r.Entry.Count,
			r.Entry.Total.InexactFloat64(), r.Entry.Average.InexactFloat64(), r.Entry.ItemsPicked.InexactFloat64(),
		})
	}
	return rows
}

func addSheet(f *excelize.File, name string, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	return writeRows(f, name, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("fill %s: %w", sheet, err)
		}
	}
	return nil
}
