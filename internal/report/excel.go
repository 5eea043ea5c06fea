// Package report renders a month of the dataset as an Excel workbook: a
// summary sheet with the trailing trend, the transaction list and the
// expense breakdown. It is a read-only consumer of the metrics engine.
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"fincontrol/internal/core"
	"fincontrol/internal/metrics"
)

// MonthXLSX builds the workbook for one month and returns the file bytes.
func MonthXLSX(ds core.Dataset, month core.Month) ([]byte, error) {
	xlsx := excelize.NewFile()

	sheet := xlsx.GetSheetName(xlsx.GetActiveSheetIndex())
	_ = xlsx.SetSheetName(sheet, "Summary")
	writeSummarySheet(xlsx, "Summary", ds, month)

	if _, err := xlsx.NewSheet("Transactions"); err != nil {
		return nil, fmt.Errorf("create transactions sheet: %w", err)
	}
	writeTransactionsSheet(xlsx, "Transactions", ds, month)

	if _, err := xlsx.NewSheet("Breakdown"); err != nil {
		return nil, fmt.Errorf("create breakdown sheet: %w", err)
	}
	writeBreakdownSheet(xlsx, "Breakdown", ds, month)

	buf, err := xlsx.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(xlsx *excelize.File, sheet string, ds core.Dataset, month core.Month) {
	_ = xlsx.SetColWidth(sheet, "A", "A", 22)
	_ = xlsx.SetColWidth(sheet, "B", "E", 14)

	sum := metrics.Summarize(ds.Transactions, month)

	row := 1
	_ = xlsx.SetCellValue(sheet, cell('A', row), "Month")
	_ = xlsx.SetCellValue(sheet, cell('B', row), month.String())
	row += 2

	for _, line := range []struct {
		label string
		value any
	}{
		{"Total income", sum.TotalIncome.Float64()},
		{"Total expense", sum.TotalExpense.Float64()},
		{"Balance", sum.Balance.Float64()},
		{"Daily average", sum.DailyAverage.Float64()},
		{"Transactions", sum.Count},
	} {
		_ = xlsx.SetCellValue(sheet, cell('A', row), line.label)
		_ = xlsx.SetCellValue(sheet, cell('B', row), line.value)
		row++
	}
	row++

	_ = xlsx.SetCellValue(sheet, cell('A', row), "Trend")
	row++
	_ = xlsx.SetCellValue(sheet, cell('A', row), "Month")
	_ = xlsx.SetCellValue(sheet, cell('B', row), "Income")
	_ = xlsx.SetCellValue(sheet, cell('C', row), "Expense")
	_ = xlsx.SetCellValue(sheet, cell('D', row), "Balance")
	row++
	for _, p := range metrics.TrailingSeries(ds.Transactions, month, metrics.DefaultTrailingWindow) {
		_ = xlsx.SetCellValue(sheet, cell('A', row), p.Label)
		_ = xlsx.SetCellValue(sheet, cell('B', row), p.Income.Float64())
		_ = xlsx.SetCellValue(sheet, cell('C', row), p.Expense.Float64())
		_ = xlsx.SetCellValue(sheet, cell('D', row), p.Balance.Float64())
		row++
	}
}

func writeTransactionsSheet(xlsx *excelize.File, sheet string, ds core.Dataset, month core.Month) {
	_ = xlsx.SetColWidth(sheet, "A", "A", 12)
	_ = xlsx.SetColWidth(sheet, "B", "B", 40)
	_ = xlsx.SetColWidth(sheet, "C", "F", 14)

	catNames := make(map[string]string, len(ds.Categories))
	for _, c := range ds.Categories {
		catNames[c.ID] = c.Name
	}

	row := 1
	for col, hdr := range []string{"Date", "Description", "Category", "Type", "Status", "Amount"} {
		_ = xlsx.SetCellValue(sheet, cell('A'+rune(col), row), hdr)
	}
	row++
	for _, tx := range ds.Transactions {
		if !month.Contains(tx.Date) {
			continue
		}
		name := catNames[tx.CategoryID]
		if name == "" {
			name = metrics.OtherCategoryName
		}
		_ = xlsx.SetCellValue(sheet, cell('A', row), tx.Date.String())
		_ = xlsx.SetCellValue(sheet, cell('B', row), tx.Description)
		_ = xlsx.SetCellValue(sheet, cell('C', row), name)
		_ = xlsx.SetCellValue(sheet, cell('D', row), string(tx.Type))
		_ = xlsx.SetCellValue(sheet, cell('E', row), string(tx.Status))
		_ = xlsx.SetCellValue(sheet, cell('F', row), tx.Amount.Float64())
		row++
	}
}

func writeBreakdownSheet(xlsx *excelize.File, sheet string, ds core.Dataset, month core.Month) {
	_ = xlsx.SetColWidth(sheet, "A", "A", 24)
	_ = xlsx.SetColWidth(sheet, "B", "C", 14)

	row := 1
	_ = xlsx.SetCellValue(sheet, cell('A', row), "Category")
	_ = xlsx.SetCellValue(sheet, cell('B', row), "Amount")
	_ = xlsx.SetCellValue(sheet, cell('C', row), "Color")
	row++
	for _, slice := range metrics.BreakdownByCategory(ds.Transactions, ds.Categories, month) {
		_ = xlsx.SetCellValue(sheet, cell('A', row), slice.Name)
		_ = xlsx.SetCellValue(sheet, cell('B', row), slice.Amount.Float64())
		_ = xlsx.SetCellValue(sheet, cell('C', row), slice.Color)
		row++
	}
}

func cell(col rune, row int) string {
	return fmt.Sprintf("%c%d", col, row)
}
