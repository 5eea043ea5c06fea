package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"fincontrol/internal/core"
)

func TestMonthXLSX(t *testing.T) {
	month := core.Month{Year: 2025, Month: time.March}
	ds := core.SeedDataset()
	ds.Transactions = append(ds.Transactions,
		core.Transaction{
			ID: "t1", Description: "salary", Amount: core.Cents(100000),
			CategoryID: "1", Date: core.NewDate(2025, time.March, 3),
			Type: core.Income, Status: core.Paid,
		},
		core.Transaction{
			ID: "t2", Description: "groceries", Amount: core.Cents(5000),
			CategoryID: "7", Date: core.NewDate(2025, time.March, 10),
			Type: core.Expense, Status: core.Paid,
		},
	)

	data, err := MonthXLSX(ds, month)
	if err != nil {
		t.Fatalf("build workbook: %v", err)
	}

	xlsx, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer xlsx.Close()

	for _, sheet := range []string{"Summary", "Transactions", "Breakdown"} {
		if idx, _ := xlsx.GetSheetIndex(sheet); idx < 0 {
			t.Fatalf("missing sheet %s", sheet)
		}
	}

	if got, _ := xlsx.GetCellValue("Summary", "B1"); got != "2025-03" {
		t.Fatalf("summary month cell: %q", got)
	}
	// Total income, first summary line.
	if got, _ := xlsx.GetCellValue("Summary", "B3"); got != "1000" {
		t.Fatalf("total income cell: %q", got)
	}
	if got, _ := xlsx.GetCellValue("Transactions", "B2"); got != "salary" {
		t.Fatalf("first transaction row: %q", got)
	}
	if got, _ := xlsx.GetCellValue("Breakdown", "A2"); got != "Food" {
		t.Fatalf("breakdown category: %q", got)
	}
}
