// Package metrics computes month-windowed aggregates over a transaction
// sequence. Every function is pure: inputs are read-only, outputs are fresh
// values, and there are no error conditions — empty input yields zeroes.
//
// Shared rule: only transactions with status paid count. Pending
// transactions are invisible to every aggregate here.
package metrics

import (
	"fmt"
	"math"
	"sort"

	"fincontrol/internal/core"
)

// Fallback label and color for expenses whose category no longer exists.
// Orphaned references are tolerated by design; they surface here instead of
// silently dropping money from the breakdown.
const (
	OtherCategoryName  = "Other"
	OtherCategoryColor = "#9ca3af"
)

// DefaultTrailingWindow is the number of months the trend series covers
// when the caller does not ask for a specific window.
const DefaultTrailingWindow = 6

type TypeFilter string

const (
	FilterAll      TypeFilter = "all"
	FilterIncome   TypeFilter = "income"
	FilterExpenses TypeFilter = "expenses"
)

type (
	// Summary is the dashboard-card aggregate for one month.
	Summary struct {
		TotalIncome  core.Money
		TotalExpense core.Money
		Balance      core.Money
		DailyAverage core.Money
		Count        int
	}

	// CategoryAmount is one slice of the expense breakdown.
	CategoryAmount struct {
		Name   string
		Amount core.Money
		Color  string
	}

	// Totals pairs the month's paid income and expense for the two-bar
	// comparison view.
	Totals struct {
		Income  core.Money
		Expense core.Money
	}

	// SeriesPoint is one month of the trailing trend.
	SeriesPoint struct {
		Label   string
		Income  core.Money
		Expense core.Money
		Balance core.Money
	}

	// DayAmount is one bar of the daily histogram.
	DayAmount struct {
		Label  string
		Day    int
		Amount core.Money
	}
)

// Summarize computes the month's paid totals, balance, expense daily average
// and qualifying transaction count.
func Summarize(txs []core.Transaction, month core.Month) Summary {
	var sum Summary
	for _, tx := range paidIn(txs, month) {
		sum.Count++
		switch tx.Type {
		case core.Income:
			sum.TotalIncome = sum.TotalIncome.Add(tx.Amount)
		case core.Expense:
			sum.TotalExpense = sum.TotalExpense.Add(tx.Amount)
		}
	}
	sum.Balance = sum.TotalIncome.Sub(sum.TotalExpense)
	if days := month.Days(); days > 0 && !sum.TotalExpense.IsZero() {
		avg := float64(sum.TotalExpense.Cents) / float64(days)
		sum.DailyAverage = core.Cents(int64(math.Round(avg)))
	}
	return sum
}

// BreakdownByCategory sums the month's paid expenses per category id and
// resolves each group against the category set. Groups whose category is
// gone keep their money under the generic fallback. Sorted descending by
// amount; equal amounts keep first-seen order.
func BreakdownByCategory(txs []core.Transaction, cats []core.Category, month core.Month) []CategoryAmount {
	byID := make(map[string]core.Money)
	var order []string
	for _, tx := range paidIn(txs, month) {
		if tx.Type != core.Expense {
			continue
		}
		if _, seen := byID[tx.CategoryID]; !seen {
			order = append(order, tx.CategoryID)
		}
		byID[tx.CategoryID] = byID[tx.CategoryID].Add(tx.Amount)
	}

	catIndex := make(map[string]core.Category, len(cats))
	for _, c := range cats {
		catIndex[c.ID] = c
	}

	out := make([]CategoryAmount, 0, len(order))
	for _, id := range order {
		slice := CategoryAmount{
			Name:   OtherCategoryName,
			Color:  OtherCategoryColor,
			Amount: byID[id],
		}
		if c, ok := catIndex[id]; ok {
			slice.Name = c.Name
			slice.Color = c.Color
		}
		out = append(out, slice)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.Cents > out[j].Amount.Cents
	})
	return out
}

// IncomeVsExpense returns the month's paid totals per type.
func IncomeVsExpense(txs []core.Transaction, month core.Month) Totals {
	var t Totals
	for _, tx := range paidIn(txs, month) {
		switch tx.Type {
		case core.Income:
			t.Income = t.Income.Add(tx.Amount)
		case core.Expense:
			t.Expense = t.Expense.Add(tx.Amount)
		}
	}
	return t
}

// TrailingSeries computes one point per month for the window ending at and
// including month, oldest first. A window below 1 falls back to the default.
func TrailingSeries(txs []core.Transaction, month core.Month, window int) []SeriesPoint {
	if window < 1 {
		window = DefaultTrailingWindow
	}
	out := make([]SeriesPoint, 0, window)
	for i := window - 1; i >= 0; i-- {
		m := month.AddMonths(-i)
		t := IncomeVsExpense(txs, m)
		out = append(out, SeriesPoint{
			Label:   m.Label(),
			Income:  t.Income,
			Expense: t.Expense,
			Balance: t.Income.Sub(t.Expense),
		})
	}
	return out
}

// DailyHistogram groups the month's paid transactions by calendar day and
// sums amounts per day. The filter narrows to one type; FilterAll keeps
// both. Sorted ascending by day number — by the integer day, not the label,
// since "02/10" sorting lexicographically before "10/01" is an ordering bug
// waiting to happen.
func DailyHistogram(txs []core.Transaction, month core.Month, filter TypeFilter) []DayAmount {
	byDay := make(map[int]core.Money)
	for _, tx := range paidIn(txs, month) {
		switch filter {
		case FilterIncome:
			if tx.Type != core.Income {
				continue
			}
		case FilterExpenses:
			if tx.Type != core.Expense {
				continue
			}
		}
		day := tx.Date.Day()
		byDay[day] = byDay[day].Add(tx.Amount)
	}

	out := make([]DayAmount, 0, len(byDay))
	for day, amount := range byDay {
		out = append(out, DayAmount{
			Label:  fmt.Sprintf("%02d/%02d", day, int(month.Month)),
			Day:    day,
			Amount: amount,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

// paidIn filters to paid transactions dated inside the month window.
func paidIn(txs []core.Transaction, month core.Month) []core.Transaction {
	out := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Status != core.Paid {
			continue
		}
		if !month.Contains(tx.Date) {
			continue
		}
		out = append(out, tx)
	}
	return out
}
