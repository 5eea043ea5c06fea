// Command fincontrol is a local personal finance tracker: it records
// income and expense transactions against categories and renders monthly
// summaries, breakdowns, trends and histograms from them.
package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kingpin"

	"fincontrol/internal/cli"
	"fincontrol/internal/core"
	"fincontrol/internal/log"
	"fincontrol/internal/metrics"
	"fincontrol/internal/report"
	"fincontrol/internal/store"
)

var (
	logLevel = kingpin.Flag("log-level", "Log level (debug, info, warn, error)").Default("info").Enum("debug", "info", "warn", "error")
	month    = kingpin.Flag("month", "Month to operate on, YYYY-MM (default: current month)").String()

	cmdAdd      = kingpin.Command("add", "Record a transaction")
	addDesc     = cmdAdd.Arg("description", "What the money was for").Required().String()
	addAmount   = cmdAdd.Arg("amount", "Amount, e.g. 12.50").Required().String()
	addType     = cmdAdd.Flag("type", "Transaction type").Default("expense").Enum("income", "expense")
	addCategory = cmdAdd.Flag("category", "Category id").String()
	addDate     = cmdAdd.Flag("date", "Transaction date, YYYY-MM-DD (default: today)").String()
	addPending  = cmdAdd.Flag("pending", "Mark as pending instead of paid").Bool()
	addNotes    = cmdAdd.Flag("notes", "Free-form notes").String()

	cmdList = kingpin.Command("list", "List the month's transactions")

	cmdSet      = kingpin.Command("set", "Update fields of a transaction")
	setID       = cmdSet.Arg("id", "Transaction id").Required().String()
	setDesc     = cmdSet.Flag("description", "New description").String()
	setAmount   = cmdSet.Flag("amount", "New amount").String()
	setCategory = cmdSet.Flag("category", "New category id").String()
	setDate     = cmdSet.Flag("date", "New date, YYYY-MM-DD").String()
	setType     = cmdSet.Flag("type", "New type").Enum("income", "expense")
	setStatus   = cmdSet.Flag("status", "New status").Enum("paid", "pending")
	setNotes    = cmdSet.Flag("notes", "New notes").String()

	cmdRm = kingpin.Command("rm", "Delete a transaction")
	rmID  = cmdRm.Arg("id", "Transaction id").Required().String()

	cmdCat      = kingpin.Command("category", "Manage categories")
	cmdCatList  = cmdCat.Command("list", "List categories")
	cmdCatAdd   = cmdCat.Command("add", "Add a category")
	catAddName  = cmdCatAdd.Arg("name", "Display name").Required().String()
	catAddType  = cmdCatAdd.Flag("type", "Category type").Default("expense").Enum("income", "expense")
	catAddColor = cmdCatAdd.Flag("color", "Display color token").Default("#64748b").String()
	catAddIcon  = cmdCatAdd.Flag("icon", "Display icon token").Default("tag").String()
	cmdCatSet   = cmdCat.Command("set", "Update fields of a category")
	catSetID    = cmdCatSet.Arg("id", "Category id").Required().String()
	catSetName  = cmdCatSet.Flag("name", "New name").String()
	catSetColor = cmdCatSet.Flag("color", "New color token").String()
	catSetIcon  = cmdCatSet.Flag("icon", "New icon token").String()
	catSetType  = cmdCatSet.Flag("type", "New type").Enum("income", "expense")
	cmdCatRm    = cmdCat.Command("rm", "Delete a category (fails while transactions reference it)")
	catRmID     = cmdCatRm.Arg("id", "Category id").Required().String()

	cmdSummary   = kingpin.Command("summary", "Show the month's summary")
	cmdBreakdown = kingpin.Command("breakdown", "Show the month's expense breakdown by category")
	cmdTotals    = kingpin.Command("totals", "Show the month's income vs expense totals")

	cmdTrend    = kingpin.Command("trend", "Show the trailing monthly trend")
	trendWindow = cmdTrend.Flag("window", "Number of months").Default("6").Int()

	cmdHistogram = kingpin.Command("histogram", "Show the month's daily totals")
	histFilter   = cmdHistogram.Flag("filter", "Type filter").Default("expenses").Enum("expenses", "income", "all")

	cmdExport = kingpin.Command("export", "Write a JSON snapshot of the dataset")
	exportOut = cmdExport.Flag("out", "Output file (default: stdout)").String()

	cmdImport = kingpin.Command("import", "Replace the dataset with a JSON snapshot")
	importIn  = cmdImport.Arg("file", "Snapshot file").Required().ExistingFile()

	cmdReport = kingpin.Command("report", "Write the month's Excel report")
	reportOut = cmdReport.Flag("out", "Output .xlsx file").Required().String()

	cmdClear = kingpin.Command("clear", "Erase all data")
	clearYes = cmdClear.Flag("yes", "Confirm erasing everything").Bool()
)

func main() {
	cmd := kingpin.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger(*logLevel)
	cfg := cli.LoadAndValidateConfig(logger)
	st, cleanup := cli.OpenStore(logger, cfg)
	defer cleanup()

	ctx := context.Background()
	m := resolveMonth(logger)

	var err error
	switch cmd {
	case cmdAdd.FullCommand():
		err = runAdd(ctx, st)
	case cmdList.FullCommand():
		err = runList(ctx, st, m)
	case cmdSet.FullCommand():
		err = runSet(ctx, st)
	case cmdRm.FullCommand():
		err = runRm(ctx, st)
	case cmdCatList.FullCommand():
		err = runCatList(ctx, st)
	case cmdCatAdd.FullCommand():
		err = runCatAdd(ctx, st)
	case cmdCatSet.FullCommand():
		err = runCatSet(ctx, st)
	case cmdCatRm.FullCommand():
		err = runCatRm(ctx, st)
	case cmdSummary.FullCommand():
		err = runSummary(ctx, st, m)
	case cmdBreakdown.FullCommand():
		err = runBreakdown(ctx, st, m)
	case cmdTotals.FullCommand():
		err = runTotals(ctx, st, m)
	case cmdTrend.FullCommand():
		err = runTrend(ctx, st, m)
	case cmdHistogram.FullCommand():
		err = runHistogram(ctx, st, m)
	case cmdExport.FullCommand():
		err = runExport(ctx, st)
	case cmdImport.FullCommand():
		err = runImport(ctx, st)
	case cmdReport.FullCommand():
		err = runReport(ctx, st, m)
	case cmdClear.FullCommand():
		err = runClear(ctx, st)
	}
	if err != nil {
		logger.Error("command failed", log.FieldError, err.Error())
		os.Exit(1)
	}
}

func resolveMonth(logger *log.Logger) core.Month {
	if *month == "" {
		return core.MonthOf(time.Now())
	}
	m, err := core.ParseMonth(*month)
	if err != nil {
		logger.Error("invalid month", log.FieldError, err.Error())
		os.Exit(1)
	}
	return m
}

func runAdd(ctx context.Context, st *store.Store) error {
	cents, err := core.ParseDecimalToCents(*addAmount)
	if err != nil {
		return fmt.Errorf("amount %q: %w", *addAmount, err)
	}
	date := core.DateOf(time.Now())
	if *addDate != "" {
		if date, err = core.ParseDate(*addDate); err != nil {
			return err
		}
	}
	status := core.Paid
	if *addPending {
		status = core.Pending
	}
	tx, err := st.AddTransaction(ctx, core.TransactionDraft{
		Description: *addDesc,
		Amount:      core.Cents(cents),
		CategoryID:  *addCategory,
		Date:        date,
		Type:        core.TransactionType(*addType),
		Status:      status,
		Notes:       *addNotes,
	})
	if err != nil {
		return err
	}
	fmt.Printf("recorded %s %s (%s) as %s\n", tx.Type, tx.Amount, tx.Description, tx.ID)
	return nil
}

func runList(ctx context.Context, st *store.Store, m core.Month) error {
	ds, err := st.Load(ctx)
	if err != nil {
		return err
	}
	catNames := make(map[string]string, len(ds.Categories))
	for _, c := range ds.Categories {
		catNames[c.ID] = c.Name
	}
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tDESCRIPTION\tCATEGORY\tTYPE\tSTATUS\tAMOUNT\tID")
	for _, tx := range ds.Transactions {
		if !m.Contains(tx.Date) {
			continue
		}
		name := catNames[tx.CategoryID]
		if name == "" {
			name = metrics.OtherCategoryName
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.Date, tx.Description, name, tx.Type, tx.Status, tx.Amount, tx.ID)
	}
	return w.Flush()
}

// Flags left at their zero value are treated as unchanged.
func runSet(ctx context.Context, st *store.Store) error {
	var patch core.TransactionPatch
	if *setDesc != "" {
		patch.Description = setDesc
	}
	if *setAmount != "" {
		cents, err := core.ParseDecimalToCents(*setAmount)
		if err != nil {
			return fmt.Errorf("amount %q: %w", *setAmount, err)
		}
		amount := core.Cents(cents)
		patch.Amount = &amount
	}
	if *setCategory != "" {
		patch.CategoryID = setCategory
	}
	if *setDate != "" {
		date, err := core.ParseDate(*setDate)
		if err != nil {
			return err
		}
		patch.Date = &date
	}
	if *setType != "" {
		t := core.TransactionType(*setType)
		patch.Type = &t
	}
	if *setStatus != "" {
		s := core.Status(*setStatus)
		patch.Status = &s
	}
	if *setNotes != "" {
		patch.Notes = setNotes
	}
	tx, err := st.UpdateTransaction(ctx, *setID, patch)
	if err != nil {
		return err
	}
	fmt.Printf("updated %s: %s %s (%s)\n", tx.ID, tx.Type, tx.Amount, tx.Description)
	return nil
}

func runRm(ctx context.Context, st *store.Store) error {
	removed, err := st.DeleteTransaction(ctx, *rmID)
	if err != nil {
		return err
	}
	if !removed {
		fmt.Printf("no transaction with id %s\n", *rmID)
		return nil
	}
	fmt.Printf("deleted %s\n", *rmID)
	return nil
}

func runCatList(ctx context.Context, st *store.Store) error {
	cats, err := st.Categories(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tCOLOR\tICON")
	for _, c := range cats {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Type, c.Color, c.Icon)
	}
	return w.Flush()
}

func runCatAdd(ctx context.Context, st *store.Store) error {
	cat, err := st.AddCategory(ctx, core.CategoryDraft{
		Name:  *catAddName,
		Color: *catAddColor,
		Icon:  *catAddIcon,
		Type:  core.TransactionType(*catAddType),
	})
	if err != nil {
		return err
	}
	fmt.Printf("added category %s (%s)\n", cat.Name, cat.ID)
	return nil
}

func runCatSet(ctx context.Context, st *store.Store) error {
	var patch core.CategoryPatch
	if *catSetName != "" {
		patch.Name = catSetName
	}
	if *catSetColor != "" {
		patch.Color = catSetColor
	}
	if *catSetIcon != "" {
		patch.Icon = catSetIcon
	}
	if *catSetType != "" {
		t := core.TransactionType(*catSetType)
		patch.Type = &t
	}
	cat, err := st.UpdateCategory(ctx, *catSetID, patch)
	if err != nil {
		return err
	}
	fmt.Printf("updated category %s (%s)\n", cat.Name, cat.ID)
	return nil
}

func runCatRm(ctx context.Context, st *store.Store) error {
	removed, err := st.DeleteCategory(ctx, *catRmID)
	if err != nil {
		return err
	}
	if !removed {
		fmt.Printf("no category with id %s\n", *catRmID)
		return nil
	}
	fmt.Printf("deleted category %s\n", *catRmID)
	return nil
}

func runSummary(ctx context.Context, st *store.Store, m core.Month) error {
	txs, err := st.Transactions(ctx)
	if err != nil {
		return err
	}
	sum := metrics.Summarize(txs, m)
	fmt.Printf("%s\n", m)
	fmt.Printf("  income:        %12s\n", sum.TotalIncome)
	fmt.Printf("  expense:       %12s\n", sum.TotalExpense)
	fmt.Printf("  balance:       %12s\n", sum.Balance)
	fmt.Printf("  daily average: %12s\n", sum.DailyAverage)
	fmt.Printf("  transactions:  %12d\n", sum.Count)
	return nil
}

func runBreakdown(ctx context.Context, st *store.Store, m core.Month) error {
	ds, err := st.Load(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tAMOUNT")
	for _, slice := range metrics.BreakdownByCategory(ds.Transactions, ds.Categories, m) {
		fmt.Fprintf(w, "%s\t%s\n", slice.Name, slice.Amount)
	}
	return w.Flush()
}

func runTotals(ctx context.Context, st *store.Store, m core.Month) error {
	txs, err := st.Transactions(ctx)
	if err != nil {
		return err
	}
	t := metrics.IncomeVsExpense(txs, m)
	fmt.Printf("%s  income %s  expense %s\n", m, t.Income, t.Expense)
	return nil
}

func runTrend(ctx context.Context, st *store.Store, m core.Month) error {
	txs, err := st.Transactions(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MONTH\tINCOME\tEXPENSE\tBALANCE")
	for _, p := range metrics.TrailingSeries(txs, m, *trendWindow) {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Label, p.Income, p.Expense, p.Balance)
	}
	return w.Flush()
}

func runHistogram(ctx context.Context, st *store.Store, m core.Month) error {
	txs, err := st.Transactions(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DAY\tAMOUNT")
	for _, d := range metrics.DailyHistogram(txs, m, metrics.TypeFilter(*histFilter)) {
		fmt.Fprintf(w, "%s\t%s\n", d.Label, d.Amount)
	}
	return w.Flush()
}

func runExport(ctx context.Context, st *store.Store) error {
	data, err := st.ExportSnapshot(ctx)
	if err != nil {
		return err
	}
	if *exportOut == "" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(*exportOut, data, 0644)
}

func runImport(ctx context.Context, st *store.Store) error {
	data, err := os.ReadFile(*importIn)
	if err != nil {
		return err
	}
	if err := st.ImportSnapshot(ctx, data); err != nil {
		return err
	}
	fmt.Printf("imported %s\n", *importIn)
	return nil
}

func runReport(ctx context.Context, st *store.Store, m core.Month) error {
	ds, err := st.Load(ctx)
	if err != nil {
		return err
	}
	data, err := report.MonthXLSX(ds, m)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*reportOut, data, 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", *reportOut)
	return nil
}

func runClear(ctx context.Context, st *store.Store) error {
	if !*clearYes {
		return fmt.Errorf("refusing to erase all data without --yes")
	}
	if err := st.ClearAll(ctx); err != nil {
		return err
	}
	fmt.Println("all data erased")
	return nil
}
