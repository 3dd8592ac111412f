package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/costpulse/costpulse/internal/domain/entity"
	"github.com/costpulse/costpulse/internal/domain/period"
	"github.com/costpulse/costpulse/internal/domain/repository"
	"github.com/costpulse/costpulse/internal/shared/types"
	"github.com/costpulse/costpulse/pkg/console"
)

// SummaryUseCase assembles and renders the spend summary: month-to-date
// cost against the same stretch of last month, and the full-month
// forecast against last month's total.
type SummaryUseCase struct {
	billingRepo repository.BillingRepository
	exportRepo  repository.ExportRepository
	console     types.ConsoleInterface

	now func() time.Time
}

// NewSummaryUseCase creates a new summary use case.
func NewSummaryUseCase(
	billingRepo repository.BillingRepository,
	exportRepo repository.ExportRepository,
	console types.ConsoleInterface,
) *SummaryUseCase {
	return &SummaryUseCase{
		billingRepo: billingRepo,
		exportRepo:  exportRepo,
		console:     console,
		now:         time.Now,
	}
}

// Run executes one summary pass: resolve the account, fetch the four
// cost figures, compare, render, and write any requested report files.
func (uc *SummaryUseCase) Run(ctx context.Context, args *types.CLIArgs) error {
	today := uc.now().UTC()
	windows := period.MonthWindows(today)
	if args.Debug {
		uc.renderWindows(windows)
	}

	status := uc.console.Status("Resolving account identity...")

	accountID, err := uc.billingRepo.GetAccountID(ctx)
	if err != nil {
		status.Stop()
		return err
	}

	status.Update("Querying Cost Explorer...")
	report, err := uc.buildReport(ctx, accountID, today, windows)
	status.Stop()
	if err != nil {
		return err
	}

	uc.renderSummary(report)
	uc.exportReports(report, args)
	return nil
}

// renderWindows prints the computed query windows so a surprising
// figure can be traced back to its date range.
func (uc *SummaryUseCase) renderWindows(windows period.Windows) {
	table := uc.console.CreateTable()
	table.AddColumn("Window")
	table.AddColumn("Start")
	table.AddColumn("End (exclusive)")
	table.AddColumn("Days")

	rows := []struct {
		name   string
		window period.Window
	}{
		{"Month to date", windows.MonthToDate},
		{"Previous equivalent", windows.PreviousEquivalent},
		{"Forecast remainder", windows.ForecastRemainder},
		{"Previous full month", windows.PreviousFull},
	}
	for _, r := range rows {
		start, end := r.window.Format()
		table.AddRow(r.name, start, end, r.window.Days())
	}

	uc.console.Println(table.Render())
}

// buildReport issues the four billing calls concurrently. The calls are
// independent and read-only; the first error wins and aborts the run.
func (uc *SummaryUseCase) buildReport(ctx context.Context, accountID string, today time.Time, windows period.Windows) (entity.SpendReport, error) {
	var (
		mtd, prevEquiv, prevFull, forecast entity.CostFigure
		wg                                 sync.WaitGroup
	)
	errChan := make(chan error, 4)

	fetchActual := func(window period.Window, dst *entity.CostFigure, label string) {
		defer wg.Done()
		figure, err := uc.billingRepo.GetActualCost(ctx, window)
		switch {
		case err == nil:
			*dst = figure
		case errors.Is(err, types.ErrNoBillingData):
			*dst = entity.ZeroCost("USD")
		default:
			errChan <- fmt.Errorf("%s: %w", label, err)
		}
	}

	wg.Add(1)
	go fetchActual(windows.MonthToDate, &mtd, "month-to-date cost")

	wg.Add(1)
	go fetchActual(windows.PreviousEquivalent, &prevEquiv, "last month same-period cost")

	wg.Add(1)
	go fetchActual(windows.PreviousFull, &prevFull, "last month total cost")

	wg.Add(1)
	go func() {
		defer wg.Done()
		figure, err := uc.billingRepo.GetForecastCost(ctx, windows.ForecastRemainder)
		switch {
		case err == nil:
			forecast = figure
		case errors.Is(err, types.ErrNoBillingData):
			forecast = entity.ZeroCost("USD")
		default:
			errChan <- fmt.Errorf("current month forecast: %w", err)
		}
	}()

	wg.Wait()
	close(errChan)

	if len(errChan) > 0 {
		return entity.SpendReport{}, <-errChan
	}

	return entity.SpendReport{
		AccountID:   accountID,
		GeneratedAt: today,
		Windows:     windows,
		MonthToDate: entity.Compare(mtd, prevEquiv),
		Forecast:    entity.Compare(forecast, prevFull),
	}, nil
}

func (uc *SummaryUseCase) renderSummary(report entity.SpendReport) {
	uc.console.Println()
	uc.console.Println(console.BrightBlue("================= AWS COST SUMMARY ================="))
	if report.AccountID != "" {
		uc.console.Printf("🧾 Account: %s\n", report.AccountID)
	}

	uc.console.Printf("📅 Month-to-date cost: %s\n",
		console.BrightCyan(console.FormatMoney(report.MonthToDate.Current)))
	uc.console.Printf("   ↳ %s compared to last month for the same period\n",
		formatChange(report.MonthToDate))
	uc.console.Printf("   ↳ Last month's cost for the same period: %s\n\n",
		console.BrightYellow(console.FormatMoney(report.MonthToDate.Previous)))

	uc.console.Printf("🔮 Total forecasted cost for current month: %s\n",
		console.BrightMagenta(console.FormatMoney(report.Forecast.Current)))
	uc.console.Printf("   ↳ %s compared to last month's total costs\n",
		formatChange(report.Forecast))
	uc.console.Printf("   ↳ Last month's total cost: %s\n",
		console.BrightYellow(console.FormatMoney(report.Forecast.Previous)))

	uc.console.Println(console.BrightBlue("===================================================="))
	uc.console.Println()
}

// formatChange colors a comparison for display: red for cost increases,
// green for decreases, yellow for no change.
func formatChange(cmp entity.Comparison) string {
	if cmp.NewSpend {
		return console.BrightRed("new spend")
	}

	percent := console.FormatPercent(cmp.PercentChange)
	switch cmp.Direction {
	case entity.DirectionUp:
		return console.BrightRed(percent)
	case entity.DirectionDown:
		return console.BrightGreen(percent)
	default:
		return console.BrightYellow(percent)
	}
}

func (uc *SummaryUseCase) exportReports(report entity.SpendReport, args *types.CLIArgs) {
	if args.ReportName == "" || len(args.ReportType) == 0 {
		return
	}

	for _, reportType := range args.ReportType {
		switch reportType {
		case "csv":
			path, err := uc.exportRepo.ExportToCSV(report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to CSV: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to CSV: %s", path)
			}
		case "json":
			path, err := uc.exportRepo.ExportToJSON(report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to JSON: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to JSON: %s", path)
			}
		case "pdf":
			path, err := uc.exportRepo.ExportToPDF(report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to PDF: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to PDF: %s", path)
			}
		case "html":
			path, err := uc.exportRepo.ExportToHTML(report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to HTML: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to HTML: %s", path)
			}
		default:
			uc.console.LogWarning("Unknown report type: %s", reportType)
		}
	}
}
