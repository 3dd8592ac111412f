package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/costpulse/costpulse/internal/domain/entity"
	"github.com/costpulse/costpulse/internal/domain/period"
	"github.com/costpulse/costpulse/internal/domain/repository"
	"github.com/costpulse/costpulse/internal/shared/types"
	"github.com/costpulse/costpulse/pkg/console"
)

const (
	defaultHistoryMonths = 6
	maxHistoryMonths     = 24
)

// HistoryUseCase assembles and renders the monthly spend history with
// summary statistics and a trend verdict.
type HistoryUseCase struct {
	billingRepo repository.BillingRepository
	exportRepo  repository.ExportRepository
	console     types.ConsoleInterface

	now func() time.Time
}

// NewHistoryUseCase creates a new history use case.
func NewHistoryUseCase(
	billingRepo repository.BillingRepository,
	exportRepo repository.ExportRepository,
	console types.ConsoleInterface,
) *HistoryUseCase {
	return &HistoryUseCase{
		billingRepo: billingRepo,
		exportRepo:  exportRepo,
		console:     console,
		now:         time.Now,
	}
}

// Run fetches the last months of spend, oldest first, and renders the
// history report with statistics and trend analysis.
func (uc *HistoryUseCase) Run(ctx context.Context, args *types.CLIArgs) error {
	months := args.Months
	if months <= 0 {
		months = defaultHistoryMonths
	}
	if months > maxHistoryMonths {
		uc.console.LogWarning("History is limited to %d months", maxHistoryMonths)
		months = maxHistoryMonths
	}

	status := uc.console.Status("Resolving account identity...")

	accountID, err := uc.billingRepo.GetAccountID(ctx)
	if err != nil {
		status.Stop()
		return err
	}

	today := uc.now().UTC()
	windows := period.LastMonths(today, months)

	status.Update(fmt.Sprintf("Querying %d months of cost data...", months))
	monthly, err := uc.billingRepo.GetMonthlyCosts(ctx, windows)
	status.Stop()
	if err != nil {
		if !errors.Is(err, types.ErrNoBillingData) {
			return err
		}
		uc.console.LogWarning("No billing data for the requested months")
		monthly = zeroMonths(windows)
	}

	report := entity.NewHistoryReport(accountID, today, monthly)
	uc.renderHistory(report)
	uc.exportReports(report, args)
	return nil
}

// zeroMonths substitutes an all-zero month list so an account without
// billing history still renders a complete report.
func zeroMonths(windows []period.Window) []entity.MonthlyCost {
	months := make([]entity.MonthlyCost, 0, len(windows))
	for _, w := range windows {
		months = append(months, entity.MonthlyCost{
			Month:  w.Month(),
			Window: w,
			Cost:   entity.ZeroCost("USD"),
		})
	}
	return months
}

func (uc *HistoryUseCase) renderHistory(report entity.HistoryReport) {
	uc.console.Println()
	uc.console.Println(console.BrightBlue(fmt.Sprintf(
		"=============== AWS HISTORICAL COSTS (Last %d Months) ===============", len(report.Months))))
	if report.AccountID != "" {
		uc.console.Printf("🧾 Account: %s\n", report.AccountID)
	}
	uc.console.Println()

	uc.console.DisplayTrendBars(report.Months)

	if report.Stats != nil {
		uc.renderStats(*report.Stats, len(report.Months))
	}
	if report.Trend != nil {
		uc.renderTrend(*report.Trend)
	}

	uc.console.Println(console.BrightBlue("===================================================================="))
	uc.console.Println()
}

func (uc *HistoryUseCase) renderStats(stats entity.HistoryStats, months int) {
	uc.console.Println()
	uc.console.Println(console.BrightMagenta("📊 SUMMARY STATISTICS"))
	uc.console.Printf("💰 Total cost (%d months): %s\n",
		months, console.BrightMagenta(console.FormatMoney(stats.Total)))
	uc.console.Printf("📈 Average monthly cost: %s\n",
		console.BrightCyan(console.FormatMoney(stats.Average)))
	uc.console.Printf("📉 Lowest month: %s (%s)\n",
		stats.Lowest.Month, console.BrightGreen(console.FormatMoney(stats.Lowest.Cost)))
	uc.console.Printf("📈 Highest month: %s (%s)\n",
		stats.Highest.Month, console.BrightRed(console.FormatMoney(stats.Highest.Cost)))
	if !stats.AverageChange.IsZero() {
		uc.console.Printf("📊 Average month-over-month change: %s\n",
			console.FormatPercent(stats.AverageChange))
	}
}

func (uc *HistoryUseCase) renderTrend(trend entity.TrendAnalysis) {
	uc.console.Println()
	uc.console.Println(console.BrightYellow("📈 TREND ANALYSIS"))
	uc.console.Printf("Last %d months vs the %d before: %s\n",
		trend.Span, trend.Span, console.FormatPercent(trend.ChangePercent))

	switch trend.Verdict {
	case entity.TrendRising:
		uc.console.Println(console.BrightRed("⚠️  Costs are trending upward significantly"))
	case entity.TrendFalling:
		uc.console.Println(console.BrightGreen("✅ Costs are trending downward significantly"))
	default:
		uc.console.Println(console.BrightYellow("📊 Costs are relatively stable"))
	}
}

func (uc *HistoryUseCase) exportReports(report entity.HistoryReport, args *types.CLIArgs) {
	if args.ReportName == "" || len(args.ReportType) == 0 {
		return
	}

	for _, reportType := range args.ReportType {
		switch reportType {
		case "csv":
			path, err := uc.exportRepo.ExportHistoryToCSV(report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export history to CSV: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported history to CSV: %s", path)
			}
		case "json":
			path, err := uc.exportRepo.ExportHistoryToJSON(report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export history to JSON: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported history to JSON: %s", path)
			}
		case "pdf", "html":
			uc.console.LogWarning("%s export is not available for the history report", reportType)
		default:
			uc.console.LogWarning("Unknown report type: %s", reportType)
		}
	}
}
