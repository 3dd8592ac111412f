package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/costpulse/costpulse/internal/domain/period"
)

// SpendReport is the assembled output of one summary run.
type SpendReport struct {
	AccountID   string         `json:"account_id,omitempty"`
	GeneratedAt time.Time      `json:"generated_at"`
	Windows     period.Windows `json:"windows"`
	MonthToDate Comparison     `json:"month_to_date"`
	Forecast    Comparison     `json:"forecast"`
}

// MonthlyCost is one month's spend in a history report. ChangePercent
// holds the change from the month before; it is nil for the first month
// and for months whose predecessor had no positive spend.
type MonthlyCost struct {
	Month         string           `json:"month"`
	Window        period.Window    `json:"window"`
	Cost          CostFigure       `json:"cost"`
	ChangePercent *decimal.Decimal `json:"change_percent,omitempty"`
}

// HistoryStats summarizes a run of monthly costs.
type HistoryStats struct {
	Total         CostFigure      `json:"total"`
	Average       CostFigure      `json:"average"`
	Lowest        MonthlyCost     `json:"lowest"`
	Highest       MonthlyCost     `json:"highest"`
	AverageChange decimal.Decimal `json:"average_change_percent"`
}

// TrendVerdict classifies the newest months against the ones before.
type TrendVerdict int

const (
	TrendStable TrendVerdict = iota
	TrendRising
	TrendFalling
)

func (v TrendVerdict) String() string {
	switch v {
	case TrendRising:
		return "rising"
	case TrendFalling:
		return "falling"
	default:
		return "stable"
	}
}

// MarshalText renders the verdict for JSON and YAML exports.
func (v TrendVerdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText parses a verdict written by MarshalText.
func (v *TrendVerdict) UnmarshalText(text []byte) error {
	switch string(text) {
	case "rising":
		*v = TrendRising
	case "falling":
		*v = TrendFalling
	case "stable":
		*v = TrendStable
	default:
		return fmt.Errorf("unknown trend verdict %q", string(text))
	}
	return nil
}

// TrendAnalysis compares the average spend of the newest Span months
// against the Span months before them.
type TrendAnalysis struct {
	Span          int             `json:"span_months"`
	RecentAverage decimal.Decimal `json:"recent_average"`
	OlderAverage  decimal.Decimal `json:"older_average"`
	ChangePercent decimal.Decimal `json:"change_percent"`
	Verdict       TrendVerdict    `json:"verdict"`
}

// HistoryReport lists monthly spend, oldest month first. Stats and Trend
// are nil when the report is too short to derive them.
type HistoryReport struct {
	AccountID   string         `json:"account_id,omitempty"`
	GeneratedAt time.Time      `json:"generated_at"`
	Months      []MonthlyCost  `json:"months"`
	Stats       *HistoryStats  `json:"stats,omitempty"`
	Trend       *TrendAnalysis `json:"trend,omitempty"`
}

var trendThreshold = decimal.NewFromInt(10)

// NewHistoryReport derives per-month changes, summary statistics and the
// trend verdict from monthly figures ordered oldest first.
func NewHistoryReport(accountID string, generatedAt time.Time, months []MonthlyCost) HistoryReport {
	report := HistoryReport{AccountID: accountID, GeneratedAt: generatedAt, Months: months}
	if len(months) == 0 {
		return report
	}

	total := decimal.Zero
	lowest, highest := 0, 0
	for i, m := range months {
		total = total.Add(m.Cost.Amount)
		if m.Cost.Amount.LessThan(months[lowest].Cost.Amount) {
			lowest = i
		}
		if m.Cost.Amount.GreaterThan(months[highest].Cost.Amount) {
			highest = i
		}
	}

	// Month-over-month changes. A step without a positive baseline gets
	// no arrow and counts as zero toward the average.
	changeSum := decimal.Zero
	for i := 1; i < len(months); i++ {
		prev := months[i-1].Cost.Amount
		if prev.IsPositive() {
			change := months[i].Cost.Amount.Sub(prev).Div(prev).Mul(hundred)
			report.Months[i].ChangePercent = &change
			changeSum = changeSum.Add(change)
		}
	}

	if len(months) < 2 {
		return report
	}

	currency := months[0].Cost.Currency
	n := int64(len(months))
	report.Stats = &HistoryStats{
		Total:         CostFigure{Amount: total, Currency: currency},
		Average:       CostFigure{Amount: total.Div(decimal.NewFromInt(n)), Currency: currency},
		Lowest:        months[lowest],
		Highest:       months[highest],
		AverageChange: changeSum.Div(decimal.NewFromInt(n - 1)),
	}
	report.Trend = analyzeTrend(months)

	return report
}

// analyzeTrend weighs the newest three months (fewer on short reports)
// against the same number of months before them. Without a positive
// baseline average there is no meaningful trend.
func analyzeTrend(months []MonthlyCost) *TrendAnalysis {
	span := 3
	if len(months) < 2*span {
		span = len(months) / 2
	}
	if span == 0 {
		return nil
	}

	recent := months[len(months)-span:]
	older := months[len(months)-2*span : len(months)-span]

	olderAvg := averageAmount(older)
	if !olderAvg.IsPositive() {
		return nil
	}
	recentAvg := averageAmount(recent)

	change := recentAvg.Sub(olderAvg).Div(olderAvg).Mul(hundred)
	verdict := TrendStable
	switch {
	case change.GreaterThan(trendThreshold):
		verdict = TrendRising
	case change.LessThan(trendThreshold.Neg()):
		verdict = TrendFalling
	}

	return &TrendAnalysis{
		Span:          span,
		RecentAverage: recentAvg,
		OlderAverage:  olderAvg,
		ChangePercent: change,
		Verdict:       verdict,
	}
}

func averageAmount(months []MonthlyCost) decimal.Decimal {
	sum := decimal.Zero
	for _, m := range months {
		sum = sum.Add(m.Cost.Amount)
	}
	return sum.Div(decimal.NewFromInt(int64(len(months))))
}
