package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costpulse/costpulse/internal/domain/entity"
	"github.com/costpulse/costpulse/internal/domain/period"
)

func usd(amount string) entity.CostFigure {
	return entity.CostFigure{Amount: decimal.RequireFromString(amount), Currency: "USD"}
}

func sampleSpendReport() entity.SpendReport {
	today := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)
	return entity.SpendReport{
		AccountID:   "123456789012",
		GeneratedAt: today,
		Windows:     period.MonthWindows(today),
		MonthToDate: entity.Compare(usd("1234.56"), usd("1071.23")),
		Forecast:    entity.Compare(usd("3456.78"), usd("3180.45")),
	}
}

func sampleHistoryReport() entity.HistoryReport {
	today := time.Date(2024, time.March, 20, 9, 0, 0, 0, time.UTC)
	windows := period.LastMonths(today, 3)
	months := []entity.MonthlyCost{
		{Month: windows[0].Month(), Window: windows[0], Cost: usd("100")},
		{Month: windows[1].Month(), Window: windows[1], Cost: usd("150")},
		{Month: windows[2].Month(), Window: windows[2], Cost: usd("120")},
	}
	return entity.NewHistoryReport("123456789012", today, months)
}

func readRecords(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return records
}

func TestExportToCSVWritesSummaryRow(t *testing.T) {
	repo := NewExportRepository()
	dir := t.TempDir()

	path, err := repo.ExportToCSV(sampleSpendReport(), "spend", dir)
	require.NoError(t, err)

	records := readRecords(t, path)
	require.Len(t, records, 2)

	headers := records[0]
	assert.Equal(t, "Account ID", headers[0])
	assert.Equal(t, "Month-to-date cost (2024-03-01 to 2024-03-15)", headers[1])
	assert.Equal(t, "Last month same period (2024-02-01 to 2024-02-15)", headers[2])
	assert.Equal(t, "Forecast for March 2024", headers[4])
	assert.Equal(t, "Last month total (2024-02-01 to 2024-03-01)", headers[5])

	row := records[1]
	assert.Equal(t, "123456789012", row[0])
	assert.Equal(t, "$1,234.56", row[1])
	assert.Equal(t, "$1,071.23", row[2])
	assert.Equal(t, "+15.25%", row[3])
	assert.Equal(t, "$3,456.78", row[4])
	assert.Equal(t, "$3,180.45", row[5])
	assert.Equal(t, "+8.69%", row[6])
}

func TestExportToCSVMarksNewSpend(t *testing.T) {
	report := sampleSpendReport()
	report.MonthToDate = entity.Compare(usd("52.80"), usd("0"))

	repo := NewExportRepository()
	path, err := repo.ExportToCSV(report, "spend", t.TempDir())
	require.NoError(t, err)

	records := readRecords(t, path)
	require.Len(t, records, 2)
	assert.Equal(t, "new spend", records[1][3])
}

func TestExportToJSONRoundTrips(t *testing.T) {
	repo := NewExportRepository()

	path, err := repo.ExportToJSON(sampleSpendReport(), "spend", t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded entity.SpendReport
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "123456789012", decoded.AccountID)
	assert.True(t, decoded.MonthToDate.Current.Amount.Equal(decimal.RequireFromString("1234.56")))
	assert.Equal(t, entity.DirectionUp, decoded.MonthToDate.Direction)
	start, end := decoded.Windows.MonthToDate.Format()
	assert.Equal(t, "2024-03-01", start)
	assert.Equal(t, "2024-03-15", end)
}

func TestExportToPDFCreatesFile(t *testing.T) {
	repo := NewExportRepository()
	dir := t.TempDir()

	path, err := repo.ExportToPDF(sampleSpendReport(), "spend", dir)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
	assert.Equal(t, ".pdf", filepath.Ext(path))
}

func TestExportToHTMLRendersPage(t *testing.T) {
	repo := NewExportRepository()
	dir := t.TempDir()

	path, err := repo.ExportToHTML(sampleSpendReport(), "spend", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	page := string(data)

	assert.Contains(t, page, "Account: 123456789012")
	assert.Contains(t, page, "Month-to-date cost:")
	assert.Contains(t, page, `<span class="money cyan">$1,234.56</span>`)
	assert.Contains(t, page, `<span class="change red">+15.25%</span>`)
	assert.Contains(t, page, `<span class="money yellow">$1,071.23</span>`)
	assert.Contains(t, page, "Total forecasted cost for current month:")
	assert.Contains(t, page, `<span class="money magenta">$3,456.78</span>`)
	assert.Contains(t, page, "Last updated: 2024-03-15 10:30:00")

	// The temp file used for the atomic write must be gone.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, strings.HasPrefix(entries[0].Name(), ".costpulse-"))
}

func TestExportToHTMLColorsDecreases(t *testing.T) {
	report := sampleSpendReport()
	report.Forecast = entity.Compare(usd("2500"), usd("3180.45"))

	repo := NewExportRepository()
	path, err := repo.ExportToHTML(report, "spend", t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `<span class="change green">-21.39%</span>`)
}

func TestExportHistoryToCSVWritesMonthlyRows(t *testing.T) {
	repo := NewExportRepository()

	path, err := repo.ExportHistoryToCSV(sampleHistoryReport(), "history", t.TempDir())
	require.NoError(t, err)

	records := readRecords(t, path)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Month", "Period", "Cost", "Change vs previous month"}, records[0])

	assert.Equal(t, "January 2024", records[1][0])
	assert.Equal(t, "$100.00", records[1][2])
	assert.Equal(t, "N/A", records[1][3])

	assert.Equal(t, "February 2024", records[2][0])
	assert.Equal(t, "+50.00%", records[2][3])

	assert.Equal(t, "March 2024", records[3][0])
	assert.Equal(t, "-20.00%", records[3][3])
}

func TestExportHistoryToJSONIncludesStats(t *testing.T) {
	repo := NewExportRepository()

	path, err := repo.ExportHistoryToJSON(sampleHistoryReport(), "history", t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded entity.HistoryReport
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "123456789012", decoded.AccountID)
	require.Len(t, decoded.Months, 3)
	require.NotNil(t, decoded.Stats)
	assert.True(t, decoded.Stats.Total.Amount.Equal(decimal.RequireFromString("370")))
}

func TestGeneratedFilenamesCarryAccountAndTimestamp(t *testing.T) {
	repo := NewExportRepository()
	dir := t.TempDir()

	path, err := repo.ExportToCSV(sampleSpendReport(), "spend", dir)
	require.NoError(t, err)

	pattern := regexp.MustCompile(`^spend-123456789012-\d{8}-\d{4}\.csv$`)
	assert.Regexp(t, pattern, filepath.Base(path))
	assert.Equal(t, dir, filepath.Dir(path))
}

func TestGeneratedFilenamesOmitEmptyAccount(t *testing.T) {
	report := sampleSpendReport()
	report.AccountID = ""

	repo := NewExportRepository()
	path, err := repo.ExportToCSV(report, "spend", t.TempDir())
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^spend-\d{8}-\d{4}\.csv$`), filepath.Base(path))
}

func TestExportCreatesOutputDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")

	repo := NewExportRepository()
	path, err := repo.ExportToJSON(sampleSpendReport(), "spend", dir)
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
