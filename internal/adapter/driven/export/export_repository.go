package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/costpulse/costpulse/internal/domain/entity"
	"github.com/costpulse/costpulse/internal/domain/repository"
	"github.com/costpulse/costpulse/pkg/console"
)

// ExportRepositoryImpl writes spend and history reports to files.
type ExportRepositoryImpl struct{}

// NewExportRepository creates a new ExportRepository implementation.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// --- Spend summary exports ---

func (r *ExportRepositoryImpl) ExportToCSV(report entity.SpendReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, report.AccountID, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := []string{
		"Account ID",
		fmt.Sprintf("Month-to-date cost (%s)", report.Windows.MonthToDate),
		fmt.Sprintf("Last month same period (%s)", report.Windows.PreviousEquivalent),
		"Change vs same period",
		fmt.Sprintf("Forecast for %s", report.Windows.MonthToDate.Month()),
		fmt.Sprintf("Last month total (%s)", report.Windows.PreviousFull),
		"Change vs last month",
	}
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	record := []string{
		report.AccountID,
		console.FormatMoney(report.MonthToDate.Current),
		console.FormatMoney(report.MonthToDate.Previous),
		changeString(report.MonthToDate),
		console.FormatMoney(report.Forecast.Current),
		console.FormatMoney(report.Forecast.Previous),
		changeString(report.Forecast),
	}
	if err := writer.Write(record); err != nil {
		return "", fmt.Errorf("error writing CSV record: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToJSON(report entity.SpendReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, report.AccountID, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToPDF(report entity.SpendReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, report.AccountID, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	sectionTitleColor := [3]int{0, 0, 0}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	drawComparison := func(title, prevName, prevDates, currName, currDates string, cmp entity.Comparison) {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)

		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)

		columnWidth := 95.0
		pdf.SetFont("Arial", "B", 10)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.CellFormat(columnWidth, 7, tr(prevName), "B", 0, "L", false, 0, "")
		pdf.CellFormat(columnWidth, 7, tr(currName), "B", 1, "L", false, 0, "")

		pdf.SetFont("Arial", "", 8)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(columnWidth, 5, tr(prevDates), "", 0, "L", false, 0, "")
		pdf.CellFormat(columnWidth, 5, tr(currDates), "", 1, "L", false, 0, "")
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])

		pdf.SetFont("Arial", "B", 16)
		pdf.CellFormat(columnWidth, 12, tr(console.FormatMoney(cmp.Previous)), "", 0, "L", false, 0, "")

		originalR, originalG, originalB := pdf.GetTextColor()
		changeText := ""
		switch {
		case cmp.NewSpend:
			pdf.SetTextColor(192, 0, 0)
			changeText = "  (new spend)"
		case cmp.Direction == entity.DirectionUp:
			pdf.SetTextColor(192, 0, 0)
			changeText = fmt.Sprintf("  (▲ %s)", console.FormatPercent(cmp.PercentChange))
		case cmp.Direction == entity.DirectionDown:
			pdf.SetTextColor(0, 128, 0)
			changeText = fmt.Sprintf("  (▼ %s)", console.FormatPercent(cmp.PercentChange))
		default:
			changeText = "  (0.00%)"
		}

		valueStr := console.FormatMoney(cmp.Current)
		pdf.Cell(pdf.GetStringWidth(valueStr), 12, tr(valueStr))

		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(columnWidth-pdf.GetStringWidth(valueStr), 12, tr(changeText), "", 1, "L", false, 0, "")

		pdf.SetTextColor(originalR, originalG, originalB)
		pdf.Ln(10)
	}

	pdf.AddPage()

	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr("  AWS Cost Summary"), "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Account ID: %s", report.AccountID)), "", 1, "L", true, 0, "")
	pdf.Ln(10)

	drawComparison("Month-to-date Cost",
		"Last month (same period)", report.Windows.PreviousEquivalent.String(),
		"Current month to date", report.Windows.MonthToDate.String(),
		report.MonthToDate)

	drawComparison("Forecast",
		fmt.Sprintf("%s in full", report.Windows.PreviousFull.Month()),
		report.Windows.PreviousFull.String(),
		fmt.Sprintf("%s forecast", report.Windows.MonthToDate.Month()),
		report.Windows.ForecastRemainder.String(),
		report.Forecast)

	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	footerText := fmt.Sprintf("Generated by CostPulse | %s", report.GeneratedAt.Format("2006-01-02"))
	pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 10, tr("Page 1"), "", 0, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToHTML(report entity.SpendReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, report.AccountID, outputDir, "html")
	if err != nil {
		return "", err
	}

	page := summaryPageData{
		AccountID:          report.AccountID,
		MonthToDate:        console.FormatMoney(report.MonthToDate.Current),
		PreviousEquivalent: console.FormatMoney(report.MonthToDate.Previous),
		Forecast:           console.FormatMoney(report.Forecast.Current),
		PreviousTotal:      console.FormatMoney(report.Forecast.Previous),
		MTDChange:          changeCell(report.MonthToDate),
		ForecastChange:     changeCell(report.Forecast),
		GeneratedAt:        report.GeneratedAt.Format("2006-01-02 15:04:05"),
	}

	// Written through a temp file and rename so a page being served
	// during a scheduled refresh is never read half written.
	tmpFile, err := os.CreateTemp(filepath.Dir(outputFilename), ".costpulse-*.html")
	if err != nil {
		return "", fmt.Errorf("error creating HTML file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if err := summaryPage.Execute(tmpFile, page); err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("error rendering HTML page: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("error writing HTML file: %w", err)
	}
	if err := os.Rename(tmpFile.Name(), outputFilename); err != nil {
		return "", fmt.Errorf("error renaming HTML file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// --- History exports ---

func (r *ExportRepositoryImpl) ExportHistoryToCSV(report entity.HistoryReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, report.AccountID, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating history CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := []string{"Month", "Period", "Cost", "Change vs previous month"}
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, month := range report.Months {
		change := "N/A"
		if month.ChangePercent != nil {
			change = console.FormatPercent(*month.ChangePercent)
		}
		record := []string{
			month.Month,
			month.Window.String(),
			console.FormatMoney(month.Cost),
			change,
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportHistoryToJSON(report entity.HistoryReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, report.AccountID, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating history JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return "", fmt.Errorf("error encoding history JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// --- Helpers ---

// generateFilename builds a timestamped file name inside dir and makes
// sure the directory exists. An empty dir means the working directory.
func generateFilename(base, accountID, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}

	name := base
	if accountID != "" {
		name = fmt.Sprintf("%s-%s", base, accountID)
	}
	timestamp := time.Now().Format("20060102-1504")
	return filepath.Join(dir, fmt.Sprintf("%s-%s.%s", name, timestamp, ext)), nil
}

func changeString(cmp entity.Comparison) string {
	if cmp.NewSpend {
		return "new spend"
	}
	return console.FormatPercent(cmp.PercentChange)
}

type changeCellData struct {
	Class string
	Label string
}

func changeCell(cmp entity.Comparison) changeCellData {
	if cmp.NewSpend {
		return changeCellData{Class: "red", Label: "new spend"}
	}

	label := console.FormatPercent(cmp.PercentChange)
	switch cmp.Direction {
	case entity.DirectionUp:
		return changeCellData{Class: "red", Label: label}
	case entity.DirectionDown:
		return changeCellData{Class: "green", Label: label}
	default:
		return changeCellData{Class: "yellow", Label: label}
	}
}

type summaryPageData struct {
	AccountID          string
	MonthToDate        string
	PreviousEquivalent string
	Forecast           string
	PreviousTotal      string
	MTDChange          changeCellData
	ForecastChange     changeCellData
	GeneratedAt        string
}

var summaryPage = template.Must(template.New("summary").Parse(summaryPageTemplate))

const summaryPageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>AWS Cost Summary</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }

        body {
            background-color: #000000;
            color: #ffffff;
            font-family: 'Monaco', 'Menlo', 'Ubuntu Mono', 'Consolas', 'Courier New', monospace;
            padding: 20px;
            min-height: 100vh;
        }

        .container { max-width: 800px; width: 100%; margin: 0 auto; padding: 30px; }
        .account { color: #cccccc; margin-bottom: 25px; }
        .cost-section { margin-bottom: 25px; padding: 15px; border-left: 3px solid #5555ff; }
        .cost-label { font-size: 18px; margin-bottom: 10px; display: flex; align-items: center; gap: 8px; }
        .cost-value { font-size: 28px; margin: 10px 0; }
        .comparison { margin-top: 8px; margin-left: 20px; font-size: 14px; color: #cccccc; }
        .comparison-item { margin: 5px 0; }
        .emoji { font-size: 20px; }
        .update-date { text-align: right; margin-top: 30px; padding-top: 15px; color: #666666; font-size: 12px; }

        .money, .change { font-weight: bold; }
        .cyan { color: #00ffff; }
        .magenta { color: #ff55ff; }
        .yellow { color: #ffff55; }
        .red { color: #ff5555; }
        .green { color: #55ff55; }
    </style>
</head>
<body>
    <div class="container">
        {{if .AccountID}}<div class="account">Account: {{.AccountID}}</div>{{end}}
        <div class="cost-section">
            <div class="cost-label">
                <span class="emoji">📅</span>
                <span>Month-to-date cost:</span>
            </div>
            <div class="cost-value">
                <span class="money cyan">{{.MonthToDate}}</span>
            </div>
            <div class="comparison">
                <div class="comparison-item">
                    ↳ <span class="change {{.MTDChange.Class}}">{{.MTDChange.Label}}</span> compared to last month for the same period
                </div>
                <div class="comparison-item">
                    ↳ Last month's cost for the same period: <span class="money yellow">{{.PreviousEquivalent}}</span>
                </div>
            </div>
        </div>

        <div class="cost-section">
            <div class="cost-label">
                <span class="emoji">🔮</span>
                <span>Total forecasted cost for current month:</span>
            </div>
            <div class="cost-value">
                <span class="money magenta">{{.Forecast}}</span>
            </div>
            <div class="comparison">
                <div class="comparison-item">
                    ↳ <span class="change {{.ForecastChange.Class}}">{{.ForecastChange.Label}}</span> compared to last month's total costs
                </div>
                <div class="comparison-item">
                    ↳ Last month's total cost: <span class="money yellow">{{.PreviousTotal}}</span>
                </div>
            </div>
        </div>

        <div class="update-date">
            Last updated: {{.GeneratedAt}}
        </div>
    </div>
</body>
</html>
`
