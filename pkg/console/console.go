package console

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"

	"github.com/costpulse/costpulse/internal/domain/entity"
	"github.com/costpulse/costpulse/internal/shared/types"
)

// Console is an implementation of ConsoleInterface on top of pterm.
type Console struct{}

// NewConsole creates a new Console.
func NewConsole() *Console {
	return &Console{}
}

// Print writes to the console.
func (c *Console) Print(a ...interface{}) {
	fmt.Print(a...)
}

// Printf writes a formatted string to the console.
func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Printf(format, a...)
}

// Println writes to the console with a trailing newline.
func (c *Console) Println(a ...interface{}) {
	fmt.Println(a...)
}

// LogInfo logs an informational message.
func (c *Console) LogInfo(format string, a ...interface{}) {
	pterm.Info.Printfln(format, a...)
}

// LogWarning logs a warning message.
func (c *Console) LogWarning(format string, a ...interface{}) {
	pterm.Warning.Printfln(format, a...)
}

// LogError logs an error message.
func (c *Console) LogError(format string, a ...interface{}) {
	pterm.Error.Printfln(format, a...)
}

// LogSuccess logs a success message.
func (c *Console) LogSuccess(format string, a ...interface{}) {
	pterm.Success.Printfln(format, a...)
}

// Predefined colors for consistent output
var (
	BrightMagenta = color.New(color.FgMagenta, color.Bold).SprintFunc()
	BrightGreen   = color.New(color.FgGreen, color.Bold).SprintFunc()
	BrightYellow  = color.New(color.FgYellow, color.Bold).SprintFunc()
	BrightRed     = color.New(color.FgRed, color.Bold).SprintFunc()
	BrightCyan    = color.New(color.FgCyan, color.Bold).SprintFunc()
	BrightBlue    = color.New(color.FgBlue, color.Bold).SprintFunc()
)

// statusHandle is an implementation of StatusHandle.
type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

// Status starts a status spinner with the given message.
func (c *Console) Status(message string) types.StatusHandle {
	spinner, _ := pterm.DefaultSpinner.Start(message)
	return &statusHandle{spinner: spinner}
}

// Update replaces the status message.
func (h *statusHandle) Update(message string) {
	if h.spinner != nil {
		h.spinner.UpdateText(message)
	}
}

// Stop stops the status spinner.
func (h *statusHandle) Stop() {
	if h.spinner != nil {
		h.spinner.Stop()
	}
}

// Table is an implementation of TableInterface.
type Table struct {
	columns []string
	rows    [][]string
}

// CreateTable creates a new table.
func (c *Console) CreateTable() types.TableInterface {
	return &Table{
		columns: []string{},
		rows:    [][]string{},
	}
}

// AddColumn adds a column to the table.
func (t *Table) AddColumn(name string, options ...interface{}) {
	t.columns = append(t.columns, name)
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...interface{}) {
	processedCells := make([]string, len(cells))
	for i, cell := range cells {
		processedCells[i] = fmt.Sprint(cell)
	}
	t.rows = append(t.rows, processedCells)
}

// Render renders the table as a string.
func (t *Table) Render() string {
	tableData := pterm.TableData{t.columns}
	for _, row := range t.rows {
		tableData = append(tableData, row)
	}

	table := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(tableData)

	renderedTable, _ := table.Srender()
	return renderedTable
}

var (
	steadyThreshold = decimal.NewFromInt(5)
	clampThreshold  = decimal.NewFromInt(999)
)

// DisplayTrendBars renders proportional cost bars for a monthly run,
// with a month-over-month arrow alongside each bar: rising above +5%,
// falling below -5%, steady in between.
func (c *Console) DisplayTrendBars(months []entity.MonthlyCost) {
	maxCost := decimal.Zero
	for _, m := range months {
		if m.Cost.Amount.GreaterThan(maxCost) {
			maxCost = m.Cost.Amount
		}
	}

	if maxCost.IsZero() {
		pterm.Warning.Println("All costs are $0.00 for this period")
		return
	}

	tableData := pterm.TableData{
		{"Month", "Cost", "", "MoM Change"},
	}

	for i, m := range months {
		ratio := m.Cost.Amount.Div(maxCost).InexactFloat64()
		if ratio < 0 {
			ratio = 0
		}
		bar := strings.Repeat("█", int(ratio*40))

		barColor := pterm.FgBlue.Sprint(bar)
		change := ""
		if i > 0 {
			text, cellColor := trendChangeCell(m)
			change = cellColor.Sprint(text)
			barColor = cellColor.Sprint(bar)
		}

		tableData = append(tableData, []string{
			m.Month,
			FormatMoney(m.Cost),
			barColor,
			change,
		})
	}

	table := pterm.DefaultTable.WithHasHeader().WithData(tableData)
	renderedTable, _ := table.Srender()

	panel := pterm.DefaultBox.WithTitle("AWS Cost History").WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).Sprint(renderedTable)

	fmt.Println("\n" + panel)
}

// trendChangeCell picks the change-column text and color for one month.
func trendChangeCell(m entity.MonthlyCost) (string, pterm.Color) {
	switch {
	case m.ChangePercent == nil:
		// No positive baseline the month before.
		if m.Cost.Amount.IsZero() {
			return "0%", pterm.FgYellow
		}
		return "N/A", pterm.FgRed
	case m.ChangePercent.GreaterThan(clampThreshold):
		return "↗ >+999%", pterm.FgRed
	case m.ChangePercent.LessThan(clampThreshold.Neg()):
		return "↘ >-999%", pterm.FgGreen
	case m.ChangePercent.GreaterThan(steadyThreshold):
		return "↗ " + FormatPercent(*m.ChangePercent), pterm.FgRed
	case m.ChangePercent.LessThan(steadyThreshold.Neg()):
		return "↘ " + FormatPercent(*m.ChangePercent), pterm.FgGreen
	default:
		return "→ " + FormatPercent(*m.ChangePercent), pterm.FgYellow
	}
}
