package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/costpulse/costpulse/internal/domain/entity"
	"github.com/costpulse/costpulse/internal/domain/period"
	"github.com/costpulse/costpulse/internal/domain/repository"
	"github.com/costpulse/costpulse/internal/shared/types"
)

var (
	_ repository.BillingRepository = (*fakeBillingRepository)(nil)
	_ repository.ExportRepository  = (*fakeExportRepository)(nil)
	_ types.ConsoleInterface       = (*recordingConsole)(nil)
)

// fakeBillingRepository answers billing calls through per-method hooks
// and records the windows each call received. The recording is locked
// because the summary fan-out calls it from several goroutines.
type fakeBillingRepository struct {
	mu sync.Mutex

	GetAccountIDFunc    func(ctx context.Context) (string, error)
	GetActualCostFunc   func(ctx context.Context, window period.Window) (entity.CostFigure, error)
	GetForecastCostFunc func(ctx context.Context, window period.Window) (entity.CostFigure, error)
	GetMonthlyCostsFunc func(ctx context.Context, windows []period.Window) ([]entity.MonthlyCost, error)

	accountCalls    int
	actualWindows   []period.Window
	forecastWindows []period.Window
	monthlyWindows  [][]period.Window
}

func (f *fakeBillingRepository) GetAccountID(ctx context.Context) (string, error) {
	f.mu.Lock()
	f.accountCalls++
	f.mu.Unlock()
	if f.GetAccountIDFunc == nil {
		return "123456789012", nil
	}
	return f.GetAccountIDFunc(ctx)
}

func (f *fakeBillingRepository) GetActualCost(ctx context.Context, window period.Window) (entity.CostFigure, error) {
	f.mu.Lock()
	f.actualWindows = append(f.actualWindows, window)
	f.mu.Unlock()
	if f.GetActualCostFunc == nil {
		return entity.ZeroCost("USD"), nil
	}
	return f.GetActualCostFunc(ctx, window)
}

func (f *fakeBillingRepository) GetForecastCost(ctx context.Context, window period.Window) (entity.CostFigure, error) {
	f.mu.Lock()
	f.forecastWindows = append(f.forecastWindows, window)
	f.mu.Unlock()
	if f.GetForecastCostFunc == nil {
		return entity.ZeroCost("USD"), nil
	}
	return f.GetForecastCostFunc(ctx, window)
}

func (f *fakeBillingRepository) GetMonthlyCosts(ctx context.Context, windows []period.Window) ([]entity.MonthlyCost, error) {
	f.mu.Lock()
	f.monthlyWindows = append(f.monthlyWindows, windows)
	f.mu.Unlock()
	if f.GetMonthlyCostsFunc == nil {
		return nil, nil
	}
	return f.GetMonthlyCostsFunc(ctx, windows)
}

func (f *fakeBillingRepository) billingCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.actualWindows) + len(f.forecastWindows) + len(f.monthlyWindows)
}

type exportCall struct {
	kind     string
	filename string
	dir      string
}

// fakeExportRepository records export invocations and fails the kinds
// listed in failKinds.
type fakeExportRepository struct {
	mu        sync.Mutex
	calls     []exportCall
	failKinds map[string]bool
}

func (f *fakeExportRepository) record(kind, filename, dir string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, exportCall{kind: kind, filename: filename, dir: dir})
	f.mu.Unlock()
	if f.failKinds[kind] {
		return "", fmt.Errorf("%s export failed", kind)
	}
	return fmt.Sprintf("%s/%s.%s", dir, filename, kind), nil
}

func (f *fakeExportRepository) ExportToCSV(_ entity.SpendReport, filename, dir string) (string, error) {
	return f.record("csv", filename, dir)
}

func (f *fakeExportRepository) ExportToJSON(_ entity.SpendReport, filename, dir string) (string, error) {
	return f.record("json", filename, dir)
}

func (f *fakeExportRepository) ExportToPDF(_ entity.SpendReport, filename, dir string) (string, error) {
	return f.record("pdf", filename, dir)
}

func (f *fakeExportRepository) ExportToHTML(_ entity.SpendReport, filename, dir string) (string, error) {
	return f.record("html", filename, dir)
}

func (f *fakeExportRepository) ExportHistoryToCSV(_ entity.HistoryReport, filename, dir string) (string, error) {
	return f.record("history-csv", filename, dir)
}

func (f *fakeExportRepository) ExportHistoryToJSON(_ entity.HistoryReport, filename, dir string) (string, error) {
	return f.record("history-json", filename, dir)
}

func (f *fakeExportRepository) kinds() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	kinds := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		kinds = append(kinds, c.kind)
	}
	return kinds
}

// recordingConsole captures everything the use cases print.
type recordingConsole struct {
	mu        sync.Mutex
	lines     []string
	infos     []string
	warnings  []string
	errors    []string
	successes []string
	statuses  []string
	trendBars [][]entity.MonthlyCost
	tables    []*recordingTable
}

func (c *recordingConsole) append(dst *[]string, s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	*dst = append(*dst, s)
}

func (c *recordingConsole) Print(a ...interface{}) { c.append(&c.lines, fmt.Sprint(a...)) }

func (c *recordingConsole) Printf(format string, a ...interface{}) {
	c.append(&c.lines, fmt.Sprintf(format, a...))
}

func (c *recordingConsole) Println(a ...interface{}) { c.append(&c.lines, fmt.Sprint(a...)) }

func (c *recordingConsole) LogInfo(format string, a ...interface{}) {
	c.append(&c.infos, fmt.Sprintf(format, a...))
}

func (c *recordingConsole) LogWarning(format string, a ...interface{}) {
	c.append(&c.warnings, fmt.Sprintf(format, a...))
}

func (c *recordingConsole) LogError(format string, a ...interface{}) {
	c.append(&c.errors, fmt.Sprintf(format, a...))
}

func (c *recordingConsole) LogSuccess(format string, a ...interface{}) {
	c.append(&c.successes, fmt.Sprintf(format, a...))
}

func (c *recordingConsole) Status(message string) types.StatusHandle {
	c.append(&c.statuses, message)
	return &recordingStatus{console: c}
}

func (c *recordingConsole) CreateTable() types.TableInterface {
	table := &recordingTable{}
	c.mu.Lock()
	c.tables = append(c.tables, table)
	c.mu.Unlock()
	return table
}

func (c *recordingConsole) DisplayTrendBars(months []entity.MonthlyCost) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trendBars = append(c.trendBars, months)
}

func (c *recordingConsole) output() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return strings.Join(c.lines, "\n")
}

type recordingStatus struct {
	console *recordingConsole
}

func (s *recordingStatus) Update(message string) { s.console.append(&s.console.statuses, message) }

func (s *recordingStatus) Stop() {}

type recordingTable struct {
	columns []string
	rows    [][]string
}

func (t *recordingTable) AddColumn(name string, options ...interface{}) {
	t.columns = append(t.columns, name)
}

func (t *recordingTable) AddRow(cells ...interface{}) {
	row := make([]string, len(cells))
	for i, cell := range cells {
		row[i] = fmt.Sprint(cell)
	}
	t.rows = append(t.rows, row)
}

func (t *recordingTable) Render() string { return "[windows table]" }
