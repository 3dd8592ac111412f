package period

import (
	"fmt"
	"time"
)

// DateLayout is the date format the billing API expects.
const DateLayout = "2006-01-02"

// Window is a half-open date range [Start, End) scoping a cost query.
// Start and End are UTC midnights and Start is never after End.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Days returns the number of whole days the window covers.
func (w Window) Days() int {
	return int(w.End.Sub(w.Start).Hours() / 24)
}

// Format returns the start and end dates in the billing API's layout.
func (w Window) Format() (string, string) {
	return w.Start.Format(DateLayout), w.End.Format(DateLayout)
}

// Month returns a human label for the month the window starts in.
func (w Window) Month() string {
	return w.Start.Format("January 2006")
}

func (w Window) String() string {
	start, end := w.Format()
	return fmt.Sprintf("%s to %s", start, end)
}

// Windows holds the four query windows derived from a single "today".
type Windows struct {
	MonthToDate        Window `json:"month_to_date"`
	PreviousEquivalent Window `json:"previous_equivalent"`
	ForecastRemainder  Window `json:"forecast_remainder"`
	PreviousFull       Window `json:"previous_full"`
}

// MonthWindows derives the summary windows from today's date:
// month to date, the equivalent stretch of the previous month, the
// remainder of the current month for the forecast, and the previous
// month in full. Ends are exclusive.
func MonthWindows(today time.Time) Windows {
	day := midnight(today)
	monthStart := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	prevStart := monthStart.AddDate(0, -1, 0)
	nextStart := monthStart.AddDate(0, 1, 0)

	// Days elapsed this month. On the 1st nothing has elapsed yet, so
	// both short windows cover one day instead of an empty range the
	// billing API rejects.
	span := day.Day() - 1
	if span == 0 {
		span = 1
	}

	mtdEnd := day
	if !mtdEnd.After(monthStart) {
		mtdEnd = monthStart.AddDate(0, 0, 1)
	}

	// Clamp to the previous month's last valid day when this month has
	// run longer than the previous month did (e.g. the 31st against
	// February).
	prevEnd := prevStart.AddDate(0, 0, span)
	if lastDay := monthStart.AddDate(0, 0, -1); prevEnd.After(lastDay) {
		prevEnd = lastDay
	}

	return Windows{
		MonthToDate:        Window{Start: monthStart, End: mtdEnd},
		PreviousEquivalent: Window{Start: prevStart, End: prevEnd},
		ForecastRemainder:  Window{Start: day, End: nextStart},
		PreviousFull:       Window{Start: prevStart, End: monthStart},
	}
}

// LastMonths returns the n most recent month windows, oldest first. The
// final window runs from the 1st of the current month to today; earlier
// windows are full calendar months.
func LastMonths(today time.Time, n int) []Window {
	if n < 1 {
		return nil
	}

	day := midnight(today)
	monthStart := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)

	windows := make([]Window, 0, n)
	for i := n - 1; i >= 0; i-- {
		start := monthStart.AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0)
		if i == 0 {
			end = day
			if !end.After(start) {
				end = start.AddDate(0, 0, 1)
			}
		}
		windows = append(windows, Window{Start: start, End: end})
	}
	return windows
}

func midnight(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
