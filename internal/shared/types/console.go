package types

import "github.com/costpulse/costpulse/internal/domain/entity"

// ConsoleInterface defines the console output surface the use cases
// render through.
type ConsoleInterface interface {
	Print(a ...interface{})
	Printf(format string, a ...interface{})
	Println(a ...interface{})

	LogInfo(format string, a ...interface{})
	LogWarning(format string, a ...interface{})
	LogError(format string, a ...interface{})
	LogSuccess(format string, a ...interface{})

	Status(message string) StatusHandle

	CreateTable() TableInterface
	DisplayTrendBars(months []entity.MonthlyCost)
}

// StatusHandle updates a transient status message.
type StatusHandle interface {
	Update(message string)
	Stop()
}

// TableInterface builds and renders a console table.
type TableInterface interface {
	AddColumn(name string, options ...interface{})
	AddRow(cells ...interface{})
	Render() string
}
