package repository

import (
	"github.com/costpulse/costpulse/internal/domain/entity"
)

type ExportRepository interface {
	// Summary report
	ExportToCSV(report entity.SpendReport, filename string, outputDir string) (string, error)
	ExportToJSON(report entity.SpendReport, filename string, outputDir string) (string, error)
	ExportToPDF(report entity.SpendReport, filename string, outputDir string) (string, error)
	ExportToHTML(report entity.SpendReport, filename string, outputDir string) (string, error)

	// History report
	ExportHistoryToCSV(report entity.HistoryReport, filename string, outputDir string) (string, error)
	ExportHistoryToJSON(report entity.HistoryReport, filename string, outputDir string) (string, error)
}
