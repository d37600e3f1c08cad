package report

import (
	"context"
	"io"
)

// ReportService defines the interface for report generation
type ReportService interface {
	// GenerateMonthlyAttendanceReport summarises confirmed marks per employee
	GenerateMonthlyAttendanceReport(ctx context.Context, req MonthlyAttendanceReportRequest) (MonthlyAttendanceReport, error)

	// ExportPayroll writes the period payroll as an XLSX workbook
	ExportPayroll(ctx context.Context, req PayrollExportRequest, w io.Writer) error
}
