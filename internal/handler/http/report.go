package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/handler/http/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler interface {
	// Monthly Attendance Report
	GetMonthlyAttendanceReport(w http.ResponseWriter, r *http.Request)

	// Payroll spreadsheet download
	ExportPayroll(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

// GetMonthlyAttendanceReport handles GET /reports/attendance?month=&year=
func (h *reportHandlerImpl) GetMonthlyAttendanceReport(w http.ResponseWriter, r *http.Request) {
	req := report.MonthlyAttendanceReportRequest{
		Month: getIntQueryParam(r, "month", 0),
		Year:  getIntQueryParam(r, "year", 0),
	}

	result, err := h.reportService.GenerateMonthlyAttendanceReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportPayroll handles GET /reports/payroll.xlsx?month=&year=. The workbook
// is buffered so failures still produce a JSON error.
func (h *reportHandlerImpl) ExportPayroll(w http.ResponseWriter, r *http.Request) {
	req := report.PayrollExportRequest{
		Month: getIntQueryParam(r, "month", 0),
		Year:  getIntQueryParam(r, "year", 0),
	}

	var buf bytes.Buffer
	if err := h.reportService.ExportPayroll(r.Context(), req, &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("payroll-%04d-%02d.xlsx", req.Year, req.Month)
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("Failed to send payroll export", "error", err)
	}
}
