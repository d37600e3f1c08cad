package report

import (
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/validator"
)

// ========================================
// MONTHLY ATTENDANCE REPORT
// ========================================

type MonthlyAttendanceReportRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *MonthlyAttendanceReportRequest) Validate() error {
	return validatePeriod(r.Month, r.Year)
}

type MonthlyAttendanceReport struct {
	PeriodMonth int    `json:"period_month"`
	PeriodYear  int    `json:"period_year"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	GeneratedAt string `json:"generated_at"`

	Employees []MonthlyAttendanceEmployee `json:"employees"`
}

type MonthlyAttendanceEmployee struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Status       string `json:"status"`

	Summary   AttendanceSummary    `json:"summary"`
	DailyLogs []AttendanceDailyLog `json:"daily_logs"`
}

// AttendanceSummary counts confirmed marks per type. Pending and rejected
// records are reported separately and never reach the daily logs.
type AttendanceSummary struct {
	DaysPresent     int `json:"days_present"`
	LateDays        int `json:"late_days"`
	HalfDays        int `json:"half_days"`
	MarksIn         int `json:"marks_in"`
	MarksOut        int `json:"marks_out"`
	PendingRecords  int `json:"pending_records"`
	RejectedRecords int `json:"rejected_records"`
}

type AttendanceDailyLog struct {
	Date      string  `json:"date"`
	DayOfWeek string  `json:"day_of_week"`
	ClockIn   *string `json:"clock_in"`
	ClockOut  *string `json:"clock_out"`
	HalfDay   bool    `json:"half_day"`
	Late      bool    `json:"late"`
}

// ========================================
// PAYROLL SPREADSHEET
// ========================================

type PayrollExportRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *PayrollExportRequest) Validate() error {
	return validatePeriod(r.Month, r.Year)
}

func validatePeriod(month, year int) error {
	var errs validator.ValidationErrors

	if !validator.IsValidMonth(month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if year < 2000 || year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
