package dashboard

import "github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/validator"

// ========== COMBINED DASHBOARD ==========

// DashboardResponse is the combined response for the main dashboard endpoint
type DashboardResponse struct {
	EmployeeSummary     EmployeeSummaryResponse `json:"employee_summary"`
	AttendanceStats     AttendanceStatsResponse `json:"attendance_stats"`
	PendingApprovals    int64                   `json:"pending_approvals"`
	ActiveKioskSessions int                     `json:"active_kiosk_sessions"`
}

// ========== EMPLOYEE SUMMARY ==========

// EmployeeSummaryResponse contains employee counts by status
type EmployeeSummaryResponse struct {
	TotalEmployee      int64  `json:"total_employee"`
	NewEmployee        int64  `json:"new_employee"` // started within 30 days
	ActiveEmployee     int64  `json:"active_employee"`
	ArchivedEmployee   int64  `json:"archived_employee"`
	TerminatedEmployee int64  `json:"terminated_employee"`
	AwaitingPINChange  int64  `json:"awaiting_pin_change"` // active, temporary or reset PIN
	UpdatedAt          string `json:"updated_at"`
}

// ========== DAILY ATTENDANCE STATS (pie chart) ==========

// AttendanceStatsResponse represents attendance statistics for a specific day.
// Only confirmed "in" and "half_day" marks of active employees count.
type AttendanceStatsResponse struct {
	OnTime        int64   `json:"on_time"`
	Late          int64   `json:"late"`
	Absent        int64   `json:"absent"`
	Total         int64   `json:"total"`
	OnTimePercent float64 `json:"on_time_percent"`
	LatePercent   float64 `json:"late_percent"`
	AbsentPercent float64 `json:"absent_percent"`
	Date          string  `json:"date"` // Format: "YYYY-MM-DD"
}

type DailyAttendanceRequest struct {
	Date string `json:"date"`
}

func (r *DailyAttendanceRequest) Validate() error {
	if r.Date == "" {
		return nil
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		return validator.ValidationErrors{{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		}}
	}
	return nil
}
