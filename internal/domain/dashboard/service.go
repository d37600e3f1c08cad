package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetDashboard returns combined dashboard data for today
	GetDashboard(ctx context.Context) (*DashboardResponse, error)

	// GetDailyAttendanceStats returns attendance statistics for a specific day
	GetDailyAttendanceStats(ctx context.Context, req DailyAttendanceRequest) (*AttendanceStatsResponse, error)
}
