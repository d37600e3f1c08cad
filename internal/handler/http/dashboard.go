package http

import (
	"net/http"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetDashboard returns combined dashboard data
	GetDashboard(w http.ResponseWriter, r *http.Request)
	// GetDailyAttendanceStats returns attendance stats for a day
	GetDailyAttendanceStats(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetDashboard handles GET /dashboard
func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetDashboard(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetDailyAttendanceStats handles GET /dashboard/attendance?date=YYYY-MM-DD
func (h *dashboardHandlerImpl) GetDailyAttendanceStats(w http.ResponseWriter, r *http.Request) {
	req := dashboard.DailyAttendanceRequest{Date: r.URL.Query().Get("date")}

	result, err := h.dashboardService.GetDailyAttendanceStats(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
