package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	Justify(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Justify implements AttendanceHandler.
func (h *attendanceHandlerImpl) Justify(w http.ResponseWriter, r *http.Request) {
	var req attendance.JustifyAttendanceRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.attendanceService.JustifyAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Justification submitted for approval", resp)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := attendance.AttendanceFilter{
		EmployeeID: optionalQuery(r, "employee_id"),
		StartDate:  optionalQuery(r, "start_date"),
		EndDate:    optionalQuery(r, "end_date"),
		Status:     optionalQuery(r, "status"),
		Type:       optionalQuery(r, "type"),
		Page:       getIntQueryParam(r, "page", 1),
		Limit:      getIntQueryParam(r, "limit", 20),
	}

	results, err := h.attendanceService.ListAttendance(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, results.Attendances, &response.Meta{
		Page:       results.Page,
		Limit:      results.Limit,
		TotalItems: results.TotalCount,
		TotalPages: results.TotalPages,
	})
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.attendanceService.GetAttendance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Approve implements AttendanceHandler.
func (h *attendanceHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	req := attendance.ApproveAttendanceRequest{ID: chi.URLParam(r, "id")}

	resp, err := h.attendanceService.ApproveAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance approved", resp)
}

// Reject implements AttendanceHandler. The body is optional.
func (h *attendanceHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	var req attendance.RejectAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	resp, err := h.attendanceService.RejectAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance rejected", resp)
}

// Delete implements AttendanceHandler.
func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.attendanceService.DeleteAttendance(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance deleted", nil)
}
