package http

import (
	"net/http"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Replace(w http.ResponseWriter, r *http.Request)
	Archive(w http.ResponseWriter, r *http.Request)
	Terminate(w http.ResponseWriter, r *http.Request)
	ResetPIN(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{employeeService: employeeService}
}

// Create implements EmployeeHandler. The temporary PIN is only ever
// returned here.
func (h *employeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.employeeService.CreateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", resp)
}

// List implements EmployeeHandler.
func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := employee.EmployeeFilter{Status: optionalQuery(r, "status")}

	employees, err := h.employeeService.ListEmployees(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employees)
}

// Get implements EmployeeHandler.
func (h *employeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.employeeService.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Replace implements EmployeeHandler.
func (h *employeeHandlerImpl) Replace(w http.ResponseWriter, r *http.Request) {
	var req employee.ReplaceEmployeeRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	resp, err := h.employeeService.ReplaceEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated successfully", resp)
}

// Archive implements EmployeeHandler.
func (h *employeeHandlerImpl) Archive(w http.ResponseWriter, r *http.Request) {
	if err := h.employeeService.ArchiveEmployee(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee archived successfully", nil)
}

// Terminate implements EmployeeHandler.
func (h *employeeHandlerImpl) Terminate(w http.ResponseWriter, r *http.Request) {
	var req employee.TerminateEmployeeRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	resp, err := h.employeeService.TerminateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee terminated successfully", resp)
}

// ResetPIN implements EmployeeHandler.
func (h *employeeHandlerImpl) ResetPIN(w http.ResponseWriter, r *http.Request) {
	resp, err := h.employeeService.ForcePINReset(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "PIN reset requested", resp)
}
