package http

import (
	"net/http"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	Preview(w http.ResponseWriter, r *http.Request)
	Period(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// Preview returns the breakdown of one employee for a month. Nothing is
// persisted.
func (h *payrollHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	req := payroll.PreviewPayrollRequest{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Month:      getIntQueryParam(r, "month", 0),
		Year:       getIntQueryParam(r, "year", 0),
	}

	result, err := h.payrollService.PreviewPayroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) Period(w http.ResponseWriter, r *http.Request) {
	req := payroll.PeriodPayrollRequest{
		Month: getIntQueryParam(r, "month", 0),
		Year:  getIntQueryParam(r, "year", 0),
	}

	result, err := h.payrollService.GeneratePeriodPayroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
