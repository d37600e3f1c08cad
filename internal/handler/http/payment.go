package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/payment"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/handler/http/response"
)

type PaymentHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type paymentHandlerImpl struct {
	paymentService payment.PaymentService
}

func NewPaymentHandler(paymentService payment.PaymentService) PaymentHandler {
	return &paymentHandlerImpl{paymentService: paymentService}
}

func (h *paymentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := payment.PaymentFilter{
		EmployeeID: optionalQuery(r, "employee_id"),
		Type:       optionalQuery(r, "type"),
		Status:     optionalQuery(r, "status"),
	}

	for key, dst := range map[string]**int{"month": &filter.Month, "year": &filter.Year} {
		raw := r.URL.Query().Get(key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "Invalid query parameter", map[string]string{key: key + " must be a number"})
			return
		}
		*dst = &n
	}

	payments, err := h.paymentService.ListPayments(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payments)
}
