package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/kiosk"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrAdminAccessRequired),
		errors.Is(err, user.ErrReviewerAccessRequired),
		errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())

	// Kiosk errors
	case errors.Is(err, kiosk.ErrAuthenticationFailed):
		ErrorWithCode(w, http.StatusUnauthorized, "AUTHENTICATION_FAILED", err.Error())
	case errors.Is(err, kiosk.ErrInvalidPinRotation):
		ErrorWithCode(w, http.StatusUnprocessableEntity, "INVALID_PIN_ROTATION", kiosk.ErrInvalidPinRotation.Error())
	case errors.Is(err, kiosk.ErrPersistenceUnavailable):
		ServiceUnavailable(w, kiosk.ErrPersistenceUnavailable.Error())
	case errors.Is(err, kiosk.ErrMarkInFlight):
		ErrorWithCode(w, http.StatusConflict, "MARK_IN_FLIGHT", err.Error())
	case errors.Is(err, kiosk.ErrInvalidTransition):
		ErrorWithCode(w, http.StatusConflict, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, kiosk.ErrInvalidDigit):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, kiosk.ErrSessionNotFound):
		NotFound(w, "Kiosk session not found")
	case errors.Is(err, kiosk.ErrSessionClosed):
		ErrorWithCode(w, http.StatusGone, "SESSION_CLOSED", err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound), errors.Is(err, payroll.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeNotActive):
		Conflict(w, "Employee is not active")
	case errors.Is(err, employee.ErrPINInUse):
		Conflict(w, err.Error())
	case errors.Is(err, employee.ErrAlreadyArchived), errors.Is(err, employee.ErrAlreadyTerminated):
		Conflict(w, err.Error())
	case errors.Is(err, employee.ErrInvalidOverSalaryType):
		ValidationError(w, map[string]string{"over_salary_type": err.Error()})
	case errors.Is(err, employee.ErrPINGenerationFailed):
		ServiceUnavailable(w, err.Error())

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrNotPending):
		Conflict(w, "Attendance record already processed")

	// Settings, payroll and notification errors
	case errors.Is(err, settings.ErrInvalidClockTime):
		ValidationError(w, map[string]string{"schedule": err.Error()})
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
