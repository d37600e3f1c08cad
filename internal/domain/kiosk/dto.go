package kiosk

import (
	"strings"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/validator"
)

type PressDigitRequest struct {
	Digit string `json:"digit"`
}

func (r *PressDigitRequest) Validate() error {
	if len(r.Digit) != 1 || !validator.IsNumeric(r.Digit) {
		return validator.ValidationErrors{{
			Field:   "digit",
			Message: "digit must be a single character 0-9",
		}}
	}
	return nil
}

type RotatePINRequest struct {
	PIN string `json:"pin"`
}

// Validate only checks presence. Shape errors are reported by the session
// as ErrInvalidPinRotation so the kiosk stays in change_pin.
func (r *RotatePINRequest) Validate() error {
	if validator.IsEmpty(r.PIN) {
		return validator.ValidationErrors{{
			Field:   "pin",
			Message: "pin is required",
		}}
	}
	return nil
}

type MarkRequest struct {
	Type string `json:"type"`
}

func (r *MarkRequest) Validate() error {
	if !validator.IsInSlice(r.Type, attendance.TypeValues) {
		return validator.ValidationErrors{{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(attendance.TypeValues, ", "),
		}}
	}
	return nil
}
