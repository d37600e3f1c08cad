package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/validator"
)

// JustifyAttendanceRequest registers a mark the employee forgot to make at
// the kiosk. The record starts in pending_approval.
type JustifyAttendanceRequest struct {
	EmployeeID    string `json:"employee_id"`
	Timestamp     string `json:"timestamp"` // RFC3339
	Type          string `json:"type"`
	Justification string `json:"justification"`
}

func (r *JustifyAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if _, ok := validator.IsValidDateTime(r.Timestamp); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "timestamp",
			Message: "timestamp must be an ISO8601 date-time",
		})
	}
	if !validator.IsInSlice(r.Type, TypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(TypeValues, ", "),
		})
	}
	if validator.IsEmpty(r.Justification) {
		errs = append(errs, validator.ValidationError{
			Field:   "justification",
			Message: "justification is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    *string `json:"employee_name,omitempty"`
	Timestamp       string  `json:"timestamp"`
	Type            string  `json:"type"`
	Status          string  `json:"status"`
	IsLate          bool    `json:"is_late"`
	Justification   *string `json:"justification,omitempty"`
	ValidatedAt     *string `json:"validated_at,omitempty"`
	ValidatedBy     *string `json:"validated_by,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

func NewAttendanceResponse(r Record) AttendanceResponse {
	resp := AttendanceResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		EmployeeName:    r.EmployeeName,
		Timestamp:       r.Timestamp.Format(time.RFC3339),
		Type:            string(r.Type),
		Status:          string(r.Status),
		IsLate:          r.IsLate,
		Justification:   r.Justification,
		ValidatedBy:     r.ValidatedBy,
		RejectionReason: r.RejectionReason,
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
	}
	if r.ValidatedAt != nil {
		v := r.ValidatedAt.Format(time.RFC3339)
		resp.ValidatedAt = &v
	}
	return resp
}

type AttendanceFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status     *string `json:"status,omitempty"`
	Type       *string `json:"type,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Resolved by Validate from StartDate/EndDate in the kiosk location.
	From *time.Time `json:"-"`
	To   *time.Time `json:"-"` // exclusive
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Status != nil && !validator.IsInSlice(*f.Status, StatusValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(StatusValues, ", "),
		})
	}
	if f.Type != nil && !validator.IsInSlice(*f.Type, TypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(TypeValues, ", "),
		})
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ResolveRange converts StartDate/EndDate into instants in loc. EndDate is
// inclusive, so To is the following midnight.
func (f *AttendanceFilter) ResolveRange(loc *time.Location) {
	if f.StartDate != nil && *f.StartDate != "" {
		if d, err := time.ParseInLocation("2006-01-02", *f.StartDate, loc); err == nil {
			f.From = &d
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		if d, err := time.ParseInLocation("2006-01-02", *f.EndDate, loc); err == nil {
			next := d.AddDate(0, 0, 1)
			f.To = &next
		}
	}
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Attendances []AttendanceResponse `json:"attendances"`
}

type ApproveAttendanceRequest struct {
	ID string `json:"-"`
}

// RejectAttendanceRequest for rejecting attendance
type RejectAttendanceRequest struct {
	ID     string  `json:"-"`
	Reason *string `json:"reason,omitempty"` // Optional rejection reason
}
