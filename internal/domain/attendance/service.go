package attendance

import (
	"context"
)

// AttendanceService covers the review side of attendance: justifications
// for forgotten marks and the approval workflow.
type AttendanceService interface {
	// JustifyAttendance records a forgotten mark awaiting approval
	JustifyAttendance(ctx context.Context, req JustifyAttendanceRequest) (AttendanceResponse, error)

	// ListAttendance retrieves attendance records with filters
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	// ApproveAttendance confirms a pending record
	ApproveAttendance(ctx context.Context, req ApproveAttendanceRequest) (AttendanceResponse, error)

	// RejectAttendance rejects a pending record
	RejectAttendance(ctx context.Context, req RejectAttendanceRequest) (AttendanceResponse, error)

	// DeleteAttendance permanently removes a record. Audit exception.
	DeleteAttendance(ctx context.Context, id string) error
}
