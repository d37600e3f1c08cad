package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create appends a new attendance record
	Create(ctx context.Context, record Record) (Record, error)

	GetByID(ctx context.Context, id string) (Record, error)

	// List retrieves attendance records with filters and pagination
	List(ctx context.Context, filter AttendanceFilter) ([]Record, int64, error)

	// Resolve moves a pending record to a terminal status. It is a
	// compare-and-set on pending_approval and returns ErrNotPending otherwise.
	Resolve(ctx context.Context, id string, resolution Resolution) (Record, error)

	// Delete permanently removes a record regardless of status
	Delete(ctx context.Context, id string) error
}

// Resolution carries the fields written when a record leaves pending_approval.
type Resolution struct {
	Status          Status
	ValidatedAt     time.Time
	ValidatedBy     string
	RejectionReason *string
}
