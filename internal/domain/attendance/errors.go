package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound = errors.New("attendance record not found")

	// ErrNotPending means the record was already approved or rejected.
	// Clients should refresh and retry.
	ErrNotPending = errors.New("attendance record is not pending approval")
)
