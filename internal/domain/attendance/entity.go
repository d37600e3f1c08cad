package attendance

import (
	"time"
)

// Record is an immutable intent to mark presence. Only Status, ValidatedAt,
// ValidatedBy and RejectionReason change after creation.
type Record struct {
	ID              string
	EmployeeID      string
	Timestamp       time.Time
	Type            Type
	Status          Status
	IsLate          bool
	Justification   *string
	ValidatedAt     *time.Time
	ValidatedBy     *string
	RejectionReason *string
	CreatedAt       time.Time

	// DTO
	EmployeeName *string
}

type Type string

const (
	TypeIn      Type = "in"
	TypeOut     Type = "out"
	TypeHalfDay Type = "half_day"
)

var TypeValues = []string{
	string(TypeIn),
	string(TypeOut),
	string(TypeHalfDay),
}

type Status string

const (
	StatusConfirmed       Status = "confirmed"
	StatusPendingApproval Status = "pending_approval"
	StatusRejected        Status = "rejected"
)

var StatusValues = []string{
	string(StatusConfirmed),
	string(StatusPendingApproval),
	string(StatusRejected),
}

// IsPending reports whether the record still awaits a reviewer decision.
func (r Record) IsPending() bool {
	return r.Status == StatusPendingApproval
}
