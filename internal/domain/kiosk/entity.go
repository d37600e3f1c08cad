package kiosk

import (
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/attendance"
)

type State string

const (
	StateIdle        State = "idle"
	StateIdentifying State = "identifying"
	StateConfirm     State = "confirm"
	StateChangePIN   State = "change_pin"
	StateError       State = "error"
	StateSuccess     State = "success"
	StateExited      State = "exited"
)

// Snapshot is the externally visible view of a kiosk session. It never
// exposes the entered digits.
type Snapshot struct {
	SessionID    string      `json:"session_id"`
	State        State       `json:"state"`
	BufferLength int         `json:"buffer_length"`
	EmployeeID   *string     `json:"employee_id,omitempty"`
	EmployeeName *string     `json:"employee_name,omitempty"`
	Message      *string     `json:"message,omitempty"`
	IsBirthday   bool        `json:"is_birthday"`
	LastRecord   *RecordView `json:"last_record,omitempty"`
	Error        *string     `json:"error,omitempty"`
	Retryable    bool        `json:"retryable"`
	Marking      bool        `json:"marking"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

type RecordView struct {
	ID        string          `json:"id"`
	Type      attendance.Type `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	IsLate    bool            `json:"is_late"`
}

func NewRecordView(r attendance.Record) *RecordView {
	return &RecordView{
		ID:        r.ID,
		Type:      r.Type,
		Timestamp: r.Timestamp,
		IsLate:    r.IsLate,
	}
}
