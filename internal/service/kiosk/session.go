package kiosk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/kiosk"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/secret"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/validator"
	employeesvc "github.com/cmlabs-hris/asistencia-backend-go/internal/service/employee"
)

// Timer is a pending timeout that can be cancelled.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d.
type AfterFunc func(d time.Duration, f func()) Timer

// Deps are the collaborators shared by every session.
type Deps struct {
	Employees  employee.EmployeeRepository
	Attendance attendance.AttendanceRepository
	Notifier   notification.Dispatcher
	Generator  secret.Generator

	Clock     func() time.Time
	AfterFunc AfterFunc
	Pick      MessagePicker
	Location  *time.Location

	ErrorDisplay   time.Duration
	SuccessDisplay time.Duration
}

// Session is a single kiosk interaction. All methods are safe for
// concurrent use; IO runs without holding the lock.
type Session struct {
	id       string
	deps     Deps
	settings settings.GlobalSettings
	onChange func(kiosk.Snapshot)

	mu         sync.Mutex
	state      kiosk.State
	buffer     []byte
	current    *employee.Employee
	message    *string
	isBirthday bool
	lastRecord *attendance.Record
	lastErr    error
	retryable  bool
	busy       bool // identification or PIN rotation in flight
	collisions int  // rotations rejected because the PIN is taken
	marking    bool
	timer      Timer
	timerToken uint64
	closed     bool
	updatedAt  time.Time
}

// NewSession binds a session to one settings snapshot. onChange receives
// every new snapshot while the session lock is held and must not block.
func NewSession(id string, deps Deps, snapshot settings.GlobalSettings, onChange func(kiosk.Snapshot)) *Session {
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	if onChange == nil {
		onChange = func(kiosk.Snapshot) {}
	}
	s := &Session{
		id:       id,
		deps:     deps,
		settings: snapshot,
		onChange: onChange,
		state:    kiosk.StateIdle,
	}
	s.updatedAt = deps.Clock()
	return s
}

func (s *Session) ID() string {
	return s.id
}

// Snapshot returns the current view of the session.
func (s *Session) Snapshot() kiosk.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// LastActivity reports when the session last changed.
func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

func (s *Session) snapshotLocked() kiosk.Snapshot {
	snap := kiosk.Snapshot{
		SessionID:    s.id,
		State:        s.state,
		BufferLength: len(s.buffer),
		Message:      s.message,
		IsBirthday:   s.isBirthday,
		Retryable:    s.retryable,
		Marking:      s.marking,
		UpdatedAt:    s.updatedAt,
	}
	if s.current != nil {
		id, name := s.current.ID, s.current.FullName
		snap.EmployeeID = &id
		snap.EmployeeName = &name
	}
	if s.lastRecord != nil {
		snap.LastRecord = kiosk.NewRecordView(*s.lastRecord)
	}
	if s.lastErr != nil {
		msg := s.lastErr.Error()
		snap.Error = &msg
	}
	return snap
}

// changedLocked stamps and broadcasts the new state.
func (s *Session) changedLocked() kiosk.Snapshot {
	s.updatedAt = s.deps.Clock()
	snap := s.snapshotLocked()
	s.onChange(snap)
	return snap
}

func (s *Session) transitionLocked(next kiosk.State) {
	slog.Debug("Kiosk transition", "session_id", s.id, "from", s.state, "to", next)
	s.state = next
}

// resetLocked returns to idle with an empty buffer and no employee.
func (s *Session) resetLocked() {
	s.cancelTimerLocked()
	s.transitionLocked(kiosk.StateIdle)
	s.buffer = s.buffer[:0]
	s.current = nil
	s.message = nil
	s.isBirthday = false
	s.lastErr = nil
	s.retryable = false
	s.collisions = 0
}

func (s *Session) cancelTimerLocked() {
	s.timerToken++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// scheduleRevertLocked delivers a timeout that returns the session to idle.
// Stale tokens are ignored, so a cancelled or superseded timeout never fires
// a transition.
func (s *Session) scheduleRevertLocked(d time.Duration) {
	s.cancelTimerLocked()
	token := s.timerToken
	s.timer = s.deps.AfterFunc(d, func() { s.timeout(token) })
}

func (s *Session) timeout(token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || token != s.timerToken {
		return
	}
	s.timer = nil
	if s.state != kiosk.StateError && s.state != kiosk.StateSuccess {
		return
	}
	s.resetLocked()
	s.changedLocked()
}

func (s *Session) checkOpenLocked() error {
	if s.closed {
		return kiosk.ErrSessionClosed
	}
	return nil
}

// PressDigit appends a digit. The sixth digit triggers identification.
func (s *Session) PressDigit(ctx context.Context, digit rune) (kiosk.Snapshot, error) {
	s.mu.Lock()
	if err := s.checkOpenLocked(); err != nil {
		s.mu.Unlock()
		return kiosk.Snapshot{}, err
	}
	if digit < '0' || digit > '9' {
		defer s.mu.Unlock()
		return s.snapshotLocked(), kiosk.ErrInvalidDigit
	}
	if s.state != kiosk.StateIdle {
		defer s.mu.Unlock()
		return s.snapshotLocked(), kiosk.ErrInvalidTransition
	}

	s.buffer = append(s.buffer, byte(digit))
	if len(s.buffer) < validator.PINLength {
		defer s.mu.Unlock()
		return s.changedLocked(), nil
	}

	pin := string(s.buffer)
	s.transitionLocked(kiosk.StateIdentifying)
	s.busy = true
	s.changedLocked()
	s.mu.Unlock()

	matches, err := s.deps.Employees.FindActiveByPIN(ctx, pin)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if s.closed || s.state != kiosk.StateIdentifying {
		return s.snapshotLocked(), kiosk.ErrSessionClosed
	}

	switch {
	case err != nil:
		slog.Error("Kiosk employee lookup failed", "session_id", s.id, "error", err)
		s.failLocked(kiosk.ErrPersistenceUnavailable, true)
	case len(matches) != 1:
		if len(matches) > 1 {
			slog.Warn("Kiosk PIN matches several active employees", "session_id", s.id, "matches", len(matches))
		}
		s.failLocked(kiosk.ErrAuthenticationFailed, false)
	default:
		emp := matches[0]
		s.current = &emp
		s.buffer = s.buffer[:0]
		s.lastErr = nil
		s.retryable = false
		if emp.RequiresPINChange() {
			s.transitionLocked(kiosk.StateChangePIN)
		} else {
			s.transitionLocked(kiosk.StateConfirm)
		}
	}
	return s.changedLocked(), nil
}

// failLocked shows an error screen that clears itself.
func (s *Session) failLocked(err error, retryable bool) {
	s.transitionLocked(kiosk.StateError)
	s.current = nil
	s.collisions = 0
	s.lastErr = err
	s.retryable = retryable
	s.scheduleRevertLocked(s.deps.ErrorDisplay)
}

// Backspace removes the last digit.
func (s *Session) Backspace() (kiosk.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpenLocked(); err != nil {
		return kiosk.Snapshot{}, err
	}
	if s.state != kiosk.StateIdle {
		return s.snapshotLocked(), kiosk.ErrInvalidTransition
	}
	if len(s.buffer) > 0 {
		s.buffer = s.buffer[:len(s.buffer)-1]
	}
	return s.changedLocked(), nil
}

// Clear empties the digit buffer.
func (s *Session) Clear() (kiosk.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpenLocked(); err != nil {
		return kiosk.Snapshot{}, err
	}
	if s.state != kiosk.StateIdle {
		return s.snapshotLocked(), kiosk.ErrInvalidTransition
	}
	s.buffer = s.buffer[:0]
	return s.changedLocked(), nil
}

// MaxPINCollisions is how many rotations a session may have rejected for
// choosing a PIN already in use before it drops back to the error screen.
const MaxPINCollisions = 3

// RotatePIN replaces a temporary or reset PIN and moves on to confirm.
func (s *Session) RotatePIN(ctx context.Context, newPIN string) (kiosk.Snapshot, error) {
	s.mu.Lock()
	if err := s.checkOpenLocked(); err != nil {
		s.mu.Unlock()
		return kiosk.Snapshot{}, err
	}
	if s.state != kiosk.StateChangePIN || s.current == nil || s.busy {
		defer s.mu.Unlock()
		return s.snapshotLocked(), kiosk.ErrInvalidTransition
	}
	if !validator.IsValidPIN(newPIN) || newPIN == s.current.PIN {
		defer s.mu.Unlock()
		s.lastErr = kiosk.ErrInvalidPinRotation
		s.retryable = false
		return s.changedLocked(), kiosk.ErrInvalidPinRotation
	}

	updated := *s.current
	updated.PIN = newPIN
	updated.PINChanged = true
	updated.PINNeedsReset = false
	updated.UpdatedAt = s.deps.Clock()
	s.busy = true
	s.mu.Unlock()

	err := employeesvc.CheckPINAvailable(ctx, s.deps.Employees, newPIN, updated.ID)
	if err == nil {
		err = s.deps.Employees.Replace(ctx, updated)
	}

	s.mu.Lock()
	s.busy = false
	if s.closed || s.state != kiosk.StateChangePIN {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		if err != nil {
			return snap, kiosk.ErrSessionClosed
		}
		// the new PIN is stored even though nobody is watching the screen
		s.pinRotated(ctx, updated)
		return snap, nil
	}

	if err != nil {
		defer s.mu.Unlock()
		if errors.Is(err, employee.ErrPINInUse) {
			s.collisions++
			if s.collisions >= MaxPINCollisions {
				slog.Warn("Kiosk PIN rotation abandoned after repeated collisions", "session_id", s.id, "employee_id", updated.ID)
				s.failLocked(kiosk.ErrAuthenticationFailed, false)
				return s.changedLocked(), kiosk.ErrAuthenticationFailed
			}
			s.lastErr = kiosk.ErrInvalidPinRotation
			s.retryable = false
			return s.changedLocked(), fmt.Errorf("%w: %w", kiosk.ErrInvalidPinRotation, err)
		}
		slog.Error("Kiosk PIN rotation failed", "session_id", s.id, "employee_id", updated.ID, "error", err)
		s.lastErr = kiosk.ErrPersistenceUnavailable
		s.retryable = true
		return s.changedLocked(), fmt.Errorf("%w: %w", kiosk.ErrPersistenceUnavailable, err)
	}

	s.current = &updated
	s.lastErr = nil
	s.retryable = false
	s.collisions = 0
	s.transitionLocked(kiosk.StateConfirm)
	snap := s.changedLocked()
	s.mu.Unlock()

	s.pinRotated(ctx, updated)
	return snap, nil
}

func (s *Session) pinRotated(ctx context.Context, updated employee.Employee) {
	slog.Info("Employee rotated PIN", "session_id", s.id, "employee_id", updated.ID)
	s.deps.Notifier.Dispatch(context.WithoutCancel(ctx), notification.TypePinRotated,
		"PIN rotated",
		fmt.Sprintf("%s set a new kiosk PIN", updated.FullName),
		map[string]interface{}{"employee_id": updated.ID})
}

// Mark records one attendance event for the identified employee. A second
// call while the first is still being written fails with ErrMarkInFlight.
func (s *Session) Mark(ctx context.Context, markType attendance.Type) (kiosk.Snapshot, error) {
	s.mu.Lock()
	if err := s.checkOpenLocked(); err != nil {
		s.mu.Unlock()
		return kiosk.Snapshot{}, err
	}
	if s.marking {
		defer s.mu.Unlock()
		return s.snapshotLocked(), kiosk.ErrMarkInFlight
	}
	if s.state != kiosk.StateConfirm || s.current == nil {
		defer s.mu.Unlock()
		return s.snapshotLocked(), kiosk.ErrInvalidTransition
	}

	emp := *s.current
	now := s.deps.Clock().In(s.deps.Location)
	record := attendance.Record{
		ID:         s.deps.Generator.NewID(),
		EmployeeID: emp.ID,
		Timestamp:  now,
		Type:       markType,
		Status:     attendance.StatusConfirmed,
		IsLate:     markType == attendance.TypeIn && s.settings.IsLate(now),
		CreatedAt:  now,
	}
	s.marking = true
	s.lastErr = nil
	s.retryable = false
	s.changedLocked()
	s.mu.Unlock()

	// the employee may have been archived or terminated while confirm was shown
	var created attendance.Record
	fresh, err := s.deps.Employees.GetByID(ctx, emp.ID)
	if errors.Is(err, employee.ErrEmployeeNotFound) || (err == nil && !fresh.IsActive()) {
		err = kiosk.ErrAuthenticationFailed
	} else if err == nil {
		created, err = s.deps.Attendance.Create(ctx, record)
	}

	s.mu.Lock()
	s.marking = false
	if errors.Is(err, kiosk.ErrAuthenticationFailed) {
		defer s.mu.Unlock()
		slog.Warn("Kiosk mark refused for inactive employee", "session_id", s.id, "employee_id", emp.ID)
		if s.closed || s.state != kiosk.StateConfirm {
			return s.snapshotLocked(), err
		}
		s.failLocked(err, false)
		return s.changedLocked(), err
	}
	if err != nil {
		defer s.mu.Unlock()
		slog.Error("Kiosk mark failed", "session_id", s.id, "employee_id", emp.ID, "error", err)
		if s.closed {
			return s.snapshotLocked(), fmt.Errorf("%w: %w", kiosk.ErrPersistenceUnavailable, err)
		}
		s.lastErr = kiosk.ErrPersistenceUnavailable
		s.retryable = true
		return s.changedLocked(), fmt.Errorf("%w: %w", kiosk.ErrPersistenceUnavailable, err)
	}

	if !s.closed && s.state == kiosk.StateConfirm {
		s.lastRecord = &created
		if emp.IsBirthday(now) {
			msg := birthdayGreeting(emp.FullName)
			s.message = &msg
			s.isBirthday = true
		} else {
			msg := greeting(markType, s.deps.Pick)
			s.message = &msg
			s.isBirthday = false
		}
		s.transitionLocked(kiosk.StateSuccess)
		s.scheduleRevertLocked(s.deps.SuccessDisplay)
	}
	snap := s.changedLocked()
	s.mu.Unlock()

	slog.Info("Attendance marked",
		"session_id", s.id, "record_id", created.ID, "employee_id", emp.ID,
		"type", markType, "is_late", created.IsLate)

	if created.IsLate {
		s.deps.Notifier.Dispatch(context.WithoutCancel(ctx), notification.TypeCriticalLateness,
			"Critical lateness",
			fmt.Sprintf("%s clocked in at %s, more than %d minutes after %s",
				emp.FullName, now.Format("15:04"), int(settings.LateThreshold.Minutes()),
				s.settings.Schedule.Weekday.Start.String()),
			map[string]interface{}{"employee_id": emp.ID, "record_id": created.ID})
	}

	return snap, nil
}

// Dismiss leaves a confirm, change_pin, error or success screen.
func (s *Session) Dismiss() (kiosk.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpenLocked(); err != nil {
		return kiosk.Snapshot{}, err
	}
	if s.marking {
		return s.snapshotLocked(), kiosk.ErrMarkInFlight
	}
	switch s.state {
	case kiosk.StateConfirm, kiosk.StateChangePIN, kiosk.StateError, kiosk.StateSuccess:
		s.resetLocked()
		return s.changedLocked(), nil
	case kiosk.StateIdle:
		return s.snapshotLocked(), nil
	}
	return s.snapshotLocked(), kiosk.ErrInvalidTransition
}

// Exit aborts the session from any state. Visible screens are dismissed.
func (s *Session) Exit() kiosk.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return s.snapshotLocked()
	}
	s.resetLocked()
	s.transitionLocked(kiosk.StateExited)
	s.closed = true
	return s.changedLocked()
}

// Close tears the session down, cancelling any pending timeout.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelTimerLocked()
	if !s.closed {
		s.closed = true
		s.state = kiosk.StateExited
	}
}
