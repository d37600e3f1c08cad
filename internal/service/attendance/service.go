package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/secret"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	settings   settings.Provider
	generator  secret.Generator
	dispatcher notification.Dispatcher
	location   *time.Location
	now        func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	settingsProvider settings.Provider,
	generator secret.Generator,
	dispatcher notification.Dispatcher,
	location *time.Location,
) attendance.AttendanceService {
	if location == nil {
		location = time.UTC
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		settings:             settingsProvider,
		generator:            generator,
		dispatcher:           dispatcher,
		location:             location,
		now:                  time.Now,
	}
}

// JustifyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) JustifyAttendance(ctx context.Context, req attendance.JustifyAttendanceRequest) (attendance.AttendanceResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.AttendanceResponse{}, employee.ErrEmployeeNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.IsActive() {
		return attendance.AttendanceResponse{}, employee.ErrEmployeeNotActive
	}

	ts, _ := time.Parse(time.RFC3339, req.Timestamp)
	ts = ts.In(a.location)
	markType := attendance.Type(req.Type)
	justification := strings.TrimSpace(req.Justification)

	record := attendance.Record{
		ID:            a.generator.NewID(),
		EmployeeID:    emp.ID,
		Timestamp:     ts,
		Type:          markType,
		Status:        attendance.StatusPendingApproval,
		IsLate:        markType == attendance.TypeIn && a.settings.Current().IsLate(ts),
		Justification: &justification,
		CreatedAt:     a.now(),
	}

	created, err := a.AttendanceRepository.Create(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	created.EmployeeName = &emp.FullName

	slog.Info("Attendance justification recorded",
		"record_id", created.ID, "employee_id", emp.ID, "actor_id", claims.UserID, "type", markType)

	a.dispatcher.Dispatch(context.WithoutCancel(ctx), notification.TypeAttendanceJustified,
		"Attendance pending approval",
		fmt.Sprintf("%s: %s mark at %s awaits review", emp.FullName, markType, ts.Format("2006-01-02 15:04")),
		map[string]interface{}{"record_id": created.ID, "employee_id": emp.ID})

	return attendance.NewAttendanceResponse(created), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	filter.ResolveRange(a.location)

	records, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.NewAttendanceResponse(r))
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  int(math.Ceil(float64(total) / float64(filter.Limit))),
		Attendances: responses,
	}, nil
}

// GetAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	record, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return attendance.NewAttendanceResponse(record), nil
}

// ApproveAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ApproveAttendance(ctx context.Context, req attendance.ApproveAttendanceRequest) (attendance.AttendanceResponse, error) {
	return a.resolve(ctx, req.ID, attendance.StatusConfirmed, nil)
}

// RejectAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) RejectAttendance(ctx context.Context, req attendance.RejectAttendanceRequest) (attendance.AttendanceResponse, error) {
	var reason *string
	if req.Reason != nil && strings.TrimSpace(*req.Reason) != "" {
		r := strings.TrimSpace(*req.Reason)
		reason = &r
	}
	return a.resolve(ctx, req.ID, attendance.StatusRejected, reason)
}

func (a *AttendanceServiceImpl) resolve(ctx context.Context, id string, status attendance.Status, reason *string) (attendance.AttendanceResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	updated, err := a.AttendanceRepository.Resolve(ctx, id, attendance.Resolution{
		Status:          status,
		ValidatedAt:     a.now(),
		ValidatedBy:     claims.UserID,
		RejectionReason: reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, attendance.ErrAttendanceNotFound):
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		case errors.Is(err, attendance.ErrNotPending):
			return attendance.AttendanceResponse{}, attendance.ErrNotPending
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to resolve attendance: %w", err)
	}

	slog.Info("Attendance resolved", "record_id", id, "status", status, "actor_id", claims.UserID)
	return attendance.NewAttendanceResponse(updated), nil
}

// DeleteAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id string) error {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	record, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to get attendance: %w", err)
	}

	if err := a.AttendanceRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to delete attendance: %w", err)
	}

	slog.Warn("Attendance record deleted",
		"audit", true,
		"record_id", id,
		"employee_id", record.EmployeeID,
		"status", record.Status,
		"timestamp", record.Timestamp,
		"actor_id", claims.UserID,
		"actor_role", claims.Role)

	return nil
}
