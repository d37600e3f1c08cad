package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/employee"
	"golang.org/x/sync/errgroup"
)

// SessionCounter reports how many kiosk sessions are open.
type SessionCounter interface {
	ActiveSessions() int
}

type DashboardServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	kiosks         SessionCounter
	location       *time.Location
	now            func() time.Time
}

func NewDashboardService(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	kiosks SessionCounter,
	location *time.Location,
) dashboard.DashboardService {
	if location == nil {
		location = time.UTC
	}
	return &DashboardServiceImpl{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		kiosks:         kiosks,
		location:       location,
		now:            time.Now,
	}
}

// GetDashboard returns combined dashboard data using parallel goroutines
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context) (*dashboard.DashboardResponse, error) {
	now := s.now().In(s.location)

	var (
		employees       []employee.Employee
		dayRecords      []attendance.Record
		pendingApproval int64
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		employees, err = s.employeeRepo.List(gCtx, employee.EmployeeFilter{})
		if err != nil {
			return fmt.Errorf("failed to list employees: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		dayRecords, err = s.dayRecords(gCtx, now)
		return err
	})

	g.Go(func() error {
		pending := string(attendance.StatusPendingApproval)
		_, total, err := s.attendanceRepo.List(gCtx, attendance.AttendanceFilter{Status: &pending, Page: 1, Limit: 1})
		if err != nil {
			return fmt.Errorf("failed to count pending records: %w", err)
		}
		pendingApproval = total
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp := &dashboard.DashboardResponse{
		EmployeeSummary:  summariseEmployees(employees, now),
		AttendanceStats:  attendanceStats(employees, dayRecords, now),
		PendingApprovals: pendingApproval,
	}
	if s.kiosks != nil {
		resp.ActiveKioskSessions = s.kiosks.ActiveSessions()
	}
	return resp, nil
}

// GetDailyAttendanceStats returns on-time/late/absent counts for a day.
// An empty date means today.
func (s *DashboardServiceImpl) GetDailyAttendanceStats(ctx context.Context, req dashboard.DailyAttendanceRequest) (*dashboard.AttendanceStatsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	day := s.now().In(s.location)
	if req.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.Date, s.location)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}
		day = parsed
	}

	active := string(employee.StatusActive)
	employees, err := s.employeeRepo.List(ctx, employee.EmployeeFilter{Status: &active})
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	records, err := s.dayRecords(ctx, day)
	if err != nil {
		return nil, err
	}

	stats := attendanceStats(employees, records, day)
	return &stats, nil
}

// dayRecords returns the confirmed records of the civil day containing t.
func (s *DashboardServiceImpl) dayRecords(ctx context.Context, t time.Time) ([]attendance.Record, error) {
	from := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.location)
	to := from.AddDate(0, 0, 1)
	confirmed := string(attendance.StatusConfirmed)

	var all []attendance.Record
	for page := 1; ; page++ {
		batch, total, err := s.attendanceRepo.List(ctx, attendance.AttendanceFilter{
			Status: &confirmed,
			From:   &from,
			To:     &to,
			Page:   page,
			Limit:  100,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to get attendance data: %w", err)
		}
		all = append(all, batch...)
		if len(batch) == 0 || int64(len(all)) >= total {
			return all, nil
		}
	}
}

func summariseEmployees(employees []employee.Employee, now time.Time) dashboard.EmployeeSummaryResponse {
	since := now.AddDate(0, 0, -30)
	summary := dashboard.EmployeeSummaryResponse{
		TotalEmployee: int64(len(employees)),
		UpdatedAt:     now.Format(time.RFC3339),
	}
	for _, e := range employees {
		switch e.Status {
		case employee.StatusActive:
			summary.ActiveEmployee++
			if !e.PINChanged || e.PINNeedsReset {
				summary.AwaitingPINChange++
			}
		case employee.StatusArchived:
			summary.ArchivedEmployee++
		case employee.StatusTerminated:
			summary.TerminatedEmployee++
		}
		if !e.StartDate.Before(since) && !e.StartDate.After(now) {
			summary.NewEmployee++
		}
	}
	return summary
}

func attendanceStats(employees []employee.Employee, records []attendance.Record, day time.Time) dashboard.AttendanceStatsResponse {
	// earliest presence mark per employee decides on-time vs late
	first := make(map[string]attendance.Record)
	for _, r := range records {
		if r.Type == attendance.TypeOut {
			continue
		}
		if cur, ok := first[r.EmployeeID]; !ok || r.Timestamp.Before(cur.Timestamp) {
			first[r.EmployeeID] = r
		}
	}

	var stats dashboard.AttendanceStatsResponse
	for _, e := range employees {
		if !e.IsActive() {
			continue
		}
		r, ok := first[e.ID]
		switch {
		case !ok:
			stats.Absent++
		case r.IsLate:
			stats.Late++
		default:
			stats.OnTime++
		}
	}

	stats.Total = stats.OnTime + stats.Late + stats.Absent
	if stats.Total > 0 {
		stats.OnTimePercent = float64(stats.OnTime) / float64(stats.Total) * 100
		stats.LatePercent = float64(stats.Late) / float64(stats.Total) * 100
		stats.AbsentPercent = float64(stats.Absent) / float64(stats.Total) * 100
	}
	stats.Date = day.Format("2006-01-02")
	return stats
}
