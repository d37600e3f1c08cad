package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/report"
)

const reportPageSize = 100

type ReportServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	payrollService payroll.PayrollService
	location       *time.Location
	now            func() time.Time
}

func NewReportService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	payrollService payroll.PayrollService,
	location *time.Location,
) report.ReportService {
	if location == nil {
		location = time.UTC
	}
	return &ReportServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		payrollService: payrollService,
		location:       location,
		now:            time.Now,
	}
}

// GenerateMonthlyAttendanceReport generates the monthly attendance report
func (s *ReportServiceImpl) GenerateMonthlyAttendanceReport(ctx context.Context, req report.MonthlyAttendanceReportRequest) (report.MonthlyAttendanceReport, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlyAttendanceReport{}, err
	}

	periodStart := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, s.location)
	periodEnd := periodStart.AddDate(0, 1, 0)

	records, err := s.periodRecords(ctx, periodStart, periodEnd)
	if err != nil {
		return report.MonthlyAttendanceReport{}, err
	}

	employees, err := s.employeeRepo.List(ctx, employee.EmployeeFilter{})
	if err != nil {
		return report.MonthlyAttendanceReport{}, fmt.Errorf("failed to list employees: %w", err)
	}

	byEmployee := make(map[string][]attendance.Record)
	for _, r := range records {
		byEmployee[r.EmployeeID] = append(byEmployee[r.EmployeeID], r)
	}

	rows := make([]report.MonthlyAttendanceEmployee, 0, len(employees))
	for _, e := range employees {
		own := byEmployee[e.ID]
		// archived or terminated employees only appear when they marked
		if !e.IsActive() && len(own) == 0 {
			continue
		}
		rows = append(rows, s.summarise(e, own))
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].EmployeeName < rows[j].EmployeeName
	})

	return report.MonthlyAttendanceReport{
		PeriodMonth: req.Month,
		PeriodYear:  req.Year,
		PeriodStart: periodStart.Format("2006-01-02"),
		PeriodEnd:   periodEnd.AddDate(0, 0, -1).Format("2006-01-02"),
		GeneratedAt: s.now().Format(time.RFC3339),
		Employees:   rows,
	}, nil
}

// periodRecords pages through every record in [from, to).
func (s *ReportServiceImpl) periodRecords(ctx context.Context, from, to time.Time) ([]attendance.Record, error) {
	var all []attendance.Record
	for page := 1; ; page++ {
		batch, total, err := s.attendanceRepo.List(ctx, attendance.AttendanceFilter{
			From:  &from,
			To:    &to,
			Page:  page,
			Limit: reportPageSize,
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

func (s *ReportServiceImpl) summarise(e employee.Employee, records []attendance.Record) report.MonthlyAttendanceEmployee {
	row := report.MonthlyAttendanceEmployee{
		EmployeeID:   e.ID,
		EmployeeName: e.FullName,
		Status:       string(e.Status),
		DailyLogs:    []report.AttendanceDailyLog{},
	}

	// oldest first so the first "in" and the last "out" of a day win
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})

	logs := make(map[string]*report.AttendanceDailyLog)
	var days []string
	for _, r := range records {
		switch r.Status {
		case attendance.StatusPendingApproval:
			row.Summary.PendingRecords++
			continue
		case attendance.StatusRejected:
			row.Summary.RejectedRecords++
			continue
		}

		local := r.Timestamp.In(s.location)
		date := local.Format("2006-01-02")
		day, ok := logs[date]
		if !ok {
			day = &report.AttendanceDailyLog{Date: date, DayOfWeek: local.Weekday().String()}
			logs[date] = day
			days = append(days, date)
		}

		clock := local.Format("15:04")
		switch r.Type {
		case attendance.TypeIn:
			row.Summary.MarksIn++
			if day.ClockIn == nil {
				day.ClockIn = &clock
				day.Late = r.IsLate
			}
		case attendance.TypeOut:
			row.Summary.MarksOut++
			day.ClockOut = &clock
		case attendance.TypeHalfDay:
			day.HalfDay = true
		}
	}

	sort.Strings(days)
	for _, d := range days {
		day := logs[d]
		row.DailyLogs = append(row.DailyLogs, *day)
		row.Summary.DaysPresent++
		if day.Late {
			row.Summary.LateDays++
		}
		if day.HalfDay {
			row.Summary.HalfDays++
		}
	}
	return row
}
