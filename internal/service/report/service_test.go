package report

import (
	"bytes"
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/repository/memory"
	payrollService "github.com/cmlabs-hris/asistencia-backend-go/internal/service/payroll"
	settingsService "github.com/cmlabs-hris/asistencia-backend-go/internal/service/settings"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var guayaquil = time.FixedZone("ECT", -5*60*60)

type fixture struct {
	svc        report.ReportService
	payroll    payroll.PayrollService
	attendance *memory.AttendanceRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	terminated := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	employees := memory.NewEmployeeRepository(
		employee.Employee{
			ID: "e1", FullName: "Ana Torres", PIN: "123456", PINChanged: true,
			Salary: decimal.RequireFromString("600.00"), IsAffiliated: true,
			OverSalaryType: employee.OverSalaryMonthly,
			StartDate:      time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC),
			Status:         employee.StatusActive,
		},
		employee.Employee{
			ID: "e2", FullName: "Bruno Vera", PIN: "222222",
			Salary:         decimal.RequireFromString("482.00"),
			OverSalaryType: employee.OverSalaryNone,
			StartDate:      time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC),
			Status:         employee.StatusTerminated, TerminationDate: &terminated,
		},
		employee.Employee{
			ID: "e3", FullName: "Carla Ruiz", PIN: "333333", PINChanged: true,
			Salary:         decimal.RequireFromString("482.00"),
			OverSalaryType: employee.OverSalaryNone,
			StartDate:      time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			Status:         employee.StatusActive,
		},
	)
	attendanceRepo := memory.NewAttendanceRepository()
	payments := memory.NewPaymentRepository()
	provider := settingsService.NewProvider(memory.NewSettingsRepository())
	payrollSvc := payrollService.NewPayrollService(employees, payments, provider, payrollService.NewCalculator())

	return &fixture{
		svc:        NewReportService(attendanceRepo, employees, payrollSvc, guayaquil),
		payroll:    payrollSvc,
		attendance: attendanceRepo,
	}
}

func (f *fixture) mark(t *testing.T, id, employeeID string, ts time.Time, typ attendance.Type, status attendance.Status, late bool) {
	t.Helper()
	_, err := f.attendance.Create(context.Background(), attendance.Record{
		ID: id, EmployeeID: employeeID, Timestamp: ts, Type: typ, Status: status, IsLate: late, CreatedAt: ts,
	})
	require.NoError(t, err)
}

func at(day, hour, minute int) time.Time {
	return time.Date(2024, 3, day, hour, minute, 0, 0, guayaquil)
}

func TestGenerateMonthlyAttendanceReport(t *testing.T) {
	f := newFixture(t)

	f.mark(t, "r1", "e1", at(5, 8, 50), attendance.TypeIn, attendance.StatusConfirmed, true)
	f.mark(t, "r2", "e1", at(5, 17, 31), attendance.TypeOut, attendance.StatusConfirmed, false)
	f.mark(t, "r3", "e1", at(6, 8, 20), attendance.TypeIn, attendance.StatusConfirmed, false)
	f.mark(t, "r4", "e1", at(6, 9, 0), attendance.TypeIn, attendance.StatusConfirmed, true)
	f.mark(t, "r5", "e1", at(9, 13, 0), attendance.TypeHalfDay, attendance.StatusConfirmed, false)
	f.mark(t, "r6", "e1", at(7, 8, 30), attendance.TypeIn, attendance.StatusPendingApproval, false)
	f.mark(t, "r7", "e1", at(8, 8, 30), attendance.TypeIn, attendance.StatusRejected, false)
	// first instant of April in the report location
	f.mark(t, "r8", "e1", time.Date(2024, 4, 1, 0, 0, 0, 0, guayaquil), attendance.TypeIn, attendance.StatusConfirmed, false)

	got, err := f.svc.GenerateMonthlyAttendanceReport(context.Background(), report.MonthlyAttendanceReportRequest{Month: 3, Year: 2024})
	require.NoError(t, err)

	assert.Equal(t, "2024-03-01", got.PeriodStart)
	assert.Equal(t, "2024-03-31", got.PeriodEnd)
	require.Len(t, got.Employees, 2, "terminated employees without marks are omitted")
	assert.Equal(t, "Ana Torres", got.Employees[0].EmployeeName)
	assert.Equal(t, "Carla Ruiz", got.Employees[1].EmployeeName)
	assert.Empty(t, got.Employees[1].DailyLogs)

	ana := got.Employees[0]
	assert.Equal(t, report.AttendanceSummary{
		DaysPresent:     3,
		LateDays:        1,
		HalfDays:        1,
		MarksIn:         3,
		MarksOut:        1,
		PendingRecords:  1,
		RejectedRecords: 1,
	}, ana.Summary)

	require.Len(t, ana.DailyLogs, 3)
	first := ana.DailyLogs[0]
	assert.Equal(t, "2024-03-05", first.Date)
	assert.Equal(t, "Tuesday", first.DayOfWeek)
	require.NotNil(t, first.ClockIn)
	require.NotNil(t, first.ClockOut)
	assert.Equal(t, "08:50", *first.ClockIn)
	assert.Equal(t, "17:31", *first.ClockOut)
	assert.True(t, first.Late)

	second := ana.DailyLogs[1]
	assert.Equal(t, "08:20", *second.ClockIn, "the earliest in mark of the day wins")
	assert.False(t, second.Late)

	assert.True(t, ana.DailyLogs[2].HalfDay)
	assert.Nil(t, ana.DailyLogs[2].ClockIn)
}

func TestGenerateMonthlyAttendanceReport_InvalidPeriod(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GenerateMonthlyAttendanceReport(context.Background(), report.MonthlyAttendanceReportRequest{Month: 13, Year: 2024})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "month", verrs[0].Field)
}

func TestExportPayroll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var buf bytes.Buffer
	require.NoError(t, f.svc.ExportPayroll(ctx, report.PayrollExportRequest{Month: 3, Year: 2024}, &buf))

	want, err := f.payroll.GeneratePeriodPayroll(ctx, payroll.PeriodPayrollRequest{Month: 3, Year: 2024})
	require.NoError(t, err)
	require.Len(t, want.Employees, 2)

	book, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows(payrollSheet, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 4, "header, two employees, totals")

	assert.Equal(t, "Employee", rows[0][1])
	assert.Equal(t, "Net to receive", rows[0][12])

	for i, b := range want.Employees {
		row := rows[i+1]
		assert.Equal(t, b.EmployeeID, row[0])
		assert.Equal(t, b.EmployeeName, row[1])
		assertAmount(t, b.NetToReceive, row[12])
		assertAmount(t, b.IESS, row[8])
	}

	totals := rows[3]
	assert.Equal(t, "Total", totals[1])
	assertAmount(t, want.Totals.NetToReceive, totals[12])
}

func TestExportPayroll_InvalidPeriod(t *testing.T) {
	f := newFixture(t)

	var buf bytes.Buffer
	err := f.svc.ExportPayroll(context.Background(), report.PayrollExportRequest{Month: 0, Year: 1999}, &buf)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
	assert.Zero(t, buf.Len())
}

func assertAmount(t *testing.T, want, got string) {
	t.Helper()
	w, err := strconv.ParseFloat(want, 64)
	require.NoError(t, err)
	g, err := strconv.ParseFloat(got, 64)
	require.NoError(t, err, "cell %q", got)
	assert.InDelta(t, w, g, 0.001)
}
