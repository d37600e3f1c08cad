package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/secret"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/repository/memory"
	attendanceService "github.com/cmlabs-hris/asistencia-backend-go/internal/service/attendance"
	authService "github.com/cmlabs-hris/asistencia-backend-go/internal/service/auth"
	dashboardService "github.com/cmlabs-hris/asistencia-backend-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/asistencia-backend-go/internal/service/employee"
	kioskService "github.com/cmlabs-hris/asistencia-backend-go/internal/service/kiosk"
	notificationService "github.com/cmlabs-hris/asistencia-backend-go/internal/service/notification"
	paymentService "github.com/cmlabs-hris/asistencia-backend-go/internal/service/payment"
	payrollService "github.com/cmlabs-hris/asistencia-backend-go/internal/service/payroll"
	reportService "github.com/cmlabs-hris/asistencia-backend-go/internal/service/report"
	settingsService "github.com/cmlabs-hris/asistencia-backend-go/internal/service/settings"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type testApp struct {
	server     *httptest.Server
	jwt        jwt.Service
	employees  *memory.EmployeeRepository
	attendance *memory.AttendanceRepository
	kiosk      *kioskService.KioskServiceImpl
}

// newTestApp wires the full router over in-memory repositories.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	hash, err := authService.HashPassword("password123", bcrypt.MinCost)
	require.NoError(t, err)

	users := memory.NewUserRepository(
		user.User{ID: "u-admin", Email: "admin@example.com", FullName: "Admin", PasswordHash: hash, Role: user.RoleAdmin},
		user.User{ID: "u-reviewer", Email: "reviewer@example.com", FullName: "Reviewer", PasswordHash: hash, Role: user.RoleReviewer},
	)
	employees := memory.NewEmployeeRepository(
		employee.Employee{
			ID:             "e1",
			FullName:       "Ana Torres",
			PIN:            "123456",
			PINChanged:     true,
			Salary:         decimal.RequireFromString("600.00"),
			IsAffiliated:   true,
			OverSalaryType: employee.OverSalaryMonthly,
			StartDate:      time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC),
			Status:         employee.StatusActive,
		},
		employee.Employee{
			ID:             "e2",
			FullName:       "Luis Mera",
			PIN:            "654321",
			Salary:         decimal.RequireFromString("482.00"),
			OverSalaryType: employee.OverSalaryNone,
			StartDate:      time.Date(2023, 5, 2, 0, 0, 0, 0, time.UTC),
			Status:         employee.StatusActive,
		},
	)
	attendance := memory.NewAttendanceRepository()
	payments := memory.NewPaymentRepository()
	ids := &secret.Sequence{Prefix: "id", PINs: []string{"777777", "888888"}}

	hub := sse.NewHub()
	jwtSvc := jwt.NewJWTService(handlerTestSecret, time.Hour)

	notifSvc := notificationService.NewNotificationService(memory.NewNotificationRepository(), hub, ids, notificationService.Config{})
	t.Cleanup(notifSvc.Stop)
	dispatcher := notificationService.NewAdminDispatcher(notifSvc, users)

	provider := settingsService.NewProvider(memory.NewSettingsRepository())

	kioskCfg := kioskService.DefaultConfig()
	kioskCfg.SuccessDisplay = time.Hour
	kioskCfg.ErrorDisplay = time.Hour
	kiosk := kioskService.NewKioskService(kioskService.Deps{
		Employees:  employees,
		Attendance: attendance,
		Notifier:   dispatcher,
		Generator:  ids,
	}, provider, hub, kioskCfg)
	t.Cleanup(kiosk.Shutdown)

	payrollSvc := payrollService.NewPayrollService(employees, payments, provider, payrollService.NewCalculator())

	router := NewRouter(jwtSvc, Handlers{
		Auth:         NewAuthHandler(authService.NewAuthService(users, jwtSvc)),
		Employee:     NewEmployeeHandler(employeeService.NewEmployeeService(employees, ids)),
		Attendance:   NewAttendanceHandler(attendanceService.NewAttendanceService(attendance, employees, provider, ids, dispatcher, time.UTC)),
		Kiosk:        NewKioskHandler(kiosk),
		Settings:     NewSettingsHandler(settingsService.NewSettingsService(memory.NewSettingsRepository(), provider)),
		Payment:      NewPaymentHandler(paymentService.NewPaymentService(payments)),
		Payroll:      NewPayrollHandler(payrollSvc),
		Report:       NewReportHandler(reportService.NewReportService(attendance, employees, payrollSvc, time.UTC)),
		Dashboard:    NewDashboardHandler(dashboardService.NewDashboardService(employees, attendance, kiosk, time.UTC)),
		Notification: NewNotificationHandler(notifSvc, jwtSvc),
	}, RouterOptions{})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testApp{
		server:     server,
		jwt:        jwtSvc,
		employees:  employees,
		attendance: attendance,
		kiosk:      kiosk,
	}
}

func (a *testApp) token(t *testing.T, userID string, role user.Role) string {
	t.Helper()
	token, _, err := a.jwt.GenerateAccessToken(userID, userID+"@example.com", role)
	require.NoError(t, err)
	return token
}

// do sends a JSON request and decodes the envelope.
func (a *testApp) do(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, a.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope map[string]interface{}
	if resp.StatusCode != http.StatusNoContent {
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
	}
	return resp.StatusCode, envelope
}

func dataOf(t *testing.T, envelope map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := envelope["data"].(map[string]interface{})
	require.True(t, ok, "envelope has no data object: %v", envelope)
	return data
}

func errorCode(envelope map[string]interface{}) string {
	detail, _ := envelope["error"].(map[string]interface{})
	code, _ := detail["code"].(string)
	return code
}
