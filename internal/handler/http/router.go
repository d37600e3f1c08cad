package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers groups every HTTP handler mounted by NewRouter.
type Handlers struct {
	Auth         AuthHandler
	Employee     EmployeeHandler
	Attendance   AttendanceHandler
	Kiosk        KioskHandler
	Settings     SettingsHandler
	Payment      PaymentHandler
	Payroll      PayrollHandler
	Report       ReportHandler
	Dashboard    DashboardHandler
	Notification NotificationHandler
}

type RouterOptions struct {
	AllowedOrigins []string
	Logger         *slog.Logger
	LogLevel       slog.Level
}

func NewRouter(JWTService jwt.Service, h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	allowedOrigins := opts.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Post("/auth/login", h.Auth.Login)

		// Kiosk surface. The device is unauthenticated; employees identify
		// with their PIN.
		r.Route("/kiosk/sessions", func(r chi.Router) {
			r.Post("/", h.Kiosk.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Kiosk.Get)
				r.Delete("/", h.Kiosk.Close)
				r.Get("/stream", h.Kiosk.Stream)
				r.Post("/digits", h.Kiosk.PressDigit)
				r.Post("/backspace", h.Kiosk.Backspace)
				r.Post("/clear", h.Kiosk.Clear)
				r.Post("/pin", h.Kiosk.RotatePIN)
				r.Post("/mark", h.Kiosk.Mark)
				r.Post("/dismiss", h.Kiosk.Dismiss)
				r.Post("/exit", h.Kiosk.Exit)
			})
		})

		// SSE authenticates through a short-lived query token
		r.Get("/notifications/stream", h.Notification.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/employees", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionEmployeeViewAll)).Get("/", h.Employee.List)
				r.With(middleware.RequirePermission(user.PermissionEmployeeViewAll)).Get("/{id}", h.Employee.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))
					r.Post("/", h.Employee.Create)
					r.Put("/{id}", h.Employee.Replace)
					r.Delete("/{id}", h.Employee.Archive)
					r.Post("/{id}/terminate", h.Employee.Terminate)
					r.Post("/{id}/pin-reset", h.Employee.ResetPIN)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewAll)).Get("/", h.Attendance.List)
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewAll)).Get("/{id}", h.Attendance.Get)
				r.With(middleware.RequirePermission(user.PermissionAttendanceJustify)).Post("/justifications", h.Attendance.Justify)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireReviewer)
					r.Use(middleware.RequirePermission(user.PermissionAttendanceApprove))
					r.Post("/{id}/approve", h.Attendance.Approve)
					r.Post("/{id}/reject", h.Attendance.Reject)
				})

				r.With(middleware.AdminOnly).Delete("/{id}", h.Attendance.Delete)
			})

			r.Route("/settings", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionSettingsView)).Get("/", h.Settings.Get)
				r.With(middleware.RequirePermission(user.PermissionSettingsManage)).Put("/", h.Settings.Replace)
			})

			r.With(middleware.RequirePermission(user.PermissionPaymentsView)).Get("/payments", h.Payment.List)

			r.Route("/payroll", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionPayrollView))
				r.Get("/", h.Payroll.Period)
				r.Get("/preview", h.Payroll.Preview)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionAttendanceViewAll))
				r.Get("/", h.Dashboard.GetDashboard)
				r.Get("/attendance", h.Dashboard.GetDailyAttendanceStats)
			})

			r.Route("/reports", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewAll)).Get("/attendance", h.Report.GetMonthlyAttendanceReport)
				r.With(middleware.RequirePermission(user.PermissionPayrollView)).Get("/payroll.xlsx", h.Report.ExportPayroll)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Get("/unread-count", h.Notification.UnreadCount)
				r.Post("/read", h.Notification.MarkAsRead)
				r.Post("/read-all", h.Notification.MarkAllAsRead)
				r.Get("/sse-token", h.Notification.GetSSEToken)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "route not found", http.StatusNotFound)
	})

	return r
}
