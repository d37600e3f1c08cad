package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/config"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/payment"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/user"
	appHTTP "github.com/cmlabs-hris/asistencia-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/secret"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/asistencia-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/asistencia-backend-go/internal/service/auth"
	dashboardService "github.com/cmlabs-hris/asistencia-backend-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/asistencia-backend-go/internal/service/employee"
	kioskService "github.com/cmlabs-hris/asistencia-backend-go/internal/service/kiosk"
	notificationService "github.com/cmlabs-hris/asistencia-backend-go/internal/service/notification"
	paymentService "github.com/cmlabs-hris/asistencia-backend-go/internal/service/payment"
	payrollService "github.com/cmlabs-hris/asistencia-backend-go/internal/service/payroll"
	reportService "github.com/cmlabs-hris/asistencia-backend-go/internal/service/report"
	settingsService "github.com/cmlabs-hris/asistencia-backend-go/internal/service/settings"
	"github.com/go-chi/httplog/v3"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

type repositories struct {
	users         user.UserRepository
	employees     employee.EmployeeRepository
	attendance    attendance.AttendanceRepository
	payments      payment.PaymentRepository
	settings      settings.SettingsRepository
	notifications notification.Repository
}

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "asistencia"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		repos repositories
		db    *database.DB
	)
	if cfg.UsesPostgres() {
		db, err = database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{MaxConns: cfg.Database.MaxConns})
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		if err := postgresql.Migrate(ctx, db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}

		repos = repositories{
			users:         postgresql.NewUserRepository(db),
			employees:     postgresql.NewEmployeeRepository(db),
			attendance:    postgresql.NewAttendanceRepository(db),
			payments:      postgresql.NewPaymentRepository(db),
			settings:      postgresql.NewSettingsRepository(db),
			notifications: postgresql.NewNotificationRepository(db),
		}
		slog.Info("Using PostgreSQL storage")
	} else {
		repos = repositories{
			users:         memory.NewUserRepository(),
			employees:     memory.NewEmployeeRepository(),
			attendance:    memory.NewAttendanceRepository(),
			payments:      memory.NewPaymentRepository(),
			settings:      memory.NewSettingsRepository(),
			notifications: memory.NewNotificationRepository(),
		}
		slog.Warn("DATABASE_URL not set, using in-memory storage")
	}

	if err := bootstrapAdmin(ctx, repos.users, cfg.Bootstrap); err != nil {
		return err
	}

	generator := secret.NewGenerator()
	hub := sse.NewHub()
	location := cfg.KioskLocation()
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	provider := settingsService.NewProvider(repos.settings)
	if err := provider.Reload(ctx); err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	notifSvc := notificationService.NewNotificationService(repos.notifications, hub, generator, notificationService.Config{
		WorkerCount: cfg.Notification.Workers,
		QueueSize:   cfg.Notification.QueueSize,
	})
	dispatcher := notificationService.NewAdminDispatcher(notifSvc, repos.users)

	kioskSvc := kioskService.NewKioskService(kioskService.Deps{
		Employees:  repos.employees,
		Attendance: repos.attendance,
		Notifier:   dispatcher,
		Generator:  generator,
	}, provider, hub, kioskService.Config{
		ErrorDisplay:   cfg.Kiosk.ErrorDisplay,
		SuccessDisplay: cfg.Kiosk.SuccessDisplay,
		IdleTTL:        cfg.Kiosk.IdleTTL,
		ReapInterval:   time.Minute,
		Location:       location,
	})

	authSvc := serviceAuth.NewAuthService(repos.users, JWTService)
	employeeSvc := employeeService.NewEmployeeService(repos.employees, generator)
	attendanceSvc := attendanceService.NewAttendanceService(repos.attendance, repos.employees, provider, generator, dispatcher, location)
	settingsSvc := settingsService.NewSettingsService(repos.settings, provider)
	paymentSvc := paymentService.NewPaymentService(repos.payments)
	payrollSvc := payrollService.NewPayrollService(repos.employees, repos.payments, provider, payrollService.NewCalculator())
	reportSvc := reportService.NewReportService(repos.attendance, repos.employees, payrollSvc, location)
	dashboardSvc := dashboardService.NewDashboardService(repos.employees, repos.attendance, kioskSvc, location)

	router := appHTTP.NewRouter(JWTService, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(authSvc),
		Employee:     appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
		Kiosk:        appHTTP.NewKioskHandler(kioskSvc),
		Settings:     appHTTP.NewSettingsHandler(settingsSvc),
		Payment:      appHTTP.NewPaymentHandler(paymentSvc),
		Payroll:      appHTTP.NewPayrollHandler(payrollSvc),
		Report:       appHTTP.NewReportHandler(reportSvc),
		Dashboard:    appHTTP.NewDashboardHandler(dashboardSvc),
		Notification: appHTTP.NewNotificationHandler(notifSvc, JWTService),
	}, appHTTP.RouterOptions{
		AllowedOrigins: cfg.App.CORSAllowedOrigins,
		Logger:         logger,
		LogLevel:       slog.LevelDebug,
	})

	scheduler := cron.NewScheduler()
	scheduler.AddJob(kioskSvc.ReaperJob())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return scheduler.Run(gctx)
	})

	if db != nil {
		g.Go(func() error {
			return postgresql.ListenSettingsChanges(gctx, db, provider)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down")

		// SSE streams end once their topics close
		kioskSvc.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		err := server.Shutdown(shutdownCtx)
		notifSvc.Stop()
		return err
	})

	return g.Wait()
}

// bootstrapAdmin creates the configured administrator once.
func bootstrapAdmin(ctx context.Context, users user.UserRepository, cfg config.BootstrapConfig) error {
	if cfg.AdminEmail == "" {
		return nil
	}

	_, err := users.GetByEmail(ctx, cfg.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}

	hash, err := serviceAuth.HashPassword(cfg.AdminPassword, bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()
	admin, err := users.Create(ctx, user.User{
		ID:           secret.NewGenerator().NewID(),
		Email:        cfg.AdminEmail,
		FullName:     "Administrator",
		PasswordHash: hash,
		Role:         user.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil && !errors.Is(err, user.ErrEmailTaken) {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	slog.Info("Administrator bootstrapped", "user_id", admin.ID, "email", cfg.AdminEmail)
	return nil
}
