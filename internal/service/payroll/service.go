package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/payment"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/settings"
	"golang.org/x/sync/errgroup"
)

// periodConcurrency bounds parallel ledger reads for a period run.
const periodConcurrency = 8

type PayrollServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	paymentRepo  payment.PaymentRepository
	settings     settings.Provider
	engine       payroll.Engine
}

func NewPayrollService(
	employeeRepo employee.EmployeeRepository,
	paymentRepo payment.PaymentRepository,
	settingsProvider settings.Provider,
	engine payroll.Engine,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		employeeRepo: employeeRepo,
		paymentRepo:  paymentRepo,
		settings:     settingsProvider,
		engine:       engine,
	}
}

func (s *PayrollServiceImpl) periodPayments(ctx context.Context, employeeID string, month, year int) ([]payment.Payment, error) {
	paid := string(payment.StatusPaid)
	payments, err := s.paymentRepo.List(ctx, payment.PaymentFilter{
		EmployeeID: &employeeID,
		Month:      &month,
		Year:       &year,
		Status:     &paid,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list payments for employee %s: %w", employeeID, err)
	}
	return payments, nil
}

// PreviewPayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) PreviewPayroll(ctx context.Context, req payroll.PreviewPayrollRequest) (payroll.BreakdownResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.BreakdownResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return payroll.BreakdownResponse{}, payroll.ErrEmployeeNotFound
		}
		return payroll.BreakdownResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	payments, err := s.periodPayments(ctx, emp.ID, req.Month, req.Year)
	if err != nil {
		return payroll.BreakdownResponse{}, err
	}

	b := s.engine.Compute(payroll.Input{
		Employee: emp,
		Settings: s.settings.Current(),
		Payments: payments,
		Month:    req.Month,
		Year:     req.Year,
	})
	return payroll.NewBreakdownResponse(b), nil
}

// GeneratePeriodPayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) GeneratePeriodPayroll(ctx context.Context, req payroll.PeriodPayrollRequest) (payroll.PeriodPayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PeriodPayrollResponse{}, err
	}

	active := string(employee.StatusActive)
	employees, err := s.employeeRepo.List(ctx, employee.EmployeeFilter{Status: &active})
	if err != nil {
		return payroll.PeriodPayrollResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	// one snapshot for the whole run
	current := s.settings.Current()
	start := time.Now()
	breakdowns := make([]payroll.Breakdown, len(employees))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(periodConcurrency)
	for i, emp := range employees {
		i, emp := i, emp
		g.Go(func() error {
			payments, err := s.periodPayments(gctx, emp.ID, req.Month, req.Year)
			if err != nil {
				return err
			}
			breakdowns[i] = s.engine.Compute(payroll.Input{
				Employee: emp,
				Settings: current,
				Payments: payments,
				Month:    req.Month,
				Year:     req.Year,
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return payroll.PeriodPayrollResponse{}, err
	}

	sort.SliceStable(breakdowns, func(i, j int) bool {
		return breakdowns[i].EmployeeName < breakdowns[j].EmployeeName
	})

	responses := make([]payroll.BreakdownResponse, len(breakdowns))
	for i, b := range breakdowns {
		responses[i] = payroll.NewBreakdownResponse(b)
	}

	slog.Info("Period payroll computed",
		"month", req.Month, "year", req.Year, "employees", len(breakdowns), "duration", time.Since(start))

	return payroll.PeriodPayrollResponse{
		Month:      req.Month,
		Year:       req.Year,
		Employees:  responses,
		Totals:     payroll.SumTotals(breakdowns),
		TotalCount: len(responses),
	}, nil
}
