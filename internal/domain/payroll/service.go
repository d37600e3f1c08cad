package payroll

import "context"

// Engine computes a payroll breakdown. Implementations must be pure.
type Engine interface {
	Compute(in Input) Breakdown
}

type PayrollService interface {
	// PreviewPayroll computes a single-employee what-if breakdown
	PreviewPayroll(ctx context.Context, req PreviewPayrollRequest) (BreakdownResponse, error)

	// GeneratePeriodPayroll computes the breakdown of every active employee
	GeneratePeriodPayroll(ctx context.Context, req PeriodPayrollRequest) (PeriodPayrollResponse, error)
}
