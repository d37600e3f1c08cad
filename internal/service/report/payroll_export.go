package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const payrollSheet = "Payroll"

var payrollHeader = []interface{}{
	"Employee ID", "Employee", "Tenure (years)", "Salary", "Reserve fund",
	"13th salary", "14th salary", "Total income", "IESS", "Loans",
	"Penalties", "Total expenses", "Net to receive",
}

// ExportPayroll writes one row per active employee followed by a totals row.
func (s *ReportServiceImpl) ExportPayroll(ctx context.Context, req report.PayrollExportRequest, w io.Writer) error {
	if err := req.Validate(); err != nil {
		return err
	}

	period, err := s.payrollService.GeneratePeriodPayroll(ctx, payroll.PeriodPayrollRequest{Month: req.Month, Year: req.Year})
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("Failed to close workbook", "error", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", payrollSheet); err != nil {
		return fmt.Errorf("%w: %w", report.ErrReportGenerationFailed, err)
	}
	if err := writePayrollRows(f, period); err != nil {
		return fmt.Errorf("%w: %w", report.ErrReportGenerationFailed, err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	slog.Info("Payroll exported", "month", req.Month, "year", req.Year, "employees", period.TotalCount)
	return nil
}

func writePayrollRows(f *excelize.File, period payroll.PeriodPayrollResponse) error {
	header := payrollHeader
	if err := f.SetSheetRow(payrollSheet, "A1", &header); err != nil {
		return err
	}

	row := 2
	for _, b := range period.Employees {
		values := []interface{}{b.EmployeeID, b.EmployeeName, b.TenureYears}
		for _, amount := range []string{
			b.Salary, b.ReserveFund, b.Thirteenth, b.Fourteenth, b.TotalIncome,
			b.IESS, b.Loans, b.Penalties, b.TotalExpenses, b.NetToReceive,
		} {
			values = append(values, money(amount))
		}

		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(payrollSheet, cell, &values); err != nil {
			return err
		}
		row++
	}

	totals := []interface{}{
		"", "Total", "", "", "", "", "",
		money(period.Totals.TotalIncome), "", "", "",
		money(period.Totals.TotalExpenses), money(period.Totals.NetToReceive),
	}
	if err := f.SetSheetRow(payrollSheet, fmt.Sprintf("A%d", row), &totals); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(payrollSheet, 1, 1, bold); err != nil {
		return err
	}
	if err := f.SetRowStyle(payrollSheet, row, row, bold); err != nil {
		return err
	}

	amounts, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(payrollSheet, "D2", fmt.Sprintf("M%d", row), amounts); err != nil {
		return err
	}

	return f.SetColWidth(payrollSheet, "A", "B", 28)
}

// money turns a rendered two-decimal amount into a spreadsheet number.
func money(amount string) float64 {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}
