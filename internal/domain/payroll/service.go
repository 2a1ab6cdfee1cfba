package payroll

import (
	"context"
	"io"
	"time"
)

// Calculator computes a payroll from an employee's record and attendance.
type Calculator interface {
	CalculatePayroll(ctx context.Context, employeeID int, periodStart, periodEnd time.Time) (*Payroll, error)
}

// PayrollService defines business logic for payroll operations
type PayrollService interface {
	// Calculate previews a payroll without persisting it
	Calculate(ctx context.Context, req CalculatePayrollRequest) (PayrollResponse, error)

	// Generate calculates and stores a payroll for one employee
	Generate(ctx context.Context, req CalculatePayrollRequest) (PayrollResponse, error)

	// GenerateForPeriod generates payroll for every employee, skipping existing records
	GenerateForPeriod(ctx context.Context, req GeneratePeriodRequest) (GeneratePeriodResponse, error)

	GetPayroll(ctx context.Context, id string) (PayrollResponse, error)
	ListPayrolls(ctx context.Context, filter PayrollFilter) (ListPayrollResponse, error)
	DeletePayroll(ctx context.Context, id string) error

	// WritePayslip renders the payroll as a PDF payslip
	WritePayslip(ctx context.Context, id string, w io.Writer) error

	// WriteRegister exports every payroll in the period as csv or xlsx
	WriteRegister(ctx context.Context, req RegisterRequest, w io.Writer) error
}
