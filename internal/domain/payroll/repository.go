package payroll

import (
	"context"
	"time"
)

// PayrollRepository defines data access methods for payroll records.
type PayrollRepository interface {
	Create(ctx context.Context, p *Payroll) error
	GetByID(ctx context.Context, id string) (*Payroll, error)
	GetByEmployeePeriod(ctx context.Context, employeeID int, start, end time.Time) (*Payroll, error)
	List(ctx context.Context, filter PayrollFilter) ([]*Payroll, int64, error)
	Delete(ctx context.Context, id string) error

	// Register returns the rows of every payroll in the period, joined with employee names.
	Register(ctx context.Context, start, end time.Time) ([]RegisterRow, error)
}
