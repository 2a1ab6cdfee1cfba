package payroll

import (
	"errors"

	"github.com/motorph/payroll-backend-go/internal/pkg/validator"
)

var (
	ErrPayrollNotFound      = errors.New("payroll record not found")
	ErrPayrollAlreadyExists = errors.New("payroll record already exists for this period")
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrInvalidExportFormat  = errors.New("export format must be csv or xlsx")
)

// ErrInvalidPeriod is the ValidationError for a period that ends before it starts.
var ErrInvalidPeriod error = validator.ValidationError{Field: "period_end", Message: "cannot be before period_start"}
