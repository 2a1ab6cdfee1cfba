package payroll

import (
	"time"

	"github.com/motorph/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type CalculatePayrollRequest struct {
	EmployeeID  int    `json:"employee_id"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
}

// Parse validates the request and returns the inclusive period.
func (r *CalculatePayrollRequest) Parse() (time.Time, time.Time, error) {
	var errs validator.ValidationErrors
	if r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: validator.MsgMustBePositive})
	}
	start, end, periodErrs := parsePeriod(r.PeriodStart, r.PeriodEnd)
	errs = append(errs, periodErrs...)
	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, ErrInvalidPeriod
	}
	return start, end, nil
}

type GeneratePeriodRequest struct {
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
}

func (r *GeneratePeriodRequest) Parse() (time.Time, time.Time, error) {
	start, end, errs := parsePeriod(r.PeriodStart, r.PeriodEnd)
	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, ErrInvalidPeriod
	}
	return start, end, nil
}

type RegisterRequest struct {
	PeriodStart string
	PeriodEnd   string
	Format      string
}

func (r *RegisterRequest) Parse() (time.Time, time.Time, error) {
	start, end, errs := parsePeriod(r.PeriodStart, r.PeriodEnd)
	if r.Format != "csv" && r.Format != "xlsx" {
		errs = append(errs, validator.ValidationError{Field: "format", Message: "must be csv or xlsx"})
	}
	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, ErrInvalidPeriod
	}
	return start, end, nil
}

func parsePeriod(from, to string) (time.Time, time.Time, validator.ValidationErrors) {
	var errs validator.ValidationErrors
	start, ok := validator.IsValidDate(from)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "must be in YYYY-MM-DD format"})
	}
	end, ok := validator.IsValidDate(to)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must be in YYYY-MM-DD format"})
	}
	return start, end, errs
}

type PayrollFilter struct {
	EmployeeID  *int
	PeriodStart *time.Time
	PeriodEnd   *time.Time
	Page        int
	Limit       int
}

// Normalize fills paging defaults.
func (f *PayrollFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

// RegisterRow is one line of the payroll register export.
type RegisterRow struct {
	PayrollID          string          `csv:"payroll_id"`
	EmployeeID         int             `csv:"employee_id"`
	EmployeeName       string          `csv:"employee_name"`
	Position           string          `csv:"position"`
	PeriodStart        string          `csv:"period_start"`
	PeriodEnd          string          `csv:"period_end"`
	MonthlyRate        decimal.Decimal `csv:"monthly_rate"`
	DaysWorked         int             `csv:"days_worked"`
	OvertimePay        decimal.Decimal `csv:"overtime_pay"`
	GrossPay           decimal.Decimal `csv:"gross_pay"`
	SSS                decimal.Decimal `csv:"sss"`
	PhilHealth         decimal.Decimal `csv:"philhealth"`
	PagIBIG            decimal.Decimal `csv:"pagibig"`
	TardinessDeduction decimal.Decimal `csv:"tardiness_deduction"`
	TotalDeductions    decimal.Decimal `csv:"total_deductions"`
	NetPay             decimal.Decimal `csv:"net_pay"`
}

type ContributionsResponse struct {
	SSS        decimal.Decimal `json:"sss"`
	PhilHealth decimal.Decimal `json:"philhealth"`
	PagIBIG    decimal.Decimal `json:"pagibig"`
	Total      decimal.Decimal `json:"total"`
}

type PayrollResponse struct {
	ID                 string                `json:"id,omitempty"`
	EmployeeID         int                   `json:"employee_id"`
	PeriodStart        string                `json:"period_start"`
	PeriodEnd          string                `json:"period_end"`
	MonthlyRate        decimal.Decimal       `json:"monthly_rate"`
	DaysWorked         int                   `json:"days_worked"`
	OvertimeHours      decimal.Decimal       `json:"overtime_hours"`
	OvertimePay        decimal.Decimal       `json:"overtime_pay"`
	GrossPay           decimal.Decimal       `json:"gross_pay"`
	Contributions      ContributionsResponse `json:"contributions"`
	TardinessDeduction decimal.Decimal       `json:"tardiness_deduction"`
	TotalDeductions    decimal.Decimal       `json:"total_deductions"`
	NetPay             decimal.Decimal       `json:"net_pay"`
	CreatedAt          *time.Time            `json:"created_at,omitempty"`
}

type ListPayrollResponse struct {
	Payrolls   []PayrollResponse `json:"payrolls"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}

type GeneratePeriodResponse struct {
	PeriodStart string   `json:"period_start"`
	PeriodEnd   string   `json:"period_end"`
	Generated   int      `json:"generated"`
	Skipped     int      `json:"skipped"`
	Failed      int      `json:"failed"`
	Errors      []string `json:"errors,omitempty"`
}

// ToResponse maps the entity to its API representation.
func ToResponse(p *Payroll) PayrollResponse {
	c := p.Contributions()
	resp := PayrollResponse{
		ID:            p.ID(),
		EmployeeID:    p.EmployeeID(),
		PeriodStart:   p.PeriodStart().Format(dateLayout),
		PeriodEnd:     p.PeriodEnd().Format(dateLayout),
		MonthlyRate:   p.MonthlyRate(),
		DaysWorked:    p.DaysWorked(),
		OvertimeHours: p.OvertimeHours(),
		OvertimePay:   p.OvertimePay(),
		GrossPay:      p.GrossPay(),
		Contributions: ContributionsResponse{
			SSS:        c.SSS,
			PhilHealth: c.PhilHealth,
			PagIBIG:    c.PagIBIG,
			Total:      c.Total(),
		},
		TardinessDeduction: p.TardinessDeduction(),
		TotalDeductions:    p.TotalDeductions(),
		NetPay:             p.NetPay(),
	}
	if !p.CreatedAt().IsZero() {
		t := p.CreatedAt()
		resp.CreatedAt = &t
	}
	return resp
}

// ToRegisterRow flattens a payroll for export.
func ToRegisterRow(p *Payroll, employeeName, position string) RegisterRow {
	c := p.Contributions()
	return RegisterRow{
		PayrollID:          p.ID(),
		EmployeeID:         p.EmployeeID(),
		EmployeeName:       employeeName,
		Position:           position,
		PeriodStart:        p.PeriodStart().Format(dateLayout),
		PeriodEnd:          p.PeriodEnd().Format(dateLayout),
		MonthlyRate:        p.MonthlyRate(),
		DaysWorked:         p.DaysWorked(),
		OvertimePay:        p.OvertimePay(),
		GrossPay:           p.GrossPay(),
		SSS:                c.SSS,
		PhilHealth:         c.PhilHealth,
		PagIBIG:            c.PagIBIG,
		TardinessDeduction: p.TardinessDeduction(),
		TotalDeductions:    p.TotalDeductions(),
		NetPay:             p.NetPay(),
	}
}
