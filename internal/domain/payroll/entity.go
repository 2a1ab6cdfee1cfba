package payroll

import (
	"time"

	"github.com/motorph/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Payroll is the pay computed for one employee over one period. Setters reject invalid
// values without modifying the record; the period is kept ordered at write time.
type Payroll struct {
	id                 string
	employeeID         int
	periodStart        *time.Time
	periodEnd          *time.Time
	monthlyRate        decimal.Decimal
	daysWorked         int
	grossPay           decimal.Decimal
	totalDeductions    decimal.Decimal
	netPay             decimal.Decimal
	overtimeHours      decimal.Decimal
	overtimePay        decimal.Decimal
	contributions      Contributions
	tardinessDeduction decimal.Decimal
	createdAt          time.Time
}

// Contributions holds the government-mandated deductions.
type Contributions struct {
	SSS        decimal.Decimal
	PhilHealth decimal.Decimal
	PagIBIG    decimal.Decimal
}

func (c Contributions) Total() decimal.Decimal {
	return c.SSS.Add(c.PhilHealth).Add(c.PagIBIG)
}

func New() *Payroll {
	return &Payroll{}
}

func (p *Payroll) ID() string                          { return p.id }
func (p *Payroll) EmployeeID() int                     { return p.employeeID }
func (p *Payroll) MonthlyRate() decimal.Decimal        { return p.monthlyRate }
func (p *Payroll) DaysWorked() int                     { return p.daysWorked }
func (p *Payroll) GrossPay() decimal.Decimal           { return p.grossPay }
func (p *Payroll) TotalDeductions() decimal.Decimal    { return p.totalDeductions }
func (p *Payroll) NetPay() decimal.Decimal             { return p.netPay }
func (p *Payroll) OvertimeHours() decimal.Decimal      { return p.overtimeHours }
func (p *Payroll) OvertimePay() decimal.Decimal        { return p.overtimePay }
func (p *Payroll) Contributions() Contributions        { return p.contributions }
func (p *Payroll) TardinessDeduction() decimal.Decimal { return p.tardinessDeduction }
func (p *Payroll) CreatedAt() time.Time                { return p.createdAt }

func (p *Payroll) PeriodStart() time.Time {
	if p.periodStart == nil {
		return time.Time{}
	}
	return *p.periodStart
}

func (p *Payroll) PeriodEnd() time.Time {
	if p.periodEnd == nil {
		return time.Time{}
	}
	return *p.periodEnd
}

func (p *Payroll) SetID(id string)                  { p.id = id }
func (p *Payroll) SetCreatedAt(t time.Time)         { p.createdAt = t }
func (p *Payroll) SetContributions(c Contributions) { p.contributions = c }

func (p *Payroll) SetEmployeeID(id int) error {
	if err := validator.PositiveInt("employee_id", id); err != nil {
		return err
	}
	p.employeeID = id
	return nil
}

func (p *Payroll) SetPeriodStart(start time.Time) error {
	if start.IsZero() {
		return validator.New("period_start", validator.MsgCannotBeNull)
	}
	if p.periodEnd != nil && start.After(*p.periodEnd) {
		return validator.New("period_start", "cannot be after period_end")
	}
	p.periodStart = &start
	return nil
}

func (p *Payroll) SetPeriodEnd(end time.Time) error {
	if end.IsZero() {
		return validator.New("period_end", validator.MsgCannotBeNull)
	}
	if p.periodStart != nil && end.Before(*p.periodStart) {
		return validator.New("period_end", "cannot be before period_start")
	}
	p.periodEnd = &end
	return nil
}

func (p *Payroll) SetMonthlyRate(rate decimal.Decimal) error {
	if err := validator.NonNegativeDecimal("monthly_rate", rate); err != nil {
		return err
	}
	p.monthlyRate = rate
	return nil
}

func (p *Payroll) SetDaysWorked(days int) error {
	if err := validator.NonNegativeInt("days_worked", days); err != nil {
		return err
	}
	p.daysWorked = days
	return nil
}

func (p *Payroll) SetGrossPay(amount decimal.Decimal) error {
	if err := validator.NonNegativeDecimal("gross_pay", amount); err != nil {
		return err
	}
	p.grossPay = amount
	return nil
}

func (p *Payroll) SetTotalDeductions(amount decimal.Decimal) error {
	if err := validator.NonNegativeDecimal("total_deductions", amount); err != nil {
		return err
	}
	p.totalDeductions = amount
	return nil
}

func (p *Payroll) SetNetPay(amount decimal.Decimal) error {
	if err := validator.NonNegativeDecimal("net_pay", amount); err != nil {
		return err
	}
	p.netPay = amount
	return nil
}

func (p *Payroll) SetOvertime(hours, pay decimal.Decimal) error {
	if err := validator.NonNegativeDecimal("overtime_hours", hours); err != nil {
		return err
	}
	if err := validator.NonNegativeDecimal("overtime_pay", pay); err != nil {
		return err
	}
	p.overtimeHours = hours
	p.overtimePay = pay
	return nil
}

func (p *Payroll) SetTardinessDeduction(amount decimal.Decimal) error {
	if err := validator.NonNegativeDecimal("tardiness_deduction", amount); err != nil {
		return err
	}
	p.tardinessDeduction = amount
	return nil
}

// ApplyTotals sets gross pay and deductions and derives net pay from them.
// Nothing is written unless all three values are valid.
func (p *Payroll) ApplyTotals(gross, deductions decimal.Decimal) error {
	if err := validator.NonNegativeDecimal("gross_pay", gross); err != nil {
		return err
	}
	if err := validator.NonNegativeDecimal("total_deductions", deductions); err != nil {
		return err
	}
	net := gross.Sub(deductions)
	if err := validator.NonNegativeDecimal("net_pay", net); err != nil {
		return err
	}
	p.grossPay = gross
	p.totalDeductions = deductions
	p.netPay = net
	return nil
}

// IsValid does not re-check period ordering; the setters already enforce it.
func (p *Payroll) IsValid() bool {
	return p.employeeID > 0 && !p.monthlyRate.IsNegative() && p.daysWorked >= 0
}
