package payroll

import (
	"context"
	"time"

	"github.com/motorph/payroll-backend-go/internal/config"
	"github.com/motorph/payroll-backend-go/internal/domain/attendance"
	"github.com/motorph/payroll-backend-go/internal/domain/employee"
	"github.com/motorph/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

var minutesPerHour = decimal.NewFromInt(60)

// Calculator derives a payroll from the employee's monthly rate and the attendance
// logged in the period. It never persists anything.
type Calculator struct {
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	policy         config.PayrollConfig
}

func NewCalculator(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	policy config.PayrollConfig,
) *Calculator {
	return &Calculator{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		policy:         policy,
	}
}

func (c *Calculator) shift() attendance.Shift {
	return attendance.Shift{Start: c.policy.ShiftStart, End: c.policy.ShiftEnd}
}

// DailyRate is the monthly rate spread over the configured working days.
func (c *Calculator) DailyRate(monthlyRate decimal.Decimal) decimal.Decimal {
	return monthlyRate.Div(c.policy.WorkingDaysPerMonth)
}

func (c *Calculator) HourlyRate(monthlyRate decimal.Decimal) decimal.Decimal {
	return c.DailyRate(monthlyRate).Div(c.policy.HoursPerDay)
}

// CalculatePayroll implements payroll.Calculator. Money amounts are rounded to
// centavos; net pay is gross minus deductions after rounding.
func (c *Calculator) CalculatePayroll(ctx context.Context, employeeID int, periodStart, periodEnd time.Time) (*payroll.Payroll, error) {
	p := payroll.New()
	if err := p.SetEmployeeID(employeeID); err != nil {
		return nil, err
	}
	if err := p.SetPeriodStart(periodStart); err != nil {
		return nil, err
	}
	if !periodEnd.IsZero() && periodEnd.Before(periodStart) {
		return nil, payroll.ErrInvalidPeriod
	}
	if err := p.SetPeriodEnd(periodEnd); err != nil {
		return nil, err
	}

	emp, err := c.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	records, err := c.attendanceRepo.GetByEmployeeAndDateRange(ctx, employeeID, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	shift := c.shift()
	for _, r := range records {
		r.SetShift(shift)
	}
	summary := attendance.Summarize(employeeID, records)

	monthlyRate := emp.BasicSalary()
	if err := p.SetMonthlyRate(monthlyRate); err != nil {
		return nil, err
	}
	if err := p.SetDaysWorked(summary.DaysPresent); err != nil {
		return nil, err
	}

	dailyRate := c.DailyRate(monthlyRate)
	hourlyRate := c.HourlyRate(monthlyRate)

	overtimeHours := decimal.NewFromFloat(summary.OvertimeHours).Round(4)
	overtimePay := overtimeHours.Mul(hourlyRate).Mul(c.policy.OvertimeMultiplier).Round(2)
	if err := p.SetOvertime(overtimeHours.Round(2), overtimePay); err != nil {
		return nil, err
	}

	basicPay := dailyRate.Mul(decimal.NewFromInt(int64(summary.DaysPresent))).Round(2)
	gross := basicPay.Add(overtimePay)

	contributions := roundContributions(payroll.GovernmentContributions(monthlyRate))
	p.SetContributions(contributions)

	tardiness := decimal.Zero
	if c.policy.TardinessDeductionEnabled {
		minutes := decimal.NewFromFloat(summary.LateMinutes + summary.UndertimeMinutes).Round(4)
		tardiness = minutes.Mul(hourlyRate).Div(minutesPerHour).Round(2)
	}
	if err := p.SetTardinessDeduction(tardiness); err != nil {
		return nil, err
	}

	deductions := contributions.Total().Add(tardiness)
	if err := p.ApplyTotals(gross, deductions); err != nil {
		return nil, err
	}
	return p, nil
}

func roundContributions(c payroll.Contributions) payroll.Contributions {
	return payroll.Contributions{
		SSS:        c.SSS.Round(2),
		PhilHealth: c.PhilHealth.Round(2),
		PagIBIG:    c.PagIBIG.Round(2),
	}
}
