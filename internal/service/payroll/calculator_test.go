package payroll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/motorph/payroll-backend-go/internal/config"
	"github.com/motorph/payroll-backend-go/internal/domain/attendance"
	"github.com/motorph/payroll-backend-go/internal/domain/employee"
	"github.com/motorph/payroll-backend-go/internal/domain/payroll"
	"github.com/motorph/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	june1  = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	june30 = time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	employees map[int]*employee.Employee
	err       error
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id int) (*employee.Employee, error) {
	if f.err != nil {
		return nil, f.err
	}
	e, ok := f.employees[id]
	if !ok {
		return nil, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) ListIDs(_ context.Context) ([]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	var ids []int
	for id := range f.employees {
		ids = append(ids, id)
	}
	return ids, nil
}

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	records []*attendance.Attendance
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDateRange(_ context.Context, id int, start, end time.Time) ([]*attendance.Attendance, error) {
	var out []*attendance.Attendance
	for _, r := range f.records {
		if r.EmployeeID() == id && !r.Date().Before(start) && !r.Date().After(end) {
			out = append(out, r)
		}
	}
	return out, nil
}

func newEmployee(t *testing.T, id int, salary string) *employee.Employee {
	t.Helper()
	e := employee.New()
	require.NoError(t, e.SetEmployeeID(id))
	require.NoError(t, e.SetFirstName("Manuel"))
	require.NoError(t, e.SetLastName("Garcia"))
	require.NoError(t, e.SetBasicSalary(dec(salary)))
	e.SetPosition("Software Developer")
	return e
}

// record logs a day for employeeID with "HH:MM" times; an empty out means no log-out.
func record(t *testing.T, employeeID int, day int, in, out string) *attendance.Attendance {
	t.Helper()
	date := time.Date(2024, time.June, day, 0, 0, 0, 0, time.UTC)
	a := attendance.New()
	require.NoError(t, a.SetEmployeeID(employeeID))
	require.NoError(t, a.SetDate(date))
	inClock, err := config.ParseClock(in)
	require.NoError(t, err)
	a.SetLogIn(attendance.At(date, inClock))
	if out != "" {
		outClock, err := config.ParseClock(out)
		require.NoError(t, err)
		o := attendance.At(date, outClock)
		a.SetLogOut(&o)
	}
	return a
}

func fullMonth(t *testing.T, employeeID int) []*attendance.Attendance {
	var records []*attendance.Attendance
	for day := 1; len(records) < 22; day++ {
		records = append(records, record(t, employeeID, day, "08:00", "17:00"))
	}
	return records
}

func newCalculator(employees []*employee.Employee, records []*attendance.Attendance, policy config.PayrollConfig) *Calculator {
	byID := map[int]*employee.Employee{}
	for _, e := range employees {
		byID[e.EmployeeID()] = e
	}
	return NewCalculator(&fakeEmployeeRepo{employees: byID}, &fakeAttendanceRepo{records: records}, policy)
}

func TestCalculator_Rates(t *testing.T) {
	c := newCalculator(nil, nil, config.DefaultPayroll())
	monthly := dec("50000")

	assert.Equal(t, "2272.73", c.DailyRate(monthly).StringFixed(2))
	assert.Equal(t, "284.09", c.HourlyRate(monthly).StringFixed(2))

	overtime := dec("5").Mul(c.HourlyRate(monthly)).Mul(config.DefaultPayroll().OvertimeMultiplier)
	assert.Equal(t, "1775.57", overtime.StringFixed(2))
}

func TestCalculatePayroll_FullMonth(t *testing.T) {
	c := newCalculator(
		[]*employee.Employee{newEmployee(t, 10001, "50000")},
		fullMonth(t, 10001),
		config.DefaultPayroll(),
	)

	p, err := c.CalculatePayroll(context.Background(), 10001, june1, june30)
	require.NoError(t, err)

	assert.Equal(t, 22, p.DaysWorked())
	assert.Equal(t, "50000.00", p.GrossPay().StringFixed(2))
	assert.Equal(t, "1125.00", p.Contributions().SSS.StringFixed(2))
	assert.Equal(t, "1250.00", p.Contributions().PhilHealth.StringFixed(2))
	assert.Equal(t, "200.00", p.Contributions().PagIBIG.StringFixed(2))
	assert.True(t, p.TardinessDeduction().IsZero())
	assert.Equal(t, "2575.00", p.TotalDeductions().StringFixed(2))
	assert.Equal(t, "47425.00", p.NetPay().StringFixed(2))
	assert.True(t, p.IsValid())
}

func TestCalculatePayroll_Overtime(t *testing.T) {
	records := fullMonth(t, 10001)
	records[0] = record(t, 10001, 3, "08:00", "22:00")

	c := newCalculator([]*employee.Employee{newEmployee(t, 10001, "50000")}, records, config.DefaultPayroll())
	p, err := c.CalculatePayroll(context.Background(), 10001, june1, june30)
	require.NoError(t, err)

	assert.Equal(t, "5.00", p.OvertimeHours().StringFixed(2))
	assert.Equal(t, "1775.57", p.OvertimePay().StringFixed(2))
	assert.Equal(t, "51775.57", p.GrossPay().StringFixed(2))
	assert.Equal(t, "49200.57", p.NetPay().StringFixed(2))
}

func TestCalculatePayroll_TardinessDeduction(t *testing.T) {
	records := fullMonth(t, 10001)
	records[0] = record(t, 10001, 3, "08:30", "16:30")
	employees := []*employee.Employee{newEmployee(t, 10001, "50000")}

	c := newCalculator(employees, records, config.DefaultPayroll())
	p, err := c.CalculatePayroll(context.Background(), 10001, june1, june30)
	require.NoError(t, err)
	assert.Equal(t, "284.09", p.TardinessDeduction().StringFixed(2))
	assert.Equal(t, "2859.09", p.TotalDeductions().StringFixed(2))

	policy := config.DefaultPayroll()
	policy.TardinessDeductionEnabled = false
	c = newCalculator(employees, records, policy)
	p, err = c.CalculatePayroll(context.Background(), 10001, june1, june30)
	require.NoError(t, err)
	assert.True(t, p.TardinessDeduction().IsZero())
	assert.Equal(t, "2575.00", p.TotalDeductions().StringFixed(2))
}

func TestCalculatePayroll_IgnoresRecordsOutsidePeriod(t *testing.T) {
	records := []*attendance.Attendance{
		record(t, 10001, 2, "08:00", "17:00"),
		record(t, 10001, 3, "08:00", "17:00"),
		record(t, 10001, 4, "08:00", ""),
		record(t, 10002, 3, "08:00", "17:00"),
	}
	c := newCalculator([]*employee.Employee{newEmployee(t, 10001, "44000")}, records, config.DefaultPayroll())

	p, err := c.CalculatePayroll(context.Background(), 10001, june1, time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 2, p.DaysWorked())
	assert.Equal(t, "4000.00", p.GrossPay().StringFixed(2))
	assert.Equal(t, "1575.00", p.NetPay().StringFixed(2))
}

func TestCalculatePayroll_NegativeNetIsRejected(t *testing.T) {
	c := newCalculator([]*employee.Employee{newEmployee(t, 10001, "50000")}, nil, config.DefaultPayroll())

	_, err := c.CalculatePayroll(context.Background(), 10001, june1, june30)
	var ve validator.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "net_pay", ve.Field)
}

func TestCalculatePayroll_Errors(t *testing.T) {
	ctx := context.Background()
	c := newCalculator([]*employee.Employee{newEmployee(t, 10001, "50000")}, nil, config.DefaultPayroll())

	_, err := c.CalculatePayroll(ctx, 404, june1, june30)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = c.CalculatePayroll(ctx, 10001, june30, june1)
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)
	var periodErr validator.ValidationError
	require.ErrorAs(t, err, &periodErr)
	assert.Equal(t, "period_end", periodErr.Field)

	_, err = c.CalculatePayroll(ctx, 0, june1, june30)
	var ve validator.ValidationError
	assert.ErrorAs(t, err, &ve)

	_, err = c.CalculatePayroll(ctx, 10001, time.Time{}, june30)
	assert.ErrorAs(t, err, &ve)

	storeErr := errors.New("connection reset")
	failing := NewCalculator(&fakeEmployeeRepo{err: storeErr}, &fakeAttendanceRepo{}, config.DefaultPayroll())
	_, err = failing.CalculatePayroll(ctx, 10001, june1, june30)
	assert.ErrorIs(t, err, storeErr)
}
