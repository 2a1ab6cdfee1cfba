package employee

import (
	"testing"
	"time"

	"github.com/motorph/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEmployeeID = 99999

func newValidEmployee(t *testing.T) *Employee {
	t.Helper()
	e := New()
	require.NoError(t, e.SetEmployeeID(testEmployeeID))
	require.NoError(t, e.SetFirstName("John"))
	require.NoError(t, e.SetLastName("Doe"))
	require.NoError(t, e.SetBasicSalary(decimal.NewFromInt(50000)))
	e.SetStatus(StatusRegular)
	e.SetPosition("Software Developer")
	return e
}

func TestEmployee_CreateValid(t *testing.T) {
	e := newValidEmployee(t)

	assert.Equal(t, testEmployeeID, e.EmployeeID())
	assert.Equal(t, "John", e.FirstName())
	assert.Equal(t, "Doe", e.LastName())
	assert.Equal(t, "John Doe", e.FullName())
	assert.True(t, decimal.NewFromInt(50000).Equal(e.BasicSalary()))
	assert.Equal(t, StatusRegular, e.Status())
	assert.Equal(t, "Software Developer", e.Position())
	assert.True(t, e.IsValid())
}

func TestEmployee_InvalidEmployeeID(t *testing.T) {
	e := New()
	for _, id := range []int{-1, 0} {
		err := e.SetEmployeeID(id)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "positive")

		var ve validator.ValidationError
		assert.ErrorAs(t, err, &ve)
	}
	assert.Equal(t, 0, e.EmployeeID(), "rejected id must not be stored")
}

func TestEmployee_NameValidation(t *testing.T) {
	e := New()
	require.NoError(t, e.SetFirstName("Manuel III"))

	for _, name := range []string{"", "   ", "\t"} {
		err := e.SetFirstName(name)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be null")

		err = e.SetLastName(name)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be null")
	}
	assert.Equal(t, "Manuel III", e.FirstName(), "failed setter must keep the previous value")
}

func TestEmployee_SalaryValidation(t *testing.T) {
	e := New()
	assert.NoError(t, e.SetBasicSalary(decimal.NewFromInt(50000)))

	err := e.SetBasicSalary(decimal.NewFromInt(-1000))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be negative")
	assert.True(t, decimal.NewFromInt(50000).Equal(e.BasicSalary()))
}

func TestEmployee_AllowanceValidation(t *testing.T) {
	e := New()
	neg := decimal.NewFromInt(-1)
	assert.Error(t, e.SetRiceSubsidy(neg))
	assert.Error(t, e.SetPhoneAllowance(neg))
	assert.Error(t, e.SetClothingAllowance(neg))
	assert.True(t, e.TotalAllowances().IsZero())
}

func TestEmployee_TotalAllowances(t *testing.T) {
	e := New()
	require.NoError(t, e.SetRiceSubsidy(decimal.NewFromInt(1500)))
	require.NoError(t, e.SetPhoneAllowance(decimal.NewFromInt(1000)))
	require.NoError(t, e.SetClothingAllowance(decimal.NewFromInt(500)))

	assert.Equal(t, "3000", e.TotalAllowances().String())
}

func TestEmployee_TotalAllowancesDefaultsToZero(t *testing.T) {
	e := New()
	require.NoError(t, e.SetPhoneAllowance(decimal.NewFromInt(800)))
	assert.Equal(t, "800", e.TotalAllowances().String())
}

func TestEmployee_Age(t *testing.T) {
	e := New()
	birthday := time.Now().AddDate(-25, 0, 0)
	e.SetBirthday(&birthday)
	assert.Equal(t, 25, e.Age())
}

func TestEmployee_AgeAt(t *testing.T) {
	e := New()
	birthday := time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC)
	e.SetBirthday(&birthday)

	assert.Equal(t, 33, e.AgeAt(time.Date(2024, time.June, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 34, e.AgeAt(time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, e.AgeAt(time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)))
}

func TestEmployee_NilBirthdayReturnsZeroAge(t *testing.T) {
	e := New()
	e.SetBirthday(nil)
	assert.Equal(t, 0, e.Age())
}

func TestEmployee_ValidationRules(t *testing.T) {
	assert.False(t, New().IsValid(), "empty employee must be invalid")

	e := newValidEmployee(t)
	assert.True(t, e.IsValid())

	noPosition := newValidEmployee(t)
	noPosition.SetPosition("  ")
	assert.False(t, noPosition.IsValid())

	noSalary := New()
	require.NoError(t, noSalary.SetEmployeeID(1))
	require.NoError(t, noSalary.SetFirstName("A"))
	require.NoError(t, noSalary.SetLastName("B"))
	noSalary.SetPosition("Clerk")
	assert.False(t, noSalary.IsValid())

	require.NoError(t, noSalary.SetBasicSalary(decimal.Zero))
	assert.True(t, noSalary.IsValid(), "zero salary counts as set")
}

func TestCreateEmployeeRequest_Validate(t *testing.T) {
	salary := decimal.NewFromInt(-5)
	req := CreateEmployeeRequest{
		EmployeeID:  0,
		FirstName:   " ",
		BasicSalary: &salary,
		RiceSubsidy: decimal.NewFromInt(-1),
	}
	err := req.Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	m := errs.ToMap()
	assert.Equal(t, validator.MsgMustBePositive, m["employee_id"])
	assert.Equal(t, validator.MsgIsRequired, m["first_name"])
	assert.Equal(t, validator.MsgIsRequired, m["last_name"])
	assert.Equal(t, validator.MsgIsRequired, m["position"])
	assert.Equal(t, validator.MsgCannotBeNegative, m["basic_salary"])
	assert.Equal(t, validator.MsgCannotBeNegative, m["rice_subsidy"])
}
