package employee

import (
	"time"

	"github.com/motorph/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Employee is built empty and filled through its setters. Every setter validates its
// input and leaves the entity unchanged when it returns an error.
type Employee struct {
	employeeID        int
	firstName         string
	lastName          string
	basicSalary       *decimal.Decimal
	status            Status
	position          string
	birthday          *time.Time
	riceSubsidy       decimal.Decimal
	phoneAllowance    decimal.Decimal
	clothingAllowance decimal.Decimal
	createdAt         time.Time
	updatedAt         time.Time
}

type Status string

const (
	StatusRegular      Status = "Regular"
	StatusProbationary Status = "Probationary"
)

func New() *Employee {
	return &Employee{}
}

func (e *Employee) EmployeeID() int                    { return e.employeeID }
func (e *Employee) FirstName() string                  { return e.firstName }
func (e *Employee) LastName() string                   { return e.lastName }
func (e *Employee) Status() Status                     { return e.status }
func (e *Employee) Position() string                   { return e.position }
func (e *Employee) Birthday() *time.Time               { return e.birthday }
func (e *Employee) RiceSubsidy() decimal.Decimal       { return e.riceSubsidy }
func (e *Employee) PhoneAllowance() decimal.Decimal    { return e.phoneAllowance }
func (e *Employee) ClothingAllowance() decimal.Decimal { return e.clothingAllowance }
func (e *Employee) CreatedAt() time.Time               { return e.createdAt }
func (e *Employee) UpdatedAt() time.Time               { return e.updatedAt }

// BasicSalary returns zero when the salary was never set; see HasBasicSalary.
func (e *Employee) BasicSalary() decimal.Decimal {
	if e.basicSalary == nil {
		return decimal.Zero
	}
	return *e.basicSalary
}

func (e *Employee) HasBasicSalary() bool {
	return e.basicSalary != nil
}

func (e *Employee) SetEmployeeID(id int) error {
	if err := validator.PositiveInt("employee_id", id); err != nil {
		return err
	}
	e.employeeID = id
	return nil
}

func (e *Employee) SetFirstName(name string) error {
	if err := validator.NotBlank("first_name", name); err != nil {
		return err
	}
	e.firstName = name
	return nil
}

func (e *Employee) SetLastName(name string) error {
	if err := validator.NotBlank("last_name", name); err != nil {
		return err
	}
	e.lastName = name
	return nil
}

func (e *Employee) SetBasicSalary(salary decimal.Decimal) error {
	if err := validator.NonNegativeDecimal("basic_salary", salary); err != nil {
		return err
	}
	e.basicSalary = &salary
	return nil
}

func (e *Employee) SetStatus(status Status) {
	e.status = status
}

func (e *Employee) SetPosition(position string) {
	e.position = position
}

// SetBirthday accepts nil to clear the birthday.
func (e *Employee) SetBirthday(birthday *time.Time) {
	if birthday == nil {
		e.birthday = nil
		return
	}
	b := *birthday
	e.birthday = &b
}

func (e *Employee) SetRiceSubsidy(amount decimal.Decimal) error {
	if err := validator.NonNegativeDecimal("rice_subsidy", amount); err != nil {
		return err
	}
	e.riceSubsidy = amount
	return nil
}

func (e *Employee) SetPhoneAllowance(amount decimal.Decimal) error {
	if err := validator.NonNegativeDecimal("phone_allowance", amount); err != nil {
		return err
	}
	e.phoneAllowance = amount
	return nil
}

func (e *Employee) SetClothingAllowance(amount decimal.Decimal) error {
	if err := validator.NonNegativeDecimal("clothing_allowance", amount); err != nil {
		return err
	}
	e.clothingAllowance = amount
	return nil
}

// SetTimestamps is used by the repository when loading persisted rows.
func (e *Employee) SetTimestamps(createdAt, updatedAt time.Time) {
	e.createdAt = createdAt
	e.updatedAt = updatedAt
}

func (e *Employee) FullName() string {
	return e.firstName + " " + e.lastName
}

func (e *Employee) TotalAllowances() decimal.Decimal {
	return e.riceSubsidy.Add(e.phoneAllowance).Add(e.clothingAllowance)
}

// Age returns whole years since the birthday, or 0 when no birthday is set.
func (e *Employee) Age() int {
	return e.AgeAt(time.Now())
}

func (e *Employee) AgeAt(now time.Time) int {
	if e.birthday == nil {
		return 0
	}
	b := *e.birthday
	age := now.Year() - b.Year()
	if now.Month() < b.Month() || (now.Month() == b.Month() && now.Day() < b.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// IsValid reports whether all required fields are present. It never fails.
func (e *Employee) IsValid() bool {
	return e.employeeID > 0 &&
		!validator.IsEmpty(e.firstName) &&
		!validator.IsEmpty(e.lastName) &&
		e.basicSalary != nil &&
		!validator.IsEmpty(e.position)
}
