package employee

import (
	"github.com/motorph/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	EmployeeID        int              `json:"employee_id"`
	FirstName         string           `json:"first_name"`
	LastName          string           `json:"last_name"`
	Birthday          *string          `json:"birthday,omitempty"`
	Status            string           `json:"status"`
	Position          string           `json:"position"`
	BasicSalary       *decimal.Decimal `json:"basic_salary"`
	RiceSubsidy       decimal.Decimal  `json:"rice_subsidy"`
	PhoneAllowance    decimal.Decimal  `json:"phone_allowance"`
	ClothingAllowance decimal.Decimal  `json:"clothing_allowance"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: validator.MsgMustBePositive})
	}
	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: validator.MsgIsRequired})
	}
	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: validator.MsgIsRequired})
	}
	if validator.IsEmpty(r.Position) {
		errs = append(errs, validator.ValidationError{Field: "position", Message: validator.MsgIsRequired})
	}
	if r.BasicSalary == nil {
		errs = append(errs, validator.ValidationError{Field: "basic_salary", Message: validator.MsgIsRequired})
	} else if r.BasicSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "basic_salary", Message: validator.MsgCannotBeNegative})
	}
	if r.Birthday != nil {
		if _, ok := validator.IsValidDate(*r.Birthday); !ok {
			errs = append(errs, validator.ValidationError{Field: "birthday", Message: "must be in YYYY-MM-DD format"})
		}
	}
	for field, amount := range map[string]decimal.Decimal{
		"rice_subsidy":       r.RiceSubsidy,
		"phone_allowance":    r.PhoneAllowance,
		"clothing_allowance": r.ClothingAllowance,
	} {
		if amount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: validator.MsgCannotBeNegative})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateEmployeeRequest carries a partial update; nil fields are left untouched.
type UpdateEmployeeRequest struct {
	EmployeeID        int              `json:"-"`
	FirstName         *string          `json:"first_name,omitempty"`
	LastName          *string          `json:"last_name,omitempty"`
	Birthday          *string          `json:"birthday,omitempty"`
	Status            *string          `json:"status,omitempty"`
	Position          *string          `json:"position,omitempty"`
	BasicSalary       *decimal.Decimal `json:"basic_salary,omitempty"`
	RiceSubsidy       *decimal.Decimal `json:"rice_subsidy,omitempty"`
	PhoneAllowance    *decimal.Decimal `json:"phone_allowance,omitempty"`
	ClothingAllowance *decimal.Decimal `json:"clothing_allowance,omitempty"`
}

type EmployeeFilter struct {
	Search   *string
	Position *string
	Status   *string
	Page     int
	Limit    int
}

// Normalize fills paging defaults.
func (f *EmployeeFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

type EmployeeResponse struct {
	EmployeeID        int             `json:"employee_id"`
	FirstName         string          `json:"first_name"`
	LastName          string          `json:"last_name"`
	FullName          string          `json:"full_name"`
	Birthday          *string         `json:"birthday,omitempty"`
	Age               int             `json:"age"`
	Status            string          `json:"status"`
	Position          string          `json:"position"`
	BasicSalary       decimal.Decimal `json:"basic_salary"`
	RiceSubsidy       decimal.Decimal `json:"rice_subsidy"`
	PhoneAllowance    decimal.Decimal `json:"phone_allowance"`
	ClothingAllowance decimal.Decimal `json:"clothing_allowance"`
	TotalAllowances   decimal.Decimal `json:"total_allowances"`
}

type ListEmployeeResponse struct {
	Employees  []EmployeeResponse `json:"employees"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}

// ToResponse maps the entity to its API representation.
func ToResponse(e *Employee) EmployeeResponse {
	var birthday *string
	if b := e.Birthday(); b != nil {
		s := b.Format("2006-01-02")
		birthday = &s
	}
	return EmployeeResponse{
		EmployeeID:        e.EmployeeID(),
		FirstName:         e.FirstName(),
		LastName:          e.LastName(),
		FullName:          e.FullName(),
		Birthday:          birthday,
		Age:               e.Age(),
		Status:            string(e.Status()),
		Position:          e.Position(),
		BasicSalary:       e.BasicSalary(),
		RiceSubsidy:       e.RiceSubsidy(),
		PhoneAllowance:    e.PhoneAllowance(),
		ClothingAllowance: e.ClothingAllowance(),
		TotalAllowances:   e.TotalAllowances(),
	}
}
