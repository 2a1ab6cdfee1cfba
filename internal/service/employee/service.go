package employee

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/motorph/payroll-backend-go/internal/domain/employee"
	"github.com/motorph/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo}
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id int) (employee.EmployeeResponse, error) {
	if err := validator.PositiveInt("employee_id", id); err != nil {
		return employee.EmployeeResponse{}, err
	}
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(e), nil
}

// SearchEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) SearchEmployees(ctx context.Context, query string) ([]employee.EmployeeResponse, error) {
	if validator.IsEmpty(query) {
		return nil, validator.New("q", validator.MsgIsRequired)
	}
	found, err := s.employeeRepo.SearchByName(ctx, strings.TrimSpace(query))
	if err != nil {
		return nil, err
	}
	responses := make([]employee.EmployeeResponse, 0, len(found))
	for _, e := range found {
		responses = append(responses, employee.ToResponse(e))
	}
	return responses, nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	filter.Normalize()
	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}
	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.ToResponse(e))
	}
	return employee.ListEmployeeResponse{
		Employees:  responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	exists, err := s.employeeRepo.Exists(ctx, req.EmployeeID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if exists {
		return employee.EmployeeResponse{}, employee.ErrEmployeeExists
	}

	e := employee.New()
	if err := applyFields(e, fields{
		employeeID:        &req.EmployeeID,
		firstName:         &req.FirstName,
		lastName:          &req.LastName,
		birthday:          req.Birthday,
		status:            &req.Status,
		position:          &req.Position,
		basicSalary:       req.BasicSalary,
		riceSubsidy:       &req.RiceSubsidy,
		phoneAllowance:    &req.PhoneAllowance,
		clothingAllowance: &req.ClothingAllowance,
	}); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.employeeRepo.Create(ctx, e); err != nil {
		return employee.EmployeeResponse{}, err
	}
	slog.Info("employee created", "employee_id", e.EmployeeID())
	return employee.ToResponse(e), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := applyFields(e, fields{
		firstName:         req.FirstName,
		lastName:          req.LastName,
		birthday:          req.Birthday,
		status:            req.Status,
		position:          req.Position,
		basicSalary:       req.BasicSalary,
		riceSubsidy:       req.RiceSubsidy,
		phoneAllowance:    req.PhoneAllowance,
		clothingAllowance: req.ClothingAllowance,
	}); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if !e.IsValid() {
		return employee.EmployeeResponse{}, employee.ErrInvalidEmployee
	}

	if err := s.employeeRepo.Update(ctx, e); err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(e), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id int) error {
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("employee deleted", "employee_id", id)
	return nil
}

// EmployeeExists implements employee.EmployeeService.
func (s *EmployeeServiceImpl) EmployeeExists(ctx context.Context, id int) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	return s.employeeRepo.Exists(ctx, id)
}

// fields carries optional values to apply; nil entries are skipped.
type fields struct {
	employeeID        *int
	firstName         *string
	lastName          *string
	birthday          *string
	status            *string
	position          *string
	basicSalary       *decimal.Decimal
	riceSubsidy       *decimal.Decimal
	phoneAllowance    *decimal.Decimal
	clothingAllowance *decimal.Decimal
}

// applyFields collects every setter failure so the caller gets all of them at once.
func applyFields(e *employee.Employee, f fields) error {
	var errs validator.ValidationErrors
	collect := func(err error) {
		if err == nil {
			return
		}
		var ve validator.ValidationError
		if errors.As(err, &ve) {
			errs = append(errs, ve)
			return
		}
		errs = append(errs, validator.ValidationError{Field: "employee", Message: err.Error()})
	}

	if f.employeeID != nil {
		collect(e.SetEmployeeID(*f.employeeID))
	}
	if f.firstName != nil {
		collect(e.SetFirstName(strings.TrimSpace(*f.firstName)))
	}
	if f.lastName != nil {
		collect(e.SetLastName(strings.TrimSpace(*f.lastName)))
	}
	if f.birthday != nil {
		if *f.birthday == "" {
			e.SetBirthday(nil)
		} else if b, err := time.Parse("2006-01-02", *f.birthday); err != nil {
			collect(validator.New("birthday", "must be in YYYY-MM-DD format"))
		} else {
			e.SetBirthday(&b)
		}
	}
	if f.status != nil {
		e.SetStatus(employee.Status(strings.TrimSpace(*f.status)))
	}
	if f.position != nil {
		e.SetPosition(strings.TrimSpace(*f.position))
	}
	if f.basicSalary != nil {
		collect(e.SetBasicSalary(*f.basicSalary))
	}
	if f.riceSubsidy != nil {
		collect(e.SetRiceSubsidy(*f.riceSubsidy))
	}
	if f.phoneAllowance != nil {
		collect(e.SetPhoneAllowance(*f.phoneAllowance))
	}
	if f.clothingAllowance != nil {
		collect(e.SetClothingAllowance(*f.clothingAllowance))
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
