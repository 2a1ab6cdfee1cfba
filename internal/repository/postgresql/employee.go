package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/motorph/payroll-backend-go/internal/domain/employee"
	"github.com/motorph/payroll-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

const employeeColumns = `employee_id, first_name, last_name, birthday, status, position,
	basic_salary, rice_subsidy, phone_allowance, clothing_allowance, created_at, updated_at`

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var (
		id                 int
		firstName          string
		lastName           string
		birthday           *time.Time
		status             string
		position           string
		basicSalary        decimal.Decimal
		rice, phone, cloth decimal.Decimal
		createdAt          time.Time
		updatedAt          time.Time
	)
	if err := row.Scan(
		&id, &firstName, &lastName, &birthday, &status, &position,
		&basicSalary, &rice, &phone, &cloth, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	e := employee.New()
	for _, err := range []error{
		e.SetEmployeeID(id),
		e.SetFirstName(firstName),
		e.SetLastName(lastName),
		e.SetBasicSalary(basicSalary),
		e.SetRiceSubsidy(rice),
		e.SetPhoneAllowance(phone),
		e.SetClothingAllowance(cloth),
	} {
		if err != nil {
			return nil, fmt.Errorf("invalid employee row %d: %w", id, err)
		}
	}
	e.SetBirthday(birthday)
	e.SetStatus(employee.Status(status))
	e.SetPosition(position)
	e.SetTimestamps(createdAt, updatedAt)
	return e, nil
}

func collectEmployees(rows pgx.Rows) ([]*employee.Employee, error) {
	defer rows.Close()

	var employees []*employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return employees, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id int) (*employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee %d: %w", id, err)
	}
	return e, nil
}

// SearchByName implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) SearchByName(ctx context.Context, pattern string) ([]*employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE first_name ILIKE $1
			OR last_name ILIKE $1
			OR (first_name || ' ' || last_name) ILIKE $1
		ORDER BY last_name, first_name, employee_id
	`

	rows, err := q.Query(ctx, query, "%"+strings.TrimSpace(pattern)+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search employees: %w", err)
	}
	return collectEmployees(rows)
}

// Exists implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Exists(ctx context.Context, id int) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM employees WHERE employee_id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check employee %d: %w", id, err)
	}
	return exists, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]*employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)
	filter.Normalize()

	conditions := []string{"1 = 1"}
	args := []interface{}{}
	argIdx := 1

	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(first_name ILIKE $%d OR last_name ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}
	if filter.Position != nil && *filter.Position != "" {
		conditions = append(conditions, fmt.Sprintf("position = $%d", argIdx))
		args = append(args, *filter.Position)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM employees WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees
		WHERE %s
		ORDER BY employee_id
		LIMIT $%d OFFSET $%d
	`, employeeColumns, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	employees, err := collectEmployees(rows)
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

// ListIDs implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListIDs(ctx context.Context) ([]int, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT employee_id FROM employees ORDER BY employee_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee ids: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, fmt.Errorf("failed to scan employee ids: %w", err)
	}
	return ids, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, e *employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			employee_id, first_name, last_name, birthday, status, position,
			basic_salary, rice_subsidy, phone_allowance, clothing_allowance
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`

	var createdAt, updatedAt time.Time
	err := q.QueryRow(ctx, query,
		e.EmployeeID(), e.FirstName(), e.LastName(), e.Birthday(), string(e.Status()), e.Position(),
		e.BasicSalary(), e.RiceSubsidy(), e.PhoneAllowance(), e.ClothingAllowance(),
	).Scan(&createdAt, &updatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return employee.ErrEmployeeExists
		}
		return fmt.Errorf("failed to create employee: %w", err)
	}
	e.SetTimestamps(createdAt, updatedAt)
	return nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, e *employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET first_name = $2, last_name = $3, birthday = $4, status = $5, position = $6,
			basic_salary = $7, rice_subsidy = $8, phone_allowance = $9, clothing_allowance = $10,
			updated_at = NOW()
		WHERE employee_id = $1
		RETURNING created_at, updated_at
	`

	var createdAt, updatedAt time.Time
	err := q.QueryRow(ctx, query,
		e.EmployeeID(), e.FirstName(), e.LastName(), e.Birthday(), string(e.Status()), e.Position(),
		e.BasicSalary(), e.RiceSubsidy(), e.PhoneAllowance(), e.ClothingAllowance(),
	).Scan(&createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to update employee %d: %w", e.EmployeeID(), err)
	}
	e.SetTimestamps(createdAt, updatedAt)
	return nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id int) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE employee_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
