package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/motorph/payroll-backend-go/internal/domain/payroll"
	"github.com/motorph/payroll-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

const payrollColumns = `p.id::text, p.employee_id, p.period_start, p.period_end, p.monthly_rate, p.days_worked,
	p.overtime_hours, p.overtime_pay, p.sss, p.philhealth, p.pagibig, p.tardiness_deduction,
	p.gross_pay, p.total_deductions, p.net_pay, p.created_at`

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// scanPayroll reads payrollColumns followed by any extra destinations.
func scanPayroll(row pgx.Row, extra ...interface{}) (*payroll.Payroll, error) {
	var (
		id                       string
		employeeID, daysWorked   int
		start, end, createdAt    time.Time
		rate, otHours, otPay     decimal.Decimal
		sss, philHealth, pagIBIG decimal.Decimal
		tardiness                decimal.Decimal
		gross, deductions, net   decimal.Decimal
	)
	dest := []interface{}{
		&id, &employeeID, &start, &end, &rate, &daysWorked,
		&otHours, &otPay, &sss, &philHealth, &pagIBIG, &tardiness,
		&gross, &deductions, &net, &createdAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	p := payroll.New()
	p.SetID(id)
	p.SetCreatedAt(createdAt)
	p.SetContributions(payroll.Contributions{SSS: sss, PhilHealth: philHealth, PagIBIG: pagIBIG})
	for _, err := range []error{
		p.SetEmployeeID(employeeID),
		p.SetPeriodStart(start),
		p.SetPeriodEnd(end),
		p.SetMonthlyRate(rate),
		p.SetDaysWorked(daysWorked),
		p.SetOvertime(otHours, otPay),
		p.SetTardinessDeduction(tardiness),
		p.SetGrossPay(gross),
		p.SetTotalDeductions(deductions),
		p.SetNetPay(net),
	} {
		if err != nil {
			return nil, fmt.Errorf("invalid payroll row %s: %w", id, err)
		}
	}
	return p, nil
}

// Create implements payroll.PayrollRepository.
func (r *payrollRepository) Create(ctx context.Context, p *payroll.Payroll) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll (
			id, employee_id, period_start, period_end, monthly_rate, days_worked,
			overtime_hours, overtime_pay, sss, philhealth, pagibig, tardiness_deduction,
			gross_pay, total_deductions, net_pay
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at
	`

	c := p.Contributions()
	var createdAt time.Time
	err := q.QueryRow(ctx, query,
		p.ID(), p.EmployeeID(), p.PeriodStart(), p.PeriodEnd(), p.MonthlyRate(), p.DaysWorked(),
		p.OvertimeHours(), p.OvertimePay(), c.SSS, c.PhilHealth, c.PagIBIG, p.TardinessDeduction(),
		p.GrossPay(), p.TotalDeductions(), p.NetPay(),
	).Scan(&createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return payroll.ErrPayrollAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return payroll.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to create payroll: %w", err)
	}
	p.SetCreatedAt(createdAt)
	return nil
}

// GetByID implements payroll.PayrollRepository.
func (r *payrollRepository) GetByID(ctx context.Context, id string) (*payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollColumns + ` FROM payroll p WHERE p.id = $1::uuid`

	p, err := scanPayroll(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, payroll.ErrPayrollNotFound
		}
		return nil, fmt.Errorf("failed to get payroll %s: %w", id, err)
	}
	return p, nil
}

// GetByEmployeePeriod implements payroll.PayrollRepository.
func (r *payrollRepository) GetByEmployeePeriod(ctx context.Context, employeeID int, start, end time.Time) (*payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `
		FROM payroll p
		WHERE p.employee_id = $1 AND p.period_start = $2 AND p.period_end = $3
	`

	p, err := scanPayroll(q.QueryRow(ctx, query, employeeID, start, end))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, payroll.ErrPayrollNotFound
		}
		return nil, fmt.Errorf("failed to get payroll for employee %d: %w", employeeID, err)
	}
	return p, nil
}

// List implements payroll.PayrollRepository.
func (r *payrollRepository) List(ctx context.Context, filter payroll.PayrollFilter) ([]*payroll.Payroll, int64, error) {
	q := GetQuerier(ctx, r.db)
	filter.Normalize()

	conditions := []string{"1 = 1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("p.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.PeriodStart != nil {
		conditions = append(conditions, fmt.Sprintf("p.period_start >= $%d", argIdx))
		args = append(args, *filter.PeriodStart)
		argIdx++
	}
	if filter.PeriodEnd != nil {
		conditions = append(conditions, fmt.Sprintf("p.period_end <= $%d", argIdx))
		args = append(args, *filter.PeriodEnd)
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM payroll p WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payrolls: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM payroll p
		WHERE %s
		ORDER BY p.period_start DESC, p.employee_id
		LIMIT $%d OFFSET $%d
	`, payrollColumns, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payrolls: %w", err)
	}
	defer rows.Close()

	var payrolls []*payroll.Payroll
	for rows.Next() {
		p, err := scanPayroll(rows)
		if err != nil {
			return nil, 0, err
		}
		payrolls = append(payrolls, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return payrolls, total, nil
}

// Delete implements payroll.PayrollRepository.
func (r *payrollRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payroll WHERE id = $1::uuid`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payroll %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollNotFound
	}
	return nil
}

// Register implements payroll.PayrollRepository.
func (r *payrollRepository) Register(ctx context.Context, start, end time.Time) ([]payroll.RegisterRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `, e.first_name || ' ' || e.last_name, e.position
		FROM payroll p
		JOIN employees e ON e.employee_id = p.employee_id
		WHERE p.period_start >= $1 AND p.period_end <= $2
		ORDER BY p.period_start, e.last_name, e.first_name
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll register: %w", err)
	}
	defer rows.Close()

	var register []payroll.RegisterRow
	for rows.Next() {
		var name, position string
		p, err := scanPayroll(rows, &name, &position)
		if err != nil {
			return nil, err
		}
		register = append(register, payroll.ToRegisterRow(p, name, position))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return register, nil
}
