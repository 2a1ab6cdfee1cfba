package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/motorph/payroll-backend-go/internal/domain/attendance"
	"github.com/motorph/payroll-backend-go/internal/domain/employee"
	"github.com/motorph/payroll-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

func toPgTime(t *time.Time) pgtype.Time {
	if t == nil {
		return pgtype.Time{}
	}
	return pgtype.Time{Microseconds: int64(attendance.Clock(*t) / time.Microsecond), Valid: true}
}

func fromPgTime(date time.Time, t pgtype.Time) *time.Time {
	if !t.Valid {
		return nil
	}
	v := attendance.At(date, time.Duration(t.Microseconds)*time.Microsecond)
	return &v
}

func scanAttendance(row pgx.Row) (*attendance.Attendance, error) {
	var (
		id         int64
		employeeID int
		date       time.Time
		logIn      pgtype.Time
		logOut     pgtype.Time
	)
	if err := row.Scan(&id, &employeeID, &date, &logIn, &logOut); err != nil {
		return nil, err
	}

	a := attendance.New()
	a.SetID(id)
	if err := a.SetEmployeeID(employeeID); err != nil {
		return nil, fmt.Errorf("invalid attendance row %d: %w", id, err)
	}
	if err := a.SetDate(date); err != nil {
		return nil, fmt.Errorf("invalid attendance row %d: %w", id, err)
	}
	if in := fromPgTime(date, logIn); in != nil {
		a.SetLogIn(*in)
	}
	a.SetLogOut(fromPgTime(date, logOut))
	return a, nil
}

// GetByEmployeeAndDateRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDateRange(ctx context.Context, employeeID int, start, end time.Time) ([]*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, log_in, log_out
		FROM attendance
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance for employee %d: %w", employeeID, err)
	}
	defer rows.Close()

	var records []*attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID int, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, log_in, log_out
		FROM attendance
		WHERE employee_id = $1 AND date = $2
	`

	a, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, attendance.ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}
	return a, nil
}

// Upsert implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Upsert(ctx context.Context, a *attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance (employee_id, date, log_in, log_out)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			log_in = EXCLUDED.log_in,
			log_out = EXCLUDED.log_out,
			updated_at = NOW()
		RETURNING id
	`

	var id int64
	err := q.QueryRow(ctx, query, a.EmployeeID(), a.Date(), toPgTime(a.LogIn()), toPgTime(a.LogOut())).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return employee.ErrEmployeeNotFound
		}
		if isCheckViolation(err, "attendance_log_out_after_log_in") {
			return attendance.ErrLogOutBeforeLogIn
		}
		return fmt.Errorf("failed to save attendance: %w", err)
	}
	a.SetID(id)
	return nil
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Delete(ctx context.Context, employeeID int, date time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance WHERE employee_id = $1 AND date = $2`, employeeID, date)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}
