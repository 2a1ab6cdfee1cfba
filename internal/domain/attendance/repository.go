package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// GetByEmployeeAndDateRange returns records with start <= date <= end, ordered by date.
	GetByEmployeeAndDateRange(ctx context.Context, employeeID int, start, end time.Time) ([]*Attendance, error)

	// GetByEmployeeAndDate returns ErrAttendanceNotFound when the employee has no record for date.
	GetByEmployeeAndDate(ctx context.Context, employeeID int, date time.Time) (*Attendance, error)

	// Upsert writes the record, replacing any existing one for the same employee and date.
	Upsert(ctx context.Context, a *Attendance) error

	Delete(ctx context.Context, employeeID int, date time.Time) error
}
