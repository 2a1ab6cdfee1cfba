package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// LogIn opens the record for the employee's date
	LogIn(ctx context.Context, req LogInRequest) (AttendanceResponse, error)

	// LogOut closes the open record for the employee's date
	LogOut(ctx context.Context, req LogOutRequest) (AttendanceResponse, error)

	// RecordAttendance writes a complete record, used for manual corrections
	RecordAttendance(ctx context.Context, req RecordAttendanceRequest) (AttendanceResponse, error)

	ListForPeriod(ctx context.Context, filter PeriodFilter) ([]AttendanceResponse, error)

	Summarize(ctx context.Context, filter PeriodFilter) (SummaryResponse, error)

	DeleteAttendance(ctx context.Context, employeeID int, date string) error
}
