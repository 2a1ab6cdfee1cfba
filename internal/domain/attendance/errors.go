package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrAlreadyLoggedIn    = errors.New("employee has already logged in for this date")
	ErrNotLoggedIn        = errors.New("employee has not logged in for this date")
	ErrAlreadyLoggedOut   = errors.New("employee has already logged out for this date")
	ErrLogOutBeforeLogIn  = errors.New("log out cannot be before log in")
	ErrInvalidDateRange   = errors.New("end date cannot be before start date")
)
