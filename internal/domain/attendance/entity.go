package attendance

import (
	"time"

	"github.com/motorph/payroll-backend-go/internal/pkg/validator"
)

// Shift is the standard working window, expressed as offsets from midnight.
type Shift struct {
	Start time.Duration
	End   time.Duration
}

// DefaultShift is the 08:00-17:00 working day.
var DefaultShift = Shift{Start: 8 * time.Hour, End: 17 * time.Hour}

// Attendance is one employee's record for one calendar date. Log times are compared by
// time of day only; a log-out is assumed to fall on the same day as the log-in.
type Attendance struct {
	id         int64
	employeeID int
	date       time.Time
	logIn      *time.Time
	logOut     *time.Time
	shift      *Shift
}

func New() *Attendance {
	return &Attendance{}
}

func (a *Attendance) ID() int64            { return a.id }
func (a *Attendance) EmployeeID() int      { return a.employeeID }
func (a *Attendance) Date() time.Time      { return a.date }
func (a *Attendance) LogIn() *time.Time    { return a.logIn }
func (a *Attendance) LogOut() *time.Time   { return a.logOut }
func (a *Attendance) SetID(id int64)       { a.id = id }
func (a *Attendance) SetShift(shift Shift) { a.shift = &shift }

func (a *Attendance) Shift() Shift {
	if a.shift == nil {
		return DefaultShift
	}
	return *a.shift
}

func (a *Attendance) SetEmployeeID(id int) error {
	if err := validator.PositiveInt("employee_id", id); err != nil {
		return err
	}
	a.employeeID = id
	return nil
}

func (a *Attendance) SetDate(date time.Time) error {
	if date.IsZero() {
		return validator.New("date", validator.MsgCannotBeNull)
	}
	y, m, d := date.Date()
	a.date = time.Date(y, m, d, 0, 0, 0, 0, date.Location())
	return nil
}

func (a *Attendance) SetLogIn(t time.Time) {
	a.logIn = &t
}

// SetLogOut accepts nil for an employee who has not logged out.
func (a *Attendance) SetLogOut(t *time.Time) {
	if t == nil {
		a.logOut = nil
		return
	}
	out := *t
	a.logOut = &out
}

func (a *Attendance) IsPresent() bool {
	return a.logIn != nil
}

// WorkHours is the wall-clock time between log-in and log-out, or 0 while either is missing.
func (a *Attendance) WorkHours() float64 {
	if a.logIn == nil || a.logOut == nil {
		return 0
	}
	return (clock(*a.logOut) - clock(*a.logIn)).Hours()
}

func (a *Attendance) IsLate() bool {
	return a.logIn != nil && clock(*a.logIn) > a.Shift().Start
}

func (a *Attendance) LateMinutes() float64 {
	if !a.IsLate() {
		return 0
	}
	return (clock(*a.logIn) - a.Shift().Start).Minutes()
}

func (a *Attendance) HasUndertime() bool {
	return a.logOut != nil && clock(*a.logOut) < a.Shift().End
}

func (a *Attendance) UndertimeMinutes() float64 {
	if !a.HasUndertime() {
		return 0
	}
	return (a.Shift().End - clock(*a.logOut)).Minutes()
}

// OvertimeHours is the time logged past the end of the shift.
func (a *Attendance) OvertimeHours() float64 {
	if a.logOut == nil || clock(*a.logOut) <= a.Shift().End {
		return 0
	}
	return (clock(*a.logOut) - a.Shift().End).Hours()
}

// IsValid reports whether the record can be persisted.
func (a *Attendance) IsValid() bool {
	return a.employeeID > 0 && !a.date.IsZero()
}

// clock returns the offset of t from its own midnight.
func clock(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
}

// At combines a calendar date with a time-of-day offset.
func At(date time.Time, offset time.Duration) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, date.Location()).Add(offset)
}

// Clock exposes the time-of-day offset used for all comparisons.
func Clock(t time.Time) time.Duration {
	return clock(t)
}
