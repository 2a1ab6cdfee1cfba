package attendance

import (
	"testing"
	"time"

	"github.com/motorph/payroll-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(2024, time.June, 3, hour, minute, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time {
	return &t
}

func newRecord(t *testing.T, in time.Time, out *time.Time) *Attendance {
	t.Helper()
	a := New()
	require.NoError(t, a.SetEmployeeID(10001))
	require.NoError(t, a.SetDate(testDate))
	a.SetLogIn(in)
	a.SetLogOut(out)
	return a
}

func TestAttendance_CreateValid(t *testing.T) {
	a := newRecord(t, at(8, 0), ptr(at(17, 0)))

	assert.Equal(t, 10001, a.EmployeeID())
	assert.Equal(t, testDate, a.Date())
	assert.Equal(t, at(8, 0), *a.LogIn())
	assert.Equal(t, at(17, 0), *a.LogOut())
	assert.True(t, a.IsPresent())
	assert.InDelta(t, 9.0, a.WorkHours(), 0.01)
	assert.False(t, a.IsLate())
	assert.False(t, a.HasUndertime())
	assert.Zero(t, a.OvertimeHours())
	assert.True(t, a.IsValid())
}

func TestAttendance_InvalidEmployeeID(t *testing.T) {
	a := New()
	for _, id := range []int{-1, 0} {
		err := a.SetEmployeeID(id)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "positive")
	}
	assert.False(t, a.IsValid())
}

func TestAttendance_LateArrival(t *testing.T) {
	a := newRecord(t, at(8, 30), ptr(at(17, 0)))

	assert.True(t, a.IsLate())
	assert.InDelta(t, 30.0, a.LateMinutes(), 0.01)
}

func TestAttendance_OnTimeIsNotLate(t *testing.T) {
	a := newRecord(t, at(7, 45), ptr(at(17, 0)))
	assert.False(t, a.IsLate())
	assert.Zero(t, a.LateMinutes())

	exact := newRecord(t, at(8, 0), nil)
	assert.False(t, exact.IsLate(), "arriving exactly at shift start is on time")
}

func TestAttendance_Undertime(t *testing.T) {
	a := newRecord(t, at(8, 0), ptr(at(16, 30)))

	assert.True(t, a.HasUndertime())
	assert.InDelta(t, 30.0, a.UndertimeMinutes(), 0.01)
}

func TestAttendance_UndertimeRequiresLogOut(t *testing.T) {
	a := newRecord(t, at(8, 0), nil)
	assert.False(t, a.HasUndertime())
	assert.Zero(t, a.UndertimeMinutes())
}

func TestAttendance_WorkDuration(t *testing.T) {
	a := newRecord(t, at(8, 0), ptr(at(17, 30)))

	assert.InDelta(t, 9.5, a.WorkHours(), 0.01)
	assert.InDelta(t, 0.5, a.OvertimeHours(), 0.01)
}

func TestAttendance_NilLogOut(t *testing.T) {
	a := newRecord(t, at(8, 0), nil)

	assert.True(t, a.IsPresent(), "present even without a log out")
	assert.InDelta(t, 0.0, a.WorkHours(), 0.01)
}

func TestAttendance_NoLogInIsAbsent(t *testing.T) {
	a := New()
	require.NoError(t, a.SetEmployeeID(10001))
	require.NoError(t, a.SetDate(testDate))

	assert.False(t, a.IsPresent())
	assert.False(t, a.IsLate())
	assert.Zero(t, a.WorkHours())
}

func TestAttendance_DateValidation(t *testing.T) {
	a := New()
	err := a.SetDate(time.Time{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be null")

	var ve validator.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "date", ve.Field)
}

func TestAttendance_SetDateTruncatesTime(t *testing.T) {
	a := New()
	require.NoError(t, a.SetDate(time.Date(2024, time.June, 3, 15, 4, 5, 0, time.UTC)))
	assert.Equal(t, testDate, a.Date())
}

func TestAttendance_CustomShift(t *testing.T) {
	a := newRecord(t, at(9, 10), ptr(at(17, 45)))
	a.SetShift(Shift{Start: 9 * time.Hour, End: 18 * time.Hour})

	assert.True(t, a.IsLate())
	assert.InDelta(t, 10.0, a.LateMinutes(), 0.01)
	assert.True(t, a.HasUndertime())
	assert.InDelta(t, 15.0, a.UndertimeMinutes(), 0.01)
}

func TestSummarize(t *testing.T) {
	absent := New()
	require.NoError(t, absent.SetEmployeeID(10001))
	require.NoError(t, absent.SetDate(testDate.AddDate(0, 0, 3)))

	records := []*Attendance{
		newRecord(t, at(8, 0), ptr(at(17, 0))),
		newRecord(t, at(8, 30), ptr(at(19, 0))),
		newRecord(t, at(8, 0), ptr(at(16, 0))),
		absent,
	}

	s := Summarize(10001, records)
	assert.Equal(t, 4, s.DaysRecorded)
	assert.Equal(t, 3, s.DaysPresent)
	assert.InDelta(t, 9+10.5+8, s.WorkHours, 0.01)
	assert.InDelta(t, 2.0, s.OvertimeHours, 0.01)
	assert.Equal(t, 1, s.LateDays)
	assert.InDelta(t, 30.0, s.LateMinutes, 0.01)
	assert.Equal(t, 1, s.UndertimeDays)
	assert.InDelta(t, 60.0, s.UndertimeMinutes, 0.01)
}

func TestPeriodFilter_Parse(t *testing.T) {
	from, to, err := PeriodFilter{EmployeeID: 1, From: "2024-06-01", To: "2024-06-30"}.Parse()
	require.NoError(t, err)
	assert.Equal(t, 1, from.Day())
	assert.Equal(t, 30, to.Day())

	_, _, err = PeriodFilter{EmployeeID: 1, From: "2024-06-30", To: "2024-06-01"}.Parse()
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, _, err = PeriodFilter{EmployeeID: 0, From: "bad", To: "2024-06-01"}.Parse()
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 2)
}
