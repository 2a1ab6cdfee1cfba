package attendance

import (
	"time"

	"github.com/motorph/payroll-backend-go/internal/pkg/validator"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

type LogInRequest struct {
	EmployeeID int    `json:"employee_id"`
	Date       string `json:"date"`
	Time       string `json:"time"`
}

func (r *LogInRequest) Validate() error {
	var errs validator.ValidationErrors
	errs = appendEntryErrors(errs, r.EmployeeID, r.Date, r.Time, "time")
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LogOutRequest struct {
	EmployeeID int    `json:"employee_id"`
	Date       string `json:"date"`
	Time       string `json:"time"`
}

func (r *LogOutRequest) Validate() error {
	var errs validator.ValidationErrors
	errs = appendEntryErrors(errs, r.EmployeeID, r.Date, r.Time, "time")
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordAttendanceRequest struct {
	EmployeeID int     `json:"employee_id"`
	Date       string  `json:"date"`
	LogIn      string  `json:"log_in"`
	LogOut     *string `json:"log_out,omitempty"`
}

func (r *RecordAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors
	errs = appendEntryErrors(errs, r.EmployeeID, r.Date, r.LogIn, "log_in")
	if r.LogOut != nil {
		if _, ok := validator.IsValidClock(*r.LogOut); !ok {
			errs = append(errs, validator.ValidationError{Field: "log_out", Message: "must be in HH:MM format"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func appendEntryErrors(errs validator.ValidationErrors, employeeID int, date, clock, clockField string) validator.ValidationErrors {
	if employeeID <= 0 {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: validator.MsgMustBePositive})
	}
	if _, ok := validator.IsValidDate(date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
	}
	if _, ok := validator.IsValidClock(clock); !ok {
		errs = append(errs, validator.ValidationError{Field: clockField, Message: "must be in HH:MM format"})
	}
	return errs
}

type PeriodFilter struct {
	EmployeeID int
	From       string
	To         string
}

// Parse validates the filter and returns the inclusive date range.
func (f PeriodFilter) Parse() (time.Time, time.Time, error) {
	var errs validator.ValidationErrors
	if f.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: validator.MsgMustBePositive})
	}
	from, okFrom := validator.IsValidDate(f.From)
	if !okFrom {
		errs = append(errs, validator.ValidationError{Field: "from", Message: "must be in YYYY-MM-DD format"})
	}
	to, okTo := validator.IsValidDate(f.To)
	if !okTo {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "must be in YYYY-MM-DD format"})
	}
	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	return from, to, nil
}

type AttendanceResponse struct {
	EmployeeID       int     `json:"employee_id"`
	Date             string  `json:"date"`
	LogIn            *string `json:"log_in,omitempty"`
	LogOut           *string `json:"log_out,omitempty"`
	Present          bool    `json:"present"`
	WorkHours        float64 `json:"work_hours"`
	Late             bool    `json:"late"`
	LateMinutes      float64 `json:"late_minutes"`
	Undertime        bool    `json:"undertime"`
	UndertimeMinutes float64 `json:"undertime_minutes"`
	OvertimeHours    float64 `json:"overtime_hours"`
}

type SummaryResponse struct {
	EmployeeID       int     `json:"employee_id"`
	From             string  `json:"from"`
	To               string  `json:"to"`
	DaysRecorded     int     `json:"days_recorded"`
	DaysPresent      int     `json:"days_present"`
	WorkHours        float64 `json:"work_hours"`
	OvertimeHours    float64 `json:"overtime_hours"`
	LateDays         int     `json:"late_days"`
	LateMinutes      float64 `json:"late_minutes"`
	UndertimeDays    int     `json:"undertime_days"`
	UndertimeMinutes float64 `json:"undertime_minutes"`
}

func ToResponse(a *Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		EmployeeID:       a.EmployeeID(),
		Date:             a.Date().Format(dateLayout),
		Present:          a.IsPresent(),
		WorkHours:        a.WorkHours(),
		Late:             a.IsLate(),
		LateMinutes:      a.LateMinutes(),
		Undertime:        a.HasUndertime(),
		UndertimeMinutes: a.UndertimeMinutes(),
		OvertimeHours:    a.OvertimeHours(),
	}
	if in := a.LogIn(); in != nil {
		s := in.Format(clockLayout)
		resp.LogIn = &s
	}
	if out := a.LogOut(); out != nil {
		s := out.Format(clockLayout)
		resp.LogOut = &s
	}
	return resp
}

func ToSummaryResponse(s Summary, from, to time.Time) SummaryResponse {
	return SummaryResponse{
		EmployeeID:       s.EmployeeID,
		From:             from.Format(dateLayout),
		To:               to.Format(dateLayout),
		DaysRecorded:     s.DaysRecorded,
		DaysPresent:      s.DaysPresent,
		WorkHours:        s.WorkHours,
		OvertimeHours:    s.OvertimeHours,
		LateDays:         s.LateDays,
		LateMinutes:      s.LateMinutes,
		UndertimeDays:    s.UndertimeDays,
		UndertimeMinutes: s.UndertimeMinutes,
	}
}
