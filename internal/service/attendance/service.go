package attendance

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/motorph/payroll-backend-go/internal/domain/attendance"
	"github.com/motorph/payroll-backend-go/internal/domain/employee"
	"github.com/motorph/payroll-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	shift          attendance.Shift
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	shift attendance.Shift,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		shift:          shift,
	}
}

// LogIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) LogIn(ctx context.Context, req attendance.LogInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	date, logIn := parseEntry(req.Date, req.Time)

	if err := s.ensureEmployee(ctx, req.EmployeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	switch {
	case err == nil && existing.IsPresent():
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyLoggedIn
	case err != nil && !errors.Is(err, attendance.ErrAttendanceNotFound):
		return attendance.AttendanceResponse{}, err
	}

	a, err := s.newRecord(req.EmployeeID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	a.SetLogIn(logIn)

	if err := s.attendanceRepo.Upsert(ctx, a); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	slog.Info("attendance log in", "employee_id", a.EmployeeID(), "date", req.Date, "time", req.Time, "late", a.IsLate())
	return attendance.ToResponse(a), nil
}

// LogOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) LogOut(ctx context.Context, req attendance.LogOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	date, logOut := parseEntry(req.Date, req.Time)

	a, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrNotLoggedIn
		}
		return attendance.AttendanceResponse{}, err
	}
	if !a.IsPresent() {
		return attendance.AttendanceResponse{}, attendance.ErrNotLoggedIn
	}
	if a.LogOut() != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyLoggedOut
	}
	if logOut.Before(*a.LogIn()) {
		return attendance.AttendanceResponse{}, attendance.ErrLogOutBeforeLogIn
	}

	a.SetShift(s.shift)
	a.SetLogOut(&logOut)
	if err := s.attendanceRepo.Upsert(ctx, a); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	slog.Info("attendance log out", "employee_id", a.EmployeeID(), "date", req.Date, "time", req.Time, "work_hours", a.WorkHours())
	return attendance.ToResponse(a), nil
}

// RecordAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RecordAttendance(ctx context.Context, req attendance.RecordAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	date, logIn := parseEntry(req.Date, req.LogIn)

	if err := s.ensureEmployee(ctx, req.EmployeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	a, err := s.newRecord(req.EmployeeID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	a.SetLogIn(logIn)
	if req.LogOut != nil {
		_, logOut := parseEntry(req.Date, *req.LogOut)
		if logOut.Before(logIn) {
			return attendance.AttendanceResponse{}, attendance.ErrLogOutBeforeLogIn
		}
		a.SetLogOut(&logOut)
	}

	if err := s.attendanceRepo.Upsert(ctx, a); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.ToResponse(a), nil
}

// ListForPeriod implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListForPeriod(ctx context.Context, filter attendance.PeriodFilter) ([]attendance.AttendanceResponse, error) {
	records, _, _, err := s.fetchPeriod(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, a := range records {
		responses = append(responses, attendance.ToResponse(a))
	}
	return responses, nil
}

// Summarize implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Summarize(ctx context.Context, filter attendance.PeriodFilter) (attendance.SummaryResponse, error) {
	records, from, to, err := s.fetchPeriod(ctx, filter)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}
	return attendance.ToSummaryResponse(attendance.Summarize(filter.EmployeeID, records), from, to), nil
}

// DeleteAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, employeeID int, date string) error {
	if err := validator.PositiveInt("employee_id", employeeID); err != nil {
		return err
	}
	d, ok := validator.IsValidDate(date)
	if !ok {
		return validator.New("date", "must be in YYYY-MM-DD format")
	}
	return s.attendanceRepo.Delete(ctx, employeeID, d)
}

func (s *AttendanceServiceImpl) fetchPeriod(ctx context.Context, filter attendance.PeriodFilter) ([]*attendance.Attendance, time.Time, time.Time, error) {
	from, to, err := filter.Parse()
	if err != nil {
		return nil, time.Time{}, time.Time{}, err
	}
	if err := s.ensureEmployee(ctx, filter.EmployeeID); err != nil {
		return nil, time.Time{}, time.Time{}, err
	}

	records, err := s.attendanceRepo.GetByEmployeeAndDateRange(ctx, filter.EmployeeID, from, to)
	if err != nil {
		return nil, time.Time{}, time.Time{}, err
	}
	for _, a := range records {
		a.SetShift(s.shift)
	}
	return records, from, to, nil
}

func (s *AttendanceServiceImpl) ensureEmployee(ctx context.Context, id int) error {
	exists, err := s.employeeRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (s *AttendanceServiceImpl) newRecord(employeeID int, date time.Time) (*attendance.Attendance, error) {
	a := attendance.New()
	if err := a.SetEmployeeID(employeeID); err != nil {
		return nil, err
	}
	if err := a.SetDate(date); err != nil {
		return nil, err
	}
	a.SetShift(s.shift)
	return a, nil
}

// parseEntry combines already validated date and clock strings.
func parseEntry(date, clock string) (time.Time, time.Time) {
	d, _ := validator.IsValidDate(date)
	c, _ := validator.IsValidClock(clock)
	return d, attendance.At(d, attendance.Clock(c))
}
