package attendance

// Summary aggregates attendance over a period.
type Summary struct {
	EmployeeID       int
	DaysRecorded     int
	DaysPresent      int
	WorkHours        float64
	OvertimeHours    float64
	LateDays         int
	LateMinutes      float64
	UndertimeDays    int
	UndertimeMinutes float64
}

func Summarize(employeeID int, records []*Attendance) Summary {
	s := Summary{EmployeeID: employeeID, DaysRecorded: len(records)}
	for _, r := range records {
		if !r.IsPresent() {
			continue
		}
		s.DaysPresent++
		s.WorkHours += r.WorkHours()
		s.OvertimeHours += r.OvertimeHours()
		if r.IsLate() {
			s.LateDays++
			s.LateMinutes += r.LateMinutes()
		}
		if r.HasUndertime() {
			s.UndertimeDays++
			s.UndertimeMinutes += r.UndertimeMinutes()
		}
	}
	return s
}
