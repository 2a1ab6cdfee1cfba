package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/motorph/payroll-backend-go/internal/domain/payroll"
)

// PayrollJobs generates the previous calendar month's payroll. Re-runs are harmless since
// existing records are skipped.
type PayrollJobs struct {
	payrollService payroll.PayrollService
	now            func() time.Time
}

func NewPayrollJobs(payrollService payroll.PayrollService) *PayrollJobs {
	return &PayrollJobs{payrollService: payrollService, now: time.Now}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("generate_previous_month_payroll", interval, j.GeneratePreviousMonth)
}

// PreviousMonth returns the first and last day of the month before now.
func PreviousMonth(now time.Time) (time.Time, time.Time) {
	firstOfThisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return firstOfThisMonth.AddDate(0, -1, 0), firstOfThisMonth.AddDate(0, 0, -1)
}

func (j *PayrollJobs) GeneratePreviousMonth(ctx context.Context) error {
	start, end := PreviousMonth(j.now())

	resp, err := j.payrollService.GenerateForPeriod(ctx, payroll.GeneratePeriodRequest{
		PeriodStart: start.Format("2006-01-02"),
		PeriodEnd:   end.Format("2006-01-02"),
	})
	if err != nil {
		return err
	}
	if resp.Generated > 0 || resp.Failed > 0 {
		slog.Info("cron: monthly payroll run",
			"period_start", resp.PeriodStart,
			"period_end", resp.PeriodEnd,
			"generated", resp.Generated,
			"skipped", resp.Skipped,
			"failed", resp.Failed,
		)
	}
	return nil
}
