// Package bootstrap wires repositories and services from configuration. Both the
// API server and payrollctl build on it.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/motorph/payroll-backend-go/internal/config"
	"github.com/motorph/payroll-backend-go/internal/domain/attendance"
	"github.com/motorph/payroll-backend-go/internal/domain/employee"
	"github.com/motorph/payroll-backend-go/internal/domain/payroll"
	"github.com/motorph/payroll-backend-go/internal/pkg/database"
	"github.com/motorph/payroll-backend-go/internal/pkg/storage"
	"github.com/motorph/payroll-backend-go/internal/repository/postgresql"
	attendanceService "github.com/motorph/payroll-backend-go/internal/service/attendance"
	employeeService "github.com/motorph/payroll-backend-go/internal/service/employee"
	payrollService "github.com/motorph/payroll-backend-go/internal/service/payroll"
)

type App struct {
	Config *config.Config
	DB     *database.DB

	Employees  employee.EmployeeService
	Attendance attendance.AttendanceService
	Payroll    payroll.PayrollService
}

// SetupLogger installs a JSON slog handler at the configured level as the default logger.
func SetupLogger(cfg *config.Config) {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})
	slog.SetDefault(slog.New(handler).With(slog.String("env", cfg.App.Env)))
}

// New connects to the database, applies migrations and builds the services.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.NewPostgreSQLDBWithOptions(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if info, err := db.Info(ctx); err == nil {
		slog.Info("database connected", "database", info)
	}

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	opts := payrollService.Options{BatchConcurrency: cfg.Payroll.BatchConcurrency}
	if cfg.Payroll.PayslipDir != "" {
		archive, err := storage.NewLocalStorage(cfg.Payroll.PayslipDir)
		if err != nil {
			db.Close()
			return nil, err
		}
		opts.Archive = archive
	}

	shift := attendance.Shift{Start: cfg.Payroll.ShiftStart, End: cfg.Payroll.ShiftEnd}
	calculator := payrollService.NewCalculator(employeeRepo, attendanceRepo, cfg.Payroll)

	return &App{
		Config:     cfg,
		DB:         db,
		Employees:  employeeService.NewEmployeeService(employeeRepo),
		Attendance: attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, shift),
		Payroll: payrollService.NewPayrollService(
			calculator,
			payrollRepo,
			employeeRepo,
			postgresql.NewTransactor(db),
			opts,
		),
	}, nil
}

func (a *App) Close() {
	a.DB.Close()
}
