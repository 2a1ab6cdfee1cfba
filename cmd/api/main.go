package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/motorph/payroll-backend-go/internal/bootstrap"
	"github.com/motorph/payroll-backend-go/internal/config"
	appHTTP "github.com/motorph/payroll-backend-go/internal/handler/http"
	"github.com/motorph/payroll-backend-go/internal/pkg/cron"
	"github.com/motorph/payroll-backend-go/internal/pkg/jwt"
	serviceAuth "github.com/motorph/payroll-backend-go/internal/service/auth"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	bootstrap.SetupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return err
	}
	authService := serviceAuth.NewAuthService(JWTService, cfg.Auth)

	if cfg.Cron.Enabled {
		scheduler := cron.NewScheduler()
		cron.NewPayrollJobs(app.Payroll).RegisterJobs(scheduler, cfg.Cron.PayrollInterval)
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	router := appHTTP.NewRouter(
		cfg.App,
		JWTService,
		appHTTP.NewAuthHandler(authService),
		appHTTP.NewEmployeeHandler(app.Employees),
		appHTTP.NewAttendanceHandler(app.Attendance),
		appHTTP.NewPayrollHandler(app.Payroll),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
