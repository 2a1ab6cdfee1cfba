package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/motorph/payroll-backend-go/internal/config"
	"github.com/motorph/payroll-backend-go/internal/handler/http/middleware"
	"github.com/motorph/payroll-backend-go/internal/pkg/jwt"
)

func NewRouter(
	app config.AppConfig,
	JWTService jwt.Service,
	authHandler AuthHandler,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
	payrollHandler PayrollHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(app.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "motorph-payroll"),
		slog.String("version", "v1.0.0"),
		slog.String("env", app.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Post("/auth/logout", authHandler.Logout)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.ListEmployees)
				r.Get("/search", employeeHandler.SearchEmployees)
				r.With(middleware.AdminOnly).Post("/", employeeHandler.CreateEmployee)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", employeeHandler.GetEmployee)
					r.Get("/attendance", attendanceHandler.ListAttendance)
					r.Get("/attendance/summary", attendanceHandler.GetSummary)

					// Admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Put("/", employeeHandler.UpdateEmployee)
						r.Delete("/", employeeHandler.DeleteEmployee)
						r.Delete("/attendance/{date}", attendanceHandler.DeleteAttendance)
					})
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/log-in", attendanceHandler.LogIn)
				r.Post("/log-out", attendanceHandler.LogOut)
				r.With(middleware.AdminOnly).Put("/", attendanceHandler.RecordAttendance)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", payrollHandler.ListPayrolls)
				r.Post("/calculate", payrollHandler.CalculatePayroll)
				r.Post("/generate", payrollHandler.GeneratePayroll)
				r.Post("/generate-period", payrollHandler.GeneratePeriod)
				r.Get("/register", payrollHandler.DownloadRegister)
				r.Get("/{id}", payrollHandler.GetPayroll)
				r.Delete("/{id}", payrollHandler.DeletePayroll)
				r.Get("/{id}/payslip.pdf", payrollHandler.DownloadPayslip)
			})
		})
	})
	return r
}
