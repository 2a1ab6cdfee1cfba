package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/motorph/payroll-backend-go/internal/bootstrap"
	"github.com/motorph/payroll-backend-go/internal/config"
	"github.com/motorph/payroll-backend-go/internal/domain/payroll"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "payrollctl",
		Short:        "Run payroll operations against the payroll database",
		SilenceUsage: true,
	}
	root.AddCommand(
		newMigrateCmd(),
		newCalculateCmd(),
		newGenerateCmd(),
		newPayslipCmd(),
		newRegisterCmd(),
	)
	return root
}

// withApp loads configuration, connects and runs fn with the wired services.
func withApp(cmd *cobra.Command, fn func(app *bootstrap.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	bootstrap.SetupLogger(cfg)

	app, err := bootstrap.New(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(app)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// bootstrap.New migrates on connect
			return withApp(cmd, func(*bootstrap.App) error {
				fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
				return nil
			})
		},
	}
}

func newCalculateCmd() *cobra.Command {
	var req payroll.CalculatePayrollRequest
	var store bool

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate one employee's payroll for a period",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(app *bootstrap.App) error {
				calc := app.Payroll.Calculate
				if store {
					calc = app.Payroll.Generate
				}
				resp, err := calc(cmd.Context(), req)
				if err != nil {
					return err
				}
				return printJSON(cmd, resp)
			})
		},
	}
	cmd.Flags().IntVar(&req.EmployeeID, "employee", 0, "employee ID")
	cmd.Flags().StringVar(&req.PeriodStart, "from", "", "period start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.PeriodEnd, "to", "", "period end (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&store, "store", false, "persist the result as a payroll record")
	_ = cmd.MarkFlagRequired("employee")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newGenerateCmd() *cobra.Command {
	var req payroll.GeneratePeriodRequest

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate payroll for every employee in a period",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(app *bootstrap.App) error {
				resp, err := app.Payroll.GenerateForPeriod(cmd.Context(), req)
				if err != nil {
					return err
				}
				return printJSON(cmd, resp)
			})
		},
	}
	cmd.Flags().StringVar(&req.PeriodStart, "from", "", "period start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.PeriodEnd, "to", "", "period end (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newPayslipCmd() *cobra.Command {
	var id, out string

	cmd := &cobra.Command{
		Use:   "payslip",
		Short: "Write a stored payroll's PDF payslip",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(app *bootstrap.App) error {
				return writeOutput(out, func(f *os.File) error {
					return app.Payroll.WritePayslip(cmd.Context(), id, f)
				})
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "payroll ID")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func newRegisterCmd() *cobra.Command {
	var req payroll.RegisterRequest
	var out string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Export the payroll register for a period as csv or xlsx",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(app *bootstrap.App) error {
				return writeOutput(out, func(f *os.File) error {
					return app.Payroll.WriteRegister(cmd.Context(), req, f)
				})
			})
		},
	}
	cmd.Flags().StringVar(&req.PeriodStart, "from", "", "period start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.PeriodEnd, "to", "", "period end (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.Format, "format", "csv", "csv or xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

// writeOutput creates path, runs fn and removes the file again if fn fails.
func writeOutput(path string, fn func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
