package payroll

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/motorph/payroll-backend-go/internal/domain/employee"
	"github.com/motorph/payroll-backend-go/internal/domain/payroll"
	"github.com/motorph/payroll-backend-go/internal/pkg/export"
	"github.com/motorph/payroll-backend-go/internal/pkg/storage"
	"github.com/motorph/payroll-backend-go/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

// Transactor runs fn atomically; repositories pick the transaction up from ctx.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Options struct {
	// BatchConcurrency bounds parallel calculations in GenerateForPeriod.
	BatchConcurrency int
	// Archive, when set, receives a PDF for every generated payroll.
	Archive storage.FileStorage
}

type PayrollServiceImpl struct {
	calculator   payroll.Calculator
	payrollRepo  payroll.PayrollRepository
	employeeRepo employee.EmployeeRepository
	tx           Transactor
	opts         Options
}

func NewPayrollService(
	calculator payroll.Calculator,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	tx Transactor,
	opts Options,
) payroll.PayrollService {
	if opts.BatchConcurrency <= 0 {
		opts.BatchConcurrency = 1
	}
	return &PayrollServiceImpl{
		calculator:   calculator,
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		tx:           tx,
		opts:         opts,
	}
}

// Calculate implements payroll.PayrollService.
func (s *PayrollServiceImpl) Calculate(ctx context.Context, req payroll.CalculatePayrollRequest) (payroll.PayrollResponse, error) {
	start, end, err := req.Parse()
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	p, err := s.calculator.CalculatePayroll(ctx, req.EmployeeID, start, end)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	return payroll.ToResponse(p), nil
}

// Generate implements payroll.PayrollService.
func (s *PayrollServiceImpl) Generate(ctx context.Context, req payroll.CalculatePayrollRequest) (payroll.PayrollResponse, error) {
	start, end, err := req.Parse()
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	p, err := s.generate(ctx, req.EmployeeID, start, end)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	return payroll.ToResponse(p), nil
}

func (s *PayrollServiceImpl) generate(ctx context.Context, employeeID int, start, end time.Time) (*payroll.Payroll, error) {
	var generated *payroll.Payroll
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		_, err := s.payrollRepo.GetByEmployeePeriod(ctx, employeeID, start, end)
		if err == nil {
			return payroll.ErrPayrollAlreadyExists
		}
		if !errors.Is(err, payroll.ErrPayrollNotFound) {
			return err
		}

		p, err := s.calculator.CalculatePayroll(ctx, employeeID, start, end)
		if err != nil {
			return err
		}
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("generate payroll id: %w", err)
		}
		p.SetID(id.String())

		if err := s.payrollRepo.Create(ctx, p); err != nil {
			return err
		}
		generated = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("payroll generated",
		"payroll_id", generated.ID(),
		"employee_id", employeeID,
		"period_start", start.Format("2006-01-02"),
		"period_end", end.Format("2006-01-02"),
		"net_pay", generated.NetPay().StringFixed(2),
	)

	if s.opts.Archive != nil {
		if err := s.archivePayslip(ctx, generated); err != nil {
			slog.Warn("failed to archive payslip", "payroll_id", generated.ID(), "error", err)
		}
	}
	return generated, nil
}

// GenerateForPeriod implements payroll.PayrollService. Existing records are skipped and
// per-employee failures are reported without stopping the run.
func (s *PayrollServiceImpl) GenerateForPeriod(ctx context.Context, req payroll.GeneratePeriodRequest) (payroll.GeneratePeriodResponse, error) {
	start, end, err := req.Parse()
	if err != nil {
		return payroll.GeneratePeriodResponse{}, err
	}

	ids, err := s.employeeRepo.ListIDs(ctx)
	if err != nil {
		return payroll.GeneratePeriodResponse{}, err
	}

	resp := payroll.GeneratePeriodResponse{
		PeriodStart: start.Format("2006-01-02"),
		PeriodEnd:   end.Format("2006-01-02"),
	}
	var mu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.BatchConcurrency)
	for _, id := range ids {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			_, err := s.generate(gCtx, id, start, end)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				resp.Generated++
			case errors.Is(err, payroll.ErrPayrollAlreadyExists):
				resp.Skipped++
			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
				return err
			default:
				resp.Failed++
				resp.Errors = append(resp.Errors, fmt.Sprintf("employee %d: %v", id, err))
				slog.Error("payroll generation failed", "employee_id", id, "error", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return resp, err
	}

	slog.Info("payroll period generated",
		"period_start", resp.PeriodStart,
		"period_end", resp.PeriodEnd,
		"generated", resp.Generated,
		"skipped", resp.Skipped,
		"failed", resp.Failed,
	)
	return resp, nil
}

// GetPayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPayroll(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	if err := validateID(id); err != nil {
		return payroll.PayrollResponse{}, err
	}
	p, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	return payroll.ToResponse(p), nil
}

// ListPayrolls implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListPayrolls(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollResponse, error) {
	filter.Normalize()
	payrolls, total, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return payroll.ListPayrollResponse{}, err
	}
	responses := make([]payroll.PayrollResponse, 0, len(payrolls))
	for _, p := range payrolls {
		responses = append(responses, payroll.ToResponse(p))
	}
	return payroll.ListPayrollResponse{
		Payrolls:   responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// DeletePayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) DeletePayroll(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	var archived string
	if s.opts.Archive != nil {
		p, err := s.payrollRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		archived = export.Payslip{Payroll: p}.FileName()
	}

	if err := s.payrollRepo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("payroll deleted", "payroll_id", id)

	if archived != "" {
		if err := s.opts.Archive.Delete(ctx, archived); err != nil {
			slog.Warn("failed to remove archived payslip", "payroll_id", id, "path", archived, "error", err)
		}
	}
	return nil
}

// WritePayslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) WritePayslip(ctx context.Context, id string, w io.Writer) error {
	if err := validateID(id); err != nil {
		return err
	}
	p, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	slip, err := s.payslip(ctx, p)
	if err != nil {
		return err
	}
	return export.WritePayslip(w, slip)
}

// WriteRegister implements payroll.PayrollService.
func (s *PayrollServiceImpl) WriteRegister(ctx context.Context, req payroll.RegisterRequest, w io.Writer) error {
	start, end, err := req.Parse()
	if err != nil {
		return err
	}
	rows, err := s.payrollRepo.Register(ctx, start, end)
	if err != nil {
		return err
	}
	switch req.Format {
	case "csv":
		return export.WriteRegisterCSV(w, rows)
	case "xlsx":
		return export.WriteRegisterXLSX(w, rows)
	default:
		return payroll.ErrInvalidExportFormat
	}
}

func (s *PayrollServiceImpl) payslip(ctx context.Context, p *payroll.Payroll) (export.Payslip, error) {
	emp, err := s.employeeRepo.GetByID(ctx, p.EmployeeID())
	if err != nil {
		return export.Payslip{}, err
	}
	return export.Payslip{
		Payroll:      p,
		EmployeeName: emp.FullName(),
		Position:     emp.Position(),
		Allowances:   emp.TotalAllowances(),
	}, nil
}

func (s *PayrollServiceImpl) archivePayslip(ctx context.Context, p *payroll.Payroll) error {
	slip, err := s.payslip(ctx, p)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := export.WritePayslip(&buf, slip); err != nil {
		return err
	}
	path, err := s.opts.Archive.Upload(ctx, &buf, slip.FileName(), "application/pdf")
	if err != nil {
		return err
	}
	slog.Debug("payslip archived", "payroll_id", p.ID(), "path", path)
	return nil
}

func validateID(id string) error {
	if validator.IsEmpty(id) {
		return validator.New("id", validator.MsgIsRequired)
	}
	if _, err := uuid.Parse(id); err != nil {
		return validator.New("id", "must be a valid UUID")
	}
	return nil
}
