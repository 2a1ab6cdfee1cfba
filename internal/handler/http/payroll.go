package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/motorph/payroll-backend-go/internal/domain/payroll"
	"github.com/motorph/payroll-backend-go/internal/handler/http/response"
	"github.com/motorph/payroll-backend-go/internal/pkg/validator"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type PayrollHandler interface {
	CalculatePayroll(w http.ResponseWriter, r *http.Request)
	GeneratePayroll(w http.ResponseWriter, r *http.Request)
	GeneratePeriod(w http.ResponseWriter, r *http.Request)
	GetPayroll(w http.ResponseWriter, r *http.Request)
	ListPayrolls(w http.ResponseWriter, r *http.Request)
	DeletePayroll(w http.ResponseWriter, r *http.Request)
	DownloadPayslip(w http.ResponseWriter, r *http.Request)
	DownloadRegister(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// CalculatePayroll previews a payroll without storing it.
func (h *payrollHandlerImpl) CalculatePayroll(w http.ResponseWriter, r *http.Request) {
	var req payroll.CalculatePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.Calculate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) GeneratePayroll(w http.ResponseWriter, r *http.Request) {
	var req payroll.CalculatePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.Generate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll generated successfully", result)
}

func (h *payrollHandlerImpl) GeneratePeriod(w http.ResponseWriter, r *http.Request) {
	var req payroll.GeneratePeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.GenerateForPeriod(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, fmt.Sprintf("Generated %d payroll records", result.Generated), result)
}

func (h *payrollHandlerImpl) GetPayroll(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetPayroll(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListPayrolls(w http.ResponseWriter, r *http.Request) {
	filter := payroll.PayrollFilter{
		Page:  queryInt(r, "page", 1),
		Limit: queryInt(r, "limit", 20),
	}

	var errs validator.ValidationErrors
	if s := r.URL.Query().Get("employee_id"); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must be a number"})
		}
		filter.EmployeeID = &id
	}
	if s := r.URL.Query().Get("from"); s != "" {
		from, ok := validator.IsValidDate(s)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "from", Message: "must be in YYYY-MM-DD format"})
		}
		filter.PeriodStart = &from
	}
	if s := r.URL.Query().Get("to"); s != "" {
		to, ok := validator.IsValidDate(s)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "to", Message: "must be in YYYY-MM-DD format"})
		}
		filter.PeriodEnd = &to
	}
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	results, err := h.payrollService.ListPayrolls(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, results.Payrolls, response.NewMeta(results.Page, results.Limit, results.TotalCount))
}

func (h *payrollHandlerImpl) DeletePayroll(w http.ResponseWriter, r *http.Request) {
	if err := h.payrollService.DeletePayroll(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll deleted successfully", nil)
}

// DownloadPayslip renders into a buffer first so render errors still get a JSON response.
func (h *payrollHandlerImpl) DownloadPayslip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var buf bytes.Buffer
	if err := h.payrollService.WritePayslip(r.Context(), id, &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, "application/pdf", fmt.Sprintf("payslip_%s.pdf", id))
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write payslip", "payroll_id", id, "error", err)
	}
}

func (h *payrollHandlerImpl) DownloadRegister(w http.ResponseWriter, r *http.Request) {
	req := payroll.RegisterRequest{
		PeriodStart: r.URL.Query().Get("from"),
		PeriodEnd:   r.URL.Query().Get("to"),
		Format:      r.URL.Query().Get("format"),
	}
	if req.Format == "" {
		req.Format = "csv"
	}

	var buf bytes.Buffer
	if err := h.payrollService.WriteRegister(r.Context(), req, &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	contentType := "text/csv"
	if req.Format == "xlsx" {
		contentType = xlsxContentType
	}
	response.Attachment(w, contentType, fmt.Sprintf("payroll_register_%s_%s.%s", req.PeriodStart, req.PeriodEnd, req.Format))
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write payroll register", "error", err)
	}
}
