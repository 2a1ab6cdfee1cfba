package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/motorph/payroll-backend-go/internal/config"
	"github.com/motorph/payroll-backend-go/internal/domain/attendance"
	"github.com/motorph/payroll-backend-go/internal/domain/employee"
	"github.com/motorph/payroll-backend-go/internal/domain/payroll"
	"github.com/motorph/payroll-backend-go/internal/handler/http/response"
	"github.com/motorph/payroll-backend-go/internal/pkg/jwt"
	authService "github.com/motorph/payroll-backend-go/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeEmployeeService struct {
	employee.EmployeeService
	employees map[int]employee.EmployeeResponse
}

func (f *fakeEmployeeService) GetEmployee(_ context.Context, id int) (employee.EmployeeResponse, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeService) ListEmployees(_ context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	resp := employee.ListEmployeeResponse{Page: filter.Page, Limit: filter.Limit, TotalCount: int64(len(f.employees))}
	for _, e := range f.employees {
		resp.Employees = append(resp.Employees, e)
	}
	return resp, nil
}

type fakeAttendanceService struct {
	attendance.AttendanceService
	loggedIn map[int]bool
}

func (f *fakeAttendanceService) LogIn(_ context.Context, req attendance.LogInRequest) (attendance.AttendanceResponse, error) {
	if f.loggedIn[req.EmployeeID] {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyLoggedIn
	}
	f.loggedIn[req.EmployeeID] = true
	return attendance.AttendanceResponse{EmployeeID: req.EmployeeID, Date: req.Date, LogIn: &req.Time, Present: true}, nil
}

type fakePayrollService struct {
	payroll.PayrollService
	lastRegister payroll.RegisterRequest
}

func (f *fakePayrollService) WritePayslip(_ context.Context, id string, w io.Writer) error {
	if id != "0192a0c4-0000-7000-8000-000000000001" {
		return payroll.ErrPayrollNotFound
	}
	_, err := io.WriteString(w, "%PDF-1.3 payslip")
	return err
}

func (f *fakePayrollService) WriteRegister(_ context.Context, req payroll.RegisterRequest, w io.Writer) error {
	f.lastRegister = req
	if _, _, err := req.Parse(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "employee_id,employee_name\n10001,Manuel Garcia\n")
	return err
}

type testServer struct {
	handler    http.Handler
	jwtService jwt.Service
	payroll    *fakePayrollService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	jwtService, err := jwt.NewJWTService("test-secret-key-for-jwt", "1h")
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	auth := authService.NewAuthService(jwtService, config.AuthConfig{
		AdminUsername:     "admin",
		AdminPasswordHash: string(hash),
	})

	employees := &fakeEmployeeService{employees: map[int]employee.EmployeeResponse{
		10001: {EmployeeID: 10001, FirstName: "Manuel", LastName: "Garcia", FullName: "Manuel Garcia"},
	}}
	payrollSvc := &fakePayrollService{}

	router := NewRouter(
		config.AppConfig{Env: "test", AllowedOrigins: []string{"http://localhost:3000"}},
		jwtService,
		NewAuthHandler(auth),
		NewEmployeeHandler(employees),
		NewAttendanceHandler(&fakeAttendanceService{loggedIn: map[int]bool{}}),
		NewPayrollHandler(payrollSvc),
	)
	return &testServer{handler: router, jwtService: jwtService, payroll: payrollSvc}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(t *testing.T) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "admin",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Data struct {
			AccessToken string `json:"access_token"`
			TokenType   string `json:"token_type"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Bearer", body.Data.TokenType)
	require.NotEmpty(t, body.Data.AccessToken)
	return body.Data.AccessToken
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRouter_Heartbeat(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_LoginInvalidCredentials(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "admin",
		"password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", decode(t, rec).Error.Code)
}

func TestRouter_LoginValidation(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode(t, rec)
	assert.Contains(t, body.Error.Details, "username")
	assert.Contains(t, body.Error.Details, "password")
}

func TestRouter_RequiresToken(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/api/v1/employees/10001", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_GetEmployee(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	rec := s.do(t, http.MethodGet, "/api/v1/employees/10001", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Manuel Garcia")

	rec = s.do(t, http.MethodGet, "/api/v1/employees/20000", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/employees/abc", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "must be a number", decode(t, rec).Error.Details["id"])
}

func TestRouter_ListEmployeesMeta(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	rec := s.do(t, http.MethodGet, "/api/v1/employees?page=1&limit=10", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	require.NotNil(t, body.Meta)
	assert.Equal(t, 1, body.Meta.Page)
	assert.Equal(t, 10, body.Meta.Limit)
	assert.Equal(t, int64(1), body.Meta.TotalItems)
	assert.Equal(t, 1, body.Meta.TotalPages)
}

func TestRouter_LogoutRevokesToken(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	rec := s.do(t, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/employees/10001", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_AttendanceLogIn(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)
	entry := map[string]interface{}{"employee_id": 10001, "date": "2024-06-03", "time": "08:05"}

	rec := s.do(t, http.MethodPost, "/api/v1/attendance/log-in", token, entry)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/v1/attendance/log-in", token, entry)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/attendance/log-in", token, map[string]interface{}{"employee_id": 10001, "date": "June 3", "time": "8am"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRouter_DownloadPayslip(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	rec := s.do(t, http.MethodGet, "/api/v1/payroll/0192a0c4-0000-7000-8000-000000000001/payslip.pdf", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "payslip_0192a0c4-0000-7000-8000-000000000001.pdf")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))

	rec = s.do(t, http.MethodGet, "/api/v1/payroll/0192a0c4-0000-7000-8000-000000000002/payslip.pdf", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestRouter_DownloadRegister(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	rec := s.do(t, http.MethodGet, "/api/v1/payroll/register?from=2024-06-01&to=2024-06-30", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "csv", s.payroll.lastRegister.Format, "format defaults to csv")
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Manuel Garcia")

	rec = s.do(t, http.MethodGet, "/api/v1/payroll/register?from=2024-06-01&to=2024-06-30&format=xlsx", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))

	rec = s.do(t, http.MethodGet, "/api/v1/payroll/register?from=2024-06-30&to=2024-06-01", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "cannot be before period_start", decode(t, rec).Error.Details["period_end"])

	rec = s.do(t, http.MethodGet, "/api/v1/payroll/register?from=2024-06-01&to=2024-06-30&format=pdf", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRouter_ListPayrollsRejectsBadFilter(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	rec := s.do(t, http.MethodGet, "/api/v1/payroll?employee_id=abc&from=2024/06/01", token, nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	details := decode(t, rec).Error.Details
	assert.Contains(t, details, "employee_id")
	assert.Contains(t, details, "from")
}
