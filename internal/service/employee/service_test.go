package employee

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/motorph/payroll-backend-go/internal/domain/employee"
	"github.com/motorph/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepo struct {
	employees map[int]*employee.Employee
	err       error
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: map[int]*employee.Employee{}}
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id int) (*employee.Employee, error) {
	if f.err != nil {
		return nil, f.err
	}
	e, ok := f.employees[id]
	if !ok {
		return nil, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) SearchByName(_ context.Context, pattern string) ([]*employee.Employee, error) {
	var found []*employee.Employee
	for _, id := range f.sortedIDs() {
		e := f.employees[id]
		if strings.Contains(strings.ToLower(e.FullName()), strings.ToLower(pattern)) {
			found = append(found, e)
		}
	}
	return found, nil
}

func (f *fakeEmployeeRepo) Exists(_ context.Context, id int) (bool, error) {
	_, ok := f.employees[id]
	return ok, f.err
}

func (f *fakeEmployeeRepo) List(_ context.Context, filter employee.EmployeeFilter) ([]*employee.Employee, int64, error) {
	var all []*employee.Employee
	for _, id := range f.sortedIDs() {
		all = append(all, f.employees[id])
	}
	return all, int64(len(all)), nil
}

func (f *fakeEmployeeRepo) ListIDs(_ context.Context) ([]int, error) {
	return f.sortedIDs(), nil
}

func (f *fakeEmployeeRepo) Create(_ context.Context, e *employee.Employee) error {
	if _, ok := f.employees[e.EmployeeID()]; ok {
		return employee.ErrEmployeeExists
	}
	f.employees[e.EmployeeID()] = e
	return nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, e *employee.Employee) error {
	f.employees[e.EmployeeID()] = e
	return nil
}

func (f *fakeEmployeeRepo) Delete(_ context.Context, id int) error {
	if _, ok := f.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(f.employees, id)
	return nil
}

func (f *fakeEmployeeRepo) sortedIDs() []int {
	ids := make([]int, 0, len(f.employees))
	for id := range f.employees {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func validCreateRequest(id int, first, last string) employee.CreateEmployeeRequest {
	salary := decimal.NewFromInt(50000)
	return employee.CreateEmployeeRequest{
		EmployeeID:  id,
		FirstName:   first,
		LastName:    last,
		Status:      "Regular",
		Position:    "Software Developer",
		BasicSalary: &salary,
		RiceSubsidy: decimal.NewFromInt(1500),
	}
}

func TestCreateEmployee(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEmployeeRepo()
	svc := NewEmployeeService(repo)

	birthday := "1990-06-15"
	req := validCreateRequest(10001, "Manuel", "Garcia")
	req.Birthday = &birthday

	resp, err := svc.CreateEmployee(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "Manuel Garcia", resp.FullName)
	assert.Equal(t, "1990-06-15", *resp.Birthday)
	assert.True(t, decimal.NewFromInt(1500).Equal(resp.TotalAllowances))
	assert.Len(t, repo.employees, 1)

	_, err = svc.CreateEmployee(ctx, req)
	assert.ErrorIs(t, err, employee.ErrEmployeeExists)
}

func TestCreateEmployee_InvalidRequest(t *testing.T) {
	svc := NewEmployeeService(newFakeEmployeeRepo())

	_, err := svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{})
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "employee_id")
}

func TestUpdateEmployee(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEmployeeRepo()
	svc := NewEmployeeService(repo)
	_, err := svc.CreateEmployee(ctx, validCreateRequest(10001, "Manuel", "Garcia"))
	require.NoError(t, err)

	position := "Team Lead"
	salary := decimal.NewFromInt(60000)
	resp, err := svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{
		EmployeeID:  10001,
		Position:    &position,
		BasicSalary: &salary,
	})
	require.NoError(t, err)
	assert.Equal(t, "Team Lead", resp.Position)
	assert.Equal(t, "Manuel", resp.FirstName, "untouched fields are kept")
	assert.True(t, salary.Equal(resp.BasicSalary))

	blank := " "
	negative := decimal.NewFromInt(-1)
	_, err = svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{
		EmployeeID:  10001,
		FirstName:   &blank,
		RiceSubsidy: &negative,
	})
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	m := errs.ToMap()
	assert.Equal(t, validator.MsgCannotBeEmpty, m["first_name"])
	assert.Equal(t, validator.MsgCannotBeNegative, m["rice_subsidy"])

	_, err = svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{EmployeeID: 404})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestSearchEmployees(t *testing.T) {
	ctx := context.Background()
	svc := NewEmployeeService(newFakeEmployeeRepo())
	for i, name := range [][2]string{{"Manuel", "Garcia"}, {"Antonio", "Lim"}, {"Bianca", "Aquino"}} {
		_, err := svc.CreateEmployee(ctx, validCreateRequest(10001+i, name[0], name[1]))
		require.NoError(t, err)
	}

	found, err := svc.SearchEmployees(ctx, "  lim ")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, 10002, found[0].EmployeeID)

	_, err = svc.SearchEmployees(ctx, "")
	assert.Error(t, err)
}

func TestGetEmployee_PropagatesStoreErrors(t *testing.T) {
	repo := newFakeEmployeeRepo()
	repo.err = errors.New("connection refused")
	svc := NewEmployeeService(repo)

	_, err := svc.GetEmployee(context.Background(), 10001)
	assert.EqualError(t, err, "connection refused")

	_, err = svc.GetEmployee(context.Background(), 0)
	var ve validator.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestListAndDeleteEmployees(t *testing.T) {
	ctx := context.Background()
	svc := NewEmployeeService(newFakeEmployeeRepo())
	_, err := svc.CreateEmployee(ctx, validCreateRequest(10001, "Manuel", "Garcia"))
	require.NoError(t, err)

	list, err := svc.ListEmployees(ctx, employee.EmployeeFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, list.TotalCount)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 20, list.Limit)

	require.NoError(t, svc.DeleteEmployee(ctx, 10001))
	assert.ErrorIs(t, svc.DeleteEmployee(ctx, 10001), employee.ErrEmployeeNotFound)

	ok, err := svc.EmployeeExists(ctx, 10001)
	require.NoError(t, err)
	assert.False(t, ok)
}
