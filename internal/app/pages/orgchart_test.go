package pages_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astro-web3/hrdesk-console/internal/app/pages"
	"github.com/astro-web3/hrdesk-console/internal/domain/hr"
	"github.com/astro-web3/hrdesk-console/internal/infra/api"
)

func orgAPI(meRole string) *fakeAPI {
	return newFakeAPI().
		reply(http.MethodGet, api.OrgPath, []hr.OrgDepartment{{ID: 1, Name: "IT"}}).
		reply(http.MethodGet, api.DepartmentsPath, []hr.Department{{ID: 1, Name: "IT"}, {ID: 2, Name: "HR"}}).
		reply(http.MethodGet, api.EmployeesPath, []hr.Employee{
			{
				ID:            7,
				FullName:      "Kim",
				DepartmentID:  ptr(1),
				PositionID:    ptr(5),
				InternalPhone: ptr("101"),
			},
		}).
		reply(http.MethodGet, api.PositionsPath, []hr.Position{{ID: 5, Name: "Engineer"}}).
		reply(http.MethodGet, api.MePath, hr.Me{Username: "root", Role: meRole})
}

func TestOrgChart_Load(t *testing.T) {
	for role, want := range map[string]bool{"admin": true, "hr": false, "it": false} {
		t.Run(role, func(t *testing.T) {
			view, err := pages.NewOrgChart(orgAPI(role)).Load(context.Background())

			require.NoError(t, err)
			assert.Equal(t, want, view.CanCreateDepartment)
			assert.Len(t, view.Tree, 1)
			assert.Len(t, view.Departments, 2)
			assert.Len(t, view.Employees, 1)
		})
	}
}

func TestOrgChart_LoadFailsWhenAnyResourceFails(t *testing.T) {
	fake := orgAPI("admin").fail(http.MethodGet, api.MePath,
		&api.RequestError{Status: http.StatusUnauthorized, Message: "Not authenticated"})

	view, err := pages.NewOrgChart(fake).Load(context.Background())

	assert.Nil(t, view)
	assert.EqualError(t, err, "Not authenticated")
}

func TestOrgChart_CreateDepartmentRequiresAdmin(t *testing.T) {
	fake := orgAPI("hr").reply(http.MethodPost, api.DepartmentsPath, hr.Department{ID: 3, Name: "Ops"})

	_, err := pages.NewOrgChart(fake).CreateDepartment(context.Background(), pages.DepartmentForm{Name: "Ops"})

	require.ErrorIs(t, err, pages.ErrNotAllowed)
	assert.Empty(t, fake.callsTo(http.MethodPost, api.DepartmentsPath))
}

func TestOrgChart_CreateDepartment(t *testing.T) {
	fake := orgAPI("admin").reply(http.MethodPost, api.DepartmentsPath, hr.Department{ID: 3, Name: "Ops"})

	created, err := pages.NewOrgChart(fake).CreateDepartment(context.Background(), pages.DepartmentForm{
		Name:               " Ops ",
		ParentDepartmentID: "1",
	})

	require.NoError(t, err)
	assert.Equal(t, 3, created.ID)

	posts := fake.callsTo(http.MethodPost, api.DepartmentsPath)
	require.Len(t, posts, 1)
	assert.JSONEq(t, `{"name":"Ops","parent_department_id":1}`, bodyJSON(posts[0].Body))
}

func TestOrgChart_CreateDepartmentValidatesFirst(t *testing.T) {
	fake := orgAPI("admin")

	_, err := pages.NewOrgChart(fake).CreateDepartment(context.Background(), pages.DepartmentForm{Name: "  "})

	assert.EqualError(t, err, "name is required")
	assert.Empty(t, fake.recorded())
}

func TestOrgChart_EditEmployeeSendsOnlyChangedFields(t *testing.T) {
	fake := orgAPI("admin").reply(http.MethodPatch, api.EmployeePath(7), nil)

	changed, err := pages.NewOrgChart(fake).EditEmployee(context.Background(), 7, pages.EmployeeEdit{
		FullName:      "Kim",
		DepartmentID:  "2",
		PositionID:    "",
		InternalPhone: "",
		Email:         "kim@example.com",
	})

	require.NoError(t, err)
	assert.True(t, changed)

	patches := fake.callsTo(http.MethodPatch, api.EmployeePath(7))
	require.Len(t, patches, 1)
	assert.JSONEq(t,
		`{"department_id":2,"position_id":null,"internal_phone":null,"email":"kim@example.com"}`,
		bodyJSON(patches[0].Body))
}

func TestOrgChart_EditEmployeeWithoutChangesSkipsPatch(t *testing.T) {
	fake := orgAPI("admin")

	changed, err := pages.NewOrgChart(fake).EditEmployee(context.Background(), 7, pages.EmployeeEdit{
		FullName:      "Kim",
		DepartmentID:  "1",
		PositionID:    "5",
		InternalPhone: "101",
	})

	require.NoError(t, err)
	assert.False(t, changed)
	assert.Empty(t, fake.callsTo(http.MethodPatch, api.EmployeePath(7)))
}

func TestOrgChart_CreatePositionNeedsDepartment(t *testing.T) {
	fake := orgAPI("admin")

	_, err := pages.NewOrgChart(fake).CreatePosition(context.Background(), pages.PositionForm{Name: "Lead"})

	assert.EqualError(t, err, "select a department first")
	assert.Empty(t, fake.recorded())
}

func TestOrgChart_CreatePosition(t *testing.T) {
	fake := orgAPI("admin").reply(http.MethodPost, api.PositionsPath, hr.Position{ID: 9, Name: "Lead"})

	created, err := pages.NewOrgChart(fake).CreatePosition(context.Background(), pages.PositionForm{
		Name:         " Lead ",
		DepartmentID: "1",
	})

	require.NoError(t, err)
	assert.Equal(t, 9, created.ID)
	posts := fake.callsTo(http.MethodPost, api.PositionsPath)
	require.Len(t, posts, 1)
	assert.JSONEq(t, `{"name":"Lead","department_id":1}`, bodyJSON(posts[0].Body))
}
