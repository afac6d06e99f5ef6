package pages_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astro-web3/hrdesk-console/internal/app/pages"
	"github.com/astro-web3/hrdesk-console/internal/domain/hr"
	"github.com/astro-web3/hrdesk-console/internal/infra/api"
)

var hrNow = time.Date(2026, time.October, 16, 9, 30, 0, 0, time.UTC)

func hrAPI() *fakeAPI {
	return newFakeAPI().
		reply(http.MethodGet, api.DepartmentsPath, []hr.Department{
			{ID: 1, Name: "IT", ManagerID: ptr(40)},
			{ID: 2, Name: "HR"},
		}).
		reply(http.MethodGet, api.EmployeesPath, []hr.Employee{{ID: 40, FullName: "Boss"}}).
		reply(http.MethodGet, api.PositionsPath, []hr.Position{{ID: 5, Name: "Engineer", DepartmentID: ptr(1)}})
}

func TestHRPanel_Hire(t *testing.T) {
	fake := hrAPI().
		reply(http.MethodPost, api.EmployeesPath, hr.Employee{ID: 41, FullName: "Newbie"}).
		reply(http.MethodPost, api.HRRequestsPath, hr.HRRequest{ID: 100, Type: "hire", EmployeeID: 41})

	req, err := pages.NewHRPanel(fake, fixedClock(hrNow)).Hire(context.Background(), pages.HireForm{
		FullName:        "Newbie",
		DepartmentID:    "1",
		PositionID:      "5",
		UsesITEquipment: true,
		PassNumber:      "P-1",
		HireDate:        "2026-11-01",
	})

	require.NoError(t, err)
	assert.Equal(t, 100, req.ID)

	employees := fake.callsTo(http.MethodPost, api.EmployeesPath)
	require.Len(t, employees, 1)
	assert.JSONEq(t,
		`{"full_name":"Newbie","department_id":1,"manager_id":40,"position_id":5,"uses_it_equipment":true,"pass_number":"P-1"}`,
		bodyJSON(employees[0].Body))

	requests := fake.callsTo(http.MethodPost, api.HRRequestsPath)
	require.Len(t, requests, 1)
	assert.JSONEq(t,
		`{"type":"hire","employee_id":41,"request_date":"2026-10-16","effective_date":"2026-11-01","needs_it_equipment":true,"pass_number":"P-1"}`,
		bodyJSON(requests[0].Body))
}

func TestHRPanel_HireExplicitManagerWins(t *testing.T) {
	fake := hrAPI().
		reply(http.MethodPost, api.EmployeesPath, hr.Employee{ID: 41}).
		reply(http.MethodPost, api.HRRequestsPath, hr.HRRequest{ID: 1})

	_, err := pages.NewHRPanel(fake, fixedClock(hrNow)).Hire(context.Background(), pages.HireForm{
		FullName:     "Newbie",
		DepartmentID: "1",
		ManagerID:    "7",
	})

	require.NoError(t, err)
	assert.Empty(t, fake.callsTo(http.MethodGet, api.DepartmentsPath))
	employees := fake.callsTo(http.MethodPost, api.EmployeesPath)
	require.Len(t, employees, 1)
	assert.Contains(t, bodyJSON(employees[0].Body), `"manager_id":7`)
}

func TestHRPanel_HireValidation(t *testing.T) {
	tests := []struct {
		name string
		form pages.HireForm
		want string
	}{
		{name: "missing name", form: pages.HireForm{}, want: "full_name is required"},
		{name: "bad email", form: pages.HireForm{FullName: "A", Email: "nope"}, want: "email must be a valid email address"},
		{name: "bad birthday", form: pages.HireForm{FullName: "A", Birthday: "01.02.1990"}, want: "birthday must be a date (YYYY-MM-DD)"},
		{name: "bad hire date", form: pages.HireForm{FullName: "A", HireDate: "tomorrow"}, want: "hire_date must be a date (YYYY-MM-DD)"},
		{name: "bad department", form: pages.HireForm{FullName: "A", DepartmentID: "x"}, want: "department_id must be a valid id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := hrAPI()

			_, err := pages.NewHRPanel(fake, fixedClock(hrNow)).Hire(context.Background(), tt.form)

			var vErr *pages.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.want, vErr.Message)
			assert.Empty(t, fake.recorded())
		})
	}
}

func TestHRPanel_Fire(t *testing.T) {
	fake := hrAPI().reply(http.MethodPost, api.HRRequestsPath, hr.HRRequest{ID: 5, Type: "fire"})

	_, err := pages.NewHRPanel(fake, fixedClock(hrNow)).Fire(context.Background(), pages.FireForm{
		EmployeeID:    "40",
		EffectiveDate: "2026-10-31",
	})

	require.NoError(t, err)
	requests := fake.callsTo(http.MethodPost, api.HRRequestsPath)
	require.Len(t, requests, 1)
	assert.JSONEq(t,
		`{"type":"fire","employee_id":40,"request_date":"2026-10-16","effective_date":"2026-10-31","needs_it_equipment":false}`,
		bodyJSON(requests[0].Body))
}

func TestHRPanel_FireRequiresEmployee(t *testing.T) {
	fake := hrAPI()

	_, err := pages.NewHRPanel(fake, fixedClock(hrNow)).Fire(context.Background(), pages.FireForm{})

	assert.EqualError(t, err, "select an employee")
	assert.Empty(t, fake.recorded())
}

func TestHRPanel_Requests(t *testing.T) {
	fake := hrAPI().reply(http.MethodGet, api.HRRequestsPath, []hr.HRRequest{
		{ID: 1, Type: "hire", EmployeeID: 40, RequestDate: "2026-10-01", Status: "new"},
		{ID: 2, Type: "fire", EmployeeID: 99, RequestDate: "2026-10-02", EffectiveDate: ptr("2026-10-30"), Status: "done"},
	})

	rows, err := pages.NewHRPanel(fake, nil).Requests(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Boss", rows[0].Employee)
	assert.Equal(t, "-", rows[0].EffectiveDate)
	assert.Equal(t, "-", rows[1].Employee)
	assert.Equal(t, "2026-10-30", rows[1].EffectiveDate)
}

func TestHRPanel_Process(t *testing.T) {
	fake := hrAPI().reply(http.MethodPost, api.HRRequestProcessPath(3), hr.HRRequest{ID: 3, Status: "done"})

	processed, err := pages.NewHRPanel(fake, nil).Process(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, "done", processed.Status)
}
