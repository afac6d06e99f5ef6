package pages

import (
	"context"
	"net/http"
	"strings"

	"github.com/astro-web3/hrdesk-console/internal/domain/hr"
	"github.com/astro-web3/hrdesk-console/internal/domain/session"
	"github.com/astro-web3/hrdesk-console/internal/infra/api"
)

type OrgChartView struct {
	Tree        []hr.OrgDepartment
	Departments []hr.Department
	Employees   []hr.Employee
	Positions   []hr.Position
	// CanCreateDepartment follows the server's answer to /auth/me, not the
	// role claimed by the stored token.
	CanCreateDepartment bool
}

// DepartmentForm is the department creation form.
type DepartmentForm struct {
	Name               string `form:"name"`
	ParentDepartmentID string `form:"parent_department_id"`
	ManagerID          string `form:"manager_id"`
}

// EmployeeEdit carries the edit form as submitted; empty strings clear
// optional fields.
type EmployeeEdit struct {
	FullName      string `form:"full_name"`
	DepartmentID  string `form:"department_id"`
	PositionID    string `form:"position_id"`
	ManagerID     string `form:"manager_id"`
	InternalPhone string `form:"internal_phone"`
	ExternalPhone string `form:"external_phone"`
	Email         string `form:"email"`
}

type PositionForm struct {
	Name         string `form:"name"`
	DepartmentID string `form:"department_id"`
}

type OrgChart struct {
	api Caller
}

func NewOrgChart(c Caller) *OrgChart {
	return &OrgChart{api: c}
}

func (o *OrgChart) Load(ctx context.Context) (*OrgChartView, error) {
	var (
		view OrgChartView
		me   hr.Me
	)
	err := loadAll(ctx,
		get(o.api, api.OrgPath, &view.Tree),
		get(o.api, api.DepartmentsPath, &view.Departments),
		get(o.api, api.EmployeesPath, &view.Employees),
		get(o.api, api.PositionsPath, &view.Positions),
		get(o.api, api.MePath, &me),
	)
	if err != nil {
		return nil, err
	}

	view.CanCreateDepartment = session.Role(me.Role) == session.RoleAdmin
	return &view, nil
}

// CreateDepartment is reserved to admins as reported by /auth/me.
func (o *OrgChart) CreateDepartment(ctx context.Context, form DepartmentForm) (*hr.Department, error) {
	parentID, err := optionalID("parent_department_id", form.ParentDepartmentID)
	if err != nil {
		return nil, err
	}
	managerID, err := optionalID("manager_id", form.ManagerID)
	if err != nil {
		return nil, err
	}
	payload := hr.DepartmentCreate{
		Name:               strings.TrimSpace(form.Name),
		ParentDepartmentID: parentID,
		ManagerID:          managerID,
	}
	if err := check(payload); err != nil {
		return nil, err
	}

	var me hr.Me
	if err := o.api.Call(ctx, http.MethodGet, api.MePath, nil, &me); err != nil {
		return nil, err
	}
	if session.Role(me.Role) != session.RoleAdmin {
		return nil, ErrNotAllowed
	}

	var created hr.Department
	if err := o.api.Call(ctx, http.MethodPost, api.DepartmentsPath, payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// EditEmployee patches only the fields that differ from the employee's
// current record. It reports false when there was nothing to send.
func (o *OrgChart) EditEmployee(ctx context.Context, id int, form EmployeeEdit) (bool, error) {
	departmentID, err := optionalID("department_id", form.DepartmentID)
	if err != nil {
		return false, err
	}
	positionID, err := optionalID("position_id", form.PositionID)
	if err != nil {
		return false, err
	}
	managerID, err := optionalID("manager_id", form.ManagerID)
	if err != nil {
		return false, err
	}

	var employees []hr.Employee
	if err := o.api.Call(ctx, http.MethodGet, api.EmployeesPath, nil, &employees); err != nil {
		return false, err
	}
	idx := indexEmployee(employees, id)
	if idx < 0 {
		return false, invalid("employee %d not found", id)
	}
	current := employees[idx]

	patch := make(map[string]any)
	if name := strings.TrimSpace(form.FullName); name != "" && name != current.FullName {
		patch["full_name"] = name
	}
	if !sameID(departmentID, current.DepartmentID) {
		patch["department_id"] = departmentID
	}
	if !sameID(positionID, current.PositionID) {
		patch["position_id"] = positionID
	}
	if managerID != nil {
		patch["manager_id"] = *managerID
	}
	diffText(patch, "internal_phone", form.InternalPhone, current.InternalPhone)
	diffText(patch, "external_phone", form.ExternalPhone, current.ExternalPhone)
	diffText(patch, "email", form.Email, current.Email)

	if len(patch) == 0 {
		return false, nil
	}
	if err := o.api.Call(ctx, http.MethodPatch, api.EmployeePath(id), patch, nil); err != nil {
		return false, err
	}
	return true, nil
}

// CreatePosition adds a position inside an already selected department.
func (o *OrgChart) CreatePosition(ctx context.Context, form PositionForm) (*hr.Position, error) {
	return createPosition(ctx, o.api, form)
}

func createPosition(ctx context.Context, c Caller, form PositionForm) (*hr.Position, error) {
	if strings.TrimSpace(form.DepartmentID) == "" {
		return nil, invalid("select a department first")
	}
	departmentID, err := optionalID("department_id", form.DepartmentID)
	if err != nil {
		return nil, err
	}
	payload := hr.PositionCreate{
		Name:         strings.TrimSpace(form.Name),
		DepartmentID: departmentID,
	}
	if err := check(payload); err != nil {
		return nil, err
	}

	var created hr.Position
	if err := c.Call(ctx, http.MethodPost, api.PositionsPath, payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func diffText(patch map[string]any, key, submitted string, current *string) {
	submitted = strings.TrimSpace(submitted)
	if submitted == deref(current) {
		return
	}
	if submitted == "" {
		patch[key] = nil
		return
	}
	patch[key] = submitted
}

func indexEmployee(employees []hr.Employee, id int) int {
	for i, e := range employees {
		if e.ID == id {
			return i
		}
	}
	return -1
}
