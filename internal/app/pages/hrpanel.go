package pages

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/astro-web3/hrdesk-console/internal/domain/hr"
	"github.com/astro-web3/hrdesk-console/internal/infra/api"
)

type HRPanelView struct {
	Departments []hr.Department
	Employees   []hr.Employee
	Positions   []hr.Position
}

type HRRequestRow struct {
	ID            int
	Type          string
	Employee      string
	RequestDate   string
	EffectiveDate string
	Status        string
	NeedsIT       bool
}

// HireForm creates the employee record and its hire request in one go.
type HireForm struct {
	FullName        string `form:"full_name"`
	DepartmentID    string `form:"department_id"`
	ManagerID       string `form:"manager_id"`
	PositionID      string `form:"position_id"`
	InternalPhone   string `form:"internal_phone"`
	ExternalPhone   string `form:"external_phone"`
	Email           string `form:"email"`
	Birthday        string `form:"birthday"`
	UsesITEquipment bool   `form:"uses_it_equipment"`
	PassNumber      string `form:"pass_number"`
	HireDate        string `form:"hire_date"`
}

type FireForm struct {
	EmployeeID    string `form:"employee_id"`
	EffectiveDate string `form:"effective_date"`
}

type HRPanel struct {
	api Caller
	now Clock
}

func NewHRPanel(c Caller, now Clock) *HRPanel {
	if now == nil {
		now = time.Now
	}
	return &HRPanel{api: c, now: now}
}

func (h *HRPanel) Load(ctx context.Context) (*HRPanelView, error) {
	var view HRPanelView
	err := loadAll(ctx,
		get(h.api, api.DepartmentsPath, &view.Departments),
		get(h.api, api.EmployeesPath, &view.Employees),
		get(h.api, api.PositionsPath, &view.Positions),
	)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// Requests lists HR requests with employee names resolved. The HR API limits
// this listing to some roles, so it loads apart from the panel itself.
func (h *HRPanel) Requests(ctx context.Context) ([]HRRequestRow, error) {
	var (
		requests  []hr.HRRequest
		employees []hr.Employee
	)
	err := loadAll(ctx,
		get(h.api, api.HRRequestsPath, &requests),
		get(h.api, api.EmployeesPath, &employees),
	)
	if err != nil {
		return nil, err
	}

	names := make(map[int]string, len(employees))
	for _, e := range employees {
		names[e.ID] = e.FullName
	}

	rows := make([]HRRequestRow, 0, len(requests))
	for _, r := range requests {
		employee := names[r.EmployeeID]
		if employee == "" {
			employee = Placeholder
		}
		rows = append(rows, HRRequestRow{
			ID:            r.ID,
			Type:          r.Type,
			Employee:      employee,
			RequestDate:   r.RequestDate,
			EffectiveDate: orPlaceholder(r.EffectiveDate),
			Status:        r.Status,
			NeedsIT:       r.NeedsITEquipment,
		})
	}
	return rows, nil
}

// Hire creates the employee, then files a hire request dated today. When no
// manager is chosen the department's manager is used.
func (h *HRPanel) Hire(ctx context.Context, form HireForm) (*hr.HRRequest, error) {
	departmentID, err := optionalID("department_id", form.DepartmentID)
	if err != nil {
		return nil, err
	}
	managerID, err := optionalID("manager_id", form.ManagerID)
	if err != nil {
		return nil, err
	}
	positionID, err := optionalID("position_id", form.PositionID)
	if err != nil {
		return nil, err
	}

	employee := hr.EmployeeCreate{
		FullName:        strings.TrimSpace(form.FullName),
		PositionID:      positionID,
		DepartmentID:    departmentID,
		ManagerID:       managerID,
		InternalPhone:   optionalString(form.InternalPhone),
		ExternalPhone:   optionalString(form.ExternalPhone),
		Email:           optionalString(form.Email),
		Birthday:        optionalString(form.Birthday),
		UsesITEquipment: form.UsesITEquipment,
		PassNumber:      optionalString(form.PassNumber),
	}
	if err := check(employee); err != nil {
		return nil, err
	}
	effective := optionalString(form.HireDate)
	if effective != nil {
		if _, err := time.Parse(hr.DateLayout, *effective); err != nil {
			return nil, invalid("hire_date must be a date (YYYY-MM-DD)")
		}
	}

	if employee.ManagerID == nil && employee.DepartmentID != nil {
		manager, err := h.departmentManager(ctx, *employee.DepartmentID)
		if err != nil {
			return nil, err
		}
		employee.ManagerID = manager
	}

	var created hr.Employee
	if err := h.api.Call(ctx, http.MethodPost, api.EmployeesPath, employee, &created); err != nil {
		return nil, err
	}

	return h.file(ctx, hr.HRRequestCreate{
		Type:             hr.RequestTypeHire,
		EmployeeID:       created.ID,
		RequestDate:      h.today(),
		EffectiveDate:    effective,
		NeedsITEquipment: form.UsesITEquipment,
		PassNumber:       employee.PassNumber,
	})
}

// Fire files a termination request dated today.
func (h *HRPanel) Fire(ctx context.Context, form FireForm) (*hr.HRRequest, error) {
	if strings.TrimSpace(form.EmployeeID) == "" {
		return nil, invalid("select an employee")
	}
	employeeID, err := optionalID("employee_id", form.EmployeeID)
	if err != nil {
		return nil, err
	}
	return h.file(ctx, hr.HRRequestCreate{
		Type:          hr.RequestTypeFire,
		EmployeeID:    *employeeID,
		RequestDate:   h.today(),
		EffectiveDate: optionalString(form.EffectiveDate),
	})
}

// Process asks the API to carry out a pending request.
func (h *HRPanel) Process(ctx context.Context, id int) (*hr.HRRequest, error) {
	var processed hr.HRRequest
	if err := h.api.Call(ctx, http.MethodPost, api.HRRequestProcessPath(id), nil, &processed); err != nil {
		return nil, err
	}
	return &processed, nil
}

func (h *HRPanel) CreatePosition(ctx context.Context, form PositionForm) (*hr.Position, error) {
	return createPosition(ctx, h.api, form)
}

func (h *HRPanel) file(ctx context.Context, req hr.HRRequestCreate) (*hr.HRRequest, error) {
	if err := check(req); err != nil {
		return nil, err
	}
	var created hr.HRRequest
	if err := h.api.Call(ctx, http.MethodPost, api.HRRequestsPath, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (h *HRPanel) departmentManager(ctx context.Context, departmentID int) (*int, error) {
	var departments []hr.Department
	if err := h.api.Call(ctx, http.MethodGet, api.DepartmentsPath, nil, &departments); err != nil {
		return nil, err
	}
	for _, d := range departments {
		if d.ID == departmentID {
			return d.ManagerID, nil
		}
	}
	return nil, nil
}

func (h *HRPanel) today() string {
	return h.now().UTC().Format(hr.DateLayout)
}
