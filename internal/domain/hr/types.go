// Package hr holds the resource shapes exchanged with the HR API.
//
// Dates travel as the API's ISO strings and are parsed only where a page
// needs them, so a malformed value can still be shown as received.
package hr

const (
	RequestTypeHire = "hire"
	RequestTypeFire = "fire"

	RequestStatusNew = "new"

	// DateLayout is the API's calendar date format.
	DateLayout = "2006-01-02"
)

type Department struct {
	ID                 int    `json:"id"`
	Name               string `json:"name"`
	ParentDepartmentID *int   `json:"parent_department_id,omitempty"`
	ManagerID          *int   `json:"manager_id,omitempty"`
}

type DepartmentCreate struct {
	Name               string `json:"name" validate:"required"`
	ParentDepartmentID *int   `json:"parent_department_id,omitempty"`
	ManagerID          *int   `json:"manager_id,omitempty"`
}

type Position struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	AccessTemplate *string `json:"access_template,omitempty"`
	DepartmentID   *int    `json:"department_id,omitempty"`
}

type PositionCreate struct {
	Name         string `json:"name" validate:"required"`
	DepartmentID *int   `json:"department_id" validate:"required"`
}

type Employee struct {
	ID              int     `json:"id"`
	FullName        string  `json:"full_name"`
	PositionID      *int    `json:"position_id,omitempty"`
	DepartmentID    *int    `json:"department_id,omitempty"`
	ManagerID       *int    `json:"manager_id,omitempty"`
	InternalPhone   *string `json:"internal_phone,omitempty"`
	ExternalPhone   *string `json:"external_phone,omitempty"`
	Email           *string `json:"email,omitempty"`
	Birthday        *string `json:"birthday,omitempty"`
	Status          string  `json:"status,omitempty"`
	UsesITEquipment bool    `json:"uses_it_equipment"`
	ExternalID      *string `json:"external_id,omitempty"`
	PassNumber      *string `json:"pass_number,omitempty"`
}

type EmployeeCreate struct {
	FullName        string  `json:"full_name" validate:"required"`
	PositionID      *int    `json:"position_id,omitempty"`
	DepartmentID    *int    `json:"department_id,omitempty"`
	ManagerID       *int    `json:"manager_id,omitempty"`
	InternalPhone   *string `json:"internal_phone,omitempty"`
	ExternalPhone   *string `json:"external_phone,omitempty"`
	Email           *string `json:"email,omitempty" validate:"omitempty,email"`
	Birthday        *string `json:"birthday,omitempty" validate:"omitempty,datetime=2006-01-02"`
	UsesITEquipment bool    `json:"uses_it_equipment"`
	PassNumber      *string `json:"pass_number,omitempty"`
}

type PhonebookEntry struct {
	ID            int     `json:"id"`
	FullName      string  `json:"full_name"`
	InternalPhone *string `json:"internal_phone,omitempty"`
	ExternalPhone *string `json:"external_phone,omitempty"`
	Email         *string `json:"email,omitempty"`
	DepartmentID  *int    `json:"department_id,omitempty"`
	PositionID    *int    `json:"position_id,omitempty"`
}

type BirthdayEntry struct {
	ID           int     `json:"id"`
	FullName     string  `json:"full_name"`
	DepartmentID *int    `json:"department_id,omitempty"`
	Birthday     *string `json:"birthday,omitempty"`
}

type OrgEmployee struct {
	ID       int    `json:"id"`
	FullName string `json:"full_name"`
}

type OrgPosition struct {
	ID        *int          `json:"id"`
	Name      string        `json:"name"`
	Employees []OrgEmployee `json:"employees"`
}

type OrgDepartment struct {
	ID                 int           `json:"id"`
	Name               string        `json:"name"`
	ParentDepartmentID *int          `json:"parent_department_id,omitempty"`
	Positions          []OrgPosition `json:"positions"`
}

type HRRequest struct {
	ID               int     `json:"id"`
	Type             string  `json:"type"`
	EmployeeID       int     `json:"employee_id"`
	RequestDate      string  `json:"request_date"`
	EffectiveDate    *string `json:"effective_date,omitempty"`
	Status           string  `json:"status"`
	NeedsITEquipment bool    `json:"needs_it_equipment"`
}

type HRRequestCreate struct {
	Type             string  `json:"type" validate:"oneof=hire fire"`
	EmployeeID       int     `json:"employee_id" validate:"required"`
	RequestDate      string  `json:"request_date" validate:"required,datetime=2006-01-02"`
	EffectiveDate    *string `json:"effective_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	NeedsITEquipment bool    `json:"needs_it_equipment"`
	PassNumber       *string `json:"pass_number,omitempty"`
}

type AuditEntry struct {
	ID        int     `json:"id"`
	User      string  `json:"user"`
	Action    string  `json:"action"`
	Entity    string  `json:"entity"`
	Timestamp string  `json:"timestamp"`
	Details   *string `json:"details,omitempty"`
}

// Me is the subset of GET /auth/me the console reads.
type Me struct {
	Username string `json:"username,omitempty"`
	Role     string `json:"role"`
}

type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type UserCreate struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

type RoleUpdate struct {
	Role string `json:"role" validate:"required"`
}

type PasswordReset struct {
	NewPassword string `json:"new_password" validate:"required"`
}

type SystemSetting struct {
	ID           int     `json:"id"`
	SettingKey   string  `json:"setting_key"`
	SettingValue *string `json:"setting_value"`
	SettingType  string  `json:"setting_type"`
	Description  *string `json:"description"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

type SettingUpdate struct {
	Value string `json:"value"`
}

// Branding is the public, unauthenticated site identity.
type Branding struct {
	SiteTitle   string `json:"site_title"`
	SiteFavicon string `json:"site_favicon"`
}

type FaviconUpload struct {
	URL string `json:"url"`
}

// Setting keys the console treats specially.
const (
	SettingSiteTitle   = "site_title"
	SettingSiteFavicon = "site_favicon"
)
