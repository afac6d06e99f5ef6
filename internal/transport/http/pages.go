package http

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/astro-web3/hrdesk-console/internal/app/pages"
	"github.com/astro-web3/hrdesk-console/internal/domain/access"
	"github.com/astro-web3/hrdesk-console/internal/domain/hr"
)

// pageRoutes maps every catalog path to its page. The router mounts exactly
// the catalog, so an entry here without a catalog item is never reachable.
func (h *Handler) pageRoutes() map[string]pageRoute {
	return map[string]pageRoute{
		access.PhonebookItem.Path: {
			template: "phonebook",
			heading:  "Phonebook",
			load: func(c *gin.Context, s *requestScope) (any, error) {
				return pages.NewPhonebook(s.gateway).Load(c.Request.Context(), c.Query("q"))
			},
		},
		access.BirthdaysItem.Path: {
			template: "birthdays",
			heading:  "Birthdays",
			load:     h.loadBirthdays,
		},
		access.OrgChartItem.Path: {
			template: "orgchart",
			heading:  "Org chart",
			load: func(c *gin.Context, s *requestScope) (any, error) {
				return pages.NewOrgChart(s.gateway).Load(c.Request.Context())
			},
			actions: map[string]pageAction{
				"/departments":   h.createDepartment,
				"/employees/:id": h.editEmployee,
				"/positions": func(c *gin.Context, s *requestScope) (string, error) {
					return createPosition(c, pages.NewOrgChart(s.gateway).CreatePosition)
				},
			},
		},
		access.HRPanelItem.Path: {
			template: "hrpanel",
			heading:  "HR panel",
			load:     h.loadHRPanel,
			actions: map[string]pageAction{
				"/hire":                 h.hire,
				"/fire":                 h.fire,
				"/requests/:id/process": h.processRequest,
				"/positions": func(c *gin.Context, s *requestScope) (string, error) {
					return createPosition(c, pages.NewHRPanel(s.gateway, h.now).CreatePosition)
				},
			},
		},
		access.AuditItem.Path: {
			template: "audit",
			heading:  "Audit",
			load: func(c *gin.Context, s *requestScope) (any, error) {
				return pages.NewAudit(s.gateway).Load(c.Request.Context())
			},
		},
		access.SettingsItem.Path: {
			template: "settings",
			heading:  "Settings",
			load:     h.loadSettings,
			actions: map[string]pageAction{
				"/values/:key":    h.updateSetting,
				"/favicon":        h.uploadFavicon,
				"/favicon/delete": h.deleteFavicon,
			},
		},
		access.UsersItem.Path: {
			template: "users",
			heading:  "Users",
			load:     h.loadUsers,
			actions: map[string]pageAction{
				"":              h.createUser,
				"/:id/role":     h.changeRole,
				"/:id/password": h.resetPassword,
				"/:id/delete":   h.deleteUser,
			},
		},
	}
}

type monthOption struct {
	Number int
	Name   string
}

type birthdaysPage struct {
	View   *pages.BirthdaysView
	Months []monthOption
}

func (h *Handler) loadBirthdays(c *gin.Context, s *requestScope) (any, error) {
	month := 0
	if raw := c.Query("month"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &pages.ValidationError{Message: "month must be between 1 and 12"}
		}
		month = n
	}

	view, err := pages.NewBirthdays(s.gateway, h.now).Load(c.Request.Context(), month)
	if err != nil {
		return nil, err
	}

	months := make([]monthOption, 0, 12)
	for m := time.January; m <= time.December; m++ {
		months = append(months, monthOption{Number: int(m), Name: m.String()})
	}
	return &birthdaysPage{View: view, Months: months}, nil
}

type hrPanelPage struct {
	Panel         *pages.HRPanelView
	Requests      []pages.HRRequestRow
	RequestsError string
}

func (h *Handler) loadHRPanel(c *gin.Context, s *requestScope) (any, error) {
	panel := pages.NewHRPanel(s.gateway, h.now)

	view, err := panel.Load(c.Request.Context())
	if err != nil {
		return nil, err
	}

	page := &hrPanelPage{Panel: view}
	rows, err := panel.Requests(c.Request.Context())
	if err != nil {
		if discarded(c, err) {
			return nil, err
		}
		page.RequestsError = errorText(err)
	}
	page.Requests = rows
	return page, nil
}

type settingsPage struct {
	View        *pages.SettingsView
	FaviconHref string
}

func (h *Handler) loadSettings(c *gin.Context, s *requestScope) (any, error) {
	view, err := pages.NewSettings(s.gateway, h.branding).Load(c.Request.Context())
	if err != nil {
		return nil, err
	}
	return &settingsPage{View: view, FaviconHref: h.branding.FaviconHref(view.SiteFavicon)}, nil
}

type usersPage struct {
	Users       []hr.User
	Roles       []pages.RoleOption
	DefaultRole string
}

func (h *Handler) loadUsers(c *gin.Context, s *requestScope) (any, error) {
	users, err := pages.NewUsers(s.gateway).Load(c.Request.Context())
	if err != nil {
		return nil, err
	}
	return &usersPage{
		Users:       users,
		Roles:       pages.RoleOptions(),
		DefaultRole: string(pages.DefaultUserRole),
	}, nil
}

func (h *Handler) createDepartment(c *gin.Context, s *requestScope) (string, error) {
	var form pages.DepartmentForm
	if err := c.ShouldBind(&form); err != nil {
		return "", formError(err)
	}
	created, err := pages.NewOrgChart(s.gateway).CreateDepartment(c.Request.Context(), form)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Department %q created", created.Name), nil
}

func (h *Handler) editEmployee(c *gin.Context, s *requestScope) (string, error) {
	id, err := pathID(c)
	if err != nil {
		return "", err
	}
	var form pages.EmployeeEdit
	if err := c.ShouldBind(&form); err != nil {
		return "", formError(err)
	}
	changed, err := pages.NewOrgChart(s.gateway).EditEmployee(c.Request.Context(), id, form)
	if err != nil {
		return "", err
	}
	if !changed {
		return "No changes to save", nil
	}
	return "Employee updated", nil
}

func createPosition(
	c *gin.Context,
	create func(ctx context.Context, form pages.PositionForm) (*hr.Position, error),
) (string, error) {
	var form pages.PositionForm
	if err := c.ShouldBind(&form); err != nil {
		return "", formError(err)
	}
	created, err := create(c.Request.Context(), form)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Position %q created", created.Name), nil
}

func (h *Handler) hire(c *gin.Context, s *requestScope) (string, error) {
	var form pages.HireForm
	if err := c.ShouldBind(&form); err != nil {
		return "", formError(err)
	}
	req, err := pages.NewHRPanel(s.gateway, h.now).Hire(c.Request.Context(), form)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Request #%d created", req.ID), nil
}

func (h *Handler) fire(c *gin.Context, s *requestScope) (string, error) {
	var form pages.FireForm
	if err := c.ShouldBind(&form); err != nil {
		return "", formError(err)
	}
	req, err := pages.NewHRPanel(s.gateway, h.now).Fire(c.Request.Context(), form)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Request #%d created", req.ID), nil
}

func (h *Handler) processRequest(c *gin.Context, s *requestScope) (string, error) {
	id, err := pathID(c)
	if err != nil {
		return "", err
	}
	req, err := pages.NewHRPanel(s.gateway, h.now).Process(c.Request.Context(), id)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Request #%d is now %s", req.ID, req.Status), nil
}

func (h *Handler) updateSetting(c *gin.Context, s *requestScope) (string, error) {
	key := c.Param("key")
	if _, err := pages.NewSettings(s.gateway, h.branding).Update(c.Request.Context(), key, c.PostForm("value")); err != nil {
		return "", err
	}
	return "Setting saved", nil
}

func (h *Handler) uploadFavicon(c *gin.Context, s *requestScope) (string, error) {
	header, err := c.FormFile(faviconField)
	if err != nil {
		return "", &pages.ValidationError{Message: "choose a file to upload"}
	}
	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, pages.MaxFaviconSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	if _, err := pages.NewSettings(s.gateway, h.branding).UploadFavicon(c.Request.Context(), header.Filename, content); err != nil {
		return "", err
	}
	return "Favicon uploaded", nil
}

func (h *Handler) deleteFavicon(c *gin.Context, s *requestScope) (string, error) {
	if err := pages.NewSettings(s.gateway, h.branding).DeleteFavicon(c.Request.Context()); err != nil {
		return "", err
	}
	return "Favicon removed", nil
}

func (h *Handler) createUser(c *gin.Context, s *requestScope) (string, error) {
	var form pages.UserForm
	if err := c.ShouldBind(&form); err != nil {
		return "", formError(err)
	}
	created, err := pages.NewUsers(s.gateway).Create(c.Request.Context(), form)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("User %s created", created.Username), nil
}

func (h *Handler) changeRole(c *gin.Context, s *requestScope) (string, error) {
	id, err := pathID(c)
	if err != nil {
		return "", err
	}
	if _, err := pages.NewUsers(s.gateway).ChangeRole(c.Request.Context(), id, c.PostForm("role")); err != nil {
		return "", err
	}
	return "Role updated", nil
}

func (h *Handler) resetPassword(c *gin.Context, s *requestScope) (string, error) {
	id, err := pathID(c)
	if err != nil {
		return "", err
	}
	if err := pages.NewUsers(s.gateway).ResetPassword(c.Request.Context(), id, c.PostForm("new_password")); err != nil {
		return "", err
	}
	return "Password reset", nil
}

func (h *Handler) deleteUser(c *gin.Context, s *requestScope) (string, error) {
	id, err := pathID(c)
	if err != nil {
		return "", err
	}
	if err := pages.NewUsers(s.gateway).Delete(c.Request.Context(), id); err != nil {
		return "", err
	}
	return "User deleted", nil
}

const faviconField = "favicon"

func pathID(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, &pages.ValidationError{Message: "invalid id"}
	}
	return id, nil
}

func formError(err error) error {
	return &pages.ValidationError{Message: "could not read form: " + err.Error()}
}
