package pages

import (
	"context"
	"net/http"
	"strings"

	"github.com/astro-web3/hrdesk-console/internal/domain/hr"
	"github.com/astro-web3/hrdesk-console/internal/domain/session"
	"github.com/astro-web3/hrdesk-console/internal/infra/api"
)

// DefaultUserRole is preselected when creating a user.
const DefaultUserRole = session.RoleAuditor

type RoleOption struct {
	Value session.Role
	Label string
}

//nolint:gochecknoglobals // fixed option list
var roleOptions = []RoleOption{
	{Value: session.RoleAdmin, Label: "Administrator"},
	{Value: session.RoleHR, Label: "HR manager"},
	{Value: session.RoleIT, Label: "IT specialist"},
	{Value: session.RoleAuditor, Label: "Auditor"},
	{Value: session.RoleManager, Label: "Manager"},
}

// RoleOptions lists assignable roles in display order.
func RoleOptions() []RoleOption {
	out := make([]RoleOption, len(roleOptions))
	copy(out, roleOptions)
	return out
}

type UserForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
	Role     string `form:"role"`
}

type Users struct {
	api Caller
}

func NewUsers(c Caller) *Users {
	return &Users{api: c}
}

func (u *Users) Load(ctx context.Context) ([]hr.User, error) {
	var users []hr.User
	if err := loadAll(ctx, get(u.api, api.UsersPath, &users)); err != nil {
		return nil, err
	}
	return users, nil
}

func (u *Users) Create(ctx context.Context, form UserForm) (*hr.User, error) {
	role := strings.TrimSpace(form.Role)
	if role == "" {
		role = string(DefaultUserRole)
	}
	if err := checkRole(role); err != nil {
		return nil, err
	}

	payload := hr.UserCreate{
		Username: strings.TrimSpace(form.Username),
		Password: form.Password,
		Role:     role,
	}
	if err := check(payload); err != nil {
		return nil, err
	}

	var created hr.User
	if err := u.api.Call(ctx, http.MethodPost, api.UsersPath, payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (u *Users) ChangeRole(ctx context.Context, id int, role string) (*hr.User, error) {
	role = strings.TrimSpace(role)
	if err := checkRole(role); err != nil {
		return nil, err
	}

	var updated hr.User
	if err := u.api.Call(ctx, http.MethodPatch, api.UserPath(id), hr.RoleUpdate{Role: role}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (u *Users) ResetPassword(ctx context.Context, id int, password string) error {
	payload := hr.PasswordReset{NewPassword: password}
	if err := check(payload); err != nil {
		return err
	}
	return u.api.Call(ctx, http.MethodPost, api.UserPasswordResetPath(id), payload, nil)
}

func (u *Users) Delete(ctx context.Context, id int) error {
	return u.api.Call(ctx, http.MethodDelete, api.UserPath(id), nil, nil)
}

func checkRole(role string) error {
	if role == "" {
		return invalid("role is required")
	}
	for _, opt := range roleOptions {
		if string(opt.Value) == role {
			return nil
		}
	}
	return invalid("unknown role %q", role)
}
