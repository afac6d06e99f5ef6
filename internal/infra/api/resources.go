package api

import (
	"net/url"
	"strconv"
)

// HR API resource paths, relative to the configured base URL.
const (
	LoginPath           = "/auth/login"
	MePath              = "/auth/me"
	EmployeesPath       = "/employees/"
	DepartmentsPath     = "/departments/"
	PositionsPath       = "/positions/"
	HRRequestsPath      = "/hr-requests/"
	AuditPath           = "/audit/"
	OrgPath             = "/org/"
	UsersPath           = "/users/"
	SettingsPath        = "/settings"
	BrandingPath        = "/settings/branding"
	FaviconUploadPath   = "/settings/upload-favicon"
	FaviconPath         = "/settings/favicon"
	FaviconUploadField  = "favicon"
	phonebookCollection = "/phonebook/"
	birthdaysCollection = "/birthdays/"
)

// PhonebookPath searches the phonebook; the query is sent even when empty.
func PhonebookPath(query string) string {
	return phonebookCollection + "?q=" + url.QueryEscape(query)
}

func BirthdaysPath(month int) string {
	return birthdaysCollection + "?month=" + strconv.Itoa(month)
}

func EmployeePath(id int) string {
	return "/employees/" + strconv.Itoa(id)
}

func HRRequestProcessPath(id int) string {
	return "/hr-requests/" + strconv.Itoa(id) + "/process"
}

func SettingPath(key string) string {
	return "/settings/" + url.PathEscape(key)
}

func UserPath(id int) string {
	return "/users/" + strconv.Itoa(id)
}

func UserPasswordResetPath(id int) string {
	return UserPath(id) + "/reset-password"
}
