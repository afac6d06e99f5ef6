package session

// Role is the privilege label carried in the credential's payload. The set is
// open: labels the console does not know are kept verbatim.
type Role string

const (
	RoleNone    Role = ""
	RoleAdmin   Role = "admin"
	RoleHR      Role = "hr"
	RoleIT      Role = "it"
	RoleAuditor Role = "auditor"
	RoleManager Role = "manager"
)

// KnownRoles lists the roles the HR API assigns, in the order the user
// management page offers them.
var KnownRoles = []Role{RoleAdmin, RoleHR, RoleIT, RoleAuditor, RoleManager}

func (r Role) IsNone() bool {
	return r == RoleNone
}

func (r Role) String() string {
	if r == RoleNone {
		return "none"
	}
	return string(r)
}
