// Package access derives what the console shows from the session role.
//
// A single Decision value drives both the menu and the route gate, so a link
// is shown exactly when its page is mounted.
package access

import "github.com/astro-web3/hrdesk-console/internal/domain/session"

//nolint:gochecknoglobals // fixed privileged set
var privileged = map[session.Role]struct{}{
	session.RoleHR:    {},
	session.RoleIT:    {},
	session.RoleAdmin: {},
}

// Elevated reports whether role belongs to the privileged set {hr, it, admin}.
func Elevated(role session.Role) bool {
	_, ok := privileged[role]
	return ok
}

// Decision is the authorization outcome for one session state.
type Decision struct {
	elevated bool
}

func Decide(role session.Role) Decision {
	return Decision{elevated: Elevated(role)}
}

func (d Decision) Elevated() bool {
	return d.elevated
}

// Allows reports whether item is visible and its route mounted.
func (d Decision) Allows(item Item) bool {
	return !item.ElevatedOnly || d.elevated
}

// Navigation returns the allowed catalog entries in catalog order.
func (d Decision) Navigation() []Item {
	items := make([]Item, 0, len(catalog))
	for _, item := range catalog {
		if d.Allows(item) {
			items = append(items, item)
		}
	}
	return items
}

// Mounted reports whether the page route at path exists for this decision.
// Unknown paths are never mounted.
func (d Decision) Mounted(path string) bool {
	item, ok := Lookup(path)
	return ok && d.Allows(item)
}

// VisibleItems is Decide(role).Navigation().
func VisibleItems(role session.Role) []Item {
	return Decide(role).Navigation()
}
