package access

// Item describes one navigation entry and the page route it mounts.
type Item struct {
	Label        string
	Path         string
	Icon         string
	ElevatedOnly bool
}

var (
	PhonebookItem = Item{Label: "Phonebook", Path: "/", Icon: "phone"}
	BirthdaysItem = Item{Label: "Birthdays", Path: "/birthdays", Icon: "calendar-days"}
	OrgChartItem  = Item{Label: "Org chart", Path: "/org", Icon: "git-branch", ElevatedOnly: true}
	HRPanelItem   = Item{Label: "HR panel", Path: "/hr", Icon: "clipboard-list", ElevatedOnly: true}
	AuditItem     = Item{Label: "Audit", Path: "/audit", Icon: "shield-check", ElevatedOnly: true}
	SettingsItem  = Item{Label: "Settings", Path: "/settings", Icon: "settings", ElevatedOnly: true}
	UsersItem     = Item{Label: "Users", Path: "/users", Icon: "users", ElevatedOnly: true}
)

//nolint:gochecknoglobals // the catalog is fixed at compile time
var catalog = []Item{
	PhonebookItem,
	BirthdaysItem,
	OrgChartItem,
	HRPanelItem,
	AuditItem,
	SettingsItem,
	UsersItem,
}

// Catalog returns a copy of every navigation entry in declaration order.
func Catalog() []Item {
	out := make([]Item, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds the catalog entry mounted at path.
func Lookup(path string) (Item, bool) {
	for _, item := range catalog {
		if item.Path == path {
			return item, true
		}
	}
	return Item{}, false
}
