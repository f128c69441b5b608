package viewstate

// NavItem is one entry of the app's side menu.
type NavItem struct {
	ID        string
	Label     string
	Icon      string
	AdminOnly bool
}

// NavMode selects how the menu renders.
type NavMode string

const (
	NavExpanded  NavMode = "expanded"
	NavCollapsed NavMode = "collapsed"
)

// navItems is the single menu definition shared by the expanded and
// collapsed renderings.
var navItems = []NavItem{
	{ID: "dashboard", Label: "Dashboard", Icon: "home"},
	{ID: "cases", Label: "Cases", Icon: "file-text"},
	{ID: "occurrence-book", Label: "Occurrence Book (OB)", Icon: "user-check"},
	{ID: "license-plates", Label: "License Plates", Icon: "car"},
	{ID: "evidence", Label: "Evidence", Icon: "camera"},
	{ID: "geofiles", Label: "Geofiles", Icon: "map"},
	{ID: "reports", Label: "Reports", Icon: "clipboard"},
	{ID: "vehicles", Label: "Fleet Tracking", Icon: "truck"},
	{ID: "profile", Label: "Profile", Icon: "user"},
	{ID: "admin", Label: "User Management", Icon: "users", AdminOnly: true},
}

// NavMenu is the per-session menu state.
type NavMenu struct {
	Mode   NavMode
	Active string
	role   string
}

// NewNavMenu builds the menu for a role, expanded with the dashboard active.
func NewNavMenu(role string) *NavMenu {
	return &NavMenu{Mode: NavExpanded, Active: "dashboard", role: role}
}

// Items returns the menu entries visible to the session's role.
func (m *NavMenu) Items() []NavItem {
	out := make([]NavItem, 0, len(navItems))
	for _, item := range navItems {
		if item.AdminOnly && m.role != "admin" {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Activate marks an entry active when it is visible to the role; unknown or
// hidden ids leave the selection alone.
func (m *NavMenu) Activate(id string) bool {
	for _, item := range m.Items() {
		if item.ID == id {
			m.Active = id
			return true
		}
	}
	return false
}

// Toggle flips between the expanded and collapsed renderings.
func (m *NavMenu) Toggle() {
	if m.Mode == NavExpanded {
		m.Mode = NavCollapsed
	} else {
		m.Mode = NavExpanded
	}
}
