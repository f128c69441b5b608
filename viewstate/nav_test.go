package viewstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNavMenuHidesAdminEntriesForRegularUsers(t *testing.T) {
	m := NewNavMenu("user")

	for _, item := range m.Items() {
		assert.False(t, item.AdminOnly, "item %s should be hidden from regular users", item.ID)
	}
}

func TestNavMenuShowsAdminEntriesToAdmins(t *testing.T) {
	m := NewNavMenu("admin")

	found := false
	for _, item := range m.Items() {
		if item.ID == "admin" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestNavMenuActivate(t *testing.T) {
	m := NewNavMenu("user")
	assert.Equal(t, "dashboard", m.Active)

	assert.True(t, m.Activate("cases"))
	assert.Equal(t, "cases", m.Active)

	// hidden entries cannot be activated by a regular user
	assert.False(t, m.Activate("admin"))
	assert.Equal(t, "cases", m.Active)

	assert.False(t, m.Activate("nonsense"))
	assert.Equal(t, "cases", m.Active)
}

func TestNavMenuToggle(t *testing.T) {
	m := NewNavMenu("user")
	assert.Equal(t, NavExpanded, m.Mode)

	m.Toggle()
	assert.Equal(t, NavCollapsed, m.Mode)

	m.Toggle()
	assert.Equal(t, NavExpanded, m.Mode)
}
