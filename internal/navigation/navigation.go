// Package navigation composes the role-gated page menus.
package navigation

import (
	"slices"
	"strings"

	"github.com/pulseforge/pulseforge/internal/domain"
)

type Page string

const (
	Dashboard Page = "dashboard"
	Projects  Page = "projects"
	Tasks     Page = "tasks"
	Analytics Page = "analytics"
	Calendar  Page = "calendar"
	Profile   Page = "profile"
	Forum     Page = "forum"
	Issues    Page = "issues"
	Settings  Page = "settings"
	Admin     Page = "admin"
)

// Item is one menu entry.
type Item struct {
	Page  Page
	Label string
}

var menu = []Page{Dashboard, Projects, Tasks, Analytics, Calendar, Profile, Forum, Issues, Settings, Admin}

var titles = map[Page]string{
	Dashboard: "Dashboard",
	Projects:  "Projects",
	Tasks:     "Tasks",
	Analytics: "Analytics",
	Calendar:  "Calendar",
	Profile:   "Profile",
	Forum:     "Forum",
	Issues:    "Issues",
	Settings:  "Settings",
	Admin:     "Admin",
}

var systemRelabel = map[Page]string{
	Admin:    "Support",
	Settings: "Configuration",
}

var hints = map[Page]string{
	Dashboard: "Workspace overview and alerts",
	Projects:  "Create and track projects",
	Tasks:     "Work items across projects",
	Analytics: "Completion and blocker rates",
	Calendar:  "Starts, deadlines and updates",
	Profile:   "Your account details",
	Forum:     "Team discussion",
	Issues:    "Report and triage problems",
	Settings:  "Workspace preferences",
	Admin:     "Support requests and logs",
}

var systemHints = map[Page]string{
	Dashboard: "Cross-tenant activity",
	Analytics: "Platform usage",
	Calendar:  "Scheduled system updates",
	Settings:  "Tenants and notifications",
	Admin:     "Request logs and support",
}

var systemSidebar = []Page{Dashboard, Analytics, Calendar, Settings, Admin}

var systemNav = []Page{Dashboard, Analytics, Calendar, Admin, Settings}

var orgNav = []Page{Dashboard, Projects, Tasks, Analytics, Calendar, Profile, Settings}

// Menu returns every page in display order.
func Menu() []Page { return slices.Clone(menu) }

// Sidebar returns the pages visible to role, in menu order.
func Sidebar(role domain.Role) []Item {
	var pages []Page
	if role.IsSystemAdmin() {
		pages = systemSidebar
	} else {
		pages = slices.DeleteFunc(slices.Clone(menu), func(p Page) bool { return p == Admin })
	}
	return items(role, pages)
}

// NavPages returns the compact header page switcher for role.
func NavPages(role domain.Role) []Item {
	if role.IsSystemAdmin() {
		return items(role, systemNav)
	}
	return items(role, orgNav)
}

func items(role domain.Role, pages []Page) []Item {
	out := make([]Item, 0, len(pages))
	for _, p := range pages {
		out = append(out, Item{Page: p, Label: Label(role, p)})
	}
	return out
}

// Label is the sidebar label of page for role.
func Label(role domain.Role, page Page) string {
	if role.IsSystemAdmin() {
		if l, ok := systemRelabel[page]; ok {
			return l
		}
	}
	if t, ok := titles[page]; ok {
		return t
	}
	return string(page)
}

// HeaderTitle is the page heading for role. It matches Label.
func HeaderTitle(role domain.Role, page Page) string {
	return Label(role, page)
}

func Hint(role domain.Role, page Page) string {
	if role.IsSystemAdmin() {
		if h, ok := systemHints[page]; ok {
			return h
		}
	}
	return hints[page]
}

// Allowed reports whether page appears in role's sidebar.
func Allowed(role domain.Role, page Page) bool {
	for _, it := range Sidebar(role) {
		if it.Page == page {
			return true
		}
	}
	return false
}

// ParsePage accepts a page key or a label, case-insensitively.
func ParsePage(role domain.Role, s string) (Page, bool) {
	s = strings.TrimSpace(s)
	for _, p := range menu {
		if strings.EqualFold(string(p), s) || strings.EqualFold(Label(role, p), s) {
			return p, true
		}
	}
	return "", false
}
