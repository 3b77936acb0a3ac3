package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pulseforge/pulseforge/internal/domain"
	"github.com/pulseforge/pulseforge/internal/navigation"
)

const SidebarWidth = 30

var (
	sidebarStyle = lipgloss.NewStyle().
			Width(SidebarWidth).
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(ColorDim).
			PaddingRight(1)
	activeEntry = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	tabActive   = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true).Underline(true)
)

// RenderSidebar lists the role's pages, numbered for quick jumps, with the
// page hint under the active entry.
func RenderSidebar(user *domain.AuthUser, active navigation.Page) string {
	role := domain.RoleOrgAdmin
	if user != nil {
		role = domain.NormalizeRole(string(user.Role))
	}

	var b strings.Builder
	b.WriteString(StyleHeader.Render("PULSEFORGE") + "\n")
	if user != nil {
		b.WriteString(Bold(Truncate(domain.CoalesceStr(user.TenantName, user.TenantSlug), SidebarWidth-2)) + "\n")
		b.WriteString(RoleBadge(role) + "\n")
	}
	b.WriteString("\n")

	for i, item := range navigation.Sidebar(role) {
		key := Dim(fmt.Sprintf("%d", (i+1)%10))
		if item.Page == active {
			b.WriteString(fmt.Sprintf("%s %s\n", key, activeEntry.Render("▸ "+item.Label)))
			b.WriteString("    " + Dim(Truncate(navigation.Hint(role, item.Page), SidebarWidth-5)) + "\n")
			continue
		}
		b.WriteString(fmt.Sprintf("%s   %s\n", key, StyleFg.Render(item.Label)))
	}
	return sidebarStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// RenderNav renders the top navigation as a single line of tabs.
func RenderNav(role domain.Role, active navigation.Page) string {
	tabs := make([]string, 0, 8)
	for _, item := range navigation.NavPages(role) {
		if item.Page == active {
			tabs = append(tabs, tabActive.Render(item.Label))
			continue
		}
		tabs = append(tabs, Dim(item.Label))
	}
	return strings.Join(tabs, Dim(" · "))
}

// RenderMenu is the plain listing printed by `pulseforge menu`.
func RenderMenu(role domain.Role) string {
	rows := make([][]string, 0, 10)
	for _, item := range navigation.Sidebar(role) {
		rows = append(rows, []string{string(item.Page), item.Label, navigation.Hint(role, item.Page)})
	}
	var b strings.Builder
	b.WriteString(RenderTable([]string{"PAGE", "LABEL", "DESCRIPTION"}, rows))
	b.WriteString("\n" + Dim("Top navigation: "))
	labels := make([]string, 0, 8)
	for _, item := range navigation.NavPages(role) {
		labels = append(labels, item.Label)
	}
	b.WriteString(strings.Join(labels, ", ") + "\n")
	return b.String()
}
