package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pulseforge/pulseforge/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// Header renders an upper-cased section title over a dim rule.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string { return StyleDim.Render(text) }

func Bold(text string) string { return StyleBold.Render(text) }

// ErrorLine renders the inline "Error: <message>" shown by every page.
func ErrorLine(err error) string {
	if err == nil {
		return ""
	}
	return StyleRed.Render("Error: " + err.Error())
}

// ProjectStatusPill colors a project status.
func ProjectStatusPill(status domain.ProjectStatus) string {
	switch status {
	case domain.ProjectActive:
		return StyleGreen.Render("● active")
	case domain.ProjectDone:
		return StyleBlue.Render("✔ done")
	case domain.ProjectBlocked:
		return StyleRed.Render("■ blocked")
	default:
		return StyleDim.Render(string(status))
	}
}

func TaskStatusPill(status domain.TaskStatus) string {
	switch status {
	case domain.TaskTodo:
		return StyleBlue.Render("○ todo")
	case domain.TaskInProgress:
		return StyleYellow.Render("● in progress")
	case domain.TaskDone:
		return StyleDim.Render("✔ done")
	default:
		return StyleDim.Render(string(status))
	}
}

func PriorityBadge(p domain.TaskPriority) string {
	switch p {
	case domain.PriorityHigh:
		return StyleRed.Render("high")
	case domain.PriorityMedium:
		return StyleYellow.Render("medium")
	case domain.PriorityLow:
		return StyleDim.Render("low")
	default:
		return StyleDim.Render(string(p))
	}
}

func SeverityBadge(s domain.IssueSeverity) string {
	switch s {
	case domain.SeverityCritical:
		return StyleRed.Bold(true).Render("CRITICAL")
	case domain.SeverityHigh:
		return StyleRed.Render("high")
	case domain.SeverityMedium:
		return StyleYellow.Render("medium")
	default:
		return StyleDim.Render(string(s))
	}
}

// ActivityBadge is the Active/Quiet marker of the organizations table.
func ActivityBadge(active bool) string {
	if active {
		return StyleGreen.Render("Active")
	}
	return StyleDim.Render("Quiet")
}

func RoleBadge(role domain.Role) string {
	if role.IsSystemAdmin() {
		return StylePurple.Render("system admin")
	}
	return StyleBlue.Render("org admin")
}

// HTTPStatus colors a response status code by class.
func HTTPStatus(code int) string {
	s := fmt.Sprintf("%d", code)
	switch {
	case code >= 500:
		return StyleRed.Render(s)
	case code >= 400:
		return StyleYellow.Render(s)
	default:
		return StyleGreen.Render(s)
	}
}
