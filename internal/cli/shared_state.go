package cli

import (
	"github.com/pulseforge/pulseforge/internal/cli/formatter"
	"github.com/pulseforge/pulseforge/internal/domain"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// User is nil while signed out.
	User *domain.AuthUser

	// Terminal dimensions
	Width  int
	Height int
}

// Role is the signed-in role, org admin while signed out.
func (s *SharedState) Role() domain.Role {
	if s.User == nil {
		return domain.RoleOrgAdmin
	}
	return domain.NormalizeRole(string(s.User.Role))
}

// ContentWidth is the width left of the sidebar.
func (s *SharedState) ContentWidth() int {
	return max(40, s.Width-formatter.SidebarWidth-3)
}

// ContentHeight returns the available height for page content,
// accounting for the title and nav lines (3) and the status bar (3).
func (s *SharedState) ContentHeight() int {
	return max(1, s.Height-6)
}
