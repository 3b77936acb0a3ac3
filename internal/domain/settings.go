package domain

import "strings"

// WorkspaceSettings are tenant-local preferences kept on this machine only.
type WorkspaceSettings struct {
	Timezone         string `json:"timezone"`
	WeekStartsOn     string `json:"weekStartsOn"`
	ProjectPrefix    string `json:"projectPrefix"`
	DailyDigest      bool   `json:"dailyDigest"`
	OverdueAlerts    bool   `json:"overdueAlerts"`
	EmailSummaries   bool   `json:"emailSummaries"`
	PrivateProjects  bool   `json:"privateProjects"`
	LogRetentionDays int    `json:"logRetentionDays"`
	AdminsCanExport  bool   `json:"adminsCanExport"`
}

func DefaultWorkspaceSettings() WorkspaceSettings {
	return WorkspaceSettings{
		Timezone:         "East Africa Time",
		WeekStartsOn:     "monday",
		ProjectPrefix:    "PF",
		DailyDigest:      true,
		OverdueAlerts:    true,
		EmailSummaries:   false,
		PrivateProjects:  true,
		LogRetentionDays: 180,
		AdminsCanExport:  true,
	}
}

// Normalize upper-cases the prefix and keeps retention at one day or more.
func (s *WorkspaceSettings) Normalize() {
	s.ProjectPrefix = strings.ToUpper(strings.TrimSpace(s.ProjectPrefix))
	s.Timezone = strings.TrimSpace(s.Timezone)
	if s.LogRetentionDays < 1 {
		s.LogRetentionDays = 1
	}
}

// WorkspaceSettingsKey is the storage key for a tenant's settings.
func WorkspaceSettingsKey(tenantSlug string) string {
	slug := strings.TrimSpace(tenantSlug)
	if slug == "" {
		slug = "default"
	}
	return "workspace_settings_" + slug
}
