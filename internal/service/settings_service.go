package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/pulseforge/pulseforge/internal/domain"
	"github.com/pulseforge/pulseforge/internal/repository"
)

// SettingKeys are the field names accepted by SettingsService.Set.
var SettingKeys = []string{
	"timezone", "weekStartsOn", "projectPrefix", "dailyDigest", "overdueAlerts",
	"emailSummaries", "privateProjects", "logRetentionDays", "adminsCanExport",
}

var weekDays = []string{"monday", "sunday"}

type settingsService struct {
	storage  repository.StorageRepo
	store    SessionStore
	observer UseCaseObserver
}

// NewSettingsService keeps workspace settings in local storage, one entry
// per tenant of the signed-in user.
func NewSettingsService(storage repository.StorageRepo, store SessionStore, observers ...UseCaseObserver) SettingsService {
	return &settingsService{storage: storage, store: store, observer: useCaseObserverOrNoop(observers)}
}

func (s *settingsService) key(ctx context.Context) (string, error) {
	user, err := s.store.GetCurrentUser(ctx)
	if err != nil {
		return "", wrap("reading session", err)
	}
	if user == nil {
		return domain.WorkspaceSettingsKey(""), nil
	}
	return domain.WorkspaceSettingsKey(user.TenantSlug), nil
}

// Get merges the stored values over the defaults. Missing or unreadable
// entries yield the defaults.
func (s *settingsService) Get(ctx context.Context) (domain.WorkspaceSettings, error) {
	settings := domain.DefaultWorkspaceSettings()
	key, err := s.key(ctx)
	if err != nil {
		return settings, err
	}
	raw, err := s.storage.Get(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		return settings, nil
	}
	if err != nil {
		return settings, wrap("reading workspace settings", err)
	}
	merged := settings
	if json.Unmarshal([]byte(raw), &merged) != nil {
		return settings, nil
	}
	merged.Normalize()
	return merged, nil
}

func (s *settingsService) Save(ctx context.Context, settings domain.WorkspaceSettings) (out domain.WorkspaceSettings, err error) {
	t := track(s.observer, "settings.save")
	defer func() { t.finish(ctx, err) }()

	settings.Normalize()
	if settings.Timezone == "" {
		return settings, invalid("timezone", "Timezone is required.")
	}
	if !slices.Contains(weekDays, settings.WeekStartsOn) {
		return settings, invalid("weekStartsOn", fmt.Sprintf("Week must start on one of: %s.", strings.Join(weekDays, ", ")))
	}
	key, err := s.key(ctx)
	if err != nil {
		return settings, err
	}
	payload, err := json.Marshal(settings)
	if err != nil {
		return settings, wrap("encoding workspace settings", err)
	}
	t.set("key", key)
	if err := s.storage.Set(ctx, key, string(payload)); err != nil {
		return settings, wrap("saving workspace settings", err)
	}
	return settings, nil
}

func (s *settingsService) Set(ctx context.Context, key, value string) (domain.WorkspaceSettings, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return settings, err
	}
	if err := applySetting(&settings, key, strings.TrimSpace(value)); err != nil {
		return settings, err
	}
	return s.Save(ctx, settings)
}

func applySetting(ws *domain.WorkspaceSettings, key, value string) error {
	parseBool := func(dst *bool) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return invalid(key, fmt.Sprintf("%s must be true or false.", key))
		}
		*dst = b
		return nil
	}

	switch key {
	case "timezone":
		ws.Timezone = value
	case "weekStartsOn":
		ws.WeekStartsOn = strings.ToLower(value)
	case "projectPrefix":
		ws.ProjectPrefix = value
	case "dailyDigest":
		return parseBool(&ws.DailyDigest)
	case "overdueAlerts":
		return parseBool(&ws.OverdueAlerts)
	case "emailSummaries":
		return parseBool(&ws.EmailSummaries)
	case "privateProjects":
		return parseBool(&ws.PrivateProjects)
	case "adminsCanExport":
		return parseBool(&ws.AdminsCanExport)
	case "logRetentionDays":
		n, err := strconv.Atoi(value)
		if err != nil {
			return invalid(key, "logRetentionDays must be a whole number.")
		}
		ws.LogRetentionDays = n
	default:
		return invalid(key, fmt.Sprintf("Unknown setting %q (known: %s).", key, strings.Join(SettingKeys, ", ")))
	}
	return nil
}
