package service

import (
	"context"
	"strings"

	"github.com/pulseforge/pulseforge/internal/api"
	"github.com/pulseforge/pulseforge/internal/domain"
)

type profileService struct {
	store    SessionStore
	observer UseCaseObserver
}

func NewProfileService(store SessionStore, observers ...UseCaseObserver) ProfileService {
	return &profileService{store: store, observer: useCaseObserverOrNoop(observers)}
}

func (s *profileService) Show(ctx context.Context) (*domain.AuthUser, error) {
	user, err := s.store.GetCurrentUser(ctx)
	if err != nil {
		return nil, wrap("reading profile", err)
	}
	if user == nil {
		return nil, api.ErrNotAuthenticated
	}
	return user, nil
}

// Rename changes the locally stored display name only.
func (s *profileService) Rename(ctx context.Context, name string) (user *domain.AuthUser, err error) {
	t := track(s.observer, "profile.rename")
	defer func() { t.finish(ctx, err) }()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "Name is required.")
	}
	if _, err := s.Show(ctx); err != nil {
		return nil, err
	}
	if err := s.store.UpdateCurrentUser(ctx, name); err != nil {
		return nil, wrap("updating profile", err)
	}
	return s.Show(ctx)
}
