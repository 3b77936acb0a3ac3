package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pulseforge/pulseforge/internal/db"
	"github.com/pulseforge/pulseforge/internal/domain"
	"github.com/pulseforge/pulseforge/internal/repository"
)

const (
	SessionKey    = "pulseforge_session"
	LastTenantKey = "pulseforge_last_tenant"
)

// Store persists the signed-in session in the local key/value table.
type Store struct {
	reader repository.StorageRepo
	uow    db.UnitOfWork
}

func NewStore(conn db.DBTX, uow db.UnitOfWork) *Store {
	return &Store{reader: repository.NewSQLiteStorageRepo(conn), uow: uow}
}

// GetSession returns nil when no usable session is stored.
func (s *Store) GetSession(ctx context.Context) (*domain.Session, error) {
	return readSession(ctx, s.reader)
}

func (s *Store) GetCurrentUser(ctx context.Context) (*domain.AuthUser, error) {
	sess, err := s.GetSession(ctx)
	if err != nil || sess == nil {
		return nil, err
	}
	return &sess.User, nil
}

func (s *Store) GetAuthToken(ctx context.Context) (string, error) {
	sess, err := s.GetSession(ctx)
	if err != nil || sess == nil {
		return "", err
	}
	return sess.Token, nil
}

// WriteSession replaces the stored session and remembers its tenant.
func (s *Store) WriteSession(ctx context.Context, sess *domain.Session) error {
	if sess == nil || strings.TrimSpace(sess.Token) == "" {
		return fmt.Errorf("writing session: token is required")
	}
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteStorageRepo(tx)
		if err := repo.Set(ctx, SessionKey, string(payload)); err != nil {
			return err
		}
		if slug := sess.User.TenantSlug; slug != "" {
			if err := repo.Set(ctx, LastTenantKey, slug); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) Logout(ctx context.Context) error {
	return s.reader.Remove(ctx, SessionKey)
}

// UpdateCurrentUser patches the display name of the stored user.
// Without a session it does nothing.
func (s *Store) UpdateCurrentUser(ctx context.Context, name string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteStorageRepo(tx)
		sess, err := readSession(ctx, repo)
		if err != nil || sess == nil {
			return err
		}
		sess.User.Name = strings.TrimSpace(name)

		payload, err := json.Marshal(sess)
		if err != nil {
			return fmt.Errorf("encoding session: %w", err)
		}
		return repo.Set(ctx, SessionKey, string(payload))
	})
}

// LastTenant returns the tenant slug of the most recent sign-in, or "".
func (s *Store) LastTenant(ctx context.Context) (string, error) {
	slug, err := s.reader.Get(ctx, LastTenantKey)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil
	}
	return slug, err
}

func readSession(ctx context.Context, repo repository.StorageRepo) (*domain.Session, error) {
	raw, err := repo.Get(ctx, SessionKey)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var sess domain.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, nil
	}
	if strings.TrimSpace(sess.Token) == "" {
		return nil, nil
	}
	sess.User.Role = domain.NormalizeRole(string(sess.User.Role))
	return &sess, nil
}
