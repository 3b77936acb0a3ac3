package service

import (
	"context"
	"strings"
	"time"

	"github.com/pulseforge/pulseforge/internal/api"
	"github.com/pulseforge/pulseforge/internal/domain"
	"github.com/pulseforge/pulseforge/internal/session"
)

const minPasswordLength = 6

type LoginInput struct {
	TenantSlug string
	Email      string
	Password   string
}

type RegisterInput struct {
	TenantSlug string
	TenantName string
	// TenantLogo is a data URI, an http(s) URL or a path to an image file.
	TenantLogo string
	Name       string
	Email      string
	Password   string
}

// Identity is what whoami reports about the stored session.
type Identity struct {
	User      domain.AuthUser
	ExpiresAt *time.Time
	Expired   bool
}

type authService struct {
	client   api.Client
	store    SessionStore
	now      func() time.Time
	observer UseCaseObserver
}

func NewAuthService(client api.Client, store SessionStore, observers ...UseCaseObserver) AuthService {
	return &authService{
		client:   client,
		store:    store,
		now:      time.Now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *authService) Login(ctx context.Context, in LoginInput) (sess *domain.Session, err error) {
	t := track(s.observer, "auth.login")
	defer func() { t.finish(ctx, err) }()

	email := strings.TrimSpace(in.Email)
	if email == "" {
		return nil, invalid("email", "Enter email first.")
	}
	if in.Password == "" {
		return nil, invalid("password", "Enter password.")
	}
	slug := strings.ToLower(strings.TrimSpace(in.TenantSlug))
	t.set("tenant", slug)

	resp, err := s.client.Login(ctx, api.LoginRequest{
		TenantSlug: slug,
		Email:      email,
		Password:   in.Password,
	})
	if err != nil {
		return nil, err
	}
	return s.persist(ctx, resp)
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (sess *domain.Session, err error) {
	t := track(s.observer, "auth.register")
	defer func() { t.finish(ctx, err) }()

	req := api.RegisterRequest{
		TenantSlug: strings.ToLower(strings.TrimSpace(in.TenantSlug)),
		TenantName: strings.TrimSpace(in.TenantName),
		Name:       strings.TrimSpace(in.Name),
		Email:      strings.TrimSpace(in.Email),
		Password:   in.Password,
	}
	switch {
	case req.TenantSlug == "":
		return nil, invalid("tenant_slug", "Organization slug is required.")
	case req.TenantName == "":
		return nil, invalid("tenant_name", "Organization name is required.")
	case req.Email == "":
		return nil, invalid("email", "Enter email first.")
	case len(req.Password) < minPasswordLength:
		return nil, invalid("password", "Password must be at least 6 characters.")
	}
	req.TenantLogoData, req.TenantLogoURL, err = resolveLogo(in.TenantLogo)
	if err != nil {
		return nil, err
	}
	t.set("tenant", req.TenantSlug)

	resp, err := s.client.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.persist(ctx, resp)
}

// persist merges the token claims over the response user and stores the result.
func (s *authService) persist(ctx context.Context, resp *api.AuthResponse) (*domain.Session, error) {
	user := session.UserFromClaims(session.DecodeClaims(resp.Token), resp.User.AuthUser())
	sess := &domain.Session{Token: resp.Token, User: user}
	if err := s.store.WriteSession(ctx, sess); err != nil {
		return nil, wrap("saving session", err)
	}
	return sess, nil
}

func (s *authService) ForgotPassword(ctx context.Context, email, tenantSlug string) (status string, err error) {
	t := track(s.observer, "auth.forgot_password")
	defer func() { t.finish(ctx, err) }()

	email = strings.TrimSpace(email)
	if email == "" {
		return "", invalid("email", "Enter email first.")
	}
	return s.client.ForgotPassword(ctx, api.ForgotPasswordRequest{
		TenantSlug: strings.ToLower(strings.TrimSpace(tenantSlug)),
		Email:      email,
	})
}

func (s *authService) Logout(ctx context.Context) (err error) {
	t := track(s.observer, "auth.logout")
	defer func() { t.finish(ctx, err) }()
	return wrap("clearing session", s.store.Logout(ctx))
}

func (s *authService) Current(ctx context.Context) (*domain.Session, error) {
	sess, err := s.store.GetSession(ctx)
	if err != nil {
		return nil, wrap("reading session", err)
	}
	return sess, nil
}

func (s *authService) WhoAmI(ctx context.Context) (*Identity, error) {
	sess, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, api.ErrNotAuthenticated
	}
	id := &Identity{User: sess.User}
	if exp, ok := session.ExpiresAt(session.DecodeClaims(sess.Token)); ok {
		id.ExpiresAt = &exp
		id.Expired = !exp.After(s.now())
	}
	return id, nil
}

func (s *authService) LastTenant(ctx context.Context) (string, error) {
	slug, err := s.store.LastTenant(ctx)
	return slug, wrap("reading last tenant", err)
}
