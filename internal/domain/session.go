package domain

import "strings"

// AuthUser is the signed-in user as persisted in the local session.
type AuthUser struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	TenantSlug string `json:"tenantSlug"`
	TenantName string `json:"tenantName,omitempty"`
	TenantLogo string `json:"tenantLogo,omitempty"`
	Role       Role   `json:"role"`
}

// DisplayName returns Name, falling back to the email local part and then "User".
func (u *AuthUser) DisplayName() string {
	if u == nil {
		return "User"
	}
	if n := strings.TrimSpace(u.Name); n != "" {
		return n
	}
	if local, _, ok := strings.Cut(u.Email, "@"); ok && local != "" {
		return local
	}
	return "User"
}

// Session is the token plus the user it was issued for.
type Session struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

// Role returns the session role, defaulting to org_admin.
func (s *Session) Role() Role {
	if s == nil {
		return RoleOrgAdmin
	}
	return NormalizeRole(string(s.User.Role))
}
