package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, RoleSystemAdmin, NormalizeRole("system_admin"))
	assert.Equal(t, RoleOrgAdmin, NormalizeRole("org_admin"))
	assert.Equal(t, RoleOrgAdmin, NormalizeRole(""))
	assert.Equal(t, RoleOrgAdmin, NormalizeRole("SYSTEM_ADMIN"))
}

func TestSessionRole_NilDefaultsToOrgAdmin(t *testing.T) {
	var s *Session
	assert.Equal(t, RoleOrgAdmin, s.Role())
	assert.Equal(t, RoleSystemAdmin, (&Session{User: AuthUser{Role: RoleSystemAdmin}}).Role())
}

func TestAuthUser_DisplayName(t *testing.T) {
	assert.Equal(t, "Ana", (&AuthUser{Name: " Ana "}).DisplayName())
	assert.Equal(t, "ben", (&AuthUser{Email: "ben@acme.io"}).DisplayName())
	assert.Equal(t, "User", (&AuthUser{}).DisplayName())
	var u *AuthUser
	assert.Equal(t, "User", u.DisplayName())
}

func TestParseEnum(t *testing.T) {
	got, err := ParseEnum("high", TaskPriorities)
	assert.NoError(t, err)
	assert.Equal(t, PriorityHigh, got)

	_, err = ParseEnum("urgent", TaskPriorities)
	assert.ErrorContains(t, err, "allowed: low, medium, high")
}

func TestCoalesceStr(t *testing.T) {
	assert.Equal(t, "b", CoalesceStr("", "  ", " b ", "c"))
	assert.Equal(t, "", CoalesceStr())
}
