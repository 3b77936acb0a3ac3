package session

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pulseforge/pulseforge/internal/domain"
)

// Claims is the decoded payload segment of a bearer token.
type Claims map[string]any

// DecodeClaims reads the payload of a JWT without verifying its signature.
// Any malformed input yields an empty, non-nil Claims.
func DecodeClaims(token string) Claims {
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return Claims{}
	}
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return Claims{}
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var claims Claims
	if err := dec.Decode(&claims); err != nil || claims == nil {
		return Claims{}
	}
	// One JSON object and nothing after it.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return Claims{}
	}
	return claims
}

// StringClaim returns the claim coerced to a string, or "" when absent.
func StringClaim(claims Claims, key string) string {
	switch v := claims[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// UserFromClaims overlays token claims onto the user returned by the backend.
// Claims win where present.
func UserFromClaims(claims Claims, fallback domain.AuthUser) domain.AuthUser {
	pick := func(key, current string) string {
		return domain.CoalesceStr(StringClaim(claims, key), current)
	}

	u := domain.AuthUser{
		ID:         pick("sub", fallback.ID),
		Email:      pick("email", fallback.Email),
		TenantSlug: pick("tenant_id", fallback.TenantSlug),
		TenantName: pick("tenant_name", fallback.TenantName),
		TenantLogo: pick("tenant_logo", fallback.TenantLogo),
		Role:       domain.NormalizeRole(pick("role", string(fallback.Role))),
	}
	u.Name = pick("name", fallback.Name)
	u.Name = u.DisplayName()
	return u
}

// ExpiresAt returns the exp claim, if it is numeric.
func ExpiresAt(claims Claims) (time.Time, bool) {
	secs, err := strconv.ParseFloat(StringClaim(claims, "exp"), 64)
	if err != nil || secs <= 0 {
		return time.Time{}, false
	}
	return time.Unix(int64(secs), 0), true
}
