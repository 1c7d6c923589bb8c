package auth

import (
	"errors"
	"fmt"
	"slices"

	"github.com/golang-jwt/jwt/v5"
)

// RoleAdministrator grants access to every owner-scoped resource.
const RoleAdministrator = "Administrator"

// Claim names issued by the identity provider. The long forms are the
// ClaimTypes URIs some providers emit instead of the registered names.
const (
	claimSubject        = "sub"
	claimNameIdentifier = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier"
	claimRole           = "role"
	claimRoles          = "roles"
	claimRoleURI        = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"
)

var ErrMissingSubject = errors.New("token has no subject claim")

// Identity is the authenticated caller as described by its token claims.
type Identity struct {
	Subject string   `json:"sub"`
	Roles   []string `json:"roles,omitempty"`
}

func (id Identity) HasRole(role string) bool {
	return slices.Contains(id.Roles, role)
}

func (id Identity) IsAdmin() bool {
	return id.HasRole(RoleAdministrator)
}

// CanAccessOwnedData reports whether the caller may act on data owned by
// targetUserID: either the caller is that user or holds the administrator role.
func CanAccessOwnedData(id Identity, targetUserID string) bool {
	if id.Subject != "" && id.Subject == targetUserID {
		return true
	}
	return id.IsAdmin()
}

// IdentityFromClaims builds an Identity from validated token claims.
func IdentityFromClaims(claims jwt.MapClaims) (Identity, error) {
	var id Identity

	for _, key := range []string{claimSubject, claimNameIdentifier} {
		if v, ok := claims[key]; ok {
			sub, err := claimString(v)
			if err != nil {
				return Identity{}, fmt.Errorf("claim %q: %w", key, err)
			}
			if sub != "" {
				id.Subject = sub
				break
			}
		}
	}
	if id.Subject == "" {
		return Identity{}, ErrMissingSubject
	}

	for _, key := range []string{claimRole, claimRoles, claimRoleURI} {
		v, ok := claims[key]
		if !ok {
			continue
		}
		switch roles := v.(type) {
		case string:
			id.Roles = appendRole(id.Roles, roles)
		case []any:
			for _, r := range roles {
				if s, ok := r.(string); ok {
					id.Roles = appendRole(id.Roles, s)
				}
			}
		case []string:
			for _, s := range roles {
				id.Roles = appendRole(id.Roles, s)
			}
		default:
			return Identity{}, fmt.Errorf("claim %q has unsupported type %T", key, v)
		}
	}

	return id, nil
}

func claimString(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case float64:
		// numeric subjects from providers that use integer user ids
		return fmt.Sprintf("%.f", s), nil
	default:
		return "", fmt.Errorf("unsupported type %T", v)
	}
}

func appendRole(roles []string, role string) []string {
	if role == "" || slices.Contains(roles, role) {
		return roles
	}
	return append(roles, role)
}
