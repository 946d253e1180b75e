package domain

import "strings"

// Role is the closed set of marketplace roles.
type Role string

const (
	RoleAdmin        Role = "admin"
	RolePhotographer Role = "photographer"
	RoleBuyer        Role = "buyer"
	// RoleUnrecognized marks a server role string that matched no known bucket.
	// Sessions carrying it land on the public root and fail every role guard.
	RoleUnrecognized Role = "unrecognized"
)

// Landing paths for post-login navigation, one per role.
const (
	PathLogin   = "/login"
	PathRoot    = "/"
	PathAdmin   = "/admin"
	PathStudio  = "/studio"
	PathAccount = "/account"
)

// ResolveRole normalizes a raw role string from the backend into a Role.
//
// The backend does not guarantee a clean enum across endpoints ("Photog",
// "Admin ", "PhotographerPro" have all been observed), so classification is
// deliberately tolerant: lower-case, trim, then match by containment in
// priority order. "user" is only accepted as an exact value — "superuser"
// and friends stay unrecognized. Do not tighten this into strict parsing
// without renegotiating the backend contract.
func ResolveRole(raw string) Role {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(s, "admin"):
		return RoleAdmin
	case strings.Contains(s, "photog"):
		return RolePhotographer
	case strings.Contains(s, "buyer"), s == "user":
		return RoleBuyer
	default:
		return RoleUnrecognized
	}
}

// ResolveRoleHints applies ResolveRole to the first non-empty hint.
// Hints are passed in contract order: top-level role, user.role, data.role.
// When every hint is empty the account defaults to buyer.
func ResolveRoleHints(hints ...string) Role {
	for _, h := range hints {
		if strings.TrimSpace(h) != "" {
			return ResolveRole(h)
		}
	}
	return RoleBuyer
}

// LandingPath returns the post-login navigation target for the role.
func (r Role) LandingPath() string {
	switch r {
	case RoleAdmin:
		return PathAdmin
	case RolePhotographer:
		return PathStudio
	case RoleBuyer:
		return PathAccount
	default:
		return PathRoot
	}
}

// Known reports whether the role is one of the three real marketplace roles.
func (r Role) Known() bool {
	return r == RoleAdmin || r == RolePhotographer || r == RoleBuyer
}
