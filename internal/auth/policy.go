package auth

import (
	"net/http"
	"strings"

	"github.com/ArieGerard/OdersApp/internal/models"
)

// Requirement is the access level a route demands.
type Requirement int

const (
	// AllowAnyone lets the request through without a session.
	AllowAnyone Requirement = iota
	// RequireAuthenticated demands a valid session with any role.
	RequireAuthenticated
	// RequireAdmin demands a valid session with the admin role.
	RequireAdmin
)

// Rule binds a URL path prefix to a requirement.
type Rule struct {
	Prefix      string
	Requirement Requirement
}

// Policy is an ordered list of rules; the first matching prefix wins.
type Policy []Rule

// DefaultPolicy mirrors the application's route protection: login,
// logout and registration are public, orders need any authenticated
// user, and both user-management surfaces need the admin role.
func DefaultPolicy() Policy {
	return Policy{
		{Prefix: "/login", Requirement: AllowAnyone},
		{Prefix: "/logout", Requirement: AllowAnyone},
		{Prefix: "/register", Requirement: AllowAnyone},
		{Prefix: "/orders", Requirement: RequireAuthenticated},
		{Prefix: "/users", Requirement: RequireAdmin},
		{Prefix: "/admin", Requirement: RequireAdmin},
	}
}

// Required returns the requirement for path. A rule matches its prefix
// exactly or at a path-segment boundary, so "/users" covers
// "/users/editUser/3" but not "/usersfoo". The root path is public
// (it only redirects to the login page); anything not covered by a
// rule requires authentication.
func (p Policy) Required(path string) Requirement {
	if path == "/" {
		return AllowAnyone
	}
	for _, rule := range p {
		if path == rule.Prefix || strings.HasPrefix(path, rule.Prefix+"/") {
			return rule.Requirement
		}
	}
	return RequireAuthenticated
}

// Gate returns middleware that resolves the caller's session and
// enforces the policy before the request reaches a handler.
// Unauthenticated requests to protected paths are redirected to the
// login page; authenticated requests lacking the required role get a
// plain 403.
func Gate(policy Policy, sessions *Sessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var identity Identity
			var authenticated bool
			if cookie, err := r.Cookie(SessionCookie); err == nil {
				identity, authenticated = sessions.Get(cookie.Value)
			}

			switch policy.Required(r.URL.Path) {
			case RequireAuthenticated:
				if !authenticated {
					http.Redirect(w, r, "/login", http.StatusFound)
					return
				}
			case RequireAdmin:
				if !authenticated {
					http.Redirect(w, r, "/login", http.StatusFound)
					return
				}
				if identity.Role != models.RoleAdmin {
					http.Error(w, "Forbidden", http.StatusForbidden)
					return
				}
			}

			if authenticated {
				r = r.WithContext(WithIdentity(r.Context(), identity))
			}
			next.ServeHTTP(w, r)
		})
	}
}
