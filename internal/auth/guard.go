package auth

import (
	"net/http"
	"net/url"
	"strings"
)

// SessionCookie is the client-held session token cookie.
const SessionCookie = "portfolio_session"

type Outcome int

const (
	// Allow lets the request through to the handler.
	Allow Outcome = iota
	// RedirectLogin sends an unauthenticated browser to the login page,
	// carrying the original URL as callbackUrl.
	RedirectLogin
	// RedirectHome silently turns away a logged-in non-admin.
	RedirectHome
	// RedirectAdmin sends an already-authenticated admin off the auth-entry pages.
	RedirectAdmin
	// DenyUnauthorized is the API-route equivalent of RedirectLogin (401 JSON).
	DenyUnauthorized
	// DenyForbidden is the API-route equivalent of RedirectHome (403 JSON).
	DenyForbidden
)

// Decision is the guard's verdict for one request. Exactly one outcome
// applies; Location is set only for the redirect outcomes.
type Decision struct {
	Outcome  Outcome
	Location string
}

// Guard classifies request paths and enforces the admin gate. It holds no
// per-request state; every call to Evaluate is independent.
type Guard struct {
	LoginPath string
	HomePath  string
	AdminPath string
}

func NewGuard() *Guard {
	return &Guard{LoginPath: "/login", HomePath: "/", AdminPath: "/admin"}
}

const adminAPIPrefix = "/api/v1/admin"

func isAdminPath(path string) bool {
	return path == "/admin" || strings.HasPrefix(path, "/admin/") ||
		path == adminAPIPrefix || strings.HasPrefix(path, adminAPIPrefix+"/")
}

func isAuthEntryPath(path string) bool {
	return path == "/login" || path == "/signup"
}

func isAPIPath(path string) bool {
	return strings.HasPrefix(path, "/api/")
}

// IsPublic reports whether the path needs no token at all. Anything not
// admin-guarded and not on the auth-entry pages is implicitly public too;
// this list only matters for documentation and the classification order.
func (g *Guard) IsPublic(path string) bool {
	switch path {
	case "/", "/login", "/signup", "/health", "/api/health", "/api/admin/setup":
		return true
	}
	return strings.HasPrefix(path, "/api/auth/") ||
		strings.HasPrefix(path, "/api/v1/portfolio")
}

// Evaluate classifies the path and decides the request's fate. claims is nil
// when no token was presented or the token failed decode/signature/expiry;
// the two cases are deliberately indistinguishable here (fail closed).
//
// Admin-guard classification runs before the auth-entry rule; the two path
// sets are disjoint so no path can match both.
func (g *Guard) Evaluate(path string, claims *Claims) Decision {
	if isAdminPath(path) {
		if claims == nil {
			if isAPIPath(path) {
				return Decision{Outcome: DenyUnauthorized}
			}
			return Decision{Outcome: RedirectLogin, Location: g.loginRedirect(path)}
		}
		if claims.Role != RoleAdmin {
			if isAPIPath(path) {
				return Decision{Outcome: DenyForbidden}
			}
			return Decision{Outcome: RedirectHome, Location: g.HomePath}
		}
		return Decision{Outcome: Allow}
	}

	if isAuthEntryPath(path) && claims != nil {
		if claims.Role == RoleAdmin {
			return Decision{Outcome: RedirectAdmin, Location: g.AdminPath}
		}
		return Decision{Outcome: RedirectHome, Location: g.HomePath}
	}

	return Decision{Outcome: Allow}
}

func (g *Guard) loginRedirect(original string) string {
	return g.LoginPath + "?callbackUrl=" + url.QueryEscape(original)
}

// TokenFromRequest pulls the raw session token from the cookie or, for
// programmatic clients, the Authorization header. Empty string means none.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// Middleware applies the guard in front of next. Tokens that fail to parse
// are treated exactly like absent tokens. Valid claims are attached to the
// request context so downstream handlers can read them, guarded or not.
func (g *Guard) Middleware(parser TokenParser, denyJSON func(w http.ResponseWriter, code int, msg string)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var claims *Claims
			if tok := TokenFromRequest(r); tok != "" {
				if c, err := parser.ParseAndValidate(tok); err == nil {
					claims = c
				}
			}

			switch d := g.Evaluate(r.URL.Path, claims); d.Outcome {
			case RedirectLogin, RedirectHome, RedirectAdmin:
				http.Redirect(w, r, d.Location, http.StatusFound)
			case DenyUnauthorized:
				denyJSON(w, http.StatusUnauthorized, "authentication required")
			case DenyForbidden:
				denyJSON(w, http.StatusForbidden, "admin access required")
			default:
				if claims != nil {
					r = r.WithContext(WithClaims(r.Context(), claims))
				}
				next.ServeHTTP(w, r)
			}
		})
	}
}
