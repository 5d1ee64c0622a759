package auth

import (
	"testing"
)

func adminClaims() *Claims { return &Claims{Sub: "1", Email: "a@x.com", Role: RoleAdmin} }
func userClaims() *Claims  { return &Claims{Sub: "2", Email: "u@x.com", Role: RoleUser} }

func TestEvaluateAdminPages(t *testing.T) {
	g := NewGuard()

	tests := []struct {
		name   string
		path   string
		claims *Claims
		want   Outcome
	}{
		{"no token redirects to login", "/admin", nil, RedirectLogin},
		{"no token nested page", "/admin/bio", nil, RedirectLogin},
		{"user role redirects home", "/admin", userClaims(), RedirectHome},
		{"user role nested page", "/admin/projects", userClaims(), RedirectHome},
		{"admin proceeds", "/admin", adminClaims(), Allow},
		{"admin nested page", "/admin/bio", adminClaims(), Allow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := g.Evaluate(tt.path, tt.claims)
			if d.Outcome != tt.want {
				t.Fatalf("Evaluate(%q) outcome = %v, want %v", tt.path, d.Outcome, tt.want)
			}
		})
	}
}

func TestEvaluateAdminAPIDeniesJSON(t *testing.T) {
	g := NewGuard()

	if d := g.Evaluate("/api/v1/admin/project", nil); d.Outcome != DenyUnauthorized {
		t.Errorf("no token on admin API: got %v, want DenyUnauthorized", d.Outcome)
	}
	if d := g.Evaluate("/api/v1/admin/project", userClaims()); d.Outcome != DenyForbidden {
		t.Errorf("user token on admin API: got %v, want DenyForbidden", d.Outcome)
	}
	if d := g.Evaluate("/api/v1/admin/project", adminClaims()); d.Outcome != Allow {
		t.Errorf("admin token on admin API: got %v, want Allow", d.Outcome)
	}
}

func TestEvaluateLoginRedirectCarriesCallback(t *testing.T) {
	g := NewGuard()
	d := g.Evaluate("/admin/bio", nil)
	if d.Outcome != RedirectLogin {
		t.Fatalf("outcome = %v, want RedirectLogin", d.Outcome)
	}
	if want := "/login?callbackUrl=%2Fadmin%2Fbio"; d.Location != want {
		t.Fatalf("location = %q, want %q", d.Location, want)
	}
}

func TestEvaluateAuthEntryRedirects(t *testing.T) {
	g := NewGuard()

	for _, path := range []string{"/login", "/signup"} {
		if d := g.Evaluate(path, nil); d.Outcome != Allow {
			t.Errorf("%s without token: got %v, want Allow", path, d.Outcome)
		}
		if d := g.Evaluate(path, adminClaims()); d.Outcome != RedirectAdmin || d.Location != "/admin" {
			t.Errorf("%s with admin token: got %+v, want RedirectAdmin to /admin", path, d)
		}
		if d := g.Evaluate(path, userClaims()); d.Outcome != RedirectHome || d.Location != "/" {
			t.Errorf("%s with user token: got %+v, want RedirectHome to /", path, d)
		}
	}
}

func TestEvaluateOtherPathsProceed(t *testing.T) {
	g := NewGuard()
	paths := []string{
		"/", "/health", "/api/v1/portfolio", "/api/admin/setup",
		"/api/auth/login", "/api/send-email", "/project/123", "/resume",
		"/administrate", // prefix lookalike, not an admin path
	}
	for _, p := range paths {
		if d := g.Evaluate(p, nil); d.Outcome != Allow {
			t.Errorf("Evaluate(%q) = %v, want Allow", p, d.Outcome)
		}
	}
}

// An expired or malformed token never reaches Evaluate with claims; the
// middleware drops it. This checks the classification treats nil claims on
// guarded paths exactly like a missing token.
func TestExpiredTokenEqualsMissing(t *testing.T) {
	g := NewGuard()
	withNil := g.Evaluate("/admin/bio", nil)
	if withNil.Outcome != RedirectLogin {
		t.Fatalf("outcome = %v, want RedirectLogin", withNil.Outcome)
	}
}
