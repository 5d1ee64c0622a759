package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/devenkumar1/Portfolio-app/internal/auth"
	"github.com/devenkumar1/Portfolio-app/internal/portfolio"
	"github.com/devenkumar1/Portfolio-app/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	uploads, err := storage.NewS3Store(context.Background(), storage.S3Config{})
	if err != nil {
		t.Fatalf("NewS3Store: %v", err)
	}
	cfg := Config{
		JWTSecret:         "test-secret",
		AdminSetupEnabled: true,
		AdminSetupKey:     "bootstrap-key",
	}
	return newServer(cfg, auth.NewMemoryUserStore(), portfolio.NewMemoryStore(), uploads)
}

func doJSON(t *testing.T, s *Server, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.ServeHTTP(w, r)
	return w
}

func setupAdmin(t *testing.T, s *Server) string {
	t.Helper()
	w := doJSON(t, s, http.MethodPost, "/api/admin/setup",
		`{"name":"Admin","email":"admin@example.com","password":"longenough","setup_key":"bootstrap-key"}`, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("admin setup status = %d, body %s", w.Code, w.Body.String())
	}
	return loginToken(t, s, "admin@example.com", "longenough")
}

func loginToken(t *testing.T, s *Server, email, password string) string {
	t.Helper()
	w := doJSON(t, s, http.MethodPost, "/api/auth/login",
		fmt.Sprintf(`{"email":%q,"password":%q}`, email, password), "")
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("login returned empty token")
	}
	return resp.Token
}

func signupUser(t *testing.T, s *Server, email, password string) string {
	t.Helper()
	w := doJSON(t, s, http.MethodPost, "/api/auth/signup",
		fmt.Sprintf(`{"name":"User","email":%q,"password":%q}`, email, password), "")
	if w.Code != http.StatusCreated {
		t.Fatalf("signup status = %d, body %s", w.Code, w.Body.String())
	}
	return loginToken(t, s, email, password)
}

func TestSignupValidation(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/auth/signup",
		`{"name":"U","email":"u@example.com","password":"short"}`, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("short password status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Password must be at least 8 characters long") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}

	w = doJSON(t, s, http.MethodPost, "/api/auth/signup",
		`{"name":"U","email":"not-an-email","password":"longenough"}`, "")
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "Invalid email format") {
		t.Fatalf("bad email: status = %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, s, http.MethodPost, "/api/auth/signup", `{"email":"u@example.com"}`, "")
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "Missing required fields") {
		t.Fatalf("missing fields: status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	s := newTestServer(t)
	signupUser(t, s, "dup@example.com", "longenough")

	w := doJSON(t, s, http.MethodPost, "/api/auth/signup",
		`{"name":"Other","email":"DUP@example.com","password":"different1"}`, "")
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate signup status = %d, want 409", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Email already in use") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestLoginWrongCredentialsIndistinguishable(t *testing.T) {
	s := newTestServer(t)
	signupUser(t, s, "known@example.com", "longenough")

	unknown := doJSON(t, s, http.MethodPost, "/api/auth/login",
		`{"email":"nobody@example.com","password":"whatever1"}`, "")
	wrongPw := doJSON(t, s, http.MethodPost, "/api/auth/login",
		`{"email":"known@example.com","password":"wrongwrong"}`, "")

	if unknown.Code != http.StatusUnauthorized || wrongPw.Code != http.StatusUnauthorized {
		t.Fatalf("statuses = %d, %d, want both 401", unknown.Code, wrongPw.Code)
	}
	if unknown.Body.String() != wrongPw.Body.String() {
		t.Fatalf("responses differ:\n%s\n%s", unknown.Body.String(), wrongPw.Body.String())
	}
}

func TestAdminCanReachAdminPages(t *testing.T) {
	s := newTestServer(t)
	adminTok := setupAdmin(t, s)

	w := doJSON(t, s, http.MethodGet, "/admin", "", adminTok)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /admin with admin token = %d, want 200", w.Code)
	}

	w = doJSON(t, s, http.MethodGet, "/api/v1/admin/project", "", adminTok)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/v1/admin/project with admin token = %d, want 200", w.Code)
	}
}

func TestNonAdminRedirectedHome(t *testing.T) {
	s := newTestServer(t)
	setupAdmin(t, s)
	userTok := signupUser(t, s, "visitor@example.com", "longenough")

	w := doJSON(t, s, http.MethodGet, "/admin", "", userTok)
	if w.Code != http.StatusFound {
		t.Fatalf("GET /admin with user token = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Fatalf("Location = %q, want /", loc)
	}
}

func TestAnonymousRedirectedToLoginWithCallback(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodGet, "/admin/bio", "", "")
	if w.Code != http.StatusFound {
		t.Fatalf("GET /admin/bio anonymous = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login?callbackUrl=%2Fadmin%2Fbio" {
		t.Fatalf("Location = %q", loc)
	}
}

func TestGuardedAPIGetsJSONDenials(t *testing.T) {
	s := newTestServer(t)
	setupAdmin(t, s)
	userTok := signupUser(t, s, "plain@example.com", "longenough")

	w := doJSON(t, s, http.MethodGet, "/api/v1/admin/bio", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous API status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"success":false`) {
		t.Fatalf("expected JSON error envelope, got %s", w.Body.String())
	}

	w = doJSON(t, s, http.MethodGet, "/api/v1/admin/bio", "", userTok)
	if w.Code != http.StatusForbidden {
		t.Fatalf("non-admin API status = %d, want 403", w.Code)
	}
}

func TestExpiredTokenTreatedAsMissing(t *testing.T) {
	s := newTestServer(t)

	expiredSigner := auth.NewSigner([]byte("test-secret"), s.cfg.JWTIssuer, -time.Hour)
	tok, _, err := expiredSigner.IssueToken(auth.Identity{ID: "x", Email: "x@example.com", Role: auth.RoleAdmin})
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	w := doJSON(t, s, http.MethodGet, "/admin/bio", "", tok)
	if w.Code != http.StatusFound {
		t.Fatalf("expired token status = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); !strings.HasPrefix(loc, "/login?callbackUrl=") {
		t.Fatalf("Location = %q", loc)
	}
}

func TestAuthEntryRedirects(t *testing.T) {
	s := newTestServer(t)
	adminTok := setupAdmin(t, s)
	userTok := signupUser(t, s, "entry@example.com", "longenough")

	w := doJSON(t, s, http.MethodGet, "/login", "", adminTok)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/admin" {
		t.Fatalf("admin on /login: status %d location %q", w.Code, w.Header().Get("Location"))
	}

	w = doJSON(t, s, http.MethodGet, "/signup", "", userTok)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
		t.Fatalf("user on /signup: status %d location %q", w.Code, w.Header().Get("Location"))
	}

	// anonymous visitors see the pages
	w = doJSON(t, s, http.MethodGet, "/login", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("anonymous /login = %d, want 200", w.Code)
	}
}

func TestConcurrentAdminSetupOneWinner(t *testing.T) {
	s := newTestServer(t)

	const n = 8
	codes := make([]int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body := fmt.Sprintf(`{"name":"A","email":"admin%d@example.com","password":"longenough","setup_key":"bootstrap-key"}`, i)
			w := doJSON(t, s, http.MethodPost, "/api/admin/setup", body, "")
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	created := 0
	for _, c := range codes {
		switch c {
		case http.StatusCreated:
			created++
		case http.StatusBadRequest:
		default:
			t.Fatalf("unexpected status %d", c)
		}
	}
	if created != 1 {
		t.Fatalf("created = %d admins, want exactly 1", created)
	}
}

func TestAdminSetupGates(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/admin/setup",
		`{"name":"A","email":"a@example.com","password":"longenough","setup_key":"wrong"}`, "")
	if w.Code != http.StatusForbidden || !strings.Contains(w.Body.String(), "Invalid setup key") {
		t.Fatalf("wrong key: status %d body %s", w.Code, w.Body.String())
	}

	setupAdmin(t, s)
	w = doJSON(t, s, http.MethodPost, "/api/admin/setup",
		`{"name":"B","email":"b@example.com","password":"longenough","setup_key":"bootstrap-key"}`, "")
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "Admin user already exists") {
		t.Fatalf("second admin: status %d body %s", w.Code, w.Body.String())
	}

	disabled := newTestServer(t)
	disabled.cfg.AdminSetupEnabled = false
	w = doJSON(t, disabled, http.MethodPost, "/api/admin/setup",
		`{"name":"A","email":"a@example.com","password":"longenough","setup_key":"bootstrap-key"}`, "")
	if w.Code != http.StatusForbidden || !strings.Contains(w.Body.String(), "Admin setup is disabled") {
		t.Fatalf("disabled: status %d body %s", w.Code, w.Body.String())
	}
}

func TestLoginSetsCookieAndSessionEchoes(t *testing.T) {
	s := newTestServer(t)
	setupAdmin(t, s)

	w := doJSON(t, s, http.MethodPost, "/api/auth/login",
		`{"email":"admin@example.com","password":"longenough"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login = %d", w.Code)
	}
	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.SessionCookie {
			cookie = c
		}
	}
	if cookie == nil || cookie.Value == "" {
		t.Fatal("login did not set the session cookie")
	}
	if !cookie.HttpOnly {
		t.Fatal("session cookie must be http-only")
	}

	// session via cookie, not bearer header
	r := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	r.AddCookie(cookie)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, r)
	if rec.Code != http.StatusOK {
		t.Fatalf("session = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "admin@example.com") {
		t.Fatalf("session body: %s", rec.Body.String())
	}

	// anonymous session is a null user, not an error
	anon := doJSON(t, s, http.MethodGet, "/api/auth/session", "", "")
	if anon.Code != http.StatusOK || !strings.Contains(anon.Body.String(), `"user":null`) {
		t.Fatalf("anonymous session: status %d body %s", anon.Code, anon.Body.String())
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodPost, "/api/auth/logout", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("logout = %d", w.Code)
	}
	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.SessionCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("logout did not expire the session cookie")
	}
}

func TestLoginRateLimited(t *testing.T) {
	s := newTestServer(t)

	var last int
	for i := 0; i < 12; i++ {
		w := doJSON(t, s, http.MethodPost, "/api/auth/login",
			`{"email":"brute@example.com","password":"wrongwrong"}`, "")
		last = w.Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("after burst, status = %d, want 429", last)
	}
}
