package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/devenkumar1/Portfolio-app/internal/auth"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req auth.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if !s.rlLoginIP.allow(getClientIP(r)) || (req.Email != "" && !s.rlLoginEmail.allow(req.Email)) {
		writeErr(w, http.StatusTooManyRequests, "too many login attempts, try again later")
		return
	}

	resp, err := s.issuer.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		writeErr(w, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
		return
	}
	if err != nil {
		s.logger.Printf("login: %v", err)
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.setSessionCookie(w, resp.Token, resp.ExpiresAt)
	writeJSON(w, map[string]any{
		"success":    true,
		"token":      resp.Token,
		"expires_at": resp.ExpiresAt,
		"user":       resp.User,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, map[string]any{"success": true})
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req signupRequest
	if err := decodeBody(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeErr(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if !isValidEmail(req.Email) {
		writeErr(w, http.StatusBadRequest, "Invalid email format")
		return
	}
	if msg, ok := validatePassword(req.Password); !ok {
		writeErr(w, http.StatusBadRequest, msg)
		return
	}

	hash, err := auth.HashPassword(auth.DefaultArgon, req.Password)
	if err != nil {
		s.logger.Printf("signup hash: %v", err)
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}

	u := &auth.User{Name: req.Name, Email: req.Email, PassHash: hash, Role: auth.RoleUser}
	if err := s.users.Add(r.Context(), u); err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			writeErr(w, http.StatusConflict, "Email already in use")
			return
		}
		s.logger.Printf("signup add: %v", err)
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSONStatus(w, http.StatusCreated, map[string]any{
		"success": true,
		"user":    auth.Identity{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role},
	})
}

// handleSession echoes the claims the guard attached to the context. It is
// public: an anonymous caller just gets a null user.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeJSON(w, map[string]any{"success": true, "user": nil})
		return
	}
	writeJSON(w, map[string]any{
		"success": true,
		"user": map[string]any{
			"id":    claims.Sub,
			"email": claims.Email,
			"role":  claims.Role,
		},
		"expires_at": time.Unix(claims.ExpiresAt, 0).UTC(),
	})
}

type adminSetupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	SetupKey string `json:"setup_key"`
}

// handleAdminSetup bootstraps the single admin account. It self-disables:
// once an admin exists the endpoint always refuses, whatever the key.
func (s *Server) handleAdminSetup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.cfg.AdminSetupEnabled {
		writeErr(w, http.StatusForbidden, "Admin setup is disabled")
		return
	}

	var req adminSetupRequest
	if err := decodeBody(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if s.cfg.AdminSetupKey == "" || req.SetupKey != s.cfg.AdminSetupKey {
		writeErr(w, http.StatusForbidden, "Invalid setup key")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeErr(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if !isValidEmail(req.Email) {
		writeErr(w, http.StatusBadRequest, "Invalid email format")
		return
	}
	if msg, ok := validatePassword(req.Password); !ok {
		writeErr(w, http.StatusBadRequest, msg)
		return
	}

	hash, err := auth.HashPassword(auth.DefaultArgon, req.Password)
	if err != nil {
		s.logger.Printf("admin setup hash: %v", err)
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}

	u := &auth.User{Name: req.Name, Email: req.Email, PassHash: hash, Role: auth.RoleAdmin}
	if err := s.users.AddAdmin(r.Context(), u); err != nil {
		switch {
		case errors.Is(err, auth.ErrAdminExists):
			writeErr(w, http.StatusBadRequest, "Admin user already exists")
		case errors.Is(err, auth.ErrEmailTaken):
			writeErr(w, http.StatusConflict, "Email already in use")
		default:
			s.logger.Printf("admin setup add: %v", err)
			writeErr(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	s.trail.Record(u.ID, "admin.setup", "email="+u.Email)
	s.logger.Printf("admin account created email=%s", maskForLog(u.Email))
	writeJSONStatus(w, http.StatusCreated, map[string]any{
		"success": true,
		"user":    auth.Identity{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role},
	})
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   s.cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
