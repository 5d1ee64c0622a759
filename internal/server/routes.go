package server

import "net/http"

func (s *Server) routes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/health", s.handleHealth)

	// Page stubs. The real pages live in the frontend; these exist so the
	// guard's redirect semantics hold for browser traffic hitting the
	// backend directly.
	s.mux.HandleFunc("/", s.handlePage("portfolio"))
	s.mux.HandleFunc("/login", s.handlePage("login"))
	s.mux.HandleFunc("/signup", s.handlePage("signup"))
	s.mux.HandleFunc("/admin", s.handlePage("admin dashboard"))
	s.mux.HandleFunc("/admin/", s.handlePage("admin dashboard"))

	s.mux.HandleFunc("/api/auth/login", s.handleLogin)
	s.mux.HandleFunc("/api/auth/logout", s.handleLogout)
	s.mux.HandleFunc("/api/auth/signup", s.handleSignup)
	s.mux.HandleFunc("/api/auth/session", s.handleSession)
	s.mux.HandleFunc("/api/admin/setup", s.handleAdminSetup)

	s.mux.HandleFunc("/api/v1/portfolio", s.handlePortfolio)
	s.mux.HandleFunc("/api/send-email", s.handleSendEmail)

	// Everything under /api/v1/admin is behind the guard.
	s.mux.HandleFunc("/api/v1/admin/bio", s.handleBio)
	s.mux.HandleFunc("/api/v1/admin/contact", s.handleContact)
	s.mux.HandleFunc("/api/v1/admin/project", s.handleProject)
	s.mux.HandleFunc("/api/v1/admin/skill", s.handleSkill)
	s.mux.HandleFunc("/api/v1/admin/experience", s.handleExperience)
	s.mux.HandleFunc("/api/v1/admin/education", s.handleEducation)
	s.mux.HandleFunc("/api/v1/admin/achievement", s.handleAchievement)
	s.mux.HandleFunc("/api/v1/admin/certificate", s.handleCertificate)
	s.mux.HandleFunc("/api/v1/admin/audit", s.handleAudit)
	s.mux.HandleFunc("/api/v1/admin/upload", s.handleUploadImage)
	s.mux.HandleFunc("/api/v1/admin/upload/resume", s.handleUploadResume)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handlePage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(name))
	}
}
