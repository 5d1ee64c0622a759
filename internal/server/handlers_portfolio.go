package server

import (
	"net/http"

	"github.com/devenkumar1/Portfolio-app/internal/portfolio"
)

// handlePortfolio serves the whole site content in one public call.
func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	data, err := portfolio.Aggregate(r.Context(), s.content)
	if err != nil {
		s.logger.Printf("portfolio aggregate: %v", err)
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, map[string]any{"success": true, "data": data})
}
