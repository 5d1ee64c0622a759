package server

import (
	"net/http"
	"strings"
)

type contactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// handleSendEmail forwards a visitor's contact-form message to the owner.
// With no mailer configured the message is logged instead of dropped.
func (s *Server) handleSendEmail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var msg contactMessage
	if err := decodeBody(r, &msg); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Message = strings.TrimSpace(msg.Message)

	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		writeErr(w, http.StatusBadRequest, "Name, email, and message are required")
		return
	}
	if !isValidEmail(msg.Email) {
		writeErr(w, http.StatusBadRequest, "Please enter a valid email address")
		return
	}

	if !s.mail.Enabled() {
		s.logger.Printf("contact message (mailer disabled) from=%s subject=%q", maskForLog(msg.Email), msg.Subject)
		writeJSON(w, map[string]any{"success": true})
		return
	}
	if err := s.mail.SendContactMessage(msg.Name, msg.Email, msg.Subject, msg.Message); err != nil {
		s.logger.Printf("send contact mail: %v", err)
		writeErr(w, http.StatusBadGateway, "failed to send message")
		return
	}
	writeJSON(w, map[string]any{"success": true})
}
