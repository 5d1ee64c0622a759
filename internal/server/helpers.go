package server

import (
	"encoding/json"
	"net/http"
	"regexp"
)

// Every JSON response carries the same envelope: {"success":true,...} on
// the happy path, {"success":false,"error":...} otherwise.

func writeJSON(w http.ResponseWriter, v any) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSONStatus(w, code, map[string]any{"success": false, "error": msg})
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	return dec.Decode(v)
}

var reEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func isValidEmail(s string) bool { return reEmail.MatchString(s) }

func validatePassword(pw string) (string, bool) {
	if len(pw) < 8 {
		return "Password must be at least 8 characters long", false
	}
	return "", true
}
