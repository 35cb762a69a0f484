package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/postclinics/clinic-dashboard/internal/session"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// requireSession enforces the session guard on a view endpoint. A 401
// tells the page to route back to login.
func requireSession(w http.ResponseWriter, guard *session.Guard) bool {
	if err := guard.RequireSession(); err != nil {
		writeError(w, http.StatusUnauthorized, "session expired")
		return false
	}
	return true
}

// isNoSession reports whether err signals a torn-down session.
func isNoSession(err error) bool {
	return errors.Is(err, session.ErrNoSession)
}
