package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/postclinics/clinic-dashboard/internal/gateway"
	"github.com/postclinics/clinic-dashboard/internal/session"
	"github.com/postclinics/clinic-dashboard/pkg/logging"
)

// LoginClient is the gateway surface the session handler needs.
type LoginClient interface {
	Login(ctx context.Context, creds gateway.Credentials) (string, error)
}

// SessionHandler serves login, logout and session status for the page.
type SessionHandler struct {
	gateway LoginClient
	guard   *session.Guard
	logger  *logging.Logger
}

func NewSessionHandler(gw LoginClient, guard *session.Guard, logger *logging.Logger) *SessionHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &SessionHandler{gateway: gw, guard: guard, logger: logger}
}

// Login exchanges form credentials for a gateway token and stores it.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds gateway.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if creds.Username == "" || creds.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	token, err := h.gateway.Login(r.Context(), creds)
	if err != nil {
		if gateway.IsUnreachable(err) {
			h.logger.Error("login failed, gateway unreachable", "error", err)
			writeError(w, http.StatusBadGateway, "gateway unreachable")
			return
		}
		h.logger.Info("login rejected", "username", creds.Username)
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := h.guard.Login(token); err != nil {
		h.logger.Error("failed to persist session token", "error", err)
		writeError(w, http.StatusInternalServerError, "could not store session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"authenticated": true})
}

// Logout destroys the session.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.guard.Logout(); err != nil {
		h.logger.Error("logout failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not clear session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Status reports whether a presumed-valid session exists, so the page
// can gate entry without attempting a data fetch.
func (h *SessionHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"authenticated": h.guard.Authenticated()})
}
