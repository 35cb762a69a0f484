package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/postclinics/clinic-dashboard/internal/appointment"
	"github.com/postclinics/clinic-dashboard/internal/calendar"
	"github.com/postclinics/clinic-dashboard/internal/kpi"
	"github.com/postclinics/clinic-dashboard/internal/session"
	"github.com/postclinics/clinic-dashboard/internal/store"
	"github.com/postclinics/clinic-dashboard/internal/toast"
	"github.com/postclinics/clinic-dashboard/pkg/logging"
)

// ViewHandler serves the derived views: calendar events, KPI tiles and
// active toasts. It reads store snapshots only; mutations go through the
// form handler.
type ViewHandler struct {
	store   *store.Store
	adapter *calendar.Adapter
	toasts  *toast.Center
	guard   *session.Guard
	now     func() time.Time
	logger  *logging.Logger
}

func NewViewHandler(st *store.Store, adapter *calendar.Adapter, toasts *toast.Center, guard *session.Guard, logger *logging.Logger) *ViewHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &ViewHandler{
		store:   st,
		adapter: adapter,
		toasts:  toasts,
		guard:   guard,
		now:     time.Now,
		logger:  logger,
	}
}

// Reload refreshes the store from the gateway. The page calls it on
// mount and the form controller triggers it after every mutation, so
// this is also where a dead session surfaces.
func (h *ViewHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if !requireSession(w, h.guard) {
		return
	}
	if err := h.store.Reload(r.Context()); err != nil {
		if isNoSession(err) {
			writeError(w, http.StatusUnauthorized, "session expired")
			return
		}
		// The page went away mid-reload; nobody is left to read a toast.
		if errors.Is(err, context.Canceled) {
			return
		}
		h.logger.Error("store reload failed", "error", err)
		h.toasts.Error("Erro ao carregar dados")
		writeError(w, http.StatusBadGateway, "could not load appointments")
		return
	}
	writeJSON(w, http.StatusOK, map[string]uint64{"version": h.store.Version()})
}

// Events returns the widget-ready event list for the current snapshot.
func (h *ViewHandler) Events(w http.ResponseWriter, r *http.Request) {
	if !requireSession(w, h.guard) {
		return
	}
	snapshot := h.store.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"events":  h.adapter.Events(snapshot),
		"version": h.store.Version(),
	})
}

// KPIs returns the summary tiles for the current snapshot.
func (h *ViewHandler) KPIs(w http.ResponseWriter, r *http.Request) {
	if !requireSession(w, h.guard) {
		return
	}
	writeJSON(w, http.StatusOK, kpi.Compute(h.store.Snapshot(), h.now()))
}

// Catalogs returns the service and professional select options.
func (h *ViewHandler) Catalogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{
		"services":      appointment.Services,
		"professionals": appointment.Professionals,
	})
}

// Toasts lists active notifications, oldest first.
func (h *ViewHandler) Toasts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"toasts": h.toasts.Active()})
}

// DismissToast removes a notification before its timer fires.
func (h *ViewHandler) DismissToast(w http.ResponseWriter, r *http.Request) {
	h.toasts.Dismiss(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}
