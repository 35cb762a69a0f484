package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/postclinics/clinic-dashboard/internal/appointment"
	"github.com/postclinics/clinic-dashboard/internal/calendar"
	"github.com/postclinics/clinic-dashboard/internal/form"
	"github.com/postclinics/clinic-dashboard/internal/session"
	"github.com/postclinics/clinic-dashboard/pkg/logging"
)

// FormHandler exposes the form/modal state machine to the page: open
// create, open edit pre-filled from a selected event, submit, and the
// confirmation-gated delete.
type FormHandler struct {
	controller *form.Controller
	guard      *session.Guard
	logger     *logging.Logger
}

func NewFormHandler(controller *form.Controller, guard *session.Guard, logger *logging.Logger) *FormHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &FormHandler{controller: controller, guard: guard, logger: logger}
}

type formState struct {
	Mode        form.Mode          `json:"mode"`
	Draft       appointment.Draft  `json:"draft"`
	DetailsOpen bool               `json:"details_open"`
	Selected    *calendar.Event    `json:"selected,omitempty"`
}

func (h *FormHandler) state() formState {
	st := formState{
		Mode:        h.controller.Mode(),
		Draft:       h.controller.Draft(),
		DetailsOpen: h.controller.DetailsOpen(),
	}
	if ev, ok := h.controller.Selected(); ok {
		st.Selected = &ev
	}
	return st
}

// State returns the modal and details view state.
func (h *FormHandler) State(w http.ResponseWriter, r *http.Request) {
	if !requireSession(w, h.guard) {
		return
	}
	writeJSON(w, http.StatusOK, h.state())
}

// OpenCreate opens an empty form with catalog defaults.
func (h *FormHandler) OpenCreate(w http.ResponseWriter, r *http.Request) {
	if !requireSession(w, h.guard) {
		return
	}
	h.controller.OpenCreate()
	writeJSON(w, http.StatusOK, h.state())
}

// Select opens the details view for a clicked calendar event.
func (h *FormHandler) Select(w http.ResponseWriter, r *http.Request) {
	if !requireSession(w, h.guard) {
		return
	}
	var ev calendar.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil || ev.ID == "" {
		writeError(w, http.StatusBadRequest, "invalid event payload")
		return
	}
	h.controller.Select(ev)
	writeJSON(w, http.StatusOK, h.state())
}

// CloseDetails dismisses the details view.
func (h *FormHandler) CloseDetails(w http.ResponseWriter, r *http.Request) {
	h.controller.CloseDetails()
	w.WriteHeader(http.StatusNoContent)
}

// OpenEdit moves from the details view into a pre-filled edit form.
func (h *FormHandler) OpenEdit(w http.ResponseWriter, r *http.Request) {
	if !requireSession(w, h.guard) {
		return
	}
	ev, ok := h.controller.Selected()
	if !ok {
		writeError(w, http.StatusConflict, "no event selected")
		return
	}
	if err := h.controller.OpenEdit(ev); err != nil {
		h.logger.Warn("edit pre-fill failed", "event_id", ev.ID, "error", err)
		writeError(w, http.StatusUnprocessableEntity, "event datetime is unreadable")
		return
	}
	writeJSON(w, http.StatusOK, h.state())
}

// Close dismisses the form modal, keeping its contents.
func (h *FormHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.controller.Close()
	w.WriteHeader(http.StatusNoContent)
}

// Submit stores the edited draft and submits the form. Validation
// failures come back 422 before any gateway call; gateway failures leave
// the modal open and come back 502.
func (h *FormHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if !requireSession(w, h.guard) {
		return
	}
	var draft appointment.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form payload")
		return
	}
	h.controller.SetDraft(draft)

	err := h.controller.Submit(r.Context())
	var vErr *appointment.ValidationError
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, h.state())
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error": "validation failed",
			"field": vErr.Field,
		})
	default:
		writeError(w, http.StatusBadGateway, "gateway rejected the submission")
	}
}

// Delete removes the selected appointment. The confirmed query flag is
// the explicit user confirmation step; without it nothing is deleted.
func (h *FormHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !requireSession(w, h.guard) {
		return
	}
	id := chi.URLParam(r, "id")
	ev, ok := h.controller.Selected()
	if !ok || ev.ID != id {
		writeError(w, http.StatusConflict, "appointment is not the selected event")
		return
	}
	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirmed"))
	if !confirmed {
		writeError(w, http.StatusPreconditionRequired, "deletion requires confirmation")
		return
	}
	if err := h.controller.Delete(r.Context(), true); err != nil {
		writeError(w, http.StatusBadGateway, "gateway rejected the deletion")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
