// Package form manages the appointment form modal and the details view:
// create vs. edit mode, pre-fill from a selected calendar event, minimal
// validation, submission to the gateway and the post-mutation refresh
// cycle.
package form

import (
	"context"
	"sync"

	"github.com/postclinics/clinic-dashboard/internal/appointment"
	"github.com/postclinics/clinic-dashboard/internal/calendar"
	"github.com/postclinics/clinic-dashboard/pkg/logging"
)

// Mode is the modal's state.
type Mode string

const (
	ModeClosed Mode = "closed"
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// Mutator is the gateway surface the controller needs.
type Mutator interface {
	CreateAppointment(ctx context.Context, draft appointment.Draft) (*appointment.Appointment, error)
	UpdateAppointment(ctx context.Context, id string, draft appointment.Draft) (*appointment.Appointment, error)
	DeleteAppointment(ctx context.Context, id string) error
}

// Reloader refreshes the appointment store after a mutation.
type Reloader interface {
	Reload(ctx context.Context) error
}

// Notifier reports mutation outcomes to the user.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Controller drives the modal state machine. All methods are safe for
// concurrent use; one mutation's mutate → reload → notify sequence is
// ordered, independent actions are not.
type Controller struct {
	gateway Mutator
	store   Reloader
	notify  Notifier
	logger  *logging.Logger

	mu        sync.Mutex
	mode      Mode
	editingID string
	draft     appointment.Draft

	detailsOpen bool
	selected    *calendar.Event
}

func NewController(gw Mutator, store Reloader, notify Notifier, logger *logging.Logger) *Controller {
	if logger == nil {
		logger = logging.Default()
	}
	return &Controller{
		gateway: gw,
		store:   store,
		notify:  notify,
		logger:  logger,
		mode:    ModeClosed,
	}
}

// Mode returns the modal's current state.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Draft returns the form contents as currently held.
func (c *Controller) Draft() appointment.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// SetDraft replaces the form contents (field edits from the UI).
func (c *Controller) SetDraft(d appointment.Draft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = d
}

// OpenCreate opens an empty form with the catalog defaults.
func (c *Controller) OpenCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = ModeCreate
	c.editingID = ""
	c.draft = appointment.Draft{
		Service:      appointment.DefaultService,
		Professional: appointment.DefaultProfessional,
	}
}

// Select opens the details view for a calendar event.
func (c *Controller) Select(ev calendar.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	evCopy := ev
	c.selected = &evCopy
	c.detailsOpen = true
}

// Selected returns the event behind the open details view, if any.
func (c *Controller) Selected() (calendar.Event, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.detailsOpen || c.selected == nil {
		return calendar.Event{}, false
	}
	return *c.selected, true
}

// DetailsOpen reports whether the details view is showing.
func (c *Controller) DetailsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.detailsOpen
}

// OpenEdit moves from the details view into the edit form, pre-filled
// from the selected event. Missing service/professional fall back to the
// catalog defaults, matching how older records render.
func (c *Controller) OpenEdit(ev calendar.Event) error {
	input, err := InputValue(ev.Start)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detailsOpen = false
	c.mode = ModeEdit
	c.editingID = ev.ID
	service := ev.ExtendedProps.Service
	if service == "" {
		service = appointment.DefaultService
	}
	professional := ev.ExtendedProps.Professional
	if professional == "" {
		professional = appointment.DefaultProfessional
	}
	c.draft = appointment.Draft{
		PatientName:  ev.Title,
		PatientPhone: ev.ExtendedProps.Phone,
		DateTime:     input,
		Service:      service,
		Professional: professional,
	}
	return nil
}

// Close dismisses the modal without touching the form contents.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = ModeClosed
	c.editingID = ""
}

// CloseDetails dismisses the details view.
func (c *Controller) CloseDetails() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detailsOpen = false
	c.selected = nil
}

// Submit validates and sends the form. Success closes the modal, reloads
// the store and raises a success toast. Failure leaves the modal open and
// the form intact so the user can retry without retyping.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	mode := c.mode
	id := c.editingID
	draft := c.draft
	c.mu.Unlock()

	if mode == ModeClosed {
		return nil
	}
	if err := draft.Validate(); err != nil {
		return err
	}

	var err error
	if mode == ModeEdit {
		_, err = c.gateway.UpdateAppointment(ctx, id, draft)
	} else {
		_, err = c.gateway.CreateAppointment(ctx, draft)
	}
	if err != nil {
		c.logger.Warn("appointment submit failed", "mode", mode, "error", err)
		c.notify.Error("Erro no servidor")
		return err
	}

	if mode == ModeEdit {
		c.notify.Success("Agendamento atualizado!")
	} else {
		c.notify.Success("Agendamento criado!")
	}

	c.mu.Lock()
	c.mode = ModeClosed
	c.editingID = ""
	c.mu.Unlock()

	if reloadErr := c.store.Reload(ctx); reloadErr != nil {
		c.logger.Warn("post-submit reload failed", "error", reloadErr)
	}
	return nil
}

// Delete removes the selected appointment. The confirmed flag carries the
// user's explicit confirmation; without it nothing happens. Success
// closes the details view and reloads; failure leaves everything as it
// was and raises an error toast.
func (c *Controller) Delete(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return nil
	}
	c.mu.Lock()
	selected := c.selected
	open := c.detailsOpen
	c.mu.Unlock()
	if !open || selected == nil {
		return nil
	}

	if err := c.gateway.DeleteAppointment(ctx, selected.ID); err != nil {
		c.logger.Warn("appointment delete failed", "id", selected.ID, "error", err)
		c.notify.Error("Erro ao excluir")
		return err
	}

	c.notify.Success("Agendamento excluído!")
	c.CloseDetails()
	if reloadErr := c.store.Reload(ctx); reloadErr != nil {
		c.logger.Warn("post-delete reload failed", "error", reloadErr)
	}
	return nil
}
