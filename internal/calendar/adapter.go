// Package calendar maps appointment snapshots to the generic event
// records the calendar widget consumes. The adapter only derives; it
// never writes back to the store.
package calendar

import "github.com/postclinics/clinic-dashboard/internal/appointment"

// EventProps is the metadata bundle surfaced to the details view and the
// edit form when an event is selected.
type EventProps struct {
	Phone        string             `json:"phone"`
	Service      string             `json:"service"`
	Professional string             `json:"professional"`
	Status       appointment.Status `json:"status"`
}

// Event is the widget-facing event record. Field names follow the
// FullCalendar event object so the frontend can feed them straight in.
type Event struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Start           string     `json:"start"`
	BackgroundColor string     `json:"backgroundColor"`
	TextColor       string     `json:"textColor"`
	BorderColor     string     `json:"borderColor"`
	ExtendedProps   EventProps `json:"extendedProps"`
}

// Adapter converts snapshots to events under a color policy.
type Adapter struct {
	policy ColorPolicy
}

func NewAdapter(policy ColorPolicy) *Adapter {
	if policy == nil {
		policy = ClinicColorPolicy
	}
	return &Adapter{policy: policy}
}

// Events maps every appointment in the snapshot.
func (ad *Adapter) Events(list []appointment.Appointment) []Event {
	events := make([]Event, 0, len(list))
	for _, apt := range list {
		events = append(events, ad.event(apt))
	}
	return events
}

func (ad *Adapter) event(apt appointment.Appointment) Event {
	colors := ad.policy(apt)
	return Event{
		ID:              apt.ID,
		Title:           apt.PatientName,
		Start:           apt.DateTime,
		BackgroundColor: colors.Background,
		TextColor:       colors.Text,
		BorderColor:     colors.Border,
		ExtendedProps: EventProps{
			Phone:        apt.PatientPhone,
			Service:      apt.Service,
			Professional: apt.Professional,
			Status:       apt.Status,
		},
	}
}
