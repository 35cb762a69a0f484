package calendar

import "github.com/postclinics/clinic-dashboard/internal/appointment"

// Colors is the style triple applied to one event.
type Colors struct {
	Background string
	Text       string
	Border     string
}

// ColorPolicy decides event colors. Policies are presentation rules, not
// business rules; deployments that dropped the professional field plug in
// their own.
type ColorPolicy func(appointment.Appointment) Colors

const (
	textPrimary   = "#111827"
	pendingBg     = "#FFFFFF"
	pendingBorder = "#E5E7EB"

	confirmedOrthoBg   = "#DBEAFE"
	confirmedNamedBg   = "#FCE7F3"
	confirmedDefaultBg = "#D1FAE5"

	namedProviders = "Dra. Débora / Dr. Sidney"
)

// ClinicColorPolicy reproduces the clinic's scheme: pending events stay
// white with a faint border, confirmed events get a pastel keyed by
// professional.
func ClinicColorPolicy(apt appointment.Appointment) Colors {
	if !apt.Confirmed() {
		return Colors{Background: pendingBg, Text: textPrimary, Border: pendingBorder}
	}
	bg := confirmedDefaultBg
	switch apt.Professional {
	case "Ortodontia":
		bg = confirmedOrthoBg
	case namedProviders:
		bg = confirmedNamedBg
	}
	return Colors{Background: bg, Text: textPrimary, Border: "transparent"}
}

// MonochromePolicy is the reduced scheme used before the professional
// field existed: white pending, one green for confirmed.
func MonochromePolicy(apt appointment.Appointment) Colors {
	if !apt.Confirmed() {
		return Colors{Background: pendingBg, Text: textPrimary, Border: pendingBorder}
	}
	return Colors{Background: confirmedDefaultBg, Text: textPrimary, Border: "transparent"}
}
