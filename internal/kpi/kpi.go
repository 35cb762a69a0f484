// Package kpi derives the dashboard's summary tiles from an appointment
// snapshot. Everything here is a pure function of its inputs and is
// recomputed on every store change.
package kpi

import (
	"math"
	"time"

	"github.com/postclinics/clinic-dashboard/internal/appointment"
)

// Summary is the KPI tile row.
type Summary struct {
	TodayCount       int `json:"today_count"`
	TotalActive      int `json:"total_active"`
	ConfirmationRate int `json:"confirmation_rate"`
}

// Compute derives the summary for the given instant. "Today" is the
// YYYY-MM-DD rendering of now in its own location, prefix-matched against
// each appointment's local-naive datetime string.
func Compute(list []appointment.Appointment, now time.Time) Summary {
	day := now.Format("2006-01-02")
	return Summary{
		TodayCount:       TodayCount(list, day),
		TotalActive:      len(list),
		ConfirmationRate: ConfirmationRate(list),
	}
}

// TodayCount counts appointments whose datetime falls on day (YYYY-MM-DD).
func TodayCount(list []appointment.Appointment, day string) int {
	n := 0
	for _, a := range list {
		if a.OnDay(day) {
			n++
		}
	}
	return n
}

// ConfirmationRate is the confirmed share as a rounded percentage in
// [0,100]. An empty list rates 0 rather than dividing by zero.
func ConfirmationRate(list []appointment.Appointment) int {
	if len(list) == 0 {
		return 0
	}
	confirmed := 0
	for _, a := range list {
		if a.Confirmed() {
			confirmed++
		}
	}
	return int(math.Round(100 * float64(confirmed) / float64(len(list))))
}
