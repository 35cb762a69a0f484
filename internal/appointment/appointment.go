package appointment

import (
	"fmt"
	"strings"
)

// Status is the remote gateway's appointment status. The gateway only
// distinguishes "confirmed"; every other value is presented as pending.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
)

// Appointment is a scheduled clinic visit as exchanged with the gateway.
// The gateway owns the record; the dashboard never mutates one in place.
//
// DateTime is a local-naive ISO-8601 string ("2006-01-02T15:04" with an
// optional seconds component). It is kept as a string on purpose: the
// gateway stores wall-clock clinic time with no zone, and date bucketing
// works by prefix comparison against a YYYY-MM-DD day string.
type Appointment struct {
	ID           string `json:"id"`
	PatientName  string `json:"patient_name"`
	PatientPhone string `json:"patient_phone"`
	DateTime     string `json:"datetime"`
	Service      string `json:"service"`
	Professional string `json:"professional,omitempty"`
	Status       Status `json:"status"`
}

// Confirmed reports whether the appointment has been confirmed by the
// patient. Unknown status values count as not confirmed.
func (a Appointment) Confirmed() bool {
	return a.Status == StatusConfirmed
}

// OnDay reports whether the appointment falls on the given day, where day
// is a YYYY-MM-DD string. Matching is a literal prefix test against the
// stored datetime, mirroring how the gateway buckets days.
func (a Appointment) OnDay(day string) bool {
	return strings.HasPrefix(a.DateTime, day)
}

// Draft is the mutable payload sent to the gateway on create and update.
// The gateway assigns ID and Status.
type Draft struct {
	PatientName  string `json:"patient_name"`
	PatientPhone string `json:"patient_phone"`
	DateTime     string `json:"datetime"`
	Service      string `json:"service"`
	Professional string `json:"professional,omitempty"`
}

// ValidationError reports a required form field that was left empty.
// It is raised before any network call is made.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("appointment: required field %q is empty", e.Field)
}

// Validate enforces the form's required fields: patient name, phone and
// datetime. Service and professional fall back to catalog defaults and a
// phone number is accepted loosely, the gateway does not enforce a format.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.PatientName) == "" {
		return &ValidationError{Field: "patient_name"}
	}
	if strings.TrimSpace(d.PatientPhone) == "" {
		return &ValidationError{Field: "patient_phone"}
	}
	if strings.TrimSpace(d.DateTime) == "" {
		return &ValidationError{Field: "datetime"}
	}
	return nil
}
