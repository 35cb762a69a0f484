package form

import (
	"fmt"
	"time"
)

// inputLayout is the value format of an HTML datetime-local input.
const inputLayout = "2006-01-02T15:04"

// acceptedLayouts are the datetime spellings seen in gateway records.
var acceptedLayouts = []string{
	"2006-01-02T15:04:05",
	inputLayout,
}

// ParseLocal parses a gateway datetime string as clinic wall-clock time.
func ParseLocal(value string) (time.Time, error) {
	for _, layout := range acceptedLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("form: unrecognized datetime %q", value)
}

// InputValue converts a stored datetime into the string a datetime-local
// input presents: same wall-clock instant, minute precision. Round-
// tripping an edit with untouched fields therefore reconstructs the
// original calendar instant exactly (whole minutes).
func InputValue(stored string) (string, error) {
	t, err := ParseLocal(stored)
	if err != nil {
		return "", err
	}
	return t.Format(inputLayout), nil
}
