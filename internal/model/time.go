package model

import (
	"fmt"
	"strings"
	"time"
)

// Time wraps time.Time to cope with the two timestamp shapes the backend
// emits: RFC 3339 instants ("2030-01-01T10:00:00Z") and zone-less local
// date-times ("2030-01-01T10:00:00").  Zone-less values are interpreted in
// the client's local zone, which matches how the web frontend treats them.
type Time struct {
	time.Time
}

// layouts tried in order when decoding a timestamp.
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

func (t *Time) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range layouts {
		if ts, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			t.Time = ts
			return nil
		}
	}
	return fmt.Errorf("model: unrecognized timestamp %q", s)
}

// MarshalJSON always emits an RFC 3339 UTC instant, the form the backend
// accepts on create and update.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.UTC().Format(time.RFC3339) + `"`), nil
}
