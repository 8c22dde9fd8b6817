package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestExportAttendees(t *testing.T) {
	csv := "name,email\nAda,ada@campus.edu\n"
	e := echo.New()
	e.GET("/api/events/full/attendees/export", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "text/csv", []byte(csv))
	})
	e.GET("/api/events/empty/attendees/export", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})
	c := newTestClient(t, e)

	body, err := c.ExportAttendees(context.Background(), "full")
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != csv {
		t.Fatalf("body = %q", body)
	}

	_, err = c.ExportAttendees(context.Background(), "empty")
	if !errors.Is(err, ErrNoAttendees) {
		t.Fatalf("err = %v, want ErrNoAttendees", err)
	}
}

func TestAttendeesFilename(t *testing.T) {
	cases := []struct{ title, want string }{
		{"Tech Expo 2030!", "attendees-tech-expo-2030.csv"},
		{"  Jazz & Blues Night  ", "attendees-jazz-blues-night.csv"},
		{"???", "attendees-event.csv"},
		{"", "attendees-event.csv"},
	}
	for _, tc := range cases {
		if got := AttendeesFilename(tc.title); got != tc.want {
			t.Errorf("AttendeesFilename(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}
