package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/torvik/campus-events-client/internal/model"
)

func TestRsvpEvent(t *testing.T) {
	var got rsvpRequest
	e := echo.New()
	e.POST("/api/rsvps", func(c echo.Context) error {
		if err := c.Bind(&got); err != nil {
			return c.NoContent(http.StatusBadRequest)
		}
		return c.JSON(http.StatusOK, model.Rsvp{
			ID: "r-1", EventID: got.EventID, Status: got.Status,
		})
	})
	c := newTestClient(t, e)

	rsvp, err := c.RsvpEvent(context.Background(), "ev-1", model.RsvpGoing)
	if err != nil {
		t.Fatal(err)
	}
	if got.EventID != "ev-1" || got.Status != model.RsvpGoing {
		t.Fatalf("request = %+v", got)
	}
	if rsvp.ID != "r-1" || rsvp.Status != model.RsvpGoing {
		t.Fatalf("rsvp = %+v", rsvp)
	}
}

func TestCancelRsvpAbsentIsNoOp(t *testing.T) {
	e := echo.New()
	e.DELETE("/api/rsvps/by-event/present", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})
	e.DELETE("/api/rsvps/by-event/absent", func(c echo.Context) error {
		return c.NoContent(http.StatusNotFound)
	})
	c := newTestClient(t, e)

	if err := c.CancelRsvpByEvent(context.Background(), "present"); err != nil {
		t.Fatalf("204 cancel: %v", err)
	}
	if err := c.CancelRsvpByEvent(context.Background(), "absent"); err != nil {
		t.Fatalf("cancelling a missing RSVP should succeed, got %v", err)
	}
}
