package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/torvik/campus-events-client/internal/model"
)

type rsvpRequest struct {
	EventID string `json:"eventId"`
	Status  string `json:"status"` // GOING | INTERESTED
}

// GetMyRsvps lists the caller's RSVPs across all events.
func (c *Client) GetMyRsvps(ctx context.Context) ([]model.Rsvp, error) {
	var out []model.Rsvp
	if err := c.get(ctx, "/api/rsvps/my", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RsvpEvent creates or updates the caller's RSVP for an event.
func (c *Client) RsvpEvent(ctx context.Context, eventID, status string) (*model.Rsvp, error) {
	var out model.Rsvp
	err := c.call(ctx, http.MethodPost, "/api/rsvps", nil,
		rsvpRequest{EventID: eventID, Status: status}, &out, callOpts{})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelRsvpByEvent deletes the caller's RSVP for an event.  Cancelling
// when no RSVP exists is a no-op: the server may answer 204 or 404 and
// both count as success, so the operation is safe to repeat.
func (c *Client) CancelRsvpByEvent(ctx context.Context, eventID string) error {
	return c.call(ctx, http.MethodDelete, "/api/rsvps/by-event/"+url.PathEscape(eventID),
		nil, nil, nil, callOpts{extraOK: []int{http.StatusNotFound}})
}
