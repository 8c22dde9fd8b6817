package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/torvik/campus-events-client/internal/model"
)

type feedbackRequest struct {
	EventID string `json:"eventId"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

// CreateOrUpdateFeedback upserts the caller's feedback for an event.  The
// server rejects it with 422 until the event has ended and the caller
// holds an RSVP; the viewmodel checks the same conditions first so the
// request is normally only sent when it can succeed.
func (c *Client) CreateOrUpdateFeedback(ctx context.Context, eventID string, rating int, comment string) (*model.Feedback, error) {
	var out model.Feedback
	err := c.call(ctx, http.MethodPost, "/api/feedback", nil,
		feedbackRequest{EventID: eventID, Rating: rating, Comment: comment}, &out, callOpts{})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetMyFeedback returns the caller's feedback for one event, or nil when
// none has been submitted (the server answers with a JSON null).
func (c *Client) GetMyFeedback(ctx context.Context, eventID string) (*model.Feedback, error) {
	params := url.Values{}
	params.Set("eventId", eventID)
	var out *model.Feedback
	if err := c.get(ctx, "/api/feedback/my", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListEventFeedback returns all feedback for an event, newest first.  The
// server restricts this to the event's organizer.
func (c *Client) ListEventFeedback(ctx context.Context, eventID string) ([]model.Feedback, error) {
	var out []model.Feedback
	if err := c.get(ctx, "/api/events/"+url.PathEscape(eventID)+"/feedback", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
