package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/torvik/campus-events-client/internal/model"
)

type profileUpdate struct {
	Name string `json:"name"`
}

// GetMyProfile fetches the caller's profile.
func (c *Client) GetMyProfile(ctx context.Context) (*model.User, error) {
	var out model.User
	if err := c.get(ctx, "/api/profile/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateMyProfile changes the caller's display name.
func (c *Client) UpdateMyProfile(ctx context.Context, name string) (*model.User, error) {
	var out model.User
	err := c.call(ctx, http.MethodPut, "/api/profile/me", nil, profileUpdate{Name: name}, &out, callOpts{})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetMyEvents pages through events the caller organizes.
func (c *Client) GetMyEvents(ctx context.Context, page, size int) ([]model.Event, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("size", strconv.Itoa(size))
	var out []model.Event
	if err := c.get(ctx, "/api/profile/my-events", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetEventRsvps lists the RSVPs for one of the caller's events, used by
// the organizer's attendee view.
func (c *Client) GetEventRsvps(ctx context.Context, eventID string) ([]model.Rsvp, error) {
	var out []model.Rsvp
	if err := c.get(ctx, "/api/profile/event/"+url.PathEscape(eventID)+"/rsvps", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
