package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/torvik/campus-events-client/internal/model"
)

// Admin-only operations.  The gateway does not pre-check the caller's
// role; a non-admin gets the server's 403 mapped to the usual permission
// message.

type activeBody struct {
	Active bool `json:"active"`
}
type banBody struct {
	Banned bool `json:"banned"`
}
type roleBody struct {
	Role string `json:"role"`
}
type rejectBody struct {
	Reason string `json:"reason"`
}

// UserSearch filters the admin user search.  Empty fields are omitted.
type UserSearch struct {
	Q      string
	Role   string // STUDENT | ORGANIZER | ADMIN
	Status string // active | inactive | banned
}

// AdminListUsers returns every user.
func (c *Client) AdminListUsers(ctx context.Context) ([]model.User, error) {
	var out []model.User
	if err := c.get(ctx, "/api/admin/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminSearchUsers filters users by text, role and status.
func (c *Client) AdminSearchUsers(ctx context.Context, q UserSearch) ([]model.User, error) {
	params := url.Values{}
	if q.Q != "" {
		params.Set("q", q.Q)
	}
	if q.Role != "" {
		params.Set("role", q.Role)
	}
	if q.Status != "" {
		params.Set("status", q.Status)
	}
	var out []model.User
	if err := c.get(ctx, "/api/admin/users/search", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminSetActive toggles an account's active flag.
func (c *Client) AdminSetActive(ctx context.Context, userID string, active bool) (*model.User, error) {
	var out model.User
	err := c.call(ctx, http.MethodPatch, "/api/admin/users/"+url.PathEscape(userID)+"/active",
		nil, activeBody{Active: active}, &out, callOpts{})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminSetBanned toggles an account's ban flag.
func (c *Client) AdminSetBanned(ctx context.Context, userID string, banned bool) (*model.User, error) {
	var out model.User
	err := c.call(ctx, http.MethodPatch, "/api/admin/users/"+url.PathEscape(userID)+"/ban",
		nil, banBody{Banned: banned}, &out, callOpts{})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminSetRole changes an account's role.
func (c *Client) AdminSetRole(ctx context.Context, userID, role string) (*model.User, error) {
	var out model.User
	err := c.call(ctx, http.MethodPatch, "/api/admin/users/"+url.PathEscape(userID)+"/role",
		nil, roleBody{Role: role}, &out, callOpts{})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminUserEvents lists events organized by one user.
func (c *Client) AdminUserEvents(ctx context.Context, userID string) ([]model.Event, error) {
	var out []model.Event
	if err := c.get(ctx, "/api/admin/users/"+url.PathEscape(userID)+"/events", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminUserRsvps lists one user's RSVPs.
func (c *Client) AdminUserRsvps(ctx context.Context, userID string) ([]model.Rsvp, error) {
	var out []model.Rsvp
	if err := c.get(ctx, "/api/admin/users/"+url.PathEscape(userID)+"/rsvps", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminListEvents lists events for moderation.  status filters by
// approval state ("ALL" and "" mean no filter); query is free text.
func (c *Client) AdminListEvents(ctx context.Context, status, query string) ([]model.Event, error) {
	params := url.Values{}
	if status != "" && status != "ALL" {
		params.Set("status", status)
	}
	if query != "" {
		params.Set("query", query)
	}
	var out []model.Event
	if err := c.get(ctx, "/api/admin/events", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminApproveEvent marks a pending event APPROVED.
func (c *Client) AdminApproveEvent(ctx context.Context, eventID string) (*model.Event, error) {
	var out model.Event
	err := c.call(ctx, http.MethodPost, "/api/admin/events/"+url.PathEscape(eventID)+"/approve",
		nil, nil, &out, callOpts{})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminRejectEvent marks a pending event REJECTED with a reason.
func (c *Client) AdminRejectEvent(ctx context.Context, eventID, reason string) (*model.Event, error) {
	var out model.Event
	err := c.call(ctx, http.MethodPost, "/api/admin/events/"+url.PathEscape(eventID)+"/reject",
		nil, rejectBody{Reason: reason}, &out, callOpts{})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminDeleteEvent removes any event regardless of owner.
func (c *Client) AdminDeleteEvent(ctx context.Context, eventID string) error {
	return c.call(ctx, http.MethodDelete, "/api/admin/events/"+url.PathEscape(eventID),
		nil, nil, nil, callOpts{})
}

// AdminEditEvent edits any event regardless of owner.
func (c *Client) AdminEditEvent(ctx context.Context, eventID string, in EventInput) (*model.Event, error) {
	var out model.Event
	err := c.call(ctx, http.MethodPut, "/api/admin/events/"+url.PathEscape(eventID), nil, eventPayload{
		Title:       in.Title,
		Description: in.Description,
		StartTime:   in.StartTime,
		Location:    in.Location,
		Category:    in.Category,
	}, &out, callOpts{})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminCounts returns the dashboard headline numbers.
func (c *Client) AdminCounts(ctx context.Context) (*model.Counts, error) {
	var out model.Counts
	if err := c.get(ctx, "/api/admin/analytics/counts", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminPopularEvents ranks events by RSVP count.
func (c *Client) AdminPopularEvents(ctx context.Context, limit int) ([]model.PopularEvent, error) {
	var out []model.PopularEvent
	if err := c.get(ctx, "/api/admin/analytics/popular-events", limitParams(limit), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminRecentActivity returns the latest audit entries.
func (c *Client) AdminRecentActivity(ctx context.Context, limit int) ([]model.ActivityRecord, error) {
	var out []model.ActivityRecord
	if err := c.get(ctx, "/api/admin/analytics/recent-activity", limitParams(limit), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminOrganizerLeaderboard ranks organizers by events and RSVPs.
func (c *Client) AdminOrganizerLeaderboard(ctx context.Context, limit int) ([]model.OrganizerStats, error) {
	var out []model.OrganizerStats
	if err := c.get(ctx, "/api/admin/analytics/organizer-leaderboard", limitParams(limit), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func limitParams(limit int) url.Values {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	return params
}
