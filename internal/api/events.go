package api

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"github.com/torvik/campus-events-client/internal/model"
)

// EventQuery filters the public events listing.  Zero values are omitted
// from the request.
type EventQuery struct {
	Q        string // free-text search
	Category string // exact category label
	Order    string // "asc" | "desc" by start time
}

// EventInput is the client-side payload for creating or updating an event.
// Callers validate it first (see the viewmodel package); the gateway sends
// it as-is.
type EventInput struct {
	Title       string
	Description string
	StartTime   model.Time
	Location    string
	Category    string
}

type eventPayload struct {
	ID          *string    `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartTime   model.Time `json:"startTime"`
	Location    string     `json:"location"`
	Category    string     `json:"category"`
}

// GetEvents lists visible events, optionally filtered.
func (c *Client) GetEvents(ctx context.Context, q EventQuery) ([]model.Event, error) {
	params := url.Values{}
	if q.Q != "" {
		params.Set("q", q.Q)
	}
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	if q.Order != "" {
		params.Set("order", q.Order)
	}
	var out []model.Event
	if err := c.get(ctx, "/api/events", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetEvent fetches one event by id.
func (c *Client) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	var out model.Event
	if err := c.get(ctx, "/api/events/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateEvent submits a new event.  The server assigns the id and sets the
// approval status to PENDING.
func (c *Client) CreateEvent(ctx context.Context, in EventInput) (*model.Event, error) {
	var out model.Event
	err := c.call(ctx, http.MethodPost, "/api/events", nil, eventPayload{
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

// UpdateEvent replaces an event's editable fields.
func (c *Client) UpdateEvent(ctx context.Context, id string, in EventInput) (*model.Event, error) {
	var out model.Event
	err := c.call(ctx, http.MethodPut, "/api/events/"+url.PathEscape(id), nil, eventPayload{
		ID:          &id,
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

// DeleteEvent removes an event.  The server answers 204.
func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/api/events/"+url.PathEscape(id), nil, nil, nil, callOpts{})
}

// ListCategories derives the category set from the events listing; there
// is no dedicated endpoint.  Distinct labels, sorted.
func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	events, err := c.GetEvents(ctx, EventQuery{})
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(events))
	var cats []string
	for _, e := range events {
		if e.Category != "" && !seen[e.Category] {
			seen[e.Category] = true
			cats = append(cats, e.Category)
		}
	}
	sort.Strings(cats)
	return cats, nil
}

// GetUpcomingEvents returns the next events by start time.
func (c *Client) GetUpcomingEvents(ctx context.Context, limit int) ([]model.Event, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	var out []model.Event
	if err := c.get(ctx, "/api/events/upcoming", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetRecommendedEvents asks for recommendations keyed by the decoded email
// claim.  Without an identity there is nothing to recommend and no request
// is made.
func (c *Client) GetRecommendedEvents(ctx context.Context) ([]model.Event, error) {
	email := c.store.Identity().Email
	if email == "" {
		return []model.Event{}, nil
	}
	params := url.Values{}
	params.Set("email", email)
	var out []model.Event
	if err := c.get(ctx, "/api/events/recommended", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}
