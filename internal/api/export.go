package api

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

// ExportAttendees downloads the attendee list of an event as CSV bytes.
// A 204 from the server means the event has no RSVPs; that surfaces as
// ErrNoAttendees so callers can show "nothing to export" instead of
// writing an empty file.
func (c *Client) ExportAttendees(ctx context.Context, eventID string) ([]byte, error) {
	u := c.base + "/api/events/" + url.PathEscape(eventID) + "/attendees/export"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, netError(err)
	}
	if tok := c.store.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, netError(err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNoContent {
		return nil, ErrNoAttendees
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, newAPIError(res, "")
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, decodeError(err)
	}
	return body, nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// AttendeesFilename derives the download filename from an event title,
// e.g. "Tech Expo 2030!" -> "attendees-tech-expo-2030.csv".
func AttendeesFilename(title string) string {
	slug := nonSlug.ReplaceAllString(strings.ToLower(title), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "event"
	}
	return "attendees-" + slug + ".csv"
}
