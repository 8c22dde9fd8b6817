// Package api wraps the backend's REST surface in typed Go calls.  Every
// operation issues exactly one HTTP request and either returns parsed data
// or an error whose message is ready to show a user.  No structured error
// codes cross this boundary, nothing is retried, and requests are not
// deduplicated: a failure is surfaced to the caller and that is all.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
)

// ErrNoAttendees is returned by ExportAttendees when the server answers
// 204: the event exists but nobody has RSVP'd, so there is no file.
var ErrNoAttendees = errors.New("No attendees to export")

// APIError is the single failure type the gateway produces for non-2xx
// responses.  Error() is the user-facing message; the HTTP status is kept
// only so tests and the gateway itself can branch on it.
type APIError struct {
	status int
	msg    string
}

func (e *APIError) Error() string { return e.msg }

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// newAPIError turns an HTTP error response into an APIError.  The body is
// mined for a JSON "error" or "message" field; HTML error pages are
// stripped to their text.  Well-known statuses then override the message
// with a friendlier one, with unauthMsg letting individual calls customize
// the 401 text (e.g. login says "Invalid email or password.").
func newAPIError(res *http.Response, unauthMsg string) *APIError {
	msg := fmt.Sprintf("HTTP %d", res.StatusCode)

	body, err := io.ReadAll(io.LimitReader(res.Body, 64<<10))
	if err == nil && len(body) > 0 {
		if strings.Contains(res.Header.Get("Content-Type"), "application/json") {
			var parsed struct {
				Error   string `json:"error"`
				Message string `json:"message"`
			}
			if json.Unmarshal(body, &parsed) == nil && (parsed.Error != "" || parsed.Message != "") {
				if parsed.Error != "" {
					msg = parsed.Error
				} else {
					msg = parsed.Message
				}
			} else {
				msg = string(body)
			}
		} else if t := strings.TrimSpace(tagPattern.ReplaceAllString(string(body), "")); t != "" {
			msg = t
		}
	}

	switch res.StatusCode {
	case http.StatusUnauthorized:
		if unauthMsg != "" {
			msg = unauthMsg
		} else {
			msg = "You need to be logged in to do that."
		}
	case http.StatusForbidden:
		msg = "You don't have permission for that."
	case http.StatusConflict:
		msg = "Conflict. Please refresh and try again."
	case http.StatusBadRequest:
		msg = "Please check your input."
	case http.StatusUnprocessableEntity:
		msg = "Not eligible yet (event may not have ended)."
	}

	return &APIError{status: res.StatusCode, msg: msg}
}

// netError wraps transport failures (DNS, refused connection, timeout) in
// the same user-ready form as HTTP errors.
func netError(err error) *APIError {
	return &APIError{msg: fmt.Sprintf("Network error: %v", err)}
}

// decodeError covers a 2xx response whose body could not be parsed.
func decodeError(err error) *APIError {
	return &APIError{msg: fmt.Sprintf("Unexpected response from server: %v", err)}
}
