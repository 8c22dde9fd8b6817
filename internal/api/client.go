package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/torvik/campus-events-client/internal/config"
	"github.com/torvik/campus-events-client/internal/session"
)

// Client talks to one backend on behalf of one session.  It owns no cache
// and no retry logic; callers that want staleness control layer the cache
// package on top.
type Client struct {
	base  string
	http  *http.Client
	store *session.Store
}

// New builds a Client from configuration and an opened session store.
func New(cfg config.Config, store *session.Store) *Client {
	return &Client{
		base:  strings.TrimRight(cfg.BaseURL, "/"),
		http:  &http.Client{Timeout: cfg.HTTPTimeout},
		store: store,
	}
}

// Store exposes the session so callers can inspect auth state and decoded
// identity without reaching around the client.
func (c *Client) Store() *session.Store { return c.store }

// BaseURL returns the API base, used when resolving backend-relative photo
// URLs.
func (c *Client) BaseURL() string { return c.base }

// callOpts tweaks a single request.  The zero value suits most calls.
type callOpts struct {
	unauthMsg string // overrides the default 401 message
	extraOK   []int  // non-2xx statuses to treat as success (e.g. 404 on cancel)
}

// call is the one request path every JSON operation funnels through.  It
// attaches the bearer token when a session exists, JSON-encodes body (when
// non-nil), and decodes the response into out (when non-nil and the
// response has content).  Failures always come back as *APIError.
func (c *Client) call(ctx context.Context, method, path string, query url.Values, body, out any, opts callOpts) error {
	var payload *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return decodeError(err)
		}
		payload = bytes.NewReader(raw)
	} else {
		payload = bytes.NewReader(nil)
	}

	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, payload)
	if err != nil {
		return netError(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.store.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return netError(err)
	}
	defer res.Body.Close()

	if !accepted(res.StatusCode, opts.extraOK) {
		return newAPIError(res, opts.unauthMsg)
	}
	if out == nil || res.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return decodeError(err)
	}
	return nil
}

func accepted(status int, extra []int) bool {
	if status >= 200 && status < 300 {
		return true
	}
	for _, s := range extra {
		if status == s {
			return true
		}
	}
	return false
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.call(ctx, http.MethodGet, path, query, nil, out, callOpts{})
}

// decodeJSON decodes a successful response body, converting parse failures
// into the gateway's uniform error shape.
func decodeJSON(r io.Reader, out any) error {
	if err := json.NewDecoder(r).Decode(out); err != nil {
		return decodeError(err)
	}
	return nil
}
