package api

import "context"

// Ping checks that the backend is reachable and reports itself healthy.
// The health endpoint is public, so this works without a session and is a
// quick way to diagnose connectivity before blaming credentials.
func (c *Client) Ping(ctx context.Context) error {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.get(ctx, "/actuator/health", nil, &out); err != nil {
		return err
	}
	if out.Status != "UP" {
		return &APIError{msg: "Backend reports status " + out.Status}
	}
	return nil
}
