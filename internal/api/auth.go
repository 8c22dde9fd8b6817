package api

import (
	"context"
	"net/http"

	"github.com/torvik/campus-events-client/internal/model"
)

// ----- request/response shapes -----

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"` // STUDENT | ORGANIZER
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is what register and login both return.
type AuthResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Register creates an account and, on success, persists the returned token
// plus identity hints so the new session is immediately usable.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var out AuthResponse
	err := c.call(ctx, http.MethodPost, "/api/auth/register", nil, req, &out,
		callOpts{unauthMsg: "Please check your details."})
	if err != nil {
		return nil, err
	}
	if err := c.store.SetAuth(out.Token, out.User.ID, out.User.Role, out.User.Name); err != nil {
		return nil, &APIError{msg: "Could not save session: " + err.Error()}
	}
	return &out, nil
}

// Login authenticates and persists the token and user hints.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	err := c.call(ctx, http.MethodPost, "/api/auth/login", nil,
		loginRequest{Email: email, Password: password}, &out,
		callOpts{unauthMsg: "Invalid email or password."})
	if err != nil {
		return nil, err
	}
	if err := c.store.SetAuth(out.Token, out.User.ID, out.User.Role, out.User.Name); err != nil {
		return nil, &APIError{msg: "Could not save session: " + err.Error()}
	}
	return &out, nil
}

// Logout clears the persisted session.  Purely local: the backend keeps no
// server-side session to tear down.
func (c *Client) Logout() error {
	return c.store.Clear()
}

// Me returns the server's view of the authenticated user.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var out model.User
	if err := c.get(ctx, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
