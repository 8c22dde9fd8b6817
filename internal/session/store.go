// Package session owns the client's auth state: a bearer token persisted
// across runs plus the advisory identity decoded from it.  The session is
// an explicit object handed to the API client rather than package-level
// state, so tests can run several independent sessions side by side.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// fileData is the on-disk shape of the session file.  Two token keys are
// written: "authToken" is canonical, "token" is a legacy key older tooling
// read, kept in sync on every save.  UserID, Role and Name are hints saved
// at login so they survive reloads without re-decoding the token.
type fileData struct {
	AuthToken string `json:"authToken,omitempty"`
	Token     string `json:"token,omitempty"`
	UserID    string `json:"userId,omitempty"`
	Role      string `json:"role,omitempty"`
	Name      string `json:"name,omitempty"`
}

// Store loads and persists the session file.  A missing file simply means
// "logged out".  All methods are intended for single-goroutine use; the
// client issues requests from one goroutine, mirroring the UI thread model
// this code replaces.
type Store struct {
	path string
	data fileData
}

// Open reads the session file at path.  The file not existing is not an
// error.  If only the legacy "token" key is populated it is promoted to
// "authToken" in memory; the normalized form is written on the next save.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		// A corrupt session file should not brick the tool; treat it
		// as logged out and let the next login overwrite it.
		s.data = fileData{}
		return s, nil
	}
	if s.data.AuthToken == "" && s.data.Token != "" {
		s.data.AuthToken = s.data.Token
	}
	return s, nil
}

// SetAuth stores a new token together with the identity hints returned by
// login/register, and persists immediately.
func (s *Store) SetAuth(token, userID, role, name string) error {
	s.data = fileData{
		AuthToken: token,
		Token:     token, // legacy key stays in sync
		UserID:    userID,
		Role:      role,
		Name:      name,
	}
	return s.save()
}

// Clear wipes all auth state and persists the empty session.
func (s *Store) Clear() error {
	s.data = fileData{}
	return s.save()
}

// Token returns the current bearer token, empty when logged out.
func (s *Store) Token() string { return s.data.AuthToken }

// Authed reports whether a token is present.  Presence does not imply the
// token is still valid; the server has the final say on every request.
func (s *Store) Authed() bool { return s.data.AuthToken != "" }

// UserID returns the stored user id hint.
func (s *Store) UserID() string { return s.data.UserID }

// Name returns the stored display-name hint.
func (s *Store) Name() string { return s.data.Name }

func (s *Store) save() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o600)
}
