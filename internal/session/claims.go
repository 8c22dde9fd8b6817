package session

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is what the client believes about the current user, decoded
// from the bearer token without verifying the signature.  It is advisory
// only: it gates which controls the UI shows, never what the server
// allows.  A missing or malformed token yields a zero Identity ("no
// identity"), not an error.
type Identity struct {
	Authed bool   // a token is present
	Email  string // lowercased "sub" claim
	Role   string // uppercased "role" claim: STUDENT, ORGANIZER or ADMIN
}

// IsAdmin reports whether the advisory role is ADMIN.
func (id Identity) IsAdmin() bool { return id.Role == "ADMIN" }

// IsStudent reports whether the advisory role is STUDENT.
func (id Identity) IsStudent() bool { return id.Role == "STUDENT" }

// Identity decodes the stored token's claims.
func (s *Store) Identity() Identity {
	return decodeIdentity(s.Token())
}

// decodeIdentity extracts the email and role claims from a JWT without
// signature verification.  The token was issued by the server and is only
// echoed back to it; the client has no secret to verify with and must not
// pretend the decode is an authorization decision.
func decodeIdentity(token string) Identity {
	if token == "" {
		return Identity{}
	}
	id := Identity{Authed: true}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return id
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return id
	}
	if sub, ok := claims["sub"].(string); ok {
		id.Email = strings.ToLower(sub)
	}
	if role, ok := claims["role"].(string); ok {
		id.Role = strings.ToUpper(role)
	}
	return id
}
