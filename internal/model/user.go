package model

// Roles a user can hold.  STUDENT accounts can browse and RSVP; ORGANIZER
// accounts additionally create and manage their own events; ADMIN accounts
// moderate everything.
const (
	RoleStudent   = "STUDENT"
	RoleOrganizer = "ORGANIZER"
	RoleAdmin     = "ADMIN"
)

// User is the profile record the backend returns.  Active and Banned are
// moderation flags only admins can change.
type User struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
	Banned bool   `json:"banned"`
}
