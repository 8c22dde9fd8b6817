// Package auth derives UI-side capability flags from the advisory
// identity and the event being viewed.  One pure function owns the whole
// matrix so it can be tested without any HTTP or rendering machinery.
// These flags decide which controls appear; the server independently
// enforces every rule, so a stale or forged flag only produces a 403.
package auth

import (
	"strings"

	"github.com/torvik/campus-events-client/internal/model"
	"github.com/torvik/campus-events-client/internal/session"
)

// Permissions are the capability flags the event detail view consumes.
type Permissions struct {
	CanEdit         bool // show the edit form toggle
	CanDelete       bool // show the delete action
	CanManagePhotos bool // allow gallery upload/delete
	CanExport       bool // allow attendee CSV export
}

// PermissionsFor evaluates the matrix for one user against one event:
// admins can do everything; organizers can manage the events they own
// (matched by email, case-insensitively); students can do none of these.
func PermissionsFor(id session.Identity, ev *model.Event) Permissions {
	owner := isOwner(id, ev)
	admin := id.Role == model.RoleAdmin
	elevated := id.Role != "" && id.Role != model.RoleStudent

	return Permissions{
		CanEdit:         id.Authed && elevated && (admin || owner),
		CanDelete:       id.Authed && elevated && (admin || owner),
		CanManagePhotos: elevated && (admin || owner),
		CanExport:       admin || owner,
	}
}

func isOwner(id session.Identity, ev *model.Event) bool {
	if ev == nil || !id.Authed || id.Email == "" || ev.OrganizerEmail == "" {
		return false
	}
	return strings.EqualFold(id.Email, ev.OrganizerEmail)
}
