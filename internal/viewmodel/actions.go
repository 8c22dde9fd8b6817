package viewmodel

import (
	"context"
	"errors"
	"fmt"

	"github.com/torvik/campus-events-client/internal/api"
	"github.com/torvik/campus-events-client/internal/cache"
	"github.com/torvik/campus-events-client/internal/model"
)

var (
	errLoginToRsvp     = errors.New("Please login to RSVP.")
	errRsvpClosed      = errors.New("Event ended — RSVP closed")
	errFeedbackEarly   = errors.New("Feedback opens after the event.")
	errFeedbackNoRsvp  = errors.New("Only attendees who RSVP'd can leave feedback.")
	errFeedbackStars   = errors.New("Please choose 1–5 stars")
	errFeedbackComment = fmt.Errorf("Comment is too long (max %d characters).", model.MaxFeedbackComment)
	errCannotExport    = errors.New("Only the organizer or an admin can export attendees.")
)

// Rsvp upserts the caller's RSVP as GOING or INTERESTED.  Locally refused
// without a session or after the event has started; otherwise the server
// decides, and success invalidates the RSVP-dependent partitions and
// reloads them.
func (d *EventDetail) Rsvp(ctx context.Context, status string) error {
	if !d.client.Store().Authed() {
		return errLoginToRsvp
	}
	if d.EventEnded() {
		return errRsvpClosed
	}
	if _, err := d.client.RsvpEvent(ctx, d.eventID, status); err != nil {
		return err
	}
	d.cache.ApplyMutation(cache.RsvpUpsert, d.eventID, false)
	return d.Load(ctx)
}

// CancelRsvp removes the caller's RSVP.  Cancelling when none exists is a
// no-op end to end (the gateway treats the server's 404 as success), so
// the same invalidation and reload run either way.
func (d *EventDetail) CancelRsvp(ctx context.Context) error {
	if !d.client.Store().Authed() {
		return errLoginToRsvp
	}
	if d.EventEnded() {
		return errRsvpClosed
	}
	if err := d.client.CancelRsvpByEvent(ctx, d.eventID); err != nil {
		return err
	}
	d.cache.ApplyMutation(cache.RsvpCancel, d.eventID, false)
	return d.Load(ctx)
}

// Delete removes the event.  On success the events list and category set
// are invalidated and ErrDeleted tells the caller to navigate away; this
// controller's event is gone.
var ErrDeleted = errors.New("event deleted")

func (d *EventDetail) Delete(ctx context.Context) error {
	if !d.client.Store().Authed() {
		return errLoginToDelete
	}
	if !d.Permissions().CanDelete {
		return errCannotDelete
	}
	if err := d.client.DeleteEvent(ctx, d.eventID); err != nil {
		return err
	}
	d.cache.ApplyMutation(cache.EventDelete, d.eventID, false)
	return ErrDeleted
}

// SubmitFeedback upserts a rating and optional comment.  Local rules
// first: must be logged in, the event must have ended, the caller must
// hold an RSVP, the rating must be 1..5 and the comment within limit.
// Success invalidates the caller's feedback partition, plus the
// organizer's list when the caller is the organizer, since nobody else
// ever loads it.
func (d *EventDetail) SubmitFeedback(ctx context.Context, rating int, comment string) error {
	if !d.client.Store().Authed() {
		return errLoginToRsvp
	}
	if !d.EventEnded() {
		return errFeedbackEarly
	}
	if d.MyRsvp() == nil {
		return errFeedbackNoRsvp
	}
	if rating < 1 || rating > 5 {
		return errFeedbackStars
	}
	if len([]rune(comment)) > model.MaxFeedbackComment {
		return errFeedbackComment
	}
	if _, err := d.client.CreateOrUpdateFeedback(ctx, d.eventID, rating, comment); err != nil {
		return err
	}
	d.cache.ApplyMutation(cache.FeedbackUpsert, d.eventID, d.isOrganizer())
	return d.Load(ctx)
}

// ExportAttendees downloads the attendee CSV and suggests a filename.
// api.ErrNoAttendees passes through untouched so the caller can show
// "nothing to export".
func (d *EventDetail) ExportAttendees(ctx context.Context) (filename string, data []byte, err error) {
	if !d.Permissions().CanExport {
		return "", nil, errCannotExport
	}
	data, err = d.client.ExportAttendees(ctx, d.eventID)
	if err != nil {
		return "", nil, err
	}
	title := ""
	if d.event != nil {
		title = d.event.Title
	}
	return api.AttendeesFilename(title), data, nil
}
