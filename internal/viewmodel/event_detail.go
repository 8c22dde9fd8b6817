// Package viewmodel holds the view-state controllers behind the event
// screens: what is loaded, what the user may do, which local validations
// run before a request is issued, and which cache partitions a successful
// mutation dirties.  Rendering is someone else's job; these controllers
// expose state and accept actions, nothing more.
package viewmodel

import (
	"context"
	"strings"
	"time"

	"github.com/torvik/campus-events-client/internal/api"
	"github.com/torvik/campus-events-client/internal/auth"
	"github.com/torvik/campus-events-client/internal/cache"
	"github.com/torvik/campus-events-client/internal/model"
)

// EventDetail drives the detail view of one event: the event snapshot,
// its gallery, the caller's RSVP and feedback, edit mode, and the
// organizer's feedback list.  All reads go through the cache; all
// mutations invalidate through the declarative table and then re-run Load
// so dependent state refreshes without a full "page" reload.
//
// Nothing serializes two in-flight mutations against the same resource;
// the last response to land wins.
type EventDetail struct {
	client  *api.Client
	cache   *cache.Cache
	eventID string
	now     func() time.Time

	event         *model.Event
	photos        []model.Photo
	categories    []string
	myRsvps       []model.Rsvp
	myFeedback    *model.Feedback
	eventFeedback []model.Feedback

	editing          bool
	form             EventForm
	categoryMode     CategoryMode
	selectedCategory string
	newCategory      string

	files    []string // candidate upload paths
	lightbox int      // index into photos, -1 = closed
}

// NewEventDetail builds a controller for one event id.  The cache is
// shared with other views of the same session so invalidations here are
// seen everywhere.
func NewEventDetail(client *api.Client, c *cache.Cache, eventID string) *EventDetail {
	return &EventDetail{
		client:   client,
		cache:    c,
		eventID:  eventID,
		now:      time.Now,
		lightbox: -1,
	}
}

// Load fetches every partition the view depends on, serving from cache
// where a value is present.  Conditional partitions follow the auth
// state: RSVPs and feedback need a session, the organizer feedback list
// only loads for the organizer.
func (d *EventDetail) Load(ctx context.Context) error {
	if err := d.loadEvent(ctx); err != nil {
		return err
	}
	if err := d.loadPhotos(ctx); err != nil {
		return err
	}
	if err := d.loadCategories(ctx); err != nil {
		return err
	}
	if d.client.Store().Authed() {
		if err := d.loadMyRsvps(ctx); err != nil {
			return err
		}
		if err := d.loadMyFeedback(ctx); err != nil {
			return err
		}
	}
	if d.isOrganizer() {
		if err := d.loadEventFeedback(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (d *EventDetail) loadEvent(ctx context.Context) error {
	key := cache.EventKey(d.eventID)
	if v, ok := d.cache.Get(key); ok {
		d.event = v.(*model.Event)
		return nil
	}
	ev, err := d.client.GetEvent(ctx, d.eventID)
	if err != nil {
		return err
	}
	d.cache.Put(key, ev)
	d.event = ev
	return nil
}

func (d *EventDetail) loadPhotos(ctx context.Context) error {
	key := cache.PhotosKey(d.eventID)
	if v, ok := d.cache.Get(key); ok {
		d.photos = v.([]model.Photo)
		return nil
	}
	photos, err := d.client.ListPhotos(ctx, d.eventID)
	if err != nil {
		return err
	}
	d.cache.Put(key, photos)
	d.photos = photos
	return nil
}

func (d *EventDetail) loadCategories(ctx context.Context) error {
	if v, ok := d.cache.Get(cache.Categories); ok {
		d.categories = v.([]string)
		return nil
	}
	cats, err := d.client.ListCategories(ctx)
	if err != nil {
		return err
	}
	d.cache.Put(cache.Categories, cats)
	d.categories = cats
	return nil
}

func (d *EventDetail) loadMyRsvps(ctx context.Context) error {
	if v, ok := d.cache.Get(cache.MyRsvps); ok {
		d.myRsvps = v.([]model.Rsvp)
		return nil
	}
	rsvps, err := d.client.GetMyRsvps(ctx)
	if err != nil {
		return err
	}
	d.cache.Put(cache.MyRsvps, rsvps)
	d.myRsvps = rsvps
	return nil
}

func (d *EventDetail) loadMyFeedback(ctx context.Context) error {
	key := cache.MyFeedbackKey(d.eventID)
	if v, ok := d.cache.Get(key); ok {
		d.myFeedback, _ = v.(*model.Feedback)
		return nil
	}
	fb, err := d.client.GetMyFeedback(ctx, d.eventID)
	if err != nil {
		return err
	}
	d.cache.Put(key, fb)
	d.myFeedback = fb
	return nil
}

func (d *EventDetail) loadEventFeedback(ctx context.Context) error {
	key := cache.EventFeedbackKey(d.eventID)
	if v, ok := d.cache.Get(key); ok {
		d.eventFeedback = v.([]model.Feedback)
		return nil
	}
	fbs, err := d.client.ListEventFeedback(ctx, d.eventID)
	if err != nil {
		return err
	}
	d.cache.Put(key, fbs)
	d.eventFeedback = fbs
	return nil
}

// ----- read accessors -----

func (d *EventDetail) Event() *model.Event             { return d.event }
func (d *EventDetail) Photos() []model.Photo           { return d.photos }
func (d *EventDetail) Categories() []string            { return d.categories }
func (d *EventDetail) MyFeedback() *model.Feedback     { return d.myFeedback }
func (d *EventDetail) EventFeedback() []model.Feedback { return d.eventFeedback }
func (d *EventDetail) Editing() bool                   { return d.editing }

// MyRsvp returns the caller's RSVP for this event, nil when none.
func (d *EventDetail) MyRsvp() *model.Rsvp {
	for i := range d.myRsvps {
		if d.myRsvps[i].EventID == d.eventID {
			return &d.myRsvps[i]
		}
	}
	return nil
}

// MyStatus is the caller's RSVP status, empty when no RSVP exists.
func (d *EventDetail) MyStatus() string {
	if r := d.MyRsvp(); r != nil {
		return r.Status
	}
	return ""
}

// EventEnded reports whether the start time has passed.  RSVP controls
// close and feedback opens at that boundary.
func (d *EventDetail) EventEnded() bool {
	if d.event == nil || d.event.StartTime.IsZero() {
		return false
	}
	return d.event.StartTime.Before(d.now())
}

// Permissions evaluates the capability matrix for the current identity
// against the loaded event.
func (d *EventDetail) Permissions() auth.Permissions {
	return auth.PermissionsFor(d.client.Store().Identity(), d.event)
}

func (d *EventDetail) isOrganizer() bool {
	id := d.client.Store().Identity()
	if d.event == nil || !id.Authed || id.Email == "" || d.event.OrganizerEmail == "" {
		return false
	}
	return strings.EqualFold(id.Email, d.event.OrganizerEmail)
}

// ShareURL builds the public link for this event on the web frontend.
func (d *EventDetail) ShareURL(frontendBase string) string {
	return strings.TrimRight(frontendBase, "/") + "/events/" + d.eventID
}
