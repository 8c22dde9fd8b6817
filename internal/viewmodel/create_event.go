package viewmodel

import (
	"context"
	"errors"
	"time"

	"github.com/torvik/campus-events-client/internal/api"
	"github.com/torvik/campus-events-client/internal/cache"
	"github.com/torvik/campus-events-client/internal/model"
)

var (
	errLoginToCreate    = errors.New("Please login to create events.")
	errStudentsNoCreate = errors.New("Only event organizers can create events. Students can view and RSVP to events.")
)

// CreateEvent drives the create form: role gating, the same local
// validation as the edit form, optional initial photos, and the
// invalidations that make the new event appear in dependent views.
type CreateEvent struct {
	client *api.Client
	cache  *cache.Cache

	Form             EventForm
	CategoryMode     CategoryMode
	SelectedCategory string
	NewCategory      string
	Files            []string

	now func() time.Time
}

// NewCreateEvent builds the controller.  Gate() should be consulted
// before rendering any form fields.
func NewCreateEvent(client *api.Client, c *cache.Cache) *CreateEvent {
	return &CreateEvent{
		client:       client,
		cache:        c,
		CategoryMode: CategoryExisting,
		now:          time.Now,
	}
}

// Gate decides whether the caller may see the form at all: no session
// means a login prompt, a STUDENT role means a restriction notice.  Both
// are surfaced as errors so no form fields (and no submit path) exist for
// those callers.
func (f *CreateEvent) Gate() error {
	if !f.client.Store().Authed() {
		return errLoginToCreate
	}
	if f.client.Store().Identity().Role == model.RoleStudent {
		return errStudentsNoCreate
	}
	return nil
}

// Submit validates locally, creates the event, uploads any selected
// photos to the new event, and invalidates the listing and category
// partitions.  It returns the created event so the caller can navigate
// to its detail view.
func (f *CreateEvent) Submit(ctx context.Context) (*model.Event, error) {
	if err := f.Gate(); err != nil {
		return nil, err
	}
	f.Form.Category = resolveCategory(f.CategoryMode, f.SelectedCategory, f.NewCategory)
	start, err := validateForm(f.Form, f.now())
	if err != nil {
		return nil, err
	}
	if err := validateFiles(f.Files); err != nil {
		return nil, err
	}

	created, err := f.client.CreateEvent(ctx, api.EventInput{
		Title:       f.Form.Title,
		Description: f.Form.Description,
		StartTime:   start,
		Location:    f.Form.Location,
		Category:    f.Form.Category,
	})
	if err != nil {
		return nil, err
	}
	if len(f.Files) > 0 {
		if _, err := f.client.UploadPhotos(ctx, created.ID, f.Files); err != nil {
			return created, err
		}
		f.cache.ApplyMutation(cache.PhotoUpload, created.ID, false)
	}
	f.cache.Invalidate(cache.Events, cache.Categories)
	return created, nil
}
