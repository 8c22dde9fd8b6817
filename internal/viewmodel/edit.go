package viewmodel

import (
	"context"
	"errors"

	"github.com/torvik/campus-events-client/internal/api"
	"github.com/torvik/campus-events-client/internal/cache"
)

var (
	errLoginToEdit   = errors.New("Please login to edit events.")
	errCannotEdit    = errors.New("Only the organizer or an admin can edit this event.")
	errLoginToDelete = errors.New("Please login to delete events.")
	errCannotDelete  = errors.New("Only the organizer or an admin can delete this event.")
)

// StartEditing enters edit mode, seeding the form from the loaded event
// snapshot.  The stored instant becomes a local-time input value, and the
// category is classified: mode "existing" with the current label
// pre-selected when it is still in the known set, mode "new" with the
// label pre-filled when it is not (it may have been renamed away), and
// mode "existing" with the first known category otherwise.
func (d *EventDetail) StartEditing() error {
	if !d.client.Store().Authed() {
		return errLoginToEdit
	}
	if !d.Permissions().CanEdit {
		return errCannotEdit
	}
	if d.editing || d.event == nil {
		return nil
	}
	d.editing = true
	d.form = EventForm{
		Title:       d.event.Title,
		Description: d.event.Description,
		DateTime:    d.event.StartTime.Local().Format("2006-01-02T15:04"),
		Location:    d.event.Location,
	}

	current := d.event.Category
	switch {
	case current != "" && contains(d.categories, current):
		d.categoryMode = CategoryExisting
		d.selectedCategory = current
		d.newCategory = ""
	case current != "":
		d.categoryMode = CategoryNew
		d.newCategory = current
		d.selectedCategory = ""
	default:
		d.categoryMode = CategoryExisting
		d.newCategory = ""
		if len(d.categories) > 0 {
			d.selectedCategory = d.categories[0]
		} else {
			d.selectedCategory = ""
		}
	}
	return nil
}

// StopEditing leaves edit mode, discarding unsaved form state.
func (d *EventDetail) StopEditing() {
	d.editing = false
}

// Form exposes the edit form for mutation by the rendering layer.
func (d *EventDetail) Form() *EventForm { return &d.form }

// CategoryMode reports where the category value currently comes from.
func (d *EventDetail) CategoryMode() CategoryMode { return d.categoryMode }

// SelectedCategory returns the picked label in "existing" mode.
func (d *EventDetail) SelectedCategory() string { return d.selectedCategory }

// NewCategory returns the free-typed label in "new" mode.
func (d *EventDetail) NewCategory() string { return d.newCategory }

// UseExistingCategory switches to "existing" mode with the given pick.
func (d *EventDetail) UseExistingCategory(label string) {
	d.categoryMode = CategoryExisting
	d.selectedCategory = label
}

// UseNewCategory switches to "new" mode with the given free text.
func (d *EventDetail) UseNewCategory(label string) {
	d.categoryMode = CategoryNew
	d.newCategory = label
}

// SaveEdit validates the form locally and submits the update.  Any
// validation failure returns before a request is issued.  On success the
// controller leaves edit mode, fires the event-update invalidation and
// re-loads so the view shows fresh data.
func (d *EventDetail) SaveEdit(ctx context.Context) error {
	if !d.client.Store().Authed() {
		return errLoginToEdit
	}
	d.form.Category = resolveCategory(d.categoryMode, d.selectedCategory, d.newCategory)
	start, err := validateForm(d.form, d.now())
	if err != nil {
		return err
	}

	if _, err := d.client.UpdateEvent(ctx, d.eventID, api.EventInput{
		Title:       d.form.Title,
		Description: d.form.Description,
		StartTime:   start,
		Location:    d.form.Location,
		Category:    d.form.Category,
	}); err != nil {
		return err
	}
	d.editing = false
	d.cache.ApplyMutation(cache.EventUpdate, d.eventID, false)
	return d.Load(ctx)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
