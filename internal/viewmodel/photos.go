package viewmodel

import (
	"context"
	"errors"

	"github.com/torvik/campus-events-client/internal/cache"
)

var (
	errLoginToUpload = errors.New("Please login to upload photos.")
	errCannotManage  = errors.New("Only the organizer or an admin can upload photos.")
)

// SelectFiles records candidate upload paths.  Validation happens at
// upload time, mirroring the order the web form applied.
func (d *EventDetail) SelectFiles(paths ...string) {
	d.files = append([]string(nil), paths...)
}

// SelectedFiles returns the current candidate paths.
func (d *EventDetail) SelectedFiles() []string { return d.files }

// UploadPhotos validates every selected file (JPEG/PNG by sniffed content,
// at most 10 MiB each) and uploads them in one request.  Any violation
// blocks the whole submission before a network call.  Success clears the
// selection and refreshes the gallery partition; edit mode is untouched.
func (d *EventDetail) UploadPhotos(ctx context.Context) error {
	if !d.client.Store().Authed() {
		return errLoginToUpload
	}
	if !d.Permissions().CanManagePhotos {
		return errCannotManage
	}
	if len(d.files) == 0 {
		return nil
	}
	if err := validateFiles(d.files); err != nil {
		return err
	}
	if _, err := d.client.UploadPhotos(ctx, d.eventID, d.files); err != nil {
		return err
	}
	d.files = nil
	d.cache.ApplyMutation(cache.PhotoUpload, d.eventID, false)
	return d.Load(ctx)
}

// DeletePhoto removes one photo from the gallery.  Edit mode is
// untouched; only the gallery partition refreshes.
func (d *EventDetail) DeletePhoto(ctx context.Context, photoID string) error {
	if !d.Permissions().CanManagePhotos {
		return errCannotManage
	}
	if err := d.client.DeletePhoto(ctx, photoID); err != nil {
		return err
	}
	d.cache.ApplyMutation(cache.PhotoDelete, d.eventID, false)
	return d.Load(ctx)
}

// ----- lightbox -----

// LightboxIndex returns the open photo index, -1 when closed.
func (d *EventDetail) LightboxIndex() int { return d.lightbox }

// LightboxOpen reports whether the lightbox is showing.
func (d *EventDetail) LightboxOpen() bool { return d.lightbox >= 0 }

// OpenLightbox shows the photo at idx.  Out-of-range indexes are ignored.
func (d *EventDetail) OpenLightbox(idx int) {
	if idx >= 0 && idx < len(d.photos) {
		d.lightbox = idx
	}
}

// CloseLightbox returns to the closed state.
func (d *EventDetail) CloseLightbox() { d.lightbox = -1 }

// NextPhoto advances with wrap-around; a no-op when closed or empty.
func (d *EventDetail) NextPhoto() {
	if d.lightbox < 0 || len(d.photos) == 0 {
		return
	}
	d.lightbox = (d.lightbox + 1) % len(d.photos)
}

// PrevPhoto steps back with wrap-around; a no-op when closed or empty.
func (d *EventDetail) PrevPhoto() {
	if d.lightbox < 0 || len(d.photos) == 0 {
		return
	}
	d.lightbox = (d.lightbox - 1 + len(d.photos)) % len(d.photos)
}
