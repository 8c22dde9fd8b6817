package viewmodel

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"

	"github.com/torvik/campus-events-client/internal/model"
)

// CategoryMode says where the form's category value comes from: a pick
// from the known set, or free text naming a category that does not exist
// yet (creating one is simply typing a new label).
type CategoryMode string

const (
	CategoryExisting CategoryMode = "existing"
	CategoryNew      CategoryMode = "new"
)

// EventForm holds the editable fields of the create/edit form.  DateTime
// is the local-time input format ("2006-01-02T15:04"), converted to an
// instant only at submit.
type EventForm struct {
	Title       string `validate:"required"`
	Description string
	DateTime    string `validate:"required"`
	Location    string `validate:"required"`
	Category    string `validate:"required"` // resolved from the category mode at submit
}

var formValidator = validator.New()

// Validation messages shown inline.  They never reach a log and no
// request is issued when one fires.
var (
	errMissingFields = errors.New("Please fill Title, Date & Time, Location, and Category.")
	errPastDateTime  = errors.New("Please choose a future date & time.")
	errBadFileType   = errors.New("Only JPEG/PNG allowed.")
	errFileTooLarge  = errors.New("Image too large (max 10MB).")
)

// dateTimeLayouts accepted from the form input.
var dateTimeLayouts = []string{"2006-01-02T15:04", "2006-01-02T15:04:05"}

// validateForm checks the resolved form and returns the event input ready
// for the gateway.  now anchors the strictly-in-the-future rule.
func validateForm(f EventForm, now time.Time) (input model.Time, err error) {
	if err := formValidator.Struct(f); err != nil {
		return model.Time{}, errMissingFields
	}
	var start time.Time
	var parseErr error
	for _, layout := range dateTimeLayouts {
		if start, parseErr = time.ParseInLocation(layout, f.DateTime, time.Local); parseErr == nil {
			break
		}
	}
	if parseErr != nil {
		return model.Time{}, errMissingFields
	}
	if !start.After(now) {
		return model.Time{}, errPastDateTime
	}
	return model.Time{Time: start}, nil
}

// resolveCategory collapses the category mode into the final label.
func resolveCategory(mode CategoryMode, selected, typed string) string {
	if mode == CategoryNew {
		return strings.TrimSpace(typed)
	}
	return strings.TrimSpace(selected)
}

// validateFiles checks every candidate upload before any network call:
// MIME type must be image/jpeg or image/png (sniffed from content, not
// trusted from the extension) and size at most 10 MiB.
func validateFiles(paths []string) error {
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("Cannot read file %q: %v", p, err)
		}
		if info.Size() > model.MaxPhotoBytes {
			return errFileTooLarge
		}
		mt, err := mimetype.DetectFile(p)
		if err != nil {
			return fmt.Errorf("Cannot read file %q: %v", p, err)
		}
		if !model.AllowedPhotoTypes[mt.String()] {
			return errBadFileType
		}
	}
	return nil
}
