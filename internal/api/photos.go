package api

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/torvik/campus-events-client/internal/model"
)

// ListPhotos returns the gallery of one event.
func (c *Client) ListPhotos(ctx context.Context, eventID string) ([]model.Photo, error) {
	var out []model.Photo
	if err := c.get(ctx, "/api/events/"+url.PathEscape(eventID)+"/photos", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UploadPhotos sends the files at the given paths as one multipart request
// under the "files" field.  The bearer token is attached but no JSON
// content negotiation happens; the body is multipart/form-data.  Callers
// are expected to have validated type and size already (the viewmodel
// does); the gateway only sniffs each file's MIME type so the part header
// is accurate.
func (c *Client) UploadPhotos(ctx context.Context, eventID string, paths []string) ([]model.Photo, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		for _, p := range paths {
			if err := writeFilePart(mw, p); err != nil {
				pw.CloseWithError(err)
				return
			}
		}
		pw.CloseWithError(mw.Close())
	}()

	u := c.base + "/api/events/" + url.PathEscape(eventID) + "/photos"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, pr)
	if err != nil {
		return nil, netError(err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if tok := c.store.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, netError(err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, newAPIError(res, "")
	}

	var out []model.Photo
	if err := decodeJSON(res.Body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeletePhoto removes one photo.  204 from the server is the normal case.
func (c *Client) DeletePhoto(ctx context.Context, photoID string) error {
	return c.call(ctx, http.MethodDelete, "/api/photos/"+url.PathEscape(photoID), nil, nil, nil, callOpts{})
}

// PhotoURL resolves a photo's backend-relative URL against the API base.
func (c *Client) PhotoURL(p model.Photo) string {
	if strings.HasPrefix(p.URL, "http://") || strings.HasPrefix(p.URL, "https://") {
		return p.URL
	}
	return c.base + p.URL
}

func writeFilePart(mw *multipart.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		`form-data; name="files"; filename="`+escapeQuotes(filepath.Base(path))+`"`)
	h.Set("Content-Type", mt.String())
	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, f)
	return err
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string { return quoteEscaper.Replace(s) }
