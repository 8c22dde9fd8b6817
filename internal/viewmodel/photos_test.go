package viewmodel

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/torvik/campus-events-client/internal/model"
)

// pngHeader is the magic-number prefix content sniffing keys on.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, data, 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestUploadPhotosRejectsWrongType(t *testing.T) {
	b := &stubBackend{event: futureEvent()}
	d, _ := newDetail(t, b, organizerClaims)
	if err := d.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	// Extension lies; the content is plain text and sniffing catches it.
	d.SelectFiles(writeTemp(t, "notes.png", []byte("just some text")))
	if err := d.UploadPhotos(context.Background()); err != errBadFileType {
		t.Fatalf("text upload: %v", err)
	}
	if b.photoPosts != 0 {
		t.Fatal("a refused upload must not reach the server")
	}
	if len(d.SelectedFiles()) != 1 {
		t.Fatal("failed validation should keep the selection")
	}
}

func TestUploadPhotosRejectsOversize(t *testing.T) {
	b := &stubBackend{event: futureEvent()}
	d, _ := newDetail(t, b, organizerClaims)
	if err := d.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	big := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, model.MaxPhotoBytes)...)
	d.SelectFiles(writeTemp(t, "huge.png", big))
	if err := d.UploadPhotos(context.Background()); err != errFileTooLarge {
		t.Fatalf("oversize upload: %v", err)
	}
	if b.photoPosts != 0 {
		t.Fatal("a refused upload must not reach the server")
	}
}

func TestUploadPhotosSuccess(t *testing.T) {
	b := &stubBackend{event: futureEvent()}
	d, _ := newDetail(t, b, organizerClaims)
	if err := d.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	d.SelectFiles(writeTemp(t, "stage.png", pngHeader))
	if err := d.UploadPhotos(context.Background()); err != nil {
		t.Fatal(err)
	}
	if b.photoPosts != 1 {
		t.Fatalf("photoPosts = %d", b.photoPosts)
	}
	if len(d.SelectedFiles()) != 0 {
		t.Fatal("successful upload should clear the selection")
	}
	if len(d.Photos()) != 1 || d.Photos()[0].OriginalFilename != "stage.png" {
		t.Fatalf("gallery after upload = %+v", d.Photos())
	}
}

func TestUploadPhotosPermissionGuards(t *testing.T) {
	b := &stubBackend{event: futureEvent()}
	d, _ := newDetail(t, b, studentClaims)
	if err := d.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	d.SelectFiles(writeTemp(t, "pic.png", pngHeader))
	if err := d.UploadPhotos(context.Background()); err != errCannotManage {
		t.Fatalf("student upload: %v", err)
	}

	d2, _ := newDetail(t, &stubBackend{event: futureEvent()}, nil)
	d2.SelectFiles("whatever.png")
	if err := d2.UploadPhotos(context.Background()); err != errLoginToUpload {
		t.Fatalf("anonymous upload: %v", err)
	}
}

func TestDeletePhotoRefreshesGallery(t *testing.T) {
	b := &stubBackend{
		event:  futureEvent(),
		photos: []model.Photo{{ID: "p-1"}, {ID: "p-2"}},
	}
	d, _ := newDetail(t, b, organizerClaims)
	if err := d.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	if err := d.DeletePhoto(context.Background(), "p-1"); err != nil {
		t.Fatal(err)
	}
	if len(d.Photos()) != 1 || d.Photos()[0].ID != "p-2" {
		t.Fatalf("gallery after delete = %+v", d.Photos())
	}
	// Only the gallery partition refetches.
	if b.eventGets != 1 {
		t.Fatalf("photo delete refetched the event: %d", b.eventGets)
	}
}
