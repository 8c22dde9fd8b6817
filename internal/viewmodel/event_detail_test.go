package viewmodel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/torvik/campus-events-client/internal/api"
	"github.com/torvik/campus-events-client/internal/cache"
	"github.com/torvik/campus-events-client/internal/config"
	"github.com/torvik/campus-events-client/internal/model"
	"github.com/torvik/campus-events-client/internal/session"
)

// stubBackend is an in-memory server the controllers talk to.  Counters
// record how often each read endpoint is hit so tests can tell a cache
// hit from a refetch.
type stubBackend struct {
	event      model.Event
	photos     []model.Photo
	rsvps      []model.Rsvp
	myFeedback *model.Feedback
	feedback   []model.Feedback

	eventGets, listGets, photoGets, rsvpGets int
	eventPuts, rsvpPosts, feedbackPosts      int
	photoPosts                               int
}

func (b *stubBackend) handler() http.Handler {
	e := echo.New()
	e.GET("/api/events", func(c echo.Context) error {
		b.listGets++
		return c.JSON(http.StatusOK, []model.Event{b.event})
	})
	e.GET("/api/events/:id", func(c echo.Context) error {
		b.eventGets++
		return c.JSON(http.StatusOK, b.event)
	})
	e.PUT("/api/events/:id", func(c echo.Context) error {
		b.eventPuts++
		var p struct {
			Title       string     `json:"title"`
			Description string     `json:"description"`
			StartTime   model.Time `json:"startTime"`
			Location    string     `json:"location"`
			Category    string     `json:"category"`
		}
		if err := c.Bind(&p); err != nil {
			return c.NoContent(http.StatusBadRequest)
		}
		b.event.Title = p.Title
		b.event.Description = p.Description
		b.event.StartTime = p.StartTime
		b.event.Location = p.Location
		b.event.Category = p.Category
		return c.JSON(http.StatusOK, b.event)
	})
	e.GET("/api/events/:id/photos", func(c echo.Context) error {
		b.photoGets++
		return c.JSON(http.StatusOK, b.photos)
	})
	e.POST("/api/events/:id/photos", func(c echo.Context) error {
		b.photoPosts++
		form, err := c.MultipartForm()
		if err != nil {
			return c.NoContent(http.StatusBadRequest)
		}
		var added []model.Photo
		for _, fh := range form.File["files"] {
			p := model.Photo{
				ID:               fh.Filename,
				EventID:          c.Param("id"),
				ContentType:      fh.Header.Get("Content-Type"),
				SizeBytes:        fh.Size,
				OriginalFilename: fh.Filename,
			}
			b.photos = append(b.photos, p)
			added = append(added, p)
		}
		return c.JSON(http.StatusOK, added)
	})
	e.DELETE("/api/photos/:id", func(c echo.Context) error {
		id := c.Param("id")
		for i := range b.photos {
			if b.photos[i].ID == id {
				b.photos = append(b.photos[:i], b.photos[i+1:]...)
				break
			}
		}
		return c.NoContent(http.StatusNoContent)
	})
	e.GET("/api/rsvps/my", func(c echo.Context) error {
		b.rsvpGets++
		return c.JSON(http.StatusOK, b.rsvps)
	})
	e.POST("/api/rsvps", func(c echo.Context) error {
		b.rsvpPosts++
		var req struct {
			EventID string `json:"eventId"`
			Status  string `json:"status"`
		}
		if err := c.Bind(&req); err != nil {
			return c.NoContent(http.StatusBadRequest)
		}
		for i := range b.rsvps {
			if b.rsvps[i].EventID == req.EventID {
				b.rsvps[i].Status = req.Status
				return c.JSON(http.StatusOK, b.rsvps[i])
			}
		}
		r := model.Rsvp{ID: "r-1", EventID: req.EventID, Status: req.Status}
		b.rsvps = append(b.rsvps, r)
		return c.JSON(http.StatusOK, r)
	})
	e.DELETE("/api/rsvps/by-event/:id", func(c echo.Context) error {
		id := c.Param("id")
		for i := range b.rsvps {
			if b.rsvps[i].EventID == id {
				b.rsvps = append(b.rsvps[:i], b.rsvps[i+1:]...)
				return c.NoContent(http.StatusNoContent)
			}
		}
		return c.NoContent(http.StatusNotFound)
	})
	e.GET("/api/feedback/my", func(c echo.Context) error {
		return c.JSON(http.StatusOK, b.myFeedback)
	})
	e.POST("/api/feedback", func(c echo.Context) error {
		b.feedbackPosts++
		var req struct {
			EventID string `json:"eventId"`
			Rating  int    `json:"rating"`
			Comment string `json:"comment"`
		}
		if err := c.Bind(&req); err != nil {
			return c.NoContent(http.StatusBadRequest)
		}
		b.myFeedback = &model.Feedback{ID: "f-1", EventID: req.EventID, Rating: req.Rating, Comment: req.Comment}
		return c.JSON(http.StatusOK, b.myFeedback)
	})
	e.GET("/api/events/:id/feedback", func(c echo.Context) error {
		return c.JSON(http.StatusOK, b.feedback)
	})
	e.GET("/api/events/:id/attendees/export", func(c echo.Context) error {
		if len(b.rsvps) == 0 {
			return c.NoContent(http.StatusNoContent)
		}
		return c.Blob(http.StatusOK, "text/csv", []byte("name,email\n"))
	})
	return e
}

// newDetail wires a controller to the stub.  claims == nil means an
// anonymous session; otherwise a signed token with those claims is
// stored (the signature is never verified client-side).
func newDetail(t *testing.T, b *stubBackend, claims jwt.MapClaims) (*EventDetail, *cache.Cache) {
	t.Helper()
	srv := httptest.NewServer(b.handler())
	t.Cleanup(srv.Close)

	store, err := session.Open(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	if claims != nil {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		if err != nil {
			t.Fatalf("sign token: %v", err)
		}
		if err := store.SetAuth(tok, "u-1", "", ""); err != nil {
			t.Fatal(err)
		}
	}
	client := api.New(config.Config{BaseURL: srv.URL, HTTPTimeout: 5 * time.Second}, store)
	c := cache.New()
	return NewEventDetail(client, c, b.event.ID), c
}

func futureEvent() model.Event {
	return model.Event{
		ID:             "ev-1",
		Title:          "Open Mic",
		Description:    "Sign up at the door",
		StartTime:      model.Time{Time: time.Now().Add(48 * time.Hour)},
		Location:       "Union Hall",
		Category:       "Music",
		OrganizerEmail: "org@campus.edu",
		ApprovalStatus: model.ApprovalApproved,
	}
}

func pastEvent() model.Event {
	ev := futureEvent()
	ev.StartTime = model.Time{Time: time.Now().Add(-48 * time.Hour)}
	return ev
}

var organizerClaims = jwt.MapClaims{"sub": "org@campus.edu", "role": "ORGANIZER"}
var studentClaims = jwt.MapClaims{"sub": "stu@campus.edu", "role": "STUDENT"}

func TestLoadServesFromCacheOnRepeat(t *testing.T) {
	b := &stubBackend{event: futureEvent()}
	d, _ := newDetail(t, b, nil)

	if err := d.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if d.Event() == nil || d.Event().Title != "Open Mic" {
		t.Fatalf("event = %+v", d.Event())
	}
	if got := d.Categories(); len(got) != 1 || got[0] != "Music" {
		t.Fatalf("categories = %v", got)
	}

	if err := d.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if b.eventGets != 1 || b.photoGets != 1 || b.listGets != 1 {
		t.Fatalf("repeat load refetched: events=%d photos=%d list=%d",
			b.eventGets, b.photoGets, b.listGets)
	}
}

func TestRsvpUpsertRefreshesStatus(t *testing.T) {
	b := &stubBackend{event: futureEvent()}
	d, _ := newDetail(t, b, studentClaims)

	if err := d.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if d.MyStatus() != "" {
		t.Fatalf("fresh load should have no RSVP, got %q", d.MyStatus())
	}

	if err := d.Rsvp(context.Background(), model.RsvpGoing); err != nil {
		t.Fatal(err)
	}
	if d.MyStatus() != model.RsvpGoing {
		t.Fatalf("status after upsert = %q", d.MyStatus())
	}
	// The event and listing partitions refetch, the gallery does not.
	if b.photoGets != 1 {
		t.Fatalf("RSVP invalidated the gallery: photoGets=%d", b.photoGets)
	}
	if b.eventGets != 2 || b.rsvpGets != 2 {
		t.Fatalf("dependent partitions not refetched: events=%d rsvps=%d",
			b.eventGets, b.rsvpGets)
	}

	if err := d.CancelRsvp(context.Background()); err != nil {
		t.Fatal(err)
	}
	if d.MyStatus() != "" {
		t.Fatalf("status after cancel = %q", d.MyStatus())
	}
	// Cancelling again hits the server's 404 and still succeeds.
	if err := d.CancelRsvp(context.Background()); err != nil {
		t.Fatalf("repeat cancel: %v", err)
	}
}

func TestRsvpLocalGuards(t *testing.T) {
	b := &stubBackend{event: futureEvent()}
	d, _ := newDetail(t, b, nil)
	if err := d.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := d.Rsvp(context.Background(), model.RsvpGoing); err != errLoginToRsvp {
		t.Fatalf("anonymous RSVP: %v", err)
	}

	b2 := &stubBackend{event: pastEvent()}
	d2, _ := newDetail(t, b2, studentClaims)
	if err := d2.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := d2.Rsvp(context.Background(), model.RsvpGoing); err != errRsvpClosed {
		t.Fatalf("ended-event RSVP: %v", err)
	}
	if b.rsvpPosts != 0 || b2.rsvpPosts != 0 {
		t.Fatal("a locally refused RSVP must not reach the server")
	}
}

func TestStartEditingSeedsForm(t *testing.T) {
	b := &stubBackend{event: futureEvent()}
	d, _ := newDetail(t, b, organizerClaims)
	if err := d.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	if err := d.StartEditing(); err != nil {
		t.Fatal(err)
	}
	f := d.Form()
	if f.Title != "Open Mic" || f.Location != "Union Hall" {
		t.Fatalf("form = %+v", f)
	}
	wantDT := b.event.StartTime.Local().Format("2006-01-02T15:04")
	if f.DateTime != wantDT {
		t.Fatalf("DateTime = %q, want %q", f.DateTime, wantDT)
	}
	// Category is in the known set, so "existing" mode with it selected.
	if d.CategoryMode() != CategoryExisting || d.SelectedCategory() != "Music" {
		t.Fatalf("mode=%q selected=%q", d.CategoryMode(), d.SelectedCategory())
	}
}

func TestStartEditingUnknownCategoryBecomesNew(t *testing.T) {
	ev := futureEvent()
	ev.Category = "Retired Label"
	b := &stubBackend{event: ev}
	d, _ := newDetail(t, b, organizerClaims)
	if err := d.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	// Pretend the listing no longer carries this label.
	d.categories = []string{"Music", "Tech"}

	if err := d.StartEditing(); err != nil {
		t.Fatal(err)
	}
	if d.CategoryMode() != CategoryNew || d.NewCategory() != "Retired Label" {
		t.Fatalf("mode=%q new=%q", d.CategoryMode(), d.NewCategory())
	}
}

func TestStartEditingDeniedForNonOwner(t *testing.T) {
	b := &stubBackend{event: futureEvent()}
	d, _ := newDetail(t, b, jwt.MapClaims{"sub": "other@campus.edu", "role": "ORGANIZER"})
	if err := d.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := d.StartEditing(); err != errCannotEdit {
		t.Fatalf("non-owner edit: %v", err)
	}

	d2, _ := newDetail(t, &stubBackend{event: futureEvent()}, nil)
	if err := d2.StartEditing(); err != errLoginToEdit {
		t.Fatalf("anonymous edit: %v", err)
	}
}

func TestSaveEditPastDateRejectedLocally(t *testing.T) {
	b := &stubBackend{event: futureEvent()}
	d, _ := newDetail(t, b, organizerClaims)
	if err := d.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := d.StartEditing(); err != nil {
		t.Fatal(err)
	}

	d.Form().DateTime = time.Now().Add(-time.Hour).Format("2006-01-02T15:04")
	if err := d.SaveEdit(context.Background()); err != errPastDateTime {
		t.Fatalf("past date: %v", err)
	}

	d.Form().Title = ""
	d.Form().DateTime = time.Now().Add(time.Hour).Format("2006-01-02T15:04")
	if err := d.SaveEdit(context.Background()); err != errMissingFields {
		t.Fatalf("missing title: %v", err)
	}

	if b.eventPuts != 0 {
		t.Fatal("a locally refused edit must not reach the server")
	}
	if !d.Editing() {
		t.Fatal("failed save should stay in edit mode")
	}
}

func TestSaveEditUpdatesAndReloads(t *testing.T) {
	b := &stubBackend{event: futureEvent()}
	d, _ := newDetail(t, b, organizerClaims)
	if err := d.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := d.StartEditing(); err != nil {
		t.Fatal(err)
	}

	d.Form().Title = "Open Mic Finals"
	d.UseNewCategory("Comedy")
	if err := d.SaveEdit(context.Background()); err != nil {
		t.Fatal(err)
	}
	if d.Editing() {
		t.Fatal("successful save should leave edit mode")
	}
	if b.eventPuts != 1 {
		t.Fatalf("eventPuts = %d", b.eventPuts)
	}
	if d.Event().Title != "Open Mic Finals" || d.Event().Category != "Comedy" {
		t.Fatalf("reloaded event = %+v", d.Event())
	}
	if got := d.Categories(); len(got) != 1 || got[0] != "Comedy" {
		t.Fatalf("category set not refreshed: %v", got)
	}
}

func TestSubmitFeedbackGating(t *testing.T) {
	b := &stubBackend{event: futureEvent()}
	d, _ := newDetail(t, b, studentClaims)
	if err := d.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := d.SubmitFeedback(context.Background(), 5, "great"); err != errFeedbackEarly {
		t.Fatalf("feedback before end: %v", err)
	}

	b2 := &stubBackend{event: pastEvent()}
	d2, _ := newDetail(t, b2, studentClaims)
	if err := d2.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := d2.SubmitFeedback(context.Background(), 5, "great"); err != errFeedbackNoRsvp {
		t.Fatalf("feedback without RSVP: %v", err)
	}

	b2.rsvps = []model.Rsvp{{ID: "r-1", EventID: "ev-1", Status: model.RsvpGoing}}
	d2.cache.Invalidate(cache.MyRsvps)
	if err := d2.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := d2.SubmitFeedback(context.Background(), 0, ""); err != errFeedbackStars {
		t.Fatalf("zero stars: %v", err)
	}
	long := make([]rune, model.MaxFeedbackComment+1)
	for i := range long {
		long[i] = 'x'
	}
	if err := d2.SubmitFeedback(context.Background(), 4, string(long)); err != errFeedbackComment {
		t.Fatalf("oversized comment: %v", err)
	}
	if b2.feedbackPosts != 0 {
		t.Fatal("locally refused feedback must not reach the server")
	}

	if err := d2.SubmitFeedback(context.Background(), 4, "solid event"); err != nil {
		t.Fatal(err)
	}
	if fb := d2.MyFeedback(); fb == nil || fb.Rating != 4 {
		t.Fatalf("feedback after submit = %+v", fb)
	}
}

func TestExportAttendees(t *testing.T) {
	b := &stubBackend{
		event: futureEvent(),
		rsvps: []model.Rsvp{{ID: "r-1", EventID: "ev-1", Status: model.RsvpGoing}},
	}
	d, _ := newDetail(t, b, organizerClaims)
	if err := d.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	name, data, err := d.ExportAttendees(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if name != "attendees-open-mic.csv" {
		t.Fatalf("filename = %q", name)
	}
	if len(data) == 0 {
		t.Fatal("empty CSV body")
	}
}

func TestExportAttendeesDenied(t *testing.T) {
	b := &stubBackend{event: futureEvent()}
	d, _ := newDetail(t, b, studentClaims)
	if err := d.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, _, err := d.ExportAttendees(context.Background()); err != errCannotExport {
		t.Fatalf("student export: %v", err)
	}
}

func TestLightboxNavigation(t *testing.T) {
	b := &stubBackend{
		event: futureEvent(),
		photos: []model.Photo{
			{ID: "p-1"}, {ID: "p-2"}, {ID: "p-3"},
		},
	}
	d, _ := newDetail(t, b, nil)
	if err := d.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	if d.LightboxOpen() {
		t.Fatal("lightbox should start closed")
	}
	d.NextPhoto() // no-op while closed
	if d.LightboxIndex() != -1 {
		t.Fatalf("index = %d after closed Next", d.LightboxIndex())
	}
	d.OpenLightbox(5) // out of range, ignored
	if d.LightboxOpen() {
		t.Fatal("out-of-range open should be ignored")
	}

	d.OpenLightbox(2)
	d.NextPhoto()
	if d.LightboxIndex() != 0 {
		t.Fatalf("Next should wrap to 0, got %d", d.LightboxIndex())
	}
	d.PrevPhoto()
	if d.LightboxIndex() != 2 {
		t.Fatalf("Prev should wrap to 2, got %d", d.LightboxIndex())
	}
	d.CloseLightbox()
	if d.LightboxOpen() {
		t.Fatal("lightbox should close")
	}
}
