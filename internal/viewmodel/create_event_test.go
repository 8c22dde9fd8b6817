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

func newCreateForm(t *testing.T, h http.Handler, claims jwt.MapClaims) (*CreateEvent, *cache.Cache) {
	t.Helper()
	srv := httptest.NewServer(h)
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
	return NewCreateEvent(client, c), c
}

func TestCreateGate(t *testing.T) {
	f, _ := newCreateForm(t, echo.New(), nil)
	if err := f.Gate(); err != errLoginToCreate {
		t.Fatalf("anonymous gate: %v", err)
	}

	f2, _ := newCreateForm(t, echo.New(), studentClaims)
	if err := f2.Gate(); err != errStudentsNoCreate {
		t.Fatalf("student gate: %v", err)
	}

	f3, _ := newCreateForm(t, echo.New(), organizerClaims)
	if err := f3.Gate(); err != nil {
		t.Fatalf("organizer gate: %v", err)
	}
}

func TestCreateSubmit(t *testing.T) {
	posts := 0
	e := echo.New()
	e.POST("/api/events", func(c echo.Context) error {
		posts++
		var p struct {
			ID       *string `json:"id"`
			Title    string  `json:"title"`
			Category string  `json:"category"`
		}
		if err := c.Bind(&p); err != nil || p.ID != nil {
			return c.NoContent(http.StatusBadRequest)
		}
		return c.JSON(http.StatusOK, model.Event{
			ID: "ev-new", Title: p.Title, Category: p.Category,
			ApprovalStatus: model.ApprovalPending,
		})
	})
	f, c := newCreateForm(t, e, organizerClaims)

	// Seed the partitions a listing view would have warmed.
	c.Put(cache.Events, []model.Event{})
	c.Put(cache.Categories, []string{"Music"})

	f.Form = EventForm{
		Title:    "Robotics Demo",
		DateTime: time.Now().Add(time.Hour).Format("2006-01-02T15:04"),
		Location: "Lab 2",
	}
	f.CategoryMode = CategoryNew
	f.NewCategory = "  Robotics "

	created, err := f.Submit(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if posts != 1 || created.ID != "ev-new" {
		t.Fatalf("posts=%d created=%+v", posts, created)
	}
	if created.Category != "Robotics" {
		t.Fatalf("category should be trimmed, got %q", created.Category)
	}
	if _, ok := c.Get(cache.Events); ok {
		t.Fatal("events listing should be invalidated")
	}
	if _, ok := c.Get(cache.Categories); ok {
		t.Fatal("category set should be invalidated")
	}
}

func TestCreateSubmitRejectsPastDate(t *testing.T) {
	posts := 0
	e := echo.New()
	e.POST("/api/events", func(c echo.Context) error {
		posts++
		return c.NoContent(http.StatusOK)
	})
	f, _ := newCreateForm(t, e, organizerClaims)

	f.Form = EventForm{
		Title:    "Yesterday's News",
		DateTime: time.Now().Add(-time.Hour).Format("2006-01-02T15:04"),
		Location: "Quad",
	}
	f.CategoryMode = CategoryExisting
	f.SelectedCategory = "Music"

	if _, err := f.Submit(context.Background()); err != errPastDateTime {
		t.Fatalf("past date: %v", err)
	}
	if posts != 0 {
		t.Fatal("a locally refused create must not reach the server")
	}
}
