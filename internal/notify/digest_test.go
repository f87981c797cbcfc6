package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lojf/regform/internal/models"
)

type listFunc func(ctx context.Context) ([]models.Student, error)

func (f listFunc) List(ctx context.Context) ([]models.Student, error) { return f(ctx) }

func TestDigestText_Window(t *testing.T) {
	to := time.Date(2025, 10, 19, 18, 0, 0, 0, time.UTC)
	from := to.Add(-24 * time.Hour)
	list := []models.Student{
		{ID: "a", Department: "CSE", CreatedAt: to.Add(-time.Hour)},
		{ID: "b", Department: "CSE", CreatedAt: from},
		{ID: "c", Department: "E&C", CreatedAt: to.Add(-2 * time.Hour)},
		// end of the window is open
		{ID: "d", Department: "Civil", CreatedAt: to},
		{ID: "e", Department: "Civil", CreatedAt: from.Add(-time.Minute)},
	}
	got := DigestText(list, from, to)
	if !strings.Contains(got, "<b>3</b>") {
		t.Errorf("total: %q", got)
	}
	if !strings.Contains(got, "\nCSE: 2\nE&amp;C: 1") {
		t.Errorf("departments: %q", got)
	}
	if strings.Contains(got, "Civil") {
		t.Errorf("out-of-window rows counted: %q", got)
	}
}

func TestDueAt(t *testing.T) {
	tick := time.Date(2025, 10, 19, 18, 0, 0, 0, time.UTC)
	if !dueAt(tick, 18, 0) {
		t.Error("18:00 should be due")
	}
	if dueAt(tick.Add(time.Minute), 18, 0) || dueAt(tick, 6, 0) {
		t.Error("unexpected match")
	}
}

func TestSendDigest(t *testing.T) {
	got := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		got <- body["text"].(string)
	}))
	defer srv.Close()

	c := NewClient("tok", 7)
	c.apiURL = srv.URL
	to := time.Date(2025, 10, 19, 18, 0, 0, 0, time.UTC)
	src := listFunc(func(context.Context) ([]models.Student, error) {
		return []models.Student{{ID: "a", Department: "CSE", CreatedAt: to.Add(-time.Hour)}}, nil
	})

	if err := sendDigest(context.Background(), c, src, to); err != nil {
		t.Fatalf("sendDigest: %v", err)
	}
	if text := <-got; !strings.Contains(text, "CSE: 1") {
		t.Errorf("text = %q", text)
	}
}

func TestStartDigestLoop_BadTime(t *testing.T) {
	if err := StartDigestLoop(context.Background(), NewClient("t", 1), nil, "25:99", time.UTC); err == nil {
		t.Fatal("expected error for bad time")
	}
}
