package feed

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anazmuhdd/jarvis-acsia/internal/identity"
)

func TestTopicsClient(t *testing.T) {
	var gotBody topicsRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/generate-topics" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		json.NewEncoder(w).Encode(topicsResponse{Queries: []string{"golang concurrency", "sqlite tuning"}})
	}))
	defer srv.Close()

	c := NewTopicsClient(srv.URL, 5*time.Second)
	profile := identity.Profile{JobTitle: "Backend Engineer", Department: "Platform"}

	got, err := c.Topics(context.Background(), profile)
	if err != nil {
		t.Fatalf("Topics: %v", err)
	}
	if len(got) != 2 || got[0] != "golang concurrency" {
		t.Errorf("unexpected queries %v", got)
	}
	if gotBody.JobTitle != "Backend Engineer" || gotBody.Department != "Platform" {
		t.Errorf("request carried %+v", gotBody)
	}
}

func TestTopicsClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewTopicsClient(srv.URL, 5*time.Second)
	_, err := c.Topics(context.Background(), identity.Profile{})
	if !errors.Is(err, ErrAgentUnreachable) {
		t.Fatalf("expected ErrAgentUnreachable, got %v", err)
	}
}

func TestTopicsClientConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewTopicsClient(srv.URL, time.Second)
	_, err := c.Topics(context.Background(), identity.Profile{})
	if !errors.Is(err, ErrAgentUnreachable) {
		t.Fatalf("expected ErrAgentUnreachable, got %v", err)
	}
}

func TestNewsClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/news" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if q := r.URL.Query().Get("q"); q != "ai agents,vector databases" {
			t.Errorf("unexpected q param %q", q)
		}
		if role := r.URL.Query().Get("role"); role != "Data Engineer" {
			t.Errorf("unexpected role param %q", role)
		}
		w.Write([]byte(`{"articles": [
			{"title": "Story", "description": "Body...", "url": "https://example.com/s",
			 "source": {"name": "Example"}, "publishedAt": "Mon, 02 Jun 2025 10:00:00 GMT"}
		]}`))
	}))
	defer srv.Close()

	c := NewNewsClient(srv.URL, 5*time.Second)
	got, err := c.News(context.Background(), []string{"ai agents", "vector databases"}, "Data Engineer")
	if err != nil {
		t.Fatalf("News: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 article, got %d", len(got))
	}
	if got[0].Title != "Story" || got[0].Source.Name != "Example" {
		t.Errorf("unexpected article %+v", got[0])
	}
	if got[0].PublishedAt != "Mon, 02 Jun 2025 10:00:00 GMT" {
		t.Errorf("publishedAt should round-trip verbatim, got %q", got[0].PublishedAt)
	}
}

func TestNewsClientOmitsEmptyRole(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.URL.Query()["role"]; ok {
			t.Error("role param should be absent for guests")
		}
		w.Write([]byte(`{"articles": []}`))
	}))
	defer srv.Close()

	c := NewNewsClient(srv.URL, 5*time.Second)
	if _, err := c.News(context.Background(), []string{"technology"}, ""); err != nil {
		t.Fatalf("News: %v", err)
	}
}

func TestNewsClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream timeout", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewNewsClient(srv.URL, 5*time.Second)
	_, err := c.News(context.Background(), []string{"technology"}, "")
	if !errors.Is(err, ErrBackendUnreachable) {
		t.Fatalf("expected ErrBackendUnreachable, got %v", err)
	}
}

func TestNewsClientConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewNewsClient(srv.URL, time.Second)
	_, err := c.News(context.Background(), []string{"technology"}, "")
	if !errors.Is(err, ErrBackendUnreachable) {
		t.Fatalf("expected ErrBackendUnreachable, got %v", err)
	}
}
