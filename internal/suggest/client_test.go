package suggest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSuggestionsParsesSecondElement(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("client") != "firefox" {
			t.Errorf("client = %q", q.Get("client"))
		}
		if q.Get("q") != "go t" {
			t.Errorf("q = %q", q.Get("q"))
		}
		fmt.Fprint(w, `["go t",["go tutorial","go testing","go tooling"],[],{"google:suggesttype":["QUERY","QUERY","QUERY"]}]`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	got, err := c.Suggestions(context.Background(), "go t")
	if err != nil {
		t.Fatalf("Suggestions: %v", err)
	}
	if len(got) != 3 || got[0] != "go tutorial" {
		t.Errorf("got %v", got)
	}
}

func TestSuggestionsEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `["zzzz",[]]`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	got, err := c.Suggestions(context.Background(), "zzzz")
	if err != nil {
		t.Fatalf("Suggestions: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want none", got)
	}
}

func TestSuggestionsMalformedPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"too short", `["only"]`},
		{"wrong element type", `["q", 42]`},
		{"not an array", `{"q": []}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			c := NewClient(srv.URL)
			if _, err := c.Suggestions(context.Background(), "q"); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSuggestionsNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if _, err := c.Suggestions(context.Background(), "q"); err == nil {
		t.Error("expected error for 429")
	}
}
