package briefing

import (
	"strings"
	"testing"
	"time"

	"github.com/anazmuhdd/jarvis-acsia/internal/feed"
	"github.com/anazmuhdd/jarvis-acsia/internal/identity"
	"github.com/anazmuhdd/jarvis-acsia/internal/newscache"
	"github.com/anazmuhdd/jarvis-acsia/internal/tasks"
)

func TestGreeting(t *testing.T) {
	tests := []struct {
		hour     int
		expected string
	}{
		{8, "Good morning"},
		{14, "Good afternoon"},
		{20, "Good evening"},
		{0, "Good morning"},
		{11, "Good morning"},
		{12, "Good afternoon"},
		{17, "Good afternoon"},
		{18, "Good evening"},
	}

	for _, tt := range tests {
		now := time.Date(2026, 1, 1, tt.hour, 0, 0, 0, time.Local)
		got := greeting(now)
		if got != tt.expected {
			t.Errorf("hour %d: expected %q, got %q", tt.hour, tt.expected, got)
		}
	}
}

func TestActiveSources(t *testing.T) {
	articles := []newscache.Article{
		{Source: newscache.Source{Name: "TechCrunch"}},
		{Source: newscache.Source{Name: "TechCrunch"}},
		{Source: newscache.Source{Name: "TechCrunch"}},
		{Source: newscache.Source{Name: "The Verge"}},
		{Source: newscache.Source{Name: "The Verge"}},
		{Source: newscache.Source{Name: "Wired"}},
	}

	got := activeSources(articles)
	if !strings.HasPrefix(got, "TechCrunch (3)") {
		t.Errorf("expected TechCrunch first, got %q", got)
	}
	if !strings.Contains(got, "The Verge (2)") {
		t.Errorf("expected The Verge (2) in result, got %q", got)
	}
}

func TestActiveSourcesLimitedToThree(t *testing.T) {
	articles := []newscache.Article{
		{Source: newscache.Source{Name: "A"}},
		{Source: newscache.Source{Name: "B"}},
		{Source: newscache.Source{Name: "C"}},
		{Source: newscache.Source{Name: "D"}},
	}

	got := activeSources(articles)
	parts := strings.Split(got, ", ")
	if len(parts) > 3 {
		t.Errorf("expected at most 3 sources, got %d: %q", len(parts), got)
	}
}

func TestTokenize(t *testing.T) {
	tokens := tokenize("Building DNS in Rust for improved performance!")
	found := map[string]bool{}
	for _, tok := range tokens {
		found[tok] = true
	}
	if !found["building"] {
		t.Error("expected 'building' in tokens")
	}
	if !found["rust"] {
		t.Error("expected 'rust' in tokens")
	}
	if found["dns"] {
		t.Error("'dns' should be filtered (< 4 chars)")
	}
	if found["for"] {
		t.Error("'for' should be filtered (stop word)")
	}
}

func TestTrending(t *testing.T) {
	articles := []newscache.Article{
		{Title: "Kubernetes release brings faster scheduling"},
		{Title: "Scaling Kubernetes clusters past a thousand nodes"},
		{Title: "Payment processing at scale"},
	}

	got := trending(articles)
	if !strings.Contains(got, "kubernetes") {
		t.Errorf("expected 'kubernetes' in trending, got %q", got)
	}
	if strings.Contains(got, "payment") {
		t.Errorf("single-occurrence term should be dropped, got %q", got)
	}
}

func TestTrendingEmpty(t *testing.T) {
	if got := trending(nil); got != "" {
		t.Errorf("expected empty trending for no articles, got %q", got)
	}
	// Every term appears once: below the repeat threshold.
	if got := trending([]newscache.Article{{Title: "Completely unique words here"}}); got != "" {
		t.Errorf("expected empty trending without repeats, got %q", got)
	}
}

func TestEstimateReadTime(t *testing.T) {
	// 100 words * 3 / 200 = 1.5 → 1
	short := estimateReadTime(nWords(100))
	if short != 1 {
		t.Errorf("expected 1 min for 100 words, got %d", short)
	}

	// 500 words * 3 / 200 = 7.5 → 7
	long := estimateReadTime(nWords(500))
	if long < 5 {
		t.Errorf("expected >= 5 min for 500 words, got %d", long)
	}

	// Empty
	empty := estimateReadTime("")
	if empty != 1 {
		t.Errorf("expected min 1 for empty, got %d", empty)
	}
}

func TestDescriptionExcerpt(t *testing.T) {
	got := DescriptionExcerpt("This is a complete sentence about infrastructure. And more text follows.")
	if !strings.HasSuffix(got, ".") {
		t.Errorf("expected excerpt to end with period, got %q", got)
	}

	got = DescriptionExcerpt("")
	if got != "" {
		t.Errorf("expected empty for empty input, got %q", got)
	}
}

func TestBuildKeepsResultOrder(t *testing.T) {
	result := feed.LoadResult{
		Articles: []newscache.Article{
			{Title: "First", URL: "https://a.example/1"},
			{Title: "Second", URL: "https://a.example/2"},
		},
		Topics:    []string{"go", "rust"},
		FromCache: true,
	}
	profile := identity.Profile{DisplayName: "Ada"}

	b := Build(result, nil, profile, time.Date(2026, 1, 1, 9, 0, 0, 0, time.Local))
	if len(b.Cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(b.Cards))
	}
	if b.Cards[0].Article.Title != "First" || b.Cards[1].Article.Title != "Second" {
		t.Errorf("cards reordered: %q then %q", b.Cards[0].Article.Title, b.Cards[1].Article.Title)
	}
	if b.Cards[0].Index != 1 || b.Cards[1].Index != 2 {
		t.Errorf("expected 1-based indexes, got %d and %d", b.Cards[0].Index, b.Cards[1].Index)
	}
	if b.Greeting != "Good morning, Ada." {
		t.Errorf("unexpected greeting %q", b.Greeting)
	}
	if !b.FromCache {
		t.Error("expected FromCache carried over")
	}
}

func TestBuildGuestGreeting(t *testing.T) {
	b := Build(feed.LoadResult{}, nil, identity.Profile{}, time.Date(2026, 1, 1, 20, 0, 0, 0, time.Local))
	if b.Greeting != "Good evening, stranger." {
		t.Errorf("unexpected greeting %q", b.Greeting)
	}
}

func TestRenderSections(t *testing.T) {
	result := feed.LoadResult{
		Articles: []newscache.Article{
			{
				Title:       "Kubernetes release brings faster scheduling",
				Description: "The scheduler got a rewrite. Benchmarks show big wins.",
				URL:         "https://example.com/k8s",
				Source:      newscache.Source{Name: "TechCrunch"},
			},
		},
		Topics: []string{"kubernetes"},
	}
	todos := []tasks.Item{
		{Title: "Ship report", ListName: "Tasks", Done: true},
		{Title: "Buy milk"},
	}

	b := Build(result, todos, identity.Profile{DisplayName: "Ada"}, time.Date(2026, 1, 1, 9, 0, 0, 0, time.Local))
	out := b.Render()

	for _, want := range []string{
		"(live)",
		"Topics:   kubernetes",
		"TechCrunch",
		"https://example.com/k8s",
		"The scheduler got a rewrite.",
		"Tasks (1/2 done):",
		"[x] Ship report (Tasks)",
		"[ ] Buy milk (personal)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderNoTopics(t *testing.T) {
	b := Build(feed.LoadResult{NoTopics: true}, nil, identity.Profile{}, time.Now())
	out := b.Render()
	if !strings.Contains(out, "No stories for this profile today.") {
		t.Errorf("expected no-stories line, got:\n%s", out)
	}
	if strings.Contains(out, "Tasks (") {
		t.Errorf("expected no task section without tasks, got:\n%s", out)
	}
}

func nWords(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = "word"
	}
	return strings.Join(words, " ")
}
