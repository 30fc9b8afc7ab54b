package feed

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/anazmuhdd/jarvis-acsia/internal/identity"
	"github.com/anazmuhdd/jarvis-acsia/internal/newscache"
	"github.com/mmcdole/gofeed"
)

// StaticTopics is the TopicSource for direct mode, where no agent
// service exists to generate queries. Configured queries win; otherwise
// a small set is derived from the profile's role.
type StaticTopics struct {
	Queries []string
}

func (s StaticTopics) Topics(ctx context.Context, profile identity.Profile) ([]string, error) {
	if len(s.Queries) > 0 {
		return s.Queries, nil
	}
	if role := strings.TrimSpace(profile.JobTitle); role != "" {
		return []string{role + " technology trends", "AI development", "engineering best practices"}, nil
	}
	return []string{"technology"}, nil
}

const googleNewsSearch = "https://news.google.com/rss/search"

// DirectFetcher pulls articles straight from Google News RSS, one feed
// per query, bypassing the news backend entirely.
type DirectFetcher struct {
	parser   *gofeed.Parser
	baseURL  string
	perQuery int
	logger   *slog.Logger
}

type DirectOption func(*DirectFetcher)

func WithDirectLogger(logger *slog.Logger) DirectOption {
	return func(f *DirectFetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithSearchBaseURL points the fetcher at a different RSS search
// endpoint, such as a regional mirror.
func WithSearchBaseURL(u string) DirectOption {
	return func(f *DirectFetcher) {
		if u != "" {
			f.baseURL = u
		}
	}
}

func NewDirectFetcher(perQuery int, opts ...DirectOption) *DirectFetcher {
	f := &DirectFetcher{
		parser:   gofeed.NewParser(),
		baseURL:  googleNewsSearch,
		perQuery: perQuery,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// News fetches every query in parallel and merges the results in query
// order before deduplication, so the earliest query wins ties. Failed
// queries are logged and skipped; only a total wipeout is an error.
func (f *DirectFetcher) News(ctx context.Context, queries []string, role string) ([]newscache.Article, error) {
	slots := make([][]newscache.Article, len(queries))
	errs := make([]error, len(queries))

	var wg sync.WaitGroup
	for i, q := range queries {
		wg.Add(1)
		go func(i int, q string) {
			defer wg.Done()
			slots[i], errs[i] = f.fetchQuery(ctx, q)
		}(i, q)
	}
	wg.Wait()

	var merged []newscache.Article
	var firstErr error
	for i := range queries {
		if errs[i] != nil {
			f.logger.Warn("query fetch failed", "query", queries[i], "error", errs[i])
			if firstErr == nil {
				firstErr = errs[i]
			}
			continue
		}
		merged = append(merged, slots[i]...)
	}
	if len(merged) == 0 && firstErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnreachable, firstErr)
	}

	merged = DedupeByURL(merged)
	SortNewestFirst(merged)
	return merged, nil
}

func (f *DirectFetcher) fetchQuery(ctx context.Context, query string) ([]newscache.Article, error) {
	feed, err := f.parser.ParseURLWithContext(f.searchURL(query), ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching %q: %w", query, err)
	}

	articles := make([]newscache.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		articles = append(articles, itemArticle(item))
	}
	SortNewestFirst(articles)
	if f.perQuery > 0 && len(articles) > f.perQuery {
		articles = articles[:f.perQuery]
	}
	return articles, nil
}

func (f *DirectFetcher) searchURL(query string) string {
	return f.baseURL + "?q=" + url.QueryEscape(query) + "&hl=en-US&gl=US&ceid=US:en"
}

func itemArticle(item *gofeed.Item) newscache.Article {
	title, source := splitSource(item.Title)
	return newscache.Article{
		Title:       title,
		Description: clip(stripHTML(item.Description), 150),
		URL:         item.Link,
		Source:      newscache.Source{Name: source},
		PublishedAt: item.Published,
	}
}

// splitSource separates the publisher suffix Google News appends to
// headlines. "Headline - Publisher" yields ("Headline", "Publisher");
// untagged headlines keep their title and fall back to "Global News".
func splitSource(title string) (string, string) {
	parts := strings.Split(title, " - ")
	if len(parts) < 2 {
		return title, "Global News"
	}
	return strings.Join(parts[:len(parts)-1], " - "), parts[len(parts)-1]
}

// clip shortens s to n runes. The ellipsis is appended unconditionally,
// matching the feed as clients have always rendered it.
func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		s = string(runes[:n])
	}
	return s + "..."
}

func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
