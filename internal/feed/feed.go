package feed

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/anazmuhdd/jarvis-acsia/internal/identity"
	"github.com/anazmuhdd/jarvis-acsia/internal/newscache"
)

// Sentinel errors let the view tell the two outage banners apart.
var (
	ErrBackendUnreachable = errors.New("news backend unreachable")
	ErrAgentUnreachable   = errors.New("AI backend unreachable")
)

// TopicSource produces the search queries that drive a profile's feed.
type TopicSource interface {
	Topics(ctx context.Context, profile identity.Profile) ([]string, error)
}

// NewsSource turns queries into articles.
type NewsSource interface {
	News(ctx context.Context, queries []string, role string) ([]newscache.Article, error)
}

// DedupeByURL keeps the first article for each URL, preserving order.
// The URL is an article's identity; the same story reached through two
// queries is one story.
func DedupeByURL(articles []newscache.Article) []newscache.Article {
	seen := make(map[string]bool, len(articles))
	out := make([]newscache.Article, 0, len(articles))
	for _, a := range articles {
		if seen[a.URL] {
			continue
		}
		seen[a.URL] = true
		out = append(out, a)
	}
	return out
}

// SortNewestFirst orders articles by publication time, newest first.
// Articles with unparsable dates sink to the end. The sort is stable so
// equal stamps keep their incoming order.
func SortNewestFirst(articles []newscache.Article) {
	key := func(a newscache.Article) time.Time {
		t, ok := a.PublishedTime()
		if !ok {
			return time.Time{}
		}
		return t
	}
	sort.SliceStable(articles, func(i, j int) bool {
		return key(articles[i]).After(key(articles[j]))
	})
}
