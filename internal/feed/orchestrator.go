package feed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anazmuhdd/jarvis-acsia/internal/identity"
	"github.com/anazmuhdd/jarvis-acsia/internal/newscache"
)

// LoadResult is one resolved feed, ready for display.
type LoadResult struct {
	Key       string
	Articles  []newscache.Article
	Topics    []string
	FromCache bool

	// NoTopics marks the empty-but-healthy state: topic generation
	// succeeded and produced nothing, so no news was fetched.
	NoTopics bool
}

// Orchestrator drives the cache-first feed pipeline: serve a valid
// cache entry when one exists, otherwise generate topics, fetch news,
// and cache whatever came back.
type Orchestrator struct {
	topics TopicSource
	news   NewsSource
	cache  *newscache.Cache
	logger *slog.Logger
}

type OrchestratorOption func(*Orchestrator)

func WithOrchestratorLogger(logger *slog.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func NewOrchestrator(topics TopicSource, news NewsSource, cache *newscache.Cache, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		topics: topics,
		news:   news,
		cache:  cache,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Load resolves the feed for a profile. A cache entry with articles
// short-circuits the whole pipeline; an entry that exists but holds
// none is treated as a miss. Only the network stages can fail.
func (o *Orchestrator) Load(ctx context.Context, profile identity.Profile) (LoadResult, error) {
	key := profile.Key()

	if entry, ok := o.cache.Read(key); ok && len(entry.Articles) > 0 {
		o.logger.Debug("serving cached feed", "key", key, "articles", len(entry.Articles))
		return LoadResult{
			Key:       key,
			Articles:  entry.Articles,
			Topics:    entry.Topics,
			FromCache: true,
		}, nil
	}

	queries, err := o.topics.Topics(ctx, profile)
	if err != nil {
		return LoadResult{Key: key}, fmt.Errorf("generating topics: %w", err)
	}
	if len(queries) == 0 {
		return LoadResult{Key: key, NoTopics: true}, nil
	}

	articles, err := o.news.News(ctx, queries, profile.JobTitle)
	if err != nil {
		return LoadResult{Key: key}, fmt.Errorf("fetching news: %w", err)
	}

	articles = DedupeByURL(articles)
	if len(articles) > 0 {
		o.cache.Write(key, articles, queries)
	}
	return LoadResult{Key: key, Articles: articles, Topics: queries}, nil
}

// Refresh discards the profile's cache entry and loads from the
// network.
func (o *Orchestrator) Refresh(ctx context.Context, profile identity.Profile) (LoadResult, error) {
	o.cache.Clear(profile.Key())
	return o.Load(ctx, profile)
}

// Remaining reports whole minutes of cache validity left for a profile,
// for the status line.
func (o *Orchestrator) Remaining(profile identity.Profile) int {
	return o.cache.RemainingMinutes(profile.Key())
}
