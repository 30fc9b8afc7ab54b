package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/anazmuhdd/jarvis-acsia/internal/appstate"
	"github.com/anazmuhdd/jarvis-acsia/internal/config"
	"github.com/anazmuhdd/jarvis-acsia/internal/feed"
	"github.com/anazmuhdd/jarvis-acsia/internal/identity"
	"github.com/anazmuhdd/jarvis-acsia/internal/newscache"
	"github.com/anazmuhdd/jarvis-acsia/internal/store"
	"github.com/anazmuhdd/jarvis-acsia/internal/suggest"
	"github.com/anazmuhdd/jarvis-acsia/internal/tasks"
	"github.com/anazmuhdd/jarvis-acsia/internal/tui"
	"github.com/spf13/cobra"
)

func runDashboard(cmd *cobra.Command, args []string) error {
	closeLogs := setupLogging()
	defer closeLogs()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := store.Open(config.CachePath())
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}
	defer db.Close()

	profile := profileFromConfig(cfg)
	state := appstate.New(profile)

	topics, news := newsSources(cfg)
	orch := feed.NewOrchestrator(topics, news, newscache.New(db))

	// Without a Graph token the task pane runs local-only: no source, no
	// collector, and a nil remote so the mutator confirms edits on the spot.
	var (
		source    *tasks.Client
		collector *tasks.Collector
		remote    tasks.Remote
	)
	if cfg.GraphEnabled() {
		source = tasks.NewClient(cfg.Graph.BaseURL, cfg.GraphToken(), cfg.Profile.AccountID)
		collector = tasks.NewCollector(source)
		remote = source
	}
	mutator := tasks.NewMutator(remote, state, tasks.WithListNames(cfg.TaskListNames()))

	return tui.Run(tui.RunOpts{
		Cfg:          cfg,
		State:        state,
		Orchestrator: orch,
		TaskSource:   source,
		Collector:    collector,
		Mutator:      mutator,
		Suggest:      suggest.NewClient(cfg.Suggest.BaseURL),
		Version:      version,
		Refresh:      flagRefresh,
	})
}

// setupLogging routes slog to a file under the state dir. The TUI owns the
// terminal, so stderr is not an option; if the file cannot be opened the
// logs are dropped rather than painted over the interface.
func setupLogging() func() {
	path := config.LogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return func() {}
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, nil)))
	return func() { f.Close() }
}

func profileFromConfig(cfg *config.Config) identity.Profile {
	return identity.Profile{
		AccountID:   cfg.Profile.AccountID,
		DisplayName: cfg.Profile.DisplayName,
		JobTitle:    cfg.Profile.JobTitle,
		Department:  cfg.Profile.Department,
		Quote:       cfg.Profile.Quote,
	}
}

// newsSources picks the feed providers for the configured news mode. Backend
// mode talks to the Jarvis services; direct mode skips them and reads Google
// News RSS straight from this machine.
func newsSources(cfg *config.Config) (feed.TopicSource, feed.NewsSource) {
	if cfg.News.Mode == "direct" {
		return feed.StaticTopics{Queries: cfg.News.Queries}, feed.NewDirectFetcher(cfg.PerQueryLimit())
	}
	return feed.NewTopicsClient(cfg.Agent.BaseURL, cfg.AgentTimeout()),
		feed.NewNewsClient(cfg.Backend.BaseURL, cfg.BackendTimeout())
}
