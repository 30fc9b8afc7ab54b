package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/anazmuhdd/jarvis-acsia/internal/briefing"
	"github.com/anazmuhdd/jarvis-acsia/internal/config"
	"github.com/anazmuhdd/jarvis-acsia/internal/feed"
	"github.com/anazmuhdd/jarvis-acsia/internal/newscache"
	"github.com/anazmuhdd/jarvis-acsia/internal/store"
	"github.com/anazmuhdd/jarvis-acsia/internal/tasks"
	"github.com/spf13/cobra"
)

var briefCmd = &cobra.Command{
	Use:   "brief",
	Short: "Print today's briefing and exit",
	Long: `Render the same feed and task snapshot the dashboard shows, as plain
text. Handy for scripts, pagers, and terminals too narrow for the TUI.`,
	RunE: func(cmd *cobra.Command, args []string) error {
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
		topics, news := newsSources(cfg)
		orch := feed.NewOrchestrator(topics, news, newscache.New(db))

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		load := orch.Load
		if flagRefresh {
			load = orch.Refresh
		}
		result, err := load(ctx, profile)
		if err != nil {
			return fmt.Errorf("loading feed: %w", err)
		}

		var todos []tasks.Item
		if cfg.GraphEnabled() {
			source := tasks.NewClient(cfg.Graph.BaseURL, cfg.GraphToken(), cfg.Profile.AccountID)
			lists, err := source.Lists(ctx)
			if err != nil {
				fmt.Fprintf(os.Stderr, "  [warn] listing task lists: %v\n", err)
			} else {
				res := tasks.NewCollector(source).Collect(ctx, lists)
				for _, e := range res.Errors {
					fmt.Fprintf(os.Stderr, "  [warn] %v\n", e)
				}
				todos = res.Items
			}
		}

		b := briefing.Build(result, todos, profile, time.Now())
		fmt.Print(b.Render())
		return nil
	},
}

func init() {
	briefCmd.Flags().BoolVar(&flagRefresh, "refresh", false, "drop the cached feed and fetch live")
}
