package cmd

import (
	"context"
	"fmt"

	"github.com/anazmuhdd/jarvis-acsia/internal/config"
	"github.com/spf13/cobra"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Print the news queries generated for your profile",
	Long: `Ask the AI agent (or, in direct mode, the static configuration) for the
search queries your feed would be built from, without launching the dashboard.

Useful for checking what the agent makes of your job title before you commit
to staring at the result for a whole day.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		topics, _ := newsSources(cfg)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.AgentTimeout())
		defer cancel()

		queries, err := topics.Topics(ctx, profileFromConfig(cfg))
		if err != nil {
			return fmt.Errorf("generating topics: %w", err)
		}
		if len(queries) == 0 {
			fmt.Println("No topics for this profile.")
			return nil
		}
		for _, q := range queries {
			fmt.Println(q)
		}
		return nil
	},
}
