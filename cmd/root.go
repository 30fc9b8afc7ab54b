package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig  string
	flagRefresh bool
)

var rootCmd = &cobra.Command{
	Use:   "jarvis",
	Short: "Personal TUI dashboard for news and tasks",
	Long:  "jarvis is a personal terminal dashboard: AI-curated news for your role on one side, today's Microsoft To Do tasks on the other.",
	RunE:  runDashboard,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.Flags().BoolVar(&flagRefresh, "refresh", false, "drop the cached feed and fetch live on launch")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(briefCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(topicsCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("jarvis %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
