package cmd

import (
	"fmt"

	"github.com/anazmuhdd/jarvis-acsia/internal/config"
	"github.com/anazmuhdd/jarvis-acsia/internal/newscache"
	"github.com/anazmuhdd/jarvis-acsia/internal/store"
	"github.com/spf13/cobra"
)

var flagClearAll bool

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and clear the local feed cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show feed cache statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		dbPath := config.CachePath()
		db, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer db.Close()

		count, size, err := db.Stats()
		if err != nil {
			return fmt.Errorf("reading stats: %w", err)
		}
		feeds, err := db.Keys(newscache.Prefix())
		if err != nil {
			return fmt.Errorf("listing cached feeds: %w", err)
		}

		fmt.Printf("Cache: %s\n", dbPath)
		fmt.Printf("Records: %d\n", count)
		fmt.Printf("Size: %s\n", formatBytes(size))
		fmt.Printf("Cached feeds: %d\n", len(feeds))

		left := newscache.New(db).RemainingMinutes(profileFromConfig(cfg).Key())
		if left > 0 {
			fmt.Printf("Current profile: fresh for another %dm\n", left)
		} else {
			fmt.Println("Current profile: no fresh feed cached")
		}
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [user-key]",
	Short: "Drop the cached feed so the next launch refetches",
	Long: `Delete the cached feed for the current profile and force a fresh fetch
on the next dashboard launch.

Other profiles sharing this machine keep their entries unless --all is given
or their user key is named explicitly.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.Open(config.CachePath())
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer db.Close()

		if flagClearAll {
			keys, err := db.Keys(newscache.Prefix())
			if err != nil {
				return fmt.Errorf("listing cached feeds: %w", err)
			}
			for _, k := range keys {
				if err := db.Delete(k); err != nil {
					return fmt.Errorf("clearing: %w", err)
				}
			}
			fmt.Printf("Cleared %d cached feed(s).\n", len(keys))
			return nil
		}

		if len(args) == 1 {
			newscache.New(db).Clear(args[0])
			fmt.Printf("Cleared the cached feed for %s.\n", args[0])
			return nil
		}

		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		newscache.New(db).Clear(profileFromConfig(cfg).Key())
		fmt.Println("Cleared the cached feed for the current profile.")
		return nil
	},
}

func init() {
	cacheClearCmd.Flags().BoolVar(&flagClearAll, "all", false, "clear cached feeds for every profile, not just the current one")

	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
