package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/purah/compendium/cache"
	"github.com/purah/compendium/filter"
	"github.com/purah/compendium/hyrule"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the compendium with a filter expression",
	Long: `Search every compendium entry with an expr filter expression.

Expressions see the flattened entry fields (Name, Category, Drops, Attack,
HeartsRecovered, Food, ...) plus helpers like hasDrop("ruby"),
foundIn("hebra") and contains(Name, "lynel"). Examples:

  compendium search -f 'Category == "equipment" and Attack > 40'
  compendium search -f 'hasDrop("ruby") and foundIn("hebra")'
  compendium search -f 'Food and HeartsRecovered >= 2'`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	searchCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	searchCmd.Flags().BoolVar(&refresh, "refresh", false, "refetch the compendium instead of using the cache")
	searchCmd.Flags().BoolVar(&masterMode, "master", false, "include master mode monsters")
}

func runSearch(cmd *cobra.Command, args []string) error {
	expr, err := getFilterExpression()
	if err != nil {
		return err
	}

	logger.Info().Str("filter", expr).Msg("Searching compendium")

	filterFunc, err := filter.ParseAndCreateFilter(expr)
	if err != nil {
		return fmt.Errorf("invalid filter expression: %w", err)
	}

	ctx := context.Background()
	all, master, err := loadCompendium(ctx, refresh)
	if err != nil {
		return err
	}

	infos := filter.FromAllEntries(all)
	if masterMode {
		infos = append(infos, filter.FromMasterModeEntries(master)...)
	}

	var matches []filter.EntryInfo
	for _, info := range infos {
		if filterFunc(info) {
			matches = append(matches, info)
		}
	}

	if len(matches) == 0 {
		fmt.Println("No entries found matching the filter criteria.")
		return nil
	}

	fmt.Printf("\nFound %d entries:\n", len(matches))
	fmt.Println(strings.Repeat("-", 60))
	for _, m := range matches {
		fmt.Printf("• %3d  %s (%s)", m.ID, m.Name, m.Category)
		if m.MasterMode {
			fmt.Printf(" [MASTER MODE]")
		}
		if m.Food {
			fmt.Printf(" [FOOD]")
		}
		fmt.Println()
	}

	return nil
}

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Refresh the local compendium snapshot",
	Long: `Fetch every category from the API (concurrently) and store the result
in the local cache so that search works offline.`,
	RunE: runSync,
}

func runSync(cmd *cobra.Command, args []string) error {
	if !cfg.Cache.Enabled {
		return fmt.Errorf("cache is disabled in the configuration")
	}

	ctx := context.Background()
	all, master, err := fetchCompendium(ctx)
	if err != nil {
		return err
	}

	store, err := cache.Open(cfg.Cache.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SaveSnapshot(all, master); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	logger.Info().
		Int("entries", all.Count()).
		Int("master_mode", len(master)).
		Str("path", cfg.Cache.Path).
		Msg("Compendium snapshot saved")

	fmt.Printf("Synced %d entries (+%d master mode monsters) to %s\n",
		all.Count(), len(master), cfg.Cache.Path)
	return nil
}

// fetchCompendium pulls the full compendium from the API.
func fetchCompendium(ctx context.Context) (*hyrule.AllEntries, []hyrule.MonsterEntry, error) {
	all, err := client.AllCategories(ctx)
	if err != nil {
		return nil, nil, err
	}
	master, err := client.AllMasterModeEntries(ctx)
	if err != nil {
		return nil, nil, err
	}
	return all, master, nil
}

// loadCompendium returns the full compendium, preferring a fresh-enough
// cached snapshot unless forceRefresh is set.
func loadCompendium(ctx context.Context, forceRefresh bool) (*hyrule.AllEntries, []hyrule.MonsterEntry, error) {
	if !cfg.Cache.Enabled {
		return fetchCompendium(ctx)
	}

	store, err := cache.Open(cfg.Cache.Path)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to open cache, fetching live")
		return fetchCompendium(ctx)
	}
	defer store.Close()

	if !forceRefresh && !store.Stale(cfg.Cache.MaxAge) {
		all, master, err := store.LoadSnapshot()
		if err == nil {
			logger.Debug().Int("entries", all.Count()).Msg("Loaded compendium from cache")
			return all, master, nil
		}
		if !errors.Is(err, cache.ErrEmpty) {
			logger.Warn().Err(err).Msg("Failed to load cached snapshot, fetching live")
		}
	}

	all, master, err := fetchCompendium(ctx)
	if err != nil {
		return nil, nil, err
	}
	if err := store.SaveSnapshot(all, master); err != nil {
		logger.Warn().Err(err).Msg("Failed to save snapshot")
	}
	return all, master, nil
}

// getFilterExpression determines the filter expression to use
func getFilterExpression() (string, error) {
	// Priority: command line filter > preset > default
	if filterExpr != "" {
		return filterExpr, nil
	}

	if preset != "" {
		if presetFilter, ok := cfg.Search.Presets[preset]; ok {
			return presetFilter, nil
		}
		return "", fmt.Errorf("preset '%s' not found in config", preset)
	}

	if cfg.Search.DefaultExpression != "" {
		return cfg.Search.DefaultExpression, nil
	}

	return "", fmt.Errorf("no filter expression specified")
}
