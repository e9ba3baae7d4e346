package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/purah/compendium/config"
	"github.com/purah/compendium/hyrule"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *hyrule.Client

	// Command flags
	masterMode bool
	filterExpr string
	preset     string
	refresh    bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "compendium",
	Short: "Look up Breath of the Wild compendium entries from the terminal",
	Long: `compendium is a CLI for the Hyrule Compendium API. It looks up
creatures, monsters, materials, equipment and treasure by id or name,
searches the full compendium with filter expressions, and keeps a local
snapshot so searches work offline.`,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	rootCmd.AddCommand(entryCmd)
	rootCmd.AddCommand(categoryCmd)
	rootCmd.AddCommand(allCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(imageCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(updateCmd)
}

// initializeApp initializes the configuration and the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	client, err = hyrule.NewClient(cfg.API.URL, logger,
		hyrule.WithTimeout(cfg.API.Timeout),
		hyrule.WithUserAgent("compendium/"+version),
	)
	if err != nil {
		return fmt.Errorf("failed to create compendium client: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// parseIdentifier turns a CLI argument into an entry identifier: digits mean
// the compendium id, anything else is a name.
func parseIdentifier(arg string) hyrule.Identifier {
	if id, err := strconv.Atoi(arg); err == nil {
		return hyrule.ByID(id)
	}
	return hyrule.ByName(arg)
}

// entryCmd represents the entry command
var entryCmd = &cobra.Command{
	Use:   "entry <id|name>",
	Short: "Look up a single compendium entry",
	Long: `Look up a single compendium entry by its numeric id or its name.
Names may contain spaces, e.g. "silver moblin".`,
	Args: cobra.ExactArgs(1),
	RunE: runEntry,
}

func init() {
	entryCmd.Flags().BoolVar(&masterMode, "master", false, "look up a master mode monster")
}

func runEntry(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	id := parseIdentifier(args[0])

	var entry hyrule.Entry
	var err error
	if masterMode {
		entry, err = client.MasterModeMonster(ctx, id)
	} else {
		entry, err = client.Entry(ctx, id)
	}
	if err != nil {
		return err
	}

	printEntry(entry)
	return nil
}

// categoryCmd represents the category command
var categoryCmd = &cobra.Command{
	Use:   "category <name>",
	Short: "List every entry in a category",
	Long:  `List every entry in one of the compendium categories: creatures, monsters, materials, equipment or treasure.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCategory,
}

func runCategory(cmd *cobra.Command, args []string) error {
	cat, err := hyrule.ParseCategory(args[0])
	if err != nil {
		return err
	}

	result, err := client.Category(context.Background(), cat)
	if err != nil {
		return err
	}

	fmt.Printf("\n%s (%d entries):\n", cat, result.Count())
	fmt.Println(strings.Repeat("-", 60))

	if cat == hyrule.CategoryCreatures && result.Creatures != nil {
		for _, e := range result.Creatures.Food {
			fmt.Printf("• %3d  %s [FOOD]\n", e.ID, e.Name)
		}
		for _, e := range result.Creatures.NonFood {
			fmt.Printf("• %3d  %s\n", e.ID, e.Name)
		}
		return nil
	}

	for _, entry := range result.Flatten() {
		core := entry.Core()
		fmt.Printf("• %3d  %s\n", core.ID, core.Name)
	}
	return nil
}

// allCmd represents the all command
var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Show entry counts across the whole compendium",
	RunE:  runAll,
}

func init() {
	allCmd.Flags().BoolVar(&masterMode, "master", false, "include master mode monsters")
}

func runAll(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	all, err := client.AllEntries(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("\nHyrule Compendium:\n")
	fmt.Printf("- Creatures: %d (%d food)\n", all.Creatures.Len(), len(all.Creatures.Food))
	fmt.Printf("- Monsters:  %d\n", len(all.Monsters))
	fmt.Printf("- Materials: %d\n", len(all.Materials))
	fmt.Printf("- Equipment: %d\n", len(all.Equipment))
	fmt.Printf("- Treasure:  %d\n", len(all.Treasure))
	fmt.Printf("- Total:     %d\n", all.Count())

	if masterMode {
		master, err := client.AllMasterModeEntries(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("- Master mode monsters: %d\n", len(master))
	}

	return nil
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test the connection to the compendium API",
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	fmt.Printf("Testing connection to %s...\n", cfg.API.URL)

	ctx := context.Background()
	if err := client.TestConnection(ctx); err != nil {
		return err
	}
	fmt.Println("✓ Connection successful!")

	entry, err := client.Entry(ctx, hyrule.ByID(1))
	if err != nil {
		return err
	}
	core := entry.Core()
	fmt.Printf("- Entry 1: %s (%s)\n", core.Name, entry.Category())

	return nil
}

// printEntry prints one entry with its category-specific fields.
func printEntry(entry hyrule.Entry) {
	core := entry.Core()

	fmt.Printf("\n%s (#%d, %s)\n", core.Name, core.ID, entry.Category())
	fmt.Println(strings.Repeat("-", 60))
	fmt.Println(core.Description)

	if len(core.CommonLocations) > 0 {
		fmt.Printf("\nLocations: %s\n", strings.Join(core.CommonLocations, ", "))
	}

	switch e := entry.(type) {
	case *hyrule.MonsterEntry:
		if len(e.Drops) > 0 {
			fmt.Printf("Drops: %s\n", strings.Join(e.Drops, ", "))
		}
	case *hyrule.CreatureEntry:
		if len(e.Drops) > 0 {
			fmt.Printf("Drops: %s\n", strings.Join(e.Drops, ", "))
		}
		if e.HeartsRecovered > 0 {
			fmt.Printf("Hearts recovered: %.2f\n", e.HeartsRecovered)
		}
		if e.CookingEffect != "" {
			fmt.Printf("Cooking effect: %s\n", e.CookingEffect)
		}
	case *hyrule.MaterialEntry:
		if e.HeartsRecovered > 0 {
			fmt.Printf("Hearts recovered: %.2f\n", e.HeartsRecovered)
		}
	case *hyrule.EquipmentEntry:
		fmt.Printf("Attack: %d  Defense: %d\n", e.Attack, e.Defense)
	case *hyrule.TreasureEntry:
		if len(e.Drops) > 0 {
			fmt.Printf("Drops: %s\n", strings.Join(e.Drops, ", "))
		}
	}

	if core.Image != "" {
		fmt.Printf("Image: %s\n", core.Image)
	}
}
