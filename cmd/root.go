package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/vocabdrill/internal/config"
	"github.com/abhisek/vocabdrill/internal/store"
)

// cfg is loaded before any command runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "vocabdrill",
	Short: "Spaced-repetition vocabulary drills in the terminal",
	Long: "vocabdrill schedules vocabulary reviews with spaced repetition and drills\n" +
		"each word through nine stages, from two-option picks to sound-alike\n" +
		"listening challenges.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configFile, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(config.Options{ConfigFile: configFile})
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides VOCABDRILL_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/vocabdrill/config.yaml)")
	rootCmd.PersistentFlags().StringP("language", "l", "", "Language to drill (default from config)")
	rootCmd.PersistentFlags().String("level", "", "Level to drill: bronze, silver or gold (default: suggested)")
	rootCmd.Flags().IntP("count", "n", 0, "Words per round (default from config)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(wordsCmd)
	rootCmd.AddCommand(lookalikesCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path, then VOCABDRILL_DB and the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
