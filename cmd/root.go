package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rishabh/certdeck/internal/config"
	"github.com/rishabh/certdeck/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "certdeck",
	Short: "Adaptive flashcard study for certification exams",
	Long:  "Certdeck is a terminal flashcard trainer that resurfaces the cards you know least, when they are due.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $HOME/.config/certdeck/config.yaml)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CERTDECK_DB env var)")
	rootCmd.PersistentFlags().String("learner", "", "Learner ID to track progress for (overrides config)")

	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(rateCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves config with flag overrides applied on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if l, _ := cmd.Flags().GetString("learner"); l != "" {
		cfg.LearnerID = l
	}
	return cfg, nil
}

// openStore opens the database at the configured path, falling back to
// the default XDG location.
func openStore(cfg *config.Config) (*store.Store, error) {
	path := cfg.DBPath
	if path == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		path = p
	} else if err := store.EnsureDir(path); err != nil {
		return nil, fmt.Errorf("create DB directory: %w", err)
	}
	return store.Open(path)
}
