package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rishabh/certdeck/internal/app"
	"github.com/rishabh/certdeck/internal/selection"
	"github.com/rishabh/certdeck/internal/session"
)

// runApp opens the store, wires the study engine, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	svc := session.NewService(st.Decks(), st.Snapshots(), st.Aggregates(), st.Events())

	return app.Run(app.Options{
		LearnerID:   cfg.LearnerID,
		DefaultMode: selection.ParseMode(cfg.DefaultMode),
		Session:     svc,
		Decks:       st.Decks(),
	})
}
