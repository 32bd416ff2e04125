package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rishabh/certdeck/internal/session"
)

var rateCmd = &cobra.Command{
	Use:   "rate <card-id> <level>",
	Short: "Record a 1-5 confidence rating for a card",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("parse level %q: %w", args[1], err)
		}

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
		snap, err := svc.RecordRating(cmd.Context(), cfg.LearnerID, args[0], level)
		if err != nil {
			return err
		}

		fmt.Printf("card %s: confidence %d, last seen %s\n",
			snap.CardID, snap.Confidence(), snap.SeenAt().Format("2006-01-02 15:04"))
		return nil
	},
}
