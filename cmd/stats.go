package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rishabh/certdeck/internal/quizstats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show study activity and per-deck mastery",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		st, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := cmd.Context()
		totals, err := st.Events().Totals(ctx, cfg.LearnerID)
		if err != nil {
			return err
		}

		fmt.Printf("learner %s: %d ratings, %d quizzes\n", cfg.LearnerID, totals.Ratings, totals.Quizzes)
		if totals.LastActivity != nil {
			fmt.Printf("last activity: %s\n", totals.LastActivity.Format("2006-01-02 15:04"))
		}

		decks, err := st.Decks().ListDecks(ctx)
		if err != nil {
			return err
		}
		for _, d := range decks {
			agg, err := st.Aggregates().Get(ctx, cfg.LearnerID, quizstats.TargetDeck, d.ID)
			if err != nil {
				return err
			}
			if agg == nil {
				fmt.Printf("  %-30s not yet quizzed\n", d.Name)
				continue
			}
			fmt.Printf("  %-30s %.2f%% mastery (%d sessions, best %.2f)\n",
				d.Name, agg.MasteryPercentage, agg.TimesTaken, agg.BestScore)
		}
		return nil
	},
}
