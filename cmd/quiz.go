package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rishabh/certdeck/internal/quizstats"
	"github.com/rishabh/certdeck/internal/session"
)

var quizCmd = &cobra.Command{
	Use:   "quiz <card|deck> <target-id> <correct> <total>",
	Short: "Record a completed quiz session for a card or deck",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := quizstats.TargetKind(args[0])
		if kind != quizstats.TargetCard && kind != quizstats.TargetDeck {
			return fmt.Errorf("target kind must be card or deck, got %q", args[0])
		}
		correct, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("parse correct %q: %w", args[2], err)
		}
		total, err := strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("parse total %q: %w", args[3], err)
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
		agg, err := svc.RecordQuiz(cmd.Context(), cfg.LearnerID, kind, args[1], correct, total)
		if err != nil {
			return err
		}

		switch kind {
		case quizstats.TargetDeck:
			fmt.Printf("deck %s: mastery %.2f%% (avg %.2f, best %.2f over %d sessions)\n",
				agg.TargetID, agg.MasteryPercentage, agg.AverageScore, agg.BestScore, agg.TimesTaken)
		default:
			fmt.Printf("card %s: %s (avg %.2f, best %.2f over %d sessions)\n",
				agg.TargetID, agg.Status, agg.AverageScore, agg.BestScore, agg.TimesTaken)
		}
		return nil
	},
}
