package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rishabh/certdeck/internal/selection"
	"github.com/rishabh/certdeck/internal/session"
)

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Print the ordered study queue for a deck or class",
	Long: "Builds a study session for the given scope and prints the cards in study order.\n" +
		"Useful for scripting; the interactive session lives behind the bare `certdeck` command.",
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

		deckID, _ := cmd.Flags().GetString("deck")
		classID, _ := cmd.Flags().GetString("class")
		only, _ := cmd.Flags().GetStringSlice("only-decks")
		modeName, _ := cmd.Flags().GetString("mode")
		if deckID == "" && classID == "" {
			return fmt.Errorf("either --deck or --class is required")
		}
		if modeName == "" {
			modeName = cfg.DefaultMode
		}

		svc := session.NewService(st.Decks(), st.Snapshots(), st.Aggregates(), st.Events())
		sess, err := svc.Start(cmd.Context(), cfg.LearnerID,
			session.Scope{DeckID: deckID, ClassID: classID, DeckIDs: only},
			selection.ParseMode(modeName))
		if err != nil {
			return err
		}

		fmt.Printf("%d cards (%s mode)\n", len(sess.Cards), sess.Mode)
		for i, c := range sess.Cards {
			fmt.Printf("%3d. [%s] %s\n", i+1, c.ID, c.Question)
		}
		return nil
	},
}

func init() {
	studyCmd.Flags().String("deck", "", "Deck ID to study")
	studyCmd.Flags().String("class", "", "Class ID to study")
	studyCmd.Flags().StringSlice("only-decks", nil, "Restrict a class scope to these deck IDs")
	studyCmd.Flags().String("mode", "", "Study mode: progressive, random, or all")
}
