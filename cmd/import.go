package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rishabh/certdeck/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Import class files (JSON) into the card store",
	Args:  cobra.MinimumNArgs(1),
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

		imp := importer.New(st.Decks())
		for _, path := range args {
			res, err := imp.ImportFile(cmd.Context(), path)
			if err != nil {
				return fmt.Errorf("import %s: %w", path, err)
			}
			fmt.Printf("%s: class %s, %d decks, %d cards\n", path, res.ClassID, res.Decks, res.Cards)
		}
		return nil
	},
}
