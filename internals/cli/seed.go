// file: internals/cli/seed.go
package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	database "examku_backend/internals/databases"
	"examku_backend/internals/seeds"
)

var (
	seedSchool  string
	seedSection string
	seedFile    string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed a class section roster from JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		schoolID, err := uuid.Parse(seedSchool)
		if err != nil {
			return fmt.Errorf("--school: %w", err)
		}
		sectionID, err := uuid.Parse(seedSection)
		if err != nil {
			return fmt.Errorf("--section: %w", err)
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer func() { _ = database.Close(db) }()

		return seeds.RunAllSeeds(db, logger, seedFile, schoolID, sectionID)
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedSchool, "school", "", "school id")
	seedCmd.Flags().StringVar(&seedSection, "section", "", "class section id")
	seedCmd.Flags().StringVar(&seedFile, "file", "", "roster JSON (default: bundled demo roster)")
	_ = seedCmd.MarkFlagRequired("school")
	_ = seedCmd.MarkFlagRequired("section")
}
