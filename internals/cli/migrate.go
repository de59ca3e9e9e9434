// file: internals/cli/migrate.go
package cli

import (
	"github.com/spf13/cobra"

	database "examku_backend/internals/databases"
	"examku_backend/internals/features/exams/model"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the exam tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer func() { _ = database.Close(db) }()

		if err := database.AutoMigrate(db, model.Tables()...); err != nil {
			return err
		}
		logger.Info("migration done")
		return nil
	},
}
