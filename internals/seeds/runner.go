package seeds

import (
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	roster "examku_backend/internals/seeds/roster"
)

// DefaultRosterFile is the bundled demo roster.
var DefaultRosterFile = filepath.Join("internals", "seeds", "roster", "data_roster.json")

func RunAllSeeds(db *gorm.DB, log *zap.Logger, rosterFile string, schoolID, sectionID uuid.UUID) error {
	if rosterFile == "" {
		rosterFile = DefaultRosterFile
	}

	//* Roster
	if _, err := roster.SeedRosterFromJSON(db, log, rosterFile, schoolID, sectionID); err != nil {
		return err
	}
	return nil
}
