package roster

import (
	"fmt"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"examku_backend/internals/features/exams/model"
)

type StudentSeed struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	RollNumber string `json:"roll_number"`
}

// ParseRoster decodes seed rows into roster models for one class section.
// Rows without a first name or roll number are rejected.
func ParseRoster(raw []byte, schoolID, sectionID uuid.UUID) ([]model.SchoolStudentModel, error) {
	var seeds []StudentSeed
	if err := sonic.Unmarshal(raw, &seeds); err != nil {
		return nil, fmt.Errorf("decode roster seed: %w", err)
	}
	out := make([]model.SchoolStudentModel, 0, len(seeds))
	seen := map[string]struct{}{}
	for i, s := range seeds {
		roll := strings.TrimSpace(s.RollNumber)
		first := strings.TrimSpace(s.FirstName)
		if roll == "" || first == "" {
			return nil, fmt.Errorf("roster seed row %d: first_name and roll_number are required", i)
		}
		if _, dup := seen[roll]; dup {
			return nil, fmt.Errorf("roster seed row %d: duplicate roll_number %q", i, roll)
		}
		seen[roll] = struct{}{}
		out = append(out, model.SchoolStudentModel{
			SchoolStudentSchoolID:       schoolID,
			SchoolStudentClassSectionID: sectionID,
			SchoolStudentFirstName:      first,
			SchoolStudentLastName:       strings.TrimSpace(s.LastName),
			SchoolStudentEmail:          strings.ToLower(strings.TrimSpace(s.Email)),
			SchoolStudentRollNumber:     roll,
		})
	}
	return out, nil
}

// SeedRosterFromJSON inserts students whose roll number is not in the section yet.
func SeedRosterFromJSON(db *gorm.DB, log *zap.Logger, filePath string, schoolID, sectionID uuid.UUID) (int, error) {
	log.Info("reading roster seed", zap.String("file", filePath))

	raw, err := os.ReadFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("read roster seed: %w", err)
	}
	rows, err := ParseRoster(raw, schoolID, sectionID)
	if err != nil {
		return 0, err
	}

	var existing []string
	if err := db.Model(&model.SchoolStudentModel{}).
		Where("school_student_school_id = ? AND school_student_class_section_id = ?", schoolID, sectionID).
		Pluck("school_student_roll_number", &existing).Error; err != nil {
		return 0, fmt.Errorf("load existing roll numbers: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, r := range existing {
		have[r] = true
	}

	var fresh []model.SchoolStudentModel
	for _, r := range rows {
		if have[r.SchoolStudentRollNumber] {
			log.Debug("student already seeded, skipping", zap.String("roll_number", r.SchoolStudentRollNumber))
			continue
		}
		fresh = append(fresh, r)
	}
	if len(fresh) == 0 {
		log.Info("roster already seeded")
		return 0, nil
	}
	if err := db.CreateInBatches(&fresh, 200).Error; err != nil {
		return 0, fmt.Errorf("insert roster: %w", err)
	}
	log.Info("roster seeded", zap.Int("inserted", len(fresh)), zap.Int("skipped", len(rows)-len(fresh)))
	return len(fresh), nil
}
