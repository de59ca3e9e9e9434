// file: internals/features/exams/service/enrollment_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"examku_backend/internals/features/exams/model"
	"examku_backend/internals/features/exams/repository"
	"examku_backend/internals/features/exams/stats"
)

type EnrollmentService struct {
	DB   *gorm.DB
	Repo *repository.ExamRepository
}

func NewEnrollmentService(db *gorm.DB, repo *repository.ExamRepository) *EnrollmentService {
	return &EnrollmentService{DB: db, Repo: repo}
}

// EnrollStudents enrolls the rostered, not yet enrolled students among ids.
// Already enrolled and unknown ids are skipped, never an error.
func (s *EnrollmentService) EnrollStudents(ctx context.Context, examID uuid.UUID, ids []uuid.UUID) (EnrollReply, error) {
	exam, err := s.Repo.FindExamByID(ctx, examID)
	if err != nil {
		return EnrollReply{Error: "Exam not found"}, err
	}
	roster, err := s.Repo.RosterStudents(ctx, exam, ids)
	if err != nil {
		return EnrollReply{Error: "Failed to load students"}, err
	}
	existing, err := s.Repo.EnrolledStudentIDs(ctx, examID, ids)
	if err != nil {
		return EnrollReply{Error: "Failed to load enrollments"}, err
	}

	todo := planEnrollment(ids, roster, existing)
	if len(todo) == 0 {
		return EnrollReply{Success: true, Message: "All students are already enrolled", Skipped: len(dedupe(ids))}, nil
	}

	now := time.Now().UTC()
	actor := ActorFrom(ctx)
	rows := make([]model.ExamEnrollmentModel, len(todo))
	for i, id := range todo {
		rows[i] = model.ExamEnrollmentModel{
			ExamEnrollmentExamID:     examID,
			ExamEnrollmentStudentID:  id,
			ExamEnrollmentStatus:     stats.EnrollmentStatusEnrolled,
			ExamEnrollmentEnrolledAt: now,
			ExamEnrollmentEnrolledBy: actor,
		}
	}

	res := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "exam_enrollment_exam_id"}, {Name: "exam_enrollment_student_id"}},
			DoNothing: true,
		}).
		Create(&rows)
	if res.Error != nil {
		return EnrollReply{Error: "Failed to enroll students"}, fmt.Errorf("insert enrollments: %w", res.Error)
	}

	n := int(res.RowsAffected)
	return EnrollReply{
		Success:  true,
		Message:  fmt.Sprintf("Enrolled %d students successfully", n),
		Enrolled: n,
		Skipped:  len(dedupe(ids)) - n,
	}, nil
}

// planEnrollment keeps ids (first occurrence order) that are on the roster
// and not enrolled yet.
func planEnrollment(ids []uuid.UUID, roster []model.SchoolStudentModel, existing map[uuid.UUID]struct{}) []uuid.UUID {
	onRoster := make(map[uuid.UUID]struct{}, len(roster))
	for _, s := range roster {
		onRoster[s.SchoolStudentID] = struct{}{}
	}
	var out []uuid.UUID
	for _, id := range dedupe(ids) {
		if _, ok := onRoster[id]; !ok {
			continue
		}
		if _, done := existing[id]; done {
			continue
		}
		out = append(out, id)
	}
	return out
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
