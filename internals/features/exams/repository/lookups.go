// file: internals/features/exams/repository/lookups.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"examku_backend/internals/features/exams/model"
)

// FindExamByID loads an exam without school scope; used by collaborators
// that receive only an exam id.
func (r *ExamRepository) FindExamByID(ctx context.Context, examID uuid.UUID) (model.ExamModel, error) {
	var m model.ExamModel
	err := r.DB.WithContext(ctx).Where("exam_id = ?", examID).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return m, ErrExamNotFound
	}
	if err != nil {
		return m, fmt.Errorf("find exam: %w", err)
	}
	return m, nil
}

// RosterStudents returns the roster rows among ids.
func (r *ExamRepository) RosterStudents(ctx context.Context, exam model.ExamModel, ids []uuid.UUID) ([]model.SchoolStudentModel, error) {
	var rows []model.SchoolStudentModel
	if len(ids) == 0 {
		return rows, nil
	}
	err := r.DB.WithContext(ctx).
		Where("school_student_school_id = ? AND school_student_class_section_id = ?", exam.ExamSchoolID, exam.ExamClassSectionID).
		Where("school_student_id IN ?", ids).
		Order("school_student_roll_number ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("roster students: %w", err)
	}
	return rows, nil
}

// Enrollments returns enrollment rows of examID, limited to ids when given.
func (r *ExamRepository) Enrollments(ctx context.Context, examID uuid.UUID, ids []uuid.UUID) ([]model.ExamEnrollmentModel, error) {
	var rows []model.ExamEnrollmentModel
	tx := r.DB.WithContext(ctx).Where("exam_enrollment_exam_id = ?", examID)
	if ids != nil {
		if len(ids) == 0 {
			return rows, nil
		}
		tx = tx.Where("exam_enrollment_student_id IN ?", ids)
	}
	if err := tx.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("enrollments: %w", err)
	}
	return rows, nil
}

// EnrolledStudentIDs returns the subset of ids already enrolled in examID.
func (r *ExamRepository) EnrolledStudentIDs(ctx context.Context, examID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	return r.pluckSet(ctx, &model.ExamEnrollmentModel{}, "exam_enrollment_student_id", "exam_enrollment_exam_id", examID, ids)
}

// TicketedStudentIDs returns the subset of ids holding a hall ticket for examID.
func (r *ExamRepository) TicketedStudentIDs(ctx context.Context, examID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	return r.pluckSet(ctx, &model.ExamHallTicketModel{}, "exam_hall_ticket_student_id", "exam_hall_ticket_exam_id", examID, ids)
}

func (r *ExamRepository) pluckSet(ctx context.Context, m any, studentCol, examCol string, examID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	out := map[uuid.UUID]struct{}{}
	if len(ids) == 0 {
		return out, nil
	}
	var found []uuid.UUID
	err := r.DB.WithContext(ctx).Model(m).
		Where(examCol+" = ?", examID).
		Where(studentCol+" IN ?", ids).
		Pluck(studentCol, &found).Error
	if err != nil {
		return nil, fmt.Errorf("pluck %s: %w", studentCol, err)
	}
	for _, id := range found {
		out[id] = struct{}{}
	}
	return out, nil
}
