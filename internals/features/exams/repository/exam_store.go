// file: internals/features/exams/repository/exam_store.go
package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"examku_backend/internals/features/exams/model"
)

type ExamListQuery struct {
	ClassSectionID *uuid.UUID
	Status         string
	Search         string
	Offset         int
	Limit          int
}

func (r *ExamRepository) CreateExam(ctx context.Context, m *model.ExamModel) error {
	if err := r.DB.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("create exam: %w", err)
	}
	return nil
}

// ListExams returns one page of the school's exams, newest start first.
func (r *ExamRepository) ListExams(ctx context.Context, schoolID uuid.UUID, q ExamListQuery) ([]model.ExamModel, int64, error) {
	tx := r.DB.WithContext(ctx).Model(&model.ExamModel{}).Where("exam_school_id = ?", schoolID)
	if q.ClassSectionID != nil {
		tx = tx.Where("exam_class_section_id = ?", *q.ClassSectionID)
	}
	if s := strings.ToUpper(strings.TrimSpace(q.Status)); s != "" {
		tx = tx.Where("exam_status = ?", s)
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		like := "%" + s + "%"
		tx = tx.Where("(exam_title ILIKE ? OR exam_subject_name ILIKE ?)", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count exams: %w", err)
	}
	var rows []model.ExamModel
	err := tx.Order("exam_start_at DESC").Offset(q.Offset).Limit(q.Limit).Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list exams: %w", err)
	}
	return rows, total, nil
}

// PatchExam applies column updates and returns the fresh row.
func (r *ExamRepository) PatchExam(ctx context.Context, schoolID, examID uuid.UUID, updates map[string]any) (model.ExamModel, error) {
	var m model.ExamModel
	if len(updates) == 0 {
		return r.FindExam(ctx, schoolID, examID)
	}
	res := r.DB.WithContext(ctx).Model(&m).
		Clauses(clause.Returning{}).
		Where("exam_id = ? AND exam_school_id = ?", examID, schoolID).
		Updates(updates)
	if res.Error != nil {
		return m, fmt.Errorf("patch exam: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return m, ErrExamNotFound
	}
	return m, nil
}
