// file: internals/features/exams/service/result_service.go
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"examku_backend/internals/features/exams/model"
	"examku_backend/internals/features/exams/repository"
	"examku_backend/internals/features/exams/stats"
)

type ResultEntry struct {
	StudentID     uuid.UUID
	ObtainedMarks *float64
	IsAbsent      bool
	Remarks       *string
}

type SaveReport struct {
	Saved  int `json:"saved"`
	Passed int `json:"passed"`
	Failed int `json:"failed"`
	Absent int `json:"absent"`
}

type ResultService struct {
	DB     *gorm.DB
	Repo   *repository.ExamRepository
	Scales []stats.GradeScale
}

func NewResultService(db *gorm.DB, repo *repository.ExamRepository, scales []stats.GradeScale) *ResultService {
	return &ResultService{DB: db, Repo: repo, Scales: scales}
}

// SaveResults upserts result rows for enrolled students. The whole batch is
// rejected when any entry is invalid.
func (s *ResultService) SaveResults(ctx context.Context, schoolID, examID uuid.UUID, entries []ResultEntry) (SaveReport, error) {
	exam, err := s.Repo.GetExam(ctx, schoolID, examID)
	if err != nil {
		return SaveReport{}, err
	}
	ids := make([]uuid.UUID, len(entries))
	for i, e := range entries {
		ids[i] = e.StudentID
	}
	enrolled, err := s.Repo.EnrolledStudentIDs(ctx, examID, ids)
	if err != nil {
		return SaveReport{}, err
	}

	scale := stats.FindGradeScale(s.Scales, exam.ExamGradeScale)
	rows, report, err := BuildResultRows(exam, scale, entries, enrolled, ActorFrom(ctx))
	if err != nil {
		return SaveReport{}, err
	}
	if len(rows) == 0 {
		return report, nil
	}

	err = s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "exam_result_exam_id"}, {Name: "exam_result_student_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"exam_result_obtained_marks",
				"exam_result_percentage",
				"exam_result_grade_label",
				"exam_result_remarks",
				"exam_result_is_passed",
				"exam_result_is_absent",
				"exam_result_entered_by",
				"exam_result_updated_at",
			}),
		}).
		Create(&rows).Error
	if err != nil {
		return SaveReport{}, fmt.Errorf("upsert results: %w", err)
	}
	return report, nil
}

// BuildResultRows validates entries and derives percentage, grade and pass
// flag. A student entered twice keeps the last entry.
func BuildResultRows(exam model.ExamModel, scale stats.GradeScale, entries []ResultEntry, enrolled map[uuid.UUID]struct{}, actor *uuid.UUID) ([]model.ExamResultModel, SaveReport, error) {
	ctx := exam.Context()
	pos := map[uuid.UUID]int{}
	var rows []model.ExamResultModel
	var results []stats.Result

	for _, e := range entries {
		if _, ok := enrolled[e.StudentID]; !ok {
			return nil, SaveReport{}, fmt.Errorf("student %s: %w", e.StudentID, ErrNotEnrolled)
		}

		var r stats.Result
		switch {
		case e.IsAbsent:
			r = stats.AbsentResult()
		case e.ObtainedMarks == nil:
			return nil, SaveReport{}, fmt.Errorf("student %s: marks missing: %w", e.StudentID, ErrMarksOutOfRange)
		case *e.ObtainedMarks < 0 || *e.ObtainedMarks > exam.ExamMaxMarks:
			return nil, SaveReport{}, fmt.Errorf("student %s: %v not in [0, %v]: %w", e.StudentID, *e.ObtainedMarks, exam.ExamMaxMarks, ErrMarksOutOfRange)
		default:
			r = stats.ResultFromMarks(*e.ObtainedMarks, ctx, scale)
		}
		r.Remarks = e.Remarks

		row := model.ExamResultModel{
			ExamResultExamID:        exam.ExamID,
			ExamResultStudentID:     e.StudentID,
			ExamResultObtainedMarks: r.ObtainedMarks,
			ExamResultPercentage:    r.Percentage,
			ExamResultGradeLabel:    r.GradeLabel,
			ExamResultRemarks:       r.Remarks,
			ExamResultIsPassed:      r.IsPassed,
			ExamResultIsAbsent:      r.IsAbsent,
			ExamResultEnteredBy:     actor,
		}
		if i, dup := pos[e.StudentID]; dup {
			rows[i], results[i] = row, r
			continue
		}
		pos[e.StudentID] = len(rows)
		rows = append(rows, row)
		results = append(results, r)
	}

	report := SaveReport{Saved: len(rows)}
	for _, r := range results {
		switch {
		case r.IsAbsent:
			report.Absent++
		case r.Passed():
			report.Passed++
		default:
			report.Failed++
		}
	}
	return rows, report, nil
}
