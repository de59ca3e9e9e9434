// file: internals/features/exams/repository/exam_source.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"examku_backend/internals/features/exams/model"
	"examku_backend/internals/features/exams/stats"
)

// ExamSource is the data-access side of the exam overview: one exam plus the
// four record streams the engine merges.
type ExamSource interface {
	GetExam(ctx context.Context, schoolID, examID uuid.UUID) (model.ExamModel, error)
	FetchRoster(ctx context.Context, exam model.ExamModel) ([]stats.Student, error)
	FetchEnrollments(ctx context.Context, examID uuid.UUID) ([]stats.Enrollment, error)
	FetchResults(ctx context.Context, examID uuid.UUID) ([]stats.Result, error)
	FetchHallTickets(ctx context.Context, examID uuid.UUID) ([]stats.HallTicket, error)
	Fingerprint(ctx context.Context, exam model.ExamModel) (string, error)
}

type ExamRepository struct {
	DB *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{DB: db}
}

var _ ExamSource = (*ExamRepository)(nil)

// FindExam loads an exam in the school scope without validating it.
func (r *ExamRepository) FindExam(ctx context.Context, schoolID, examID uuid.UUID) (model.ExamModel, error) {
	var m model.ExamModel
	err := r.DB.WithContext(ctx).
		Where("exam_id = ? AND exam_school_id = ?", examID, schoolID).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return m, ErrExamNotFound
	}
	if err != nil {
		return m, fmt.Errorf("find exam: %w", err)
	}
	return m, nil
}

// GetExam is FindExam plus the boundary check the statistics engine relies on.
func (r *ExamRepository) GetExam(ctx context.Context, schoolID, examID uuid.UUID) (model.ExamModel, error) {
	m, err := r.FindExam(ctx, schoolID, examID)
	if err != nil {
		return m, err
	}
	if err := ValidateExam(m); err != nil {
		return m, err
	}
	return m, nil
}

// ValidateExam rejects exams the statistics engine cannot divide by.
func ValidateExam(m model.ExamModel) error {
	if m.ExamMaxMarks <= 0 {
		return fmt.Errorf("exam %s: %w", m.ExamID, ErrMalformedExam)
	}
	return nil
}

// FetchRoster returns the class section roster ordered by roll number then name.
func (r *ExamRepository) FetchRoster(ctx context.Context, exam model.ExamModel) ([]stats.Student, error) {
	var rows []model.SchoolStudentModel
	err := r.DB.WithContext(ctx).
		Where("school_student_school_id = ? AND school_student_class_section_id = ?", exam.ExamSchoolID, exam.ExamClassSectionID).
		Order("school_student_roll_number ASC, school_student_first_name ASC, school_student_last_name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("fetch roster: %w", err)
	}
	return mapRows(rows, model.SchoolStudentModel.ToStats), nil
}

func (r *ExamRepository) FetchEnrollments(ctx context.Context, examID uuid.UUID) ([]stats.Enrollment, error) {
	var rows []model.ExamEnrollmentModel
	err := r.DB.WithContext(ctx).
		Where("exam_enrollment_exam_id = ?", examID).
		Order("exam_enrollment_created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("fetch enrollments: %w", err)
	}
	return mapRows(rows, model.ExamEnrollmentModel.ToStats), nil
}

func (r *ExamRepository) FetchResults(ctx context.Context, examID uuid.UUID) ([]stats.Result, error) {
	var rows []model.ExamResultModel
	err := r.DB.WithContext(ctx).
		Where("exam_result_exam_id = ?", examID).
		Order("exam_result_updated_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("fetch results: %w", err)
	}
	return mapRows(rows, model.ExamResultModel.ToStats), nil
}

func (r *ExamRepository) FetchHallTickets(ctx context.Context, examID uuid.UUID) ([]stats.HallTicket, error) {
	var rows []model.ExamHallTicketModel
	err := r.DB.WithContext(ctx).
		Select("exam_hall_ticket_id", "exam_hall_ticket_student_id", "exam_hall_ticket_pdf_url", "exam_hall_ticket_generated_at").
		Where("exam_hall_ticket_exam_id = ?", examID).
		Order("exam_hall_ticket_generated_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("fetch hall tickets: %w", err)
	}
	return mapRows(rows, model.ExamHallTicketModel.ToStats), nil
}

type fingerprintRow struct {
	RosterCount     int64      `gorm:"column:roster_count"`
	RosterAt        *time.Time `gorm:"column:roster_at"`
	EnrollmentCount int64      `gorm:"column:enrollment_count"`
	EnrollmentAt    *time.Time `gorm:"column:enrollment_at"`
	ResultCount     int64      `gorm:"column:result_count"`
	ResultAt        *time.Time `gorm:"column:result_at"`
	TicketCount     int64      `gorm:"column:ticket_count"`
	TicketAt        *time.Time `gorm:"column:ticket_at"`
}

// Fingerprint summarizes the source rows (count + latest update per stream,
// plus the exam row itself). Any write to the streams changes it.
func (r *ExamRepository) Fingerprint(ctx context.Context, exam model.ExamModel) (string, error) {
	var fp fingerprintRow
	err := r.DB.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM school_students
			  WHERE school_student_school_id = @school AND school_student_class_section_id = @section
			    AND school_student_deleted_at IS NULL) AS roster_count,
			(SELECT MAX(school_student_updated_at) FROM school_students
			  WHERE school_student_school_id = @school AND school_student_class_section_id = @section) AS roster_at,
			(SELECT COUNT(*) FROM exam_enrollments WHERE exam_enrollment_exam_id = @exam) AS enrollment_count,
			(SELECT MAX(exam_enrollment_updated_at) FROM exam_enrollments WHERE exam_enrollment_exam_id = @exam) AS enrollment_at,
			(SELECT COUNT(*) FROM exam_results WHERE exam_result_exam_id = @exam) AS result_count,
			(SELECT MAX(exam_result_updated_at) FROM exam_results WHERE exam_result_exam_id = @exam) AS result_at,
			(SELECT COUNT(*) FROM exam_hall_tickets WHERE exam_hall_ticket_exam_id = @exam) AS ticket_count,
			(SELECT MAX(exam_hall_ticket_updated_at) FROM exam_hall_tickets WHERE exam_hall_ticket_exam_id = @exam) AS ticket_at
	`, map[string]any{
		"school":  exam.ExamSchoolID,
		"section": exam.ExamClassSectionID,
		"exam":    exam.ExamID,
	}).Scan(&fp).Error
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	return fp.String(exam.ExamUpdatedAt), nil
}

func (f fingerprintRow) String(examUpdatedAt time.Time) string {
	return fmt.Sprintf("e%d|r%d@%d|n%d@%d|s%d@%d|t%d@%d",
		examUpdatedAt.UnixMicro(),
		f.RosterCount, unixMicro(f.RosterAt),
		f.EnrollmentCount, unixMicro(f.EnrollmentAt),
		f.ResultCount, unixMicro(f.ResultAt),
		f.TicketCount, unixMicro(f.TicketAt),
	)
}

func unixMicro(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return t.UnixMicro()
}

func mapRows[M any, T any](rows []M, fn func(M) T) []T {
	out := make([]T, len(rows))
	for i, r := range rows {
		out[i] = fn(r)
	}
	return out
}
