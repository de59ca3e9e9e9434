// file: internals/features/exams/model/result_model.go
package model

import (
	"time"

	"github.com/google/uuid"

	"examku_backend/internals/features/exams/stats"
)

type ExamResultModel struct {
	ExamResultID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:exam_result_id" json:"exam_result_id"`
	ExamResultExamID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_exam_results_exam_student,priority:1;column:exam_result_exam_id" json:"exam_result_exam_id"`
	ExamResultStudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_exam_results_exam_student,priority:2;column:exam_result_student_id" json:"exam_result_student_id"`

	// Marks are meaningless when absent
	ExamResultObtainedMarks *float64 `gorm:"type:numeric(6,2);column:exam_result_obtained_marks" json:"exam_result_obtained_marks,omitempty"`
	ExamResultPercentage    *float64 `gorm:"type:numeric(5,2);column:exam_result_percentage" json:"exam_result_percentage,omitempty"`
	ExamResultGradeLabel    *string  `gorm:"type:varchar(8);column:exam_result_grade_label" json:"exam_result_grade_label,omitempty"`
	ExamResultRemarks       *string  `gorm:"type:text;column:exam_result_remarks" json:"exam_result_remarks,omitempty"`
	ExamResultIsPassed      *bool    `gorm:"column:exam_result_is_passed" json:"exam_result_is_passed,omitempty"`
	ExamResultIsAbsent      bool     `gorm:"not null;default:false;column:exam_result_is_absent" json:"exam_result_is_absent"`

	ExamResultEnteredBy *uuid.UUID `gorm:"type:uuid;column:exam_result_entered_by" json:"exam_result_entered_by,omitempty"`

	ExamResultCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:exam_result_created_at" json:"exam_result_created_at"`
	ExamResultUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:exam_result_updated_at" json:"exam_result_updated_at"`
}

func (ExamResultModel) TableName() string { return "exam_results" }

func (m ExamResultModel) ToStats() stats.Result {
	return stats.Result{
		ID:            m.ExamResultID,
		StudentID:     m.ExamResultStudentID,
		ObtainedMarks: m.ExamResultObtainedMarks,
		Percentage:    m.ExamResultPercentage,
		GradeLabel:    m.ExamResultGradeLabel,
		Remarks:       m.ExamResultRemarks,
		IsPassed:      m.ExamResultIsPassed,
		IsAbsent:      m.ExamResultIsAbsent,
	}
}
