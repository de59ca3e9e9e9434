// file: internals/features/exams/model/exam_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"examku_backend/internals/features/exams/stats"
)

// =========================
// Enum: Exam Mode
// =========================

type ExamMode string

const (
	ExamModeOnline  ExamMode = "ONLINE"
	ExamModeOffline ExamMode = "OFFLINE"
)

func (m ExamMode) Valid() bool { return m == ExamModeOnline || m == ExamModeOffline }

// =========================
// Enum: Exam Status
// =========================

type ExamStatus string

const (
	ExamStatusUpcoming  ExamStatus = "UPCOMING"
	ExamStatusOngoing   ExamStatus = "ONGOING"
	ExamStatusCompleted ExamStatus = "COMPLETED"
	ExamStatusCancelled ExamStatus = "CANCELLED"
)

func (s ExamStatus) Valid() bool {
	switch s {
	case ExamStatusUpcoming, ExamStatusOngoing, ExamStatusCompleted, ExamStatusCancelled:
		return true
	}
	return false
}

// =========================
// Model: exams
// =========================

type ExamModel struct {
	// PK & Tenant
	ExamID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:exam_id" json:"exam_id"`
	ExamSchoolID       uuid.UUID `gorm:"type:uuid;not null;index:idx_exams_school_section,priority:1;column:exam_school_id" json:"exam_school_id"`
	ExamClassSectionID uuid.UUID `gorm:"type:uuid;not null;index:idx_exams_school_section,priority:2;column:exam_class_section_id" json:"exam_class_section_id"`

	// Identity
	ExamTitle        string  `gorm:"type:varchar(180);not null;column:exam_title" json:"exam_title"`
	ExamSubjectName  string  `gorm:"type:varchar(120);not null;column:exam_subject_name" json:"exam_subject_name"`
	ExamSubjectCode  *string `gorm:"type:varchar(40);column:exam_subject_code" json:"exam_subject_code,omitempty"`
	ExamSessionTitle *string `gorm:"type:varchar(120);column:exam_session_title" json:"exam_session_title,omitempty"`

	// Marks
	ExamMaxMarks     float64  `gorm:"type:numeric(6,2);not null;check:exam_max_marks > 0;column:exam_max_marks" json:"exam_max_marks"`
	ExamPassingMarks *float64 `gorm:"type:numeric(6,2);column:exam_passing_marks" json:"exam_passing_marks,omitempty"`
	ExamGradeScale   string   `gorm:"type:varchar(40);not null;default:'standard';column:exam_grade_scale" json:"exam_grade_scale"`

	// Schedule
	ExamStartAt         time.Time  `gorm:"type:timestamptz;not null;index;column:exam_start_at" json:"exam_start_at"`
	ExamEndAt           time.Time  `gorm:"type:timestamptz;not null;column:exam_end_at" json:"exam_end_at"`
	ExamDurationMinutes int        `gorm:"type:int;not null;column:exam_duration_minutes" json:"exam_duration_minutes"`
	ExamMode            ExamMode   `gorm:"type:varchar(16);not null;default:'OFFLINE';column:exam_mode" json:"exam_mode"`
	ExamStatus          ExamStatus `gorm:"type:varchar(16);not null;default:'UPCOMING';column:exam_status" json:"exam_status"`
	ExamVenue           *string    `gorm:"type:varchar(160);column:exam_venue" json:"exam_venue,omitempty"`

	ExamIsResultsPublished bool `gorm:"not null;default:false;column:exam_is_results_published" json:"exam_is_results_published"`

	// Timestamps & soft delete
	ExamCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:exam_created_at" json:"exam_created_at"`
	ExamUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:exam_updated_at" json:"exam_updated_at"`
	ExamDeletedAt gorm.DeletedAt `gorm:"column:exam_deleted_at;index" json:"exam_deleted_at,omitempty"`
}

func (ExamModel) TableName() string { return "exams" }

// Context is the part of the exam the statistics engine reads.
func (m ExamModel) Context() stats.ExamContext {
	return stats.ExamContext{MaxMarks: m.ExamMaxMarks, PassingMarks: m.ExamPassingMarks}
}
