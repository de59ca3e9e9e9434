// file: internals/features/exams/model/student_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"examku_backend/internals/features/exams/stats"
)

// SchoolStudentModel is the roster row. The student-management side owns
// these rows; the exam features only read them.
type SchoolStudentModel struct {
	SchoolStudentID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:school_student_id" json:"school_student_id"`
	SchoolStudentSchoolID       uuid.UUID `gorm:"type:uuid;not null;index:idx_school_students_scope,priority:1;column:school_student_school_id" json:"school_student_school_id"`
	SchoolStudentClassSectionID uuid.UUID `gorm:"type:uuid;not null;index:idx_school_students_scope,priority:2;column:school_student_class_section_id" json:"school_student_class_section_id"`

	SchoolStudentFirstName  string `gorm:"type:varchar(80);not null;column:school_student_first_name" json:"school_student_first_name"`
	SchoolStudentLastName   string `gorm:"type:varchar(80);not null;default:'';column:school_student_last_name" json:"school_student_last_name"`
	SchoolStudentEmail      string `gorm:"type:varchar(160);not null;default:'';column:school_student_email" json:"school_student_email"`
	SchoolStudentRollNumber string `gorm:"type:varchar(40);not null;default:'';column:school_student_roll_number" json:"school_student_roll_number"`

	SchoolStudentCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:school_student_created_at" json:"school_student_created_at"`
	SchoolStudentUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:school_student_updated_at" json:"school_student_updated_at"`
	SchoolStudentDeletedAt gorm.DeletedAt `gorm:"column:school_student_deleted_at;index" json:"school_student_deleted_at,omitempty"`
}

func (SchoolStudentModel) TableName() string { return "school_students" }

func (m SchoolStudentModel) ToStats() stats.Student {
	return stats.Student{
		ID:         m.SchoolStudentID,
		FirstName:  m.SchoolStudentFirstName,
		LastName:   m.SchoolStudentLastName,
		Email:      m.SchoolStudentEmail,
		RollNumber: m.SchoolStudentRollNumber,
	}
}
