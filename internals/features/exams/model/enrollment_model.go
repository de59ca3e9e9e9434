// file: internals/features/exams/model/enrollment_model.go
package model

import (
	"time"

	"github.com/google/uuid"

	"examku_backend/internals/features/exams/stats"
)

// One enrollment per (exam, student), enforced by uq_exam_enrollments_exam_student.
type ExamEnrollmentModel struct {
	ExamEnrollmentID        uuid.UUID             `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:exam_enrollment_id" json:"exam_enrollment_id"`
	ExamEnrollmentExamID    uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:uq_exam_enrollments_exam_student,priority:1;column:exam_enrollment_exam_id" json:"exam_enrollment_exam_id"`
	ExamEnrollmentStudentID uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:uq_exam_enrollments_exam_student,priority:2;column:exam_enrollment_student_id" json:"exam_enrollment_student_id"`
	ExamEnrollmentStatus    stats.EnrollmentStatus `gorm:"type:varchar(16);not null;default:'ENROLLED';column:exam_enrollment_status" json:"exam_enrollment_status"`

	ExamEnrollmentEnrolledAt time.Time  `gorm:"type:timestamptz;not null;default:now();column:exam_enrollment_enrolled_at" json:"exam_enrollment_enrolled_at"`
	ExamEnrollmentEnrolledBy *uuid.UUID `gorm:"type:uuid;column:exam_enrollment_enrolled_by" json:"exam_enrollment_enrolled_by,omitempty"`

	ExamEnrollmentHallTicketIssued   bool       `gorm:"not null;default:false;column:exam_enrollment_hall_ticket_issued" json:"exam_enrollment_hall_ticket_issued"`
	ExamEnrollmentHallTicketIssuedAt *time.Time `gorm:"type:timestamptz;column:exam_enrollment_hall_ticket_issued_at" json:"exam_enrollment_hall_ticket_issued_at,omitempty"`
	ExamEnrollmentExemptionReason    *string    `gorm:"type:text;column:exam_enrollment_exemption_reason" json:"exam_enrollment_exemption_reason,omitempty"`

	ExamEnrollmentCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:exam_enrollment_created_at" json:"exam_enrollment_created_at"`
	ExamEnrollmentUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:exam_enrollment_updated_at" json:"exam_enrollment_updated_at"`
}

func (ExamEnrollmentModel) TableName() string { return "exam_enrollments" }

func (m ExamEnrollmentModel) ToStats() stats.Enrollment {
	return stats.Enrollment{
		ID:               m.ExamEnrollmentID,
		StudentID:        m.ExamEnrollmentStudentID,
		Status:           m.ExamEnrollmentStatus,
		EnrolledAt:       m.ExamEnrollmentEnrolledAt,
		HallTicketIssued: m.ExamEnrollmentHallTicketIssued,
	}
}
