// file: internals/features/exams/model/hall_ticket_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"examku_backend/internals/features/exams/stats"
)

type ExamHallTicketModel struct {
	ExamHallTicketID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:exam_hall_ticket_id" json:"exam_hall_ticket_id"`
	ExamHallTicketExamID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_exam_hall_tickets_exam_student,priority:1;column:exam_hall_ticket_exam_id" json:"exam_hall_ticket_exam_id"`
	ExamHallTicketStudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_exam_hall_tickets_exam_student,priority:2;column:exam_hall_ticket_student_id" json:"exam_hall_ticket_student_id"`

	ExamHallTicketPDFURL    string         `gorm:"type:text;not null;column:exam_hall_ticket_pdf_url" json:"exam_hall_ticket_pdf_url"`
	ExamHallTicketQRCode    string         `gorm:"type:text;not null;column:exam_hall_ticket_qr_code" json:"exam_hall_ticket_qr_code"`
	ExamHallTicketQRPayload datatypes.JSON `gorm:"type:jsonb;not null;column:exam_hall_ticket_qr_payload" json:"exam_hall_ticket_qr_payload"`

	ExamHallTicketGeneratedAt time.Time  `gorm:"type:timestamptz;not null;default:now();column:exam_hall_ticket_generated_at" json:"exam_hall_ticket_generated_at"`
	ExamHallTicketExpiresAt   *time.Time `gorm:"type:timestamptz;column:exam_hall_ticket_expires_at" json:"exam_hall_ticket_expires_at,omitempty"`

	ExamHallTicketCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:exam_hall_ticket_created_at" json:"exam_hall_ticket_created_at"`
	ExamHallTicketUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:exam_hall_ticket_updated_at" json:"exam_hall_ticket_updated_at"`
}

func (ExamHallTicketModel) TableName() string { return "exam_hall_tickets" }

func (m ExamHallTicketModel) ToStats() stats.HallTicket {
	return stats.HallTicket{
		ID:          m.ExamHallTicketID,
		StudentID:   m.ExamHallTicketStudentID,
		PDFURL:      m.ExamHallTicketPDFURL,
		GeneratedAt: m.ExamHallTicketGeneratedAt,
	}
}
