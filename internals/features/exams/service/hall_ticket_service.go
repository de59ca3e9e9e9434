// file: internals/features/exams/service/hall_ticket_service.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"examku_backend/internals/features/exams/model"
	"examku_backend/internals/features/exams/repository"
)

type HallTicketService struct {
	DB      *gorm.DB
	Repo    *repository.ExamRepository
	BaseURL string
	QRSize  int
}

func NewHallTicketService(db *gorm.DB, repo *repository.ExamRepository, baseURL string) *HallTicketService {
	return &HallTicketService{DB: db, Repo: repo, BaseURL: strings.TrimRight(baseURL, "/"), QRSize: qrDefaultSize}
}

// HallTicketPayload is what the QR code on a ticket encodes.
type HallTicketPayload struct {
	Type         string    `json:"type"`
	ExamID       uuid.UUID `json:"exam_id"`
	StudentID    uuid.UUID `json:"student_id"`
	EnrollmentID uuid.UUID `json:"enrollment_id"`
	RollNumber   string    `json:"roll_number,omitempty"`
	IssuedAt     time.Time `json:"issued_at"`
}

// IssueHallTickets creates tickets for enrolled students among ids that do not
// hold one yet, and flags their enrollments. Runs in one transaction.
func (s *HallTicketService) IssueHallTickets(ctx context.Context, ids []uuid.UUID, examID uuid.UUID) error {
	exam, err := s.Repo.FindExamByID(ctx, examID)
	if err != nil {
		return err
	}
	enrollments, err := s.Repo.Enrollments(ctx, examID, dedupe(ids))
	if err != nil {
		return err
	}
	ticketed, err := s.Repo.TicketedStudentIDs(ctx, examID, ids)
	if err != nil {
		return err
	}
	students, err := s.Repo.RosterStudents(ctx, exam, ids)
	if err != nil {
		return err
	}
	rolls := make(map[uuid.UUID]string, len(students))
	for _, st := range students {
		rolls[st.SchoolStudentID] = st.SchoolStudentRollNumber
	}

	now := time.Now().UTC()
	var (
		tickets       []model.ExamHallTicketModel
		enrollmentIDs []uuid.UUID
	)
	for _, e := range enrollments {
		if _, done := ticketed[e.ExamEnrollmentStudentID]; done {
			continue
		}
		t, err := s.buildTicket(exam, e, rolls[e.ExamEnrollmentStudentID], now)
		if err != nil {
			return err
		}
		tickets = append(tickets, t)
		enrollmentIDs = append(enrollmentIDs, e.ExamEnrollmentID)
	}
	if len(tickets) == 0 {
		return nil
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "exam_hall_ticket_exam_id"}, {Name: "exam_hall_ticket_student_id"}},
			DoNothing: true,
		}).Create(&tickets).Error; err != nil {
			return fmt.Errorf("insert hall tickets: %w", err)
		}
		if err := tx.Model(&model.ExamEnrollmentModel{}).
			Where("exam_enrollment_id IN ?", enrollmentIDs).
			Updates(map[string]any{
				"exam_enrollment_hall_ticket_issued":    true,
				"exam_enrollment_hall_ticket_issued_at": now,
			}).Error; err != nil {
			return fmt.Errorf("flag enrollments: %w", err)
		}
		return nil
	})
}

func (s *HallTicketService) buildTicket(exam model.ExamModel, e model.ExamEnrollmentModel, roll string, now time.Time) (model.ExamHallTicketModel, error) {
	payload, err := sonic.Marshal(HallTicketPayload{
		Type:         "hall-ticket",
		ExamID:       exam.ExamID,
		StudentID:    e.ExamEnrollmentStudentID,
		EnrollmentID: e.ExamEnrollmentID,
		RollNumber:   roll,
		IssuedAt:     now,
	})
	if err != nil {
		return model.ExamHallTicketModel{}, fmt.Errorf("encode hall ticket payload: %w", err)
	}
	qr, err := QRDataURL(string(payload), s.QRSize)
	if err != nil {
		return model.ExamHallTicketModel{}, err
	}
	expires := exam.ExamEndAt
	return model.ExamHallTicketModel{
		ExamHallTicketExamID:      exam.ExamID,
		ExamHallTicketStudentID:   e.ExamEnrollmentStudentID,
		ExamHallTicketPDFURL:      s.ticketURL(exam.ExamID, e.ExamEnrollmentStudentID),
		ExamHallTicketQRCode:      qr,
		ExamHallTicketQRPayload:   datatypes.JSON(payload),
		ExamHallTicketGeneratedAt: now,
		ExamHallTicketExpiresAt:   &expires,
	}, nil
}

func (s *HallTicketService) ticketURL(examID, studentID uuid.UUID) string {
	return fmt.Sprintf("%s/halltickets/%s/%s.pdf", s.BaseURL, examID, studentID)
}
