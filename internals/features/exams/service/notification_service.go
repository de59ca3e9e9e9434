// file: internals/features/exams/service/notification_service.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"examku_backend/internals/features/exams/model"
	"examku_backend/internals/features/exams/repository"
)

// NotificationService writes outbox rows. Delivery (email, WhatsApp, ...) is
// another process reading exam_notifications.
type NotificationService struct {
	DB       *gorm.DB
	Repo     *repository.ExamRepository
	BaseURL  string
	Channels []string
}

func NewNotificationService(db *gorm.DB, repo *repository.ExamRepository, baseURL string) *NotificationService {
	return &NotificationService{DB: db, Repo: repo, BaseURL: strings.TrimRight(baseURL, "/"), Channels: []string{"email"}}
}

type EnrollReminderPayload struct {
	ExamID      uuid.UUID `json:"exam_id"`
	ExamTitle   string    `json:"exam_title"`
	SubjectName string    `json:"subject_name"`
	StartAt     time.Time `json:"start_at"`
	Venue       *string   `json:"venue,omitempty"`
	StudentID   uuid.UUID `json:"student_id"`
	StudentName string    `json:"student_name"`
	Email       string    `json:"email"`
	ActionURL   string    `json:"action_url"`
}

// NotifyStudentsForEnrollment enqueues an enrollment nudge for every rostered,
// not yet enrolled student among ids. Re-notifying the same student is a no-op.
func (s *NotificationService) NotifyStudentsForEnrollment(ctx context.Context, ids []uuid.UUID, examID uuid.UUID) error {
	exam, err := s.Repo.FindExamByID(ctx, examID)
	if err != nil {
		return err
	}
	students, err := s.Repo.RosterStudents(ctx, exam, ids)
	if err != nil {
		return err
	}
	enrolled, err := s.Repo.EnrolledStudentIDs(ctx, examID, ids)
	if err != nil {
		return err
	}

	var targets []model.SchoolStudentModel
	for _, st := range students {
		if _, ok := enrolled[st.SchoolStudentID]; !ok {
			targets = append(targets, st)
		}
	}
	rows, err := s.buildOutbox(exam, targets, model.TopicEnrollReminder, s.enrollURL(exam))
	if err != nil {
		return err
	}
	return s.enqueue(ctx, rows)
}

func (s *NotificationService) enrollURL(exam model.ExamModel) string {
	return fmt.Sprintf("%s/exams/%s/enroll", s.BaseURL, exam.ExamID)
}

func (s *NotificationService) examURL(exam model.ExamModel) string {
	return fmt.Sprintf("%s/exams/%s", s.BaseURL, exam.ExamID)
}

func (s *NotificationService) buildOutbox(exam model.ExamModel, students []model.SchoolStudentModel, topic, actionURL string) ([]model.ExamNotificationModel, error) {
	rows := make([]model.ExamNotificationModel, 0, len(students))
	for _, st := range students {
		payload, err := sonic.Marshal(EnrollReminderPayload{
			ExamID:      exam.ExamID,
			ExamTitle:   exam.ExamTitle,
			SubjectName: exam.ExamSubjectName,
			StartAt:     exam.ExamStartAt,
			Venue:       exam.ExamVenue,
			StudentID:   st.SchoolStudentID,
			StudentName: strings.TrimSpace(st.SchoolStudentFirstName + " " + st.SchoolStudentLastName),
			Email:       st.SchoolStudentEmail,
			ActionURL:   actionURL,
		})
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", topic, err)
		}
		rows = append(rows, model.ExamNotificationModel{
			ExamNotificationExamID:    exam.ExamID,
			ExamNotificationStudentID: st.SchoolStudentID,
			ExamNotificationTopic:     topic,
			ExamNotificationChannels:  pq.StringArray(append([]string(nil), s.Channels...)),
			ExamNotificationPayload:   datatypes.JSON(payload),
		})
	}
	return rows, nil
}

func (s *NotificationService) enqueue(ctx context.Context, rows []model.ExamNotificationModel) error {
	if len(rows) == 0 {
		return nil
	}
	err := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "exam_notification_exam_id"},
				{Name: "exam_notification_student_id"},
				{Name: "exam_notification_topic"},
			},
			DoNothing: true,
		}).
		CreateInBatches(&rows, 200).Error
	if err != nil {
		return fmt.Errorf("enqueue notifications: %w", err)
	}
	return nil
}
