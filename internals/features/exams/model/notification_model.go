// file: internals/features/exams/model/notification_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Outbox topics picked up by the notification collaborator.
const (
	TopicEnrollReminder = "exam-enroll-reminder"
	TopicExamReminder   = "exam-reminder"
)

// ExamNotificationModel is an outbox row. Delivery happens elsewhere; this
// service only enqueues. (exam, student, topic) is unique so enqueueing twice
// is a no-op.
type ExamNotificationModel struct {
	ExamNotificationID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:exam_notification_id" json:"exam_notification_id"`
	ExamNotificationExamID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_exam_notifications_target,priority:1;column:exam_notification_exam_id" json:"exam_notification_exam_id"`
	ExamNotificationStudentID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_exam_notifications_target,priority:2;column:exam_notification_student_id" json:"exam_notification_student_id"`
	ExamNotificationTopic     string         `gorm:"type:varchar(40);not null;uniqueIndex:uq_exam_notifications_target,priority:3;column:exam_notification_topic" json:"exam_notification_topic"`
	ExamNotificationChannels  pq.StringArray `gorm:"type:text[];not null;default:'{}';column:exam_notification_channels" json:"exam_notification_channels"`
	ExamNotificationPayload   datatypes.JSON `gorm:"type:jsonb;not null;column:exam_notification_payload" json:"exam_notification_payload"`

	ExamNotificationCreatedAt    time.Time  `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:exam_notification_created_at" json:"exam_notification_created_at"`
	ExamNotificationDispatchedAt *time.Time `gorm:"type:timestamptz;index;column:exam_notification_dispatched_at" json:"exam_notification_dispatched_at,omitempty"`
}

func (ExamNotificationModel) TableName() string { return "exam_notifications" }
