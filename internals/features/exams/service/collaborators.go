// file: internals/features/exams/service/collaborators.go
package service

import (
	"context"

	"github.com/google/uuid"
)

// Collaborators is the in-process Gateway.
type Collaborators struct {
	Enrollment   *EnrollmentService
	Notification *NotificationService
	HallTickets  *HallTicketService
}

var _ Gateway = Collaborators{}

func (c Collaborators) EnrollStudents(ctx context.Context, examID uuid.UUID, ids []uuid.UUID) (EnrollReply, error) {
	return c.Enrollment.EnrollStudents(ctx, examID, ids)
}

func (c Collaborators) NotifyStudentsForEnrollment(ctx context.Context, ids []uuid.UUID, examID uuid.UUID) error {
	return c.Notification.NotifyStudentsForEnrollment(ctx, ids, examID)
}

func (c Collaborators) IssueHallTickets(ctx context.Context, ids []uuid.UUID, examID uuid.UUID) error {
	return c.HallTickets.IssueHallTickets(ctx, ids, examID)
}
