// file: internals/features/exams/service/bulk_action.go
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"examku_backend/internals/features/exams/stats"
)

type Action string

const (
	ActionNotify           Action = "notify"
	ActionEnroll           Action = "enroll"
	ActionIssueHallTickets Action = "issue-hall-tickets"
)

func ParseAction(s string) (Action, bool) {
	switch a := Action(strings.ToLower(strings.TrimSpace(s))); a {
	case ActionNotify, ActionEnroll, ActionIssueHallTickets:
		return a, true
	}
	return "", false
}

type OutcomeStatus string

const (
	OutcomeDone        OutcomeStatus = "done"
	OutcomeNothingToDo OutcomeStatus = "nothing_to_do"
	OutcomeFailed      OutcomeStatus = "failed"
	OutcomeBusy        OutcomeStatus = "busy"
)

// Outcome is what the operator sees after a bulk action. Selection is the
// selection after the action: empty on success, untouched otherwise.
type Outcome struct {
	Action    Action        `json:"action"`
	Status    OutcomeStatus `json:"status"`
	Message   string        `json:"message"`
	Count     int           `json:"count"`
	Eligible  []uuid.UUID   `json:"eligible"`
	Selection []uuid.UUID   `json:"selection"`
	Err       error         `json:"-"`
}

// EnrollReply is the enrollment collaborator's response contract.
type EnrollReply struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Error    string `json:"error,omitempty"`
	Enrolled int    `json:"enrolled"`
	Skipped  int    `json:"skipped"`
}

// Gateway is the set of external collaborators a bulk action calls.
type Gateway interface {
	EnrollStudents(ctx context.Context, examID uuid.UUID, studentIDs []uuid.UUID) (EnrollReply, error)
	NotifyStudentsForEnrollment(ctx context.Context, studentIDs []uuid.UUID, examID uuid.UUID) error
	IssueHallTickets(ctx context.Context, studentIDs []uuid.UUID, examID uuid.UUID) error
}

// BulkActionCoordinator partitions a selection and issues one collaborator
// call per action. At most one action per exam runs at a time.
type BulkActionCoordinator struct {
	Gateway Gateway
	Log     *zap.Logger

	mu       sync.Mutex
	inFlight map[uuid.UUID]Action
}

func NewBulkActionCoordinator(gw Gateway, log *zap.Logger) *BulkActionCoordinator {
	return &BulkActionCoordinator{Gateway: gw, Log: log, inFlight: map[uuid.UUID]Action{}}
}

func (c *BulkActionCoordinator) acquire(examID uuid.UUID, a Action) (Action, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if running, busy := c.inFlight[examID]; busy {
		return running, false
	}
	c.inFlight[examID] = a
	return a, true
}

func (c *BulkActionCoordinator) release(examID uuid.UUID) {
	c.mu.Lock()
	delete(c.inFlight, examID)
	c.mu.Unlock()
}

// Run executes action over the eligible part of sel. sel is cleared only on success.
func (c *BulkActionCoordinator) Run(ctx context.Context, examID uuid.UUID, action Action, sel *stats.Selection, merged []stats.StudentStatus) Outcome {
	out := Outcome{Action: action, Eligible: []uuid.UUID{}, Selection: sel.IDs()}

	if _, ok := ParseAction(string(action)); !ok {
		out.Status = OutcomeFailed
		out.Message = "An unexpected error occurred"
		out.Err = fmt.Errorf("%w: %q", ErrUnknownAction, action)
		return out
	}
	if running, ok := c.acquire(examID, action); !ok {
		out.Status = OutcomeBusy
		out.Message = fmt.Sprintf("Another action (%s) is still running for this exam", running)
		out.Err = ErrActionInFlight
		return out
	}
	defer c.release(examID)

	p := stats.PartitionSelection(sel.IDs(), merged)
	switch action {
	case ActionNotify:
		out.Eligible = p.NotifyEligible
	case ActionEnroll:
		out.Eligible = p.EnrollEligible
	case ActionIssueHallTickets:
		out.Eligible = p.TicketEligible
	}
	out.Count = len(out.Eligible)

	if out.Count == 0 {
		out.Status = OutcomeNothingToDo
		out.Message = nothingToDoMessage(action)
		return out
	}

	msg, err := c.call(ctx, examID, action, out.Eligible)
	if err != nil {
		out.Status = OutcomeFailed
		if msg == "" {
			msg = failureMessage(action)
		}
		out.Message = msg
		out.Err = err
		c.Log.Error("bulk action failed",
			zap.String("exam_id", examID.String()),
			zap.String("action", string(action)),
			zap.Int("eligible", out.Count),
			zap.Error(err),
		)
		return out
	}

	sel.Clear()
	out.Status = OutcomeDone
	out.Message = msg
	out.Selection = sel.IDs()
	c.Log.Info("bulk action done",
		zap.String("exam_id", examID.String()),
		zap.String("action", string(action)),
		zap.Int("count", out.Count),
	)
	return out
}

// call returns the success message, or the collaborator's own error message
// (may be empty) together with the error.
func (c *BulkActionCoordinator) call(ctx context.Context, examID uuid.UUID, action Action, ids []uuid.UUID) (string, error) {
	switch action {
	case ActionNotify:
		if err := c.Gateway.NotifyStudentsForEnrollment(ctx, ids, examID); err != nil {
			return "", err
		}
		return fmt.Sprintf("Enrollment notification sent to %d student(s)", len(ids)), nil
	case ActionEnroll:
		reply, err := c.Gateway.EnrollStudents(ctx, examID, ids)
		if err != nil {
			return reply.Error, err
		}
		if !reply.Success {
			return reply.Error, fmt.Errorf("enroll students: %s", reply.Error)
		}
		if reply.Message == "" {
			reply.Message = fmt.Sprintf("Enrolled %d students successfully", len(ids))
		}
		return reply.Message, nil
	case ActionIssueHallTickets:
		if err := c.Gateway.IssueHallTickets(ctx, ids, examID); err != nil {
			return "", err
		}
		return fmt.Sprintf("Hall tickets issued to %d student(s)", len(ids)), nil
	}
	return "", ErrUnknownAction
}

func nothingToDoMessage(a Action) string {
	if a == ActionIssueHallTickets {
		return "Selected students are either not enrolled or already have hall tickets"
	}
	return "Selected students are already enrolled"
}

func failureMessage(a Action) string {
	switch a {
	case ActionNotify:
		return "Failed to send notifications"
	case ActionIssueHallTickets:
		return "Failed to issue hall tickets"
	}
	return "An unexpected error occurred"
}
