package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"examku_backend/internals/features/exams/stats"
)

type fakeGateway struct {
	mu sync.Mutex

	enrollReply EnrollReply
	enrollErr   error
	notifyErr   error
	ticketErr   error

	// started/release let a test hold a call open
	started chan struct{}
	release chan struct{}

	enrolled []uuid.UUID
	notified []uuid.UUID
	ticketed []uuid.UUID
}

func (f *fakeGateway) hold() {
	if f.started != nil {
		close(f.started)
		<-f.release
	}
}

func (f *fakeGateway) EnrollStudents(_ context.Context, _ uuid.UUID, ids []uuid.UUID) (EnrollReply, error) {
	f.mu.Lock()
	f.enrolled = append(f.enrolled, ids...)
	f.mu.Unlock()
	return f.enrollReply, f.enrollErr
}

func (f *fakeGateway) NotifyStudentsForEnrollment(_ context.Context, ids []uuid.UUID, _ uuid.UUID) error {
	f.hold()
	f.mu.Lock()
	f.notified = append(f.notified, ids...)
	f.mu.Unlock()
	return f.notifyErr
}

func (f *fakeGateway) IssueHallTickets(_ context.Context, ids []uuid.UUID, _ uuid.UUID) error {
	f.mu.Lock()
	f.ticketed = append(f.ticketed, ids...)
	f.mu.Unlock()
	return f.ticketErr
}

// mixedRows builds two not-enrolled, one enrolled without ticket, one
// enrolled with ticket.
func mixedRows() []stats.StudentStatus {
	rows := make([]stats.StudentStatus, 4)
	for i := range rows {
		rows[i] = stats.StudentStatus{Student: stats.Student{ID: uuid.New()}}
	}
	eid := uuid.New()
	rows[2].IsEnrolled = true
	rows[2].EnrollmentID = &eid
	rows[3].IsEnrolled = true
	rows[3].EnrollmentID = &eid
	rows[3].HallTicket = &stats.HallTicket{ID: uuid.New(), StudentID: rows[3].ID}
	return rows
}

func selectAll(rows []stats.StudentStatus) *stats.Selection {
	sel := stats.NewSelection()
	for _, r := range rows {
		sel.Add(r.ID)
	}
	return sel
}

func TestRun_NotifySuccessClearsSelection(t *testing.T) {
	rows := mixedRows()
	gw := &fakeGateway{}
	c := NewBulkActionCoordinator(gw, zap.NewNop())
	sel := selectAll(rows)

	out := c.Run(context.Background(), uuid.New(), ActionNotify, sel, rows)

	assert.Equal(t, OutcomeDone, out.Status)
	assert.Equal(t, 2, out.Count)
	assert.Equal(t, "Enrollment notification sent to 2 student(s)", out.Message)
	assert.Equal(t, []uuid.UUID{rows[0].ID, rows[1].ID}, gw.notified)
	assert.Empty(t, out.Selection)
	assert.Zero(t, sel.Len())
	assert.NoError(t, out.Err)
}

func TestRun_FailureKeepsSelection(t *testing.T) {
	rows := mixedRows()
	gw := &fakeGateway{ticketErr: errors.New("boom")}
	c := NewBulkActionCoordinator(gw, zap.NewNop())
	sel := selectAll(rows)

	out := c.Run(context.Background(), uuid.New(), ActionIssueHallTickets, sel, rows)

	assert.Equal(t, OutcomeFailed, out.Status)
	assert.Equal(t, "Failed to issue hall tickets", out.Message)
	assert.Equal(t, []uuid.UUID{rows[2].ID}, out.Eligible)
	assert.Equal(t, 4, sel.Len())
	assert.Len(t, out.Selection, 4)
	assert.Error(t, out.Err)
}

func TestRun_NothingToDoSkipsGateway(t *testing.T) {
	rows := mixedRows()
	gw := &fakeGateway{}
	c := NewBulkActionCoordinator(gw, zap.NewNop())

	sel := stats.NewSelection(rows[2].ID, rows[3].ID)
	out := c.Run(context.Background(), uuid.New(), ActionEnroll, sel, rows)
	assert.Equal(t, OutcomeNothingToDo, out.Status)
	assert.Equal(t, "Selected students are already enrolled", out.Message)
	assert.Empty(t, gw.enrolled)
	assert.Equal(t, 2, sel.Len())

	sel = stats.NewSelection(rows[0].ID, rows[3].ID)
	out = c.Run(context.Background(), uuid.New(), ActionIssueHallTickets, sel, rows)
	assert.Equal(t, OutcomeNothingToDo, out.Status)
	assert.Equal(t, "Selected students are either not enrolled or already have hall tickets", out.Message)
	assert.Empty(t, gw.ticketed)
}

func TestRun_EnrollReplyMessages(t *testing.T) {
	rows := mixedRows()

	t.Run("collaborator message wins", func(t *testing.T) {
		gw := &fakeGateway{enrollReply: EnrollReply{Success: true, Message: "Enrolled 2 students successfully", Enrolled: 2}}
		out := NewBulkActionCoordinator(gw, zap.NewNop()).Run(context.Background(), uuid.New(), ActionEnroll, selectAll(rows), rows)
		assert.Equal(t, OutcomeDone, out.Status)
		assert.Equal(t, "Enrolled 2 students successfully", out.Message)
	})

	t.Run("unsuccessful reply is a failure", func(t *testing.T) {
		gw := &fakeGateway{enrollReply: EnrollReply{Success: false, Error: "Exam is closed"}}
		sel := selectAll(rows)
		out := NewBulkActionCoordinator(gw, zap.NewNop()).Run(context.Background(), uuid.New(), ActionEnroll, sel, rows)
		assert.Equal(t, OutcomeFailed, out.Status)
		assert.Equal(t, "Exam is closed", out.Message)
		assert.Equal(t, 4, sel.Len())
	})

	t.Run("error without message", func(t *testing.T) {
		gw := &fakeGateway{enrollErr: errors.New("timeout")}
		out := NewBulkActionCoordinator(gw, zap.NewNop()).Run(context.Background(), uuid.New(), ActionEnroll, selectAll(rows), rows)
		assert.Equal(t, OutcomeFailed, out.Status)
		assert.Equal(t, "An unexpected error occurred", out.Message)
	})
}

func TestRun_UnknownAction(t *testing.T) {
	rows := mixedRows()
	out := NewBulkActionCoordinator(&fakeGateway{}, zap.NewNop()).Run(context.Background(), uuid.New(), Action("delete"), selectAll(rows), rows)
	assert.Equal(t, OutcomeFailed, out.Status)
	assert.ErrorIs(t, out.Err, ErrUnknownAction)
}

func TestRun_BusyWhileActionInFlight(t *testing.T) {
	rows := mixedRows()
	gw := &fakeGateway{started: make(chan struct{}), release: make(chan struct{})}
	c := NewBulkActionCoordinator(gw, zap.NewNop())
	examID := uuid.New()

	done := make(chan Outcome, 1)
	go func() {
		done <- c.Run(context.Background(), examID, ActionNotify, selectAll(rows), rows)
	}()
	<-gw.started

	sel := selectAll(rows)
	busy := c.Run(context.Background(), examID, ActionIssueHallTickets, sel, rows)
	assert.Equal(t, OutcomeBusy, busy.Status)
	assert.ErrorIs(t, busy.Err, ErrActionInFlight)
	assert.Equal(t, 4, sel.Len())
	assert.Empty(t, gw.ticketed)

	// other exams are not blocked
	other := c.Run(context.Background(), uuid.New(), ActionIssueHallTickets, selectAll(rows), rows)
	assert.Equal(t, OutcomeDone, other.Status)

	close(gw.release)
	first := <-done
	require.Equal(t, OutcomeDone, first.Status)

	// guard released after completion
	again := c.Run(context.Background(), examID, ActionIssueHallTickets, selectAll(rows), rows)
	assert.Equal(t, OutcomeDone, again.Status)
}

func TestParseAction(t *testing.T) {
	for in, want := range map[string]Action{
		"notify":             ActionNotify,
		" ENROLL ":           ActionEnroll,
		"issue-hall-tickets": ActionIssueHallTickets,
	} {
		got, ok := ParseAction(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got)
	}
	_, ok := ParseAction("delete")
	assert.False(t, ok)
}
