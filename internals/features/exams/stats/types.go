// file: internals/features/exams/stats/types.go
package stats

import (
	"time"

	"github.com/google/uuid"
)

// EnrollmentStatus mirrors exam_enrollments.exam_enrollment_status.
type EnrollmentStatus string

const (
	EnrollmentStatusEnrolled     EnrollmentStatus = "ENROLLED"
	EnrollmentStatusExempted     EnrollmentStatus = "EXEMPTED"
	EnrollmentStatusDisqualified EnrollmentStatus = "DISQUALIFIED"
	EnrollmentStatusCompleted    EnrollmentStatus = "COMPLETED"
)

// Student is a roster row. Identity is owned by the student-management side.
type Student struct {
	ID         uuid.UUID `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email"`
	RollNumber string    `json:"roll_number"`
}

type Enrollment struct {
	ID               uuid.UUID        `json:"id"`
	StudentID        uuid.UUID        `json:"student_id"`
	Status           EnrollmentStatus `json:"status"`
	EnrolledAt       time.Time        `json:"enrolled_at"`
	HallTicketIssued bool             `json:"hall_ticket_issued"`
}

// Result is one result row. IsPassed is nil while marks are not entered.
// Absent results carry no marks interpretation.
type Result struct {
	ID            uuid.UUID `json:"id"`
	StudentID     uuid.UUID `json:"student_id"`
	ObtainedMarks *float64  `json:"obtained_marks"`
	Percentage    *float64  `json:"percentage"`
	GradeLabel    *string   `json:"grade_label"`
	Remarks       *string   `json:"remarks"`
	IsPassed      *bool     `json:"is_passed"`
	IsAbsent      bool      `json:"is_absent"`
}

// Passed reports whether the row is an explicit pass.
func (r Result) Passed() bool { return r.IsPassed != nil && *r.IsPassed }

// Marks returns obtained marks, a missing value counts as 0.
func (r Result) Marks() float64 {
	if r.ObtainedMarks == nil {
		return 0
	}
	return *r.ObtainedMarks
}

type HallTicket struct {
	ID          uuid.UUID `json:"id"`
	StudentID   uuid.UUID `json:"student_id"`
	PDFURL      string    `json:"pdf_url"`
	GeneratedAt time.Time `json:"generated_at"`
}

// ExamContext is the read-only slice of an exam the engine needs.
type ExamContext struct {
	MaxMarks     float64
	PassingMarks *float64
}

// StudentStatus is the derived per-student row. It is rebuilt on every pass
// and never patched in place.
type StudentStatus struct {
	Student

	IsEnrolled       bool              `json:"is_enrolled"`
	EnrollmentStatus *EnrollmentStatus `json:"enrollment_status,omitempty"`
	EnrollmentID     *uuid.UUID        `json:"enrollment_id,omitempty"`
	Result           *Result           `json:"result,omitempty"`
	HallTicket       *HallTicket       `json:"hall_ticket,omitempty"`
}
