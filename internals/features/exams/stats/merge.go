package stats

import (
	"sort"

	"github.com/google/uuid"
)

// MergeStudentStatus joins the roster with the lookups, one row per roster
// student, in roster order. Lookup entries without a roster student are dropped.
func MergeStudentStatus(roster []Student, idx Index) []StudentStatus {
	out := make([]StudentStatus, 0, len(roster))
	for _, s := range roster {
		row := StudentStatus{Student: s}

		if e, ok := idx.Enrollments[s.ID]; ok {
			status := e.Status
			id := e.ID
			row.IsEnrolled = true
			row.EnrollmentStatus = &status
			row.EnrollmentID = &id
		}
		if r, ok := idx.Results[s.ID]; ok {
			row.Result = &r
		}
		if h, ok := idx.HallTickets[s.ID]; ok {
			row.HallTicket = &h
		}
		out = append(out, row)
	}
	return out
}

// Merge is BuildIndex followed by MergeStudentStatus.
func Merge(roster []Student, enrollments []Enrollment, results []Result, hallTickets []HallTicket) []StudentStatus {
	return MergeStudentStatus(roster, BuildIndex(enrollments, results, hallTickets))
}

// OrphanReport lists lookup keys that reference students outside the roster.
// Ids are sorted so reports are stable across runs.
type OrphanReport struct {
	Enrollments []uuid.UUID `json:"enrollments,omitempty"`
	Results     []uuid.UUID `json:"results,omitempty"`
	HallTickets []uuid.UUID `json:"hall_tickets,omitempty"`
}

func (o OrphanReport) Empty() bool {
	return len(o.Enrollments) == 0 && len(o.Results) == 0 && len(o.HallTickets) == 0
}

func (o OrphanReport) Total() int {
	return len(o.Enrollments) + len(o.Results) + len(o.HallTickets)
}

// Orphans reports the rows MergeStudentStatus silently excludes.
func Orphans(roster []Student, idx Index) OrphanReport {
	known := make(map[uuid.UUID]struct{}, len(roster))
	for _, s := range roster {
		known[s.ID] = struct{}{}
	}
	return OrphanReport{
		Enrollments: missingKeys(idx.Enrollments, known),
		Results:     missingKeys(idx.Results, known),
		HallTickets: missingKeys(idx.HallTickets, known),
	}
}

func missingKeys[T any](m map[uuid.UUID]T, known map[uuid.UUID]struct{}) []uuid.UUID {
	var out []uuid.UUID
	for id := range m {
		if _, ok := known[id]; !ok {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}
