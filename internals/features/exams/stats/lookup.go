package stats

import "github.com/google/uuid"

// Index holds the three per-student lookups for one exam.
type Index struct {
	Enrollments map[uuid.UUID]Enrollment
	Results     map[uuid.UUID]Result
	HallTickets map[uuid.UUID]HallTicket
}

// keyByStudent folds rows into a map keyed by student id.
// Duplicate keys resolve last-write-wins: the row that appears later in the
// input replaces the earlier one.
func keyByStudent[T any](rows []T, key func(T) uuid.UUID) map[uuid.UUID]T {
	out := make(map[uuid.UUID]T, len(rows))
	for _, row := range rows {
		out[key(row)] = row
	}
	return out
}

// BuildIndex builds O(1) lookups from the three record streams.
func BuildIndex(enrollments []Enrollment, results []Result, hallTickets []HallTicket) Index {
	return Index{
		Enrollments: keyByStudent(enrollments, func(e Enrollment) uuid.UUID { return e.StudentID }),
		Results:     keyByStudent(results, func(r Result) uuid.UUID { return r.StudentID }),
		HallTickets: keyByStudent(hallTickets, func(h HallTicket) uuid.UUID { return h.StudentID }),
	}
}
