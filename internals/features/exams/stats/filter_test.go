package stats

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func filterFixture() []StudentStatus {
	roster := []Student{
		{ID: uuid.New(), FirstName: "Aisyah", LastName: "Putri", Email: "aisyah@school.test", RollNumber: "A-01"},
		{ID: uuid.New(), FirstName: "Budi", LastName: "Santoso", Email: "budi@school.test", RollNumber: "A-02"},
		{ID: uuid.New(), FirstName: "Chandra", LastName: "Wijaya", Email: "cw@mail.test", RollNumber: "B-07"},
		{ID: uuid.New(), FirstName: "José", LastName: "Ramírez", Email: "jose@school.test", RollNumber: "B-08"},
	}
	return Merge(roster,
		[]Enrollment{enroll(roster[0]), enroll(roster[2])},
		[]Result{passResult(roster[0], 90), failResult(roster[2], 10)},
		nil)
}

func ids(rows []StudentStatus) []uuid.UUID {
	out := make([]uuid.UUID, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func TestFilterStudents(t *testing.T) {
	merged := filterFixture()
	a, b, c, d := merged[0].ID, merged[1].ID, merged[2].ID, merged[3].ID

	tests := []struct {
		name   string
		filter EnrollmentFilter
		query  string
		tab    Tab
		want   []uuid.UUID
	}{
		{name: "all, no query, enrollment tab", filter: FilterAll, tab: TabEnrollment, want: []uuid.UUID{a, b, c, d}},
		{name: "enrolled only", filter: FilterEnrolled, tab: TabEnrollment, want: []uuid.UUID{a, c}},
		{name: "not enrolled only", filter: FilterNotEnrolled, tab: TabEnrollment, want: []uuid.UUID{b, d}},
		{name: "results tab keeps enrolled", filter: FilterAll, tab: TabResults, want: []uuid.UUID{a, c}},
		{name: "results tab with not-enrolled filter is empty", filter: FilterNotEnrolled, tab: TabResults, want: []uuid.UUID{}},
		{name: "reports tab adds nothing", filter: FilterAll, tab: TabReports, want: []uuid.UUID{a, b, c, d}},
		{name: "query on first name ignores case", filter: FilterAll, query: "BUDI", tab: TabEnrollment, want: []uuid.UUID{b}},
		{name: "query on last name", filter: FilterAll, query: "wij", tab: TabEnrollment, want: []uuid.UUID{c}},
		{name: "query on roll number", filter: FilterAll, query: "b-0", tab: TabEnrollment, want: []uuid.UUID{c, d}},
		{name: "query on email", filter: FilterAll, query: "@school.test", tab: TabEnrollment, want: []uuid.UUID{a, b, d}},
		{name: "query with accents", filter: FilterAll, query: "ramírez", tab: TabEnrollment, want: []uuid.UUID{d}},
		{name: "query combined with filter", filter: FilterEnrolled, query: "a-", tab: TabEnrollment, want: []uuid.UUID{a}},
		{name: "no match", filter: FilterAll, query: "zzz", tab: TabEnrollment, want: []uuid.UUID{}},
		{name: "unknown filter acts as all", filter: "bogus", tab: TabEnrollment, want: []uuid.UUID{a, b, c, d}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterStudents(merged, tt.filter, tt.query, tt.tab)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterStudents_DoesNotMutateInput(t *testing.T) {
	merged := filterFixture()
	before := ids(merged)
	_ = FilterStudents(merged, FilterEnrolled, "a", TabResults)
	assert.Equal(t, before, ids(merged))
}

func TestSortStatuses(t *testing.T) {
	merged := filterFixture()
	a, b, c, d := merged[0].ID, merged[1].ID, merged[2].ID, merged[3].ID

	assert.Equal(t, []uuid.UUID{d, c, b, a}, ids(SortStatuses(merged, SortRollNumber, true)))
	assert.Equal(t, []uuid.UUID{a, b, c, d}, ids(SortStatuses(merged, SortName, false)))
	assert.Equal(t, []uuid.UUID{b, d, a, c}, ids(SortStatuses(merged, SortStatus, false)))
	assert.Equal(t, []uuid.UUID{c, a, b, d}, ids(SortStatuses(merged, SortMarks, false)))
	assert.Equal(t, []uuid.UUID{a, c, b, d}, ids(SortStatuses(merged, SortMarks, true)))
	assert.Equal(t, []uuid.UUID{a, b, c, d}, ids(SortStatuses(merged, "unknown", true)))
	assert.Equal(t, []uuid.UUID{a, b, c, d}, ids(merged))
}
