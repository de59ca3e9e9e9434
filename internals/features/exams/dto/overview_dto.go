// file: internals/features/exams/dto/overview_dto.go
package dto

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"examku_backend/internals/features/exams/stats"
)

// OverviewQuery is the student table state carried in the query string.
type OverviewQuery struct {
	Filter stats.EnrollmentFilter
	Search string
	Tab    stats.Tab
	Sort   string
	Desc   bool
}

// ParseOverviewQuery reads ?filter= ?q= ?tab= ?sort= ?order=.
// Unknown filter values are passed through and behave as "all".
func ParseOverviewQuery(c *fiber.Ctx) OverviewQuery {
	q := OverviewQuery{
		Filter: stats.EnrollmentFilter(strings.ToLower(strings.TrimSpace(c.Query("filter", string(stats.FilterAll))))),
		Search: strings.TrimSpace(c.Query("q")),
		Tab:    stats.Tab(strings.ToLower(strings.TrimSpace(c.Query("tab", string(stats.TabEnrollment))))),
		Sort:   strings.ToLower(strings.TrimSpace(c.Query("sort", stats.SortRollNumber))),
		Desc:   strings.EqualFold(strings.TrimSpace(c.Query("order")), "desc"),
	}
	return q
}

// Apply filters then sorts a merged snapshot.
func (q OverviewQuery) Apply(merged []stats.StudentStatus) []stats.StudentStatus {
	return stats.SortStatuses(stats.FilterStudents(merged, q.Filter, q.Search, q.Tab), q.Sort, q.Desc)
}

type OrphanSummary struct {
	Enrollments []uuid.UUID `json:"enrollments"`
	Results     []uuid.UUID `json:"results"`
	HallTickets []uuid.UUID `json:"hall_tickets"`
	Total       int         `json:"total"`
}

func FromOrphans(o stats.OrphanReport) OrphanSummary {
	return OrphanSummary{
		Enrollments: nonNil(o.Enrollments),
		Results:     nonNil(o.Results),
		HallTickets: nonNil(o.HallTickets),
		Total:       o.Total(),
	}
}

type OverviewIncludes struct {
	Exam          ExamResponse     `json:"exam"`
	Statistics    stats.Statistics `json:"statistics"`
	RawStatistics stats.Statistics `json:"raw_statistics"`
	Orphans       OrphanSummary    `json:"orphans"`
	Filtered      int              `json:"filtered"`
	Cached        bool             `json:"cached"`
}

func nonNil(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}
	return ids
}
