// file: internals/features/exams/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"examku_backend/internals/middlewares"
)

// ExamAdminRoutes mounts under /api/a/:school_id.
func ExamAdminRoutes(r fiber.Router, m *Module) {
	exams := m.ExamController()
	overview := m.OverviewController()
	bulk := m.BulkController()
	results := m.ResultController()

	g := r.Group("/exams")
	g.Post("/", exams.Create)
	g.Get("/", exams.List)
	g.Get("/:exam_id", exams.Get)
	g.Patch("/:exam_id", exams.Patch)

	g.Get("/:exam_id/overview", overview.Overview)     // filtered + paginated student rows
	g.Get("/:exam_id/statistics", overview.Statistics) // display + raw
	g.Post("/:exam_id/bulk/:action", middlewares.BulkActionRateLimiter(), bulk.Run) // notify | enroll | issue-hall-tickets
	g.Put("/:exam_id/results", results.Save)
}
