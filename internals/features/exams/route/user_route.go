// file: internals/features/exams/route/user_route.go
package route

import "github.com/gofiber/fiber/v2"

// ExamUserRoutes mounts under /api/u/:school_id.
func ExamUserRoutes(r fiber.Router, m *Module) {
	exams := m.ExamController()
	overview := m.OverviewController()

	g := r.Group("/exams")
	g.Get("/:exam_id", exams.Get)
	g.Get("/:exam_id/students/:student_id/standing", overview.Standing)
}
