// file: internals/route/details/exam_routes.go
package details

import (
	examRoutes "examku_backend/internals/features/exams/route"

	"github.com/gofiber/fiber/v2"
)

/* ===================== ADMIN ===================== */
// Exam management and the operator overview, scoped by :school_id
func ExamAdminRoutes(r fiber.Router, m *examRoutes.Module) {
	examRoutes.ExamAdminRoutes(r, m)
}

/* ===================== USER ===================== */
// Student-facing reads
func ExamUserRoutes(r fiber.Router, m *examRoutes.Module) {
	examRoutes.ExamUserRoutes(r, m)
}
