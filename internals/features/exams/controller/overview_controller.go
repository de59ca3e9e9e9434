// file: internals/features/exams/controller/overview_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"examku_backend/internals/features/exams/dto"
	"examku_backend/internals/features/exams/stats"
	helper "examku_backend/internals/helpers"
)

type OverviewController struct {
	Loader OverviewLoader
}

func NewOverviewController(o OverviewLoader) *OverviewController {
	return &OverviewController{Loader: o}
}

// GET /exams/:exam_id/overview?filter=&q=&tab=&sort=&order=&page=&per_page=
func (ctl *OverviewController) Overview(c *fiber.Ctx) error {
	schoolID, examID, err := scope(c)
	if err != nil {
		return writeError(c, err)
	}
	ov, err := ctl.Loader.Load(c.UserContext(), schoolID, examID)
	if err != nil {
		return writeError(c, err)
	}

	rows := dto.ParseOverviewQuery(c).Apply(ov.Snapshot.Merged)
	p := helper.ResolvePaging(c, 50, 500)
	page := helper.PageSlice(rows, p)

	includes := dto.OverviewIncludes{
		Exam:          dto.FromExamModel(c, ov.Exam),
		Statistics:    ov.Snapshot.Stats.Rounded(),
		RawStatistics: ov.Snapshot.Stats,
		Orphans:       dto.FromOrphans(ov.Snapshot.Orphans),
		Filtered:      len(rows),
		Cached:        ov.Cached,
	}
	return helper.JsonListEx(c, "ok", page,
		helper.BuildPaginationFromPage(int64(len(rows)), p.Page, p.PerPage, len(page)), includes)
}

// GET /exams/:exam_id/statistics
func (ctl *OverviewController) Statistics(c *fiber.Ctx) error {
	schoolID, examID, err := scope(c)
	if err != nil {
		return writeError(c, err)
	}
	ov, err := ctl.Loader.Load(c.UserContext(), schoolID, examID)
	if err != nil {
		return writeError(c, err)
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"statistics":     ov.Snapshot.Stats.Rounded(),
		"raw_statistics": ov.Snapshot.Stats,
	})
}

// GET /exams/:exam_id/students/:student_id/standing
func (ctl *OverviewController) Standing(c *fiber.Ctx) error {
	schoolID, examID, err := scope(c)
	if err != nil {
		return writeError(c, err)
	}
	studentID, err := helper.ParseUUIDParam(c, "student_id")
	if err != nil {
		return writeError(c, err)
	}

	ov, err := ctl.Loader.Load(c.UserContext(), schoolID, examID)
	if err != nil {
		return writeError(c, err)
	}
	if !ov.Exam.ExamIsResultsPublished {
		return helper.JsonError(c, fiber.StatusForbidden, "Results are not published yet")
	}
	if !onRoster(ov.Snapshot.Merged, studentID) {
		return helper.JsonError(c, fiber.StatusNotFound, "Student not found in this exam")
	}
	return helper.JsonOK(c, "ok", stats.ComputeStanding(ov.Snapshot.Merged, studentID, ov.Exam.Context()))
}

func onRoster(merged []stats.StudentStatus, id uuid.UUID) bool {
	for _, row := range merged {
		if row.ID == id {
			return true
		}
	}
	return false
}
