// file: internals/features/exams/controller/bulk_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"examku_backend/internals/features/exams/dto"
	"examku_backend/internals/features/exams/service"
	helper "examku_backend/internals/helpers"
)

type BulkController struct {
	Loader   OverviewLoader
	Runner   BulkRunner
	Validate *validator.Validate
}

func NewBulkController(o OverviewLoader, r BulkRunner, v *validator.Validate) *BulkController {
	return &BulkController{Loader: o, Runner: r, Validate: v}
}

// POST /exams/:exam_id/bulk/:action  body {student_ids: [...]}
//
// The partition runs against a fresh merge, so eligibility reflects the
// current state rather than what the client last saw.
func (ctl *BulkController) Run(c *fiber.Ctx) error {
	schoolID, examID, err := scope(c)
	if err != nil {
		return writeError(c, err)
	}
	action, ok := service.ParseAction(c.Params("action"))
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "Unknown action")
	}

	var req dto.BulkActionRequest
	if ok, resp := bindJSON(c, ctl.Validate, &req); !ok {
		return resp
	}

	ctx := requestContext(c)
	ov, err := ctl.Loader.Load(ctx, schoolID, examID)
	if err != nil {
		return writeError(c, err)
	}

	out := ctl.Runner.Run(ctx, ov.Exam.ExamID, action, req.Selection(), ov.Snapshot.Merged)
	switch out.Status {
	case service.OutcomeDone, service.OutcomeNothingToDo:
		return helper.JsonOK(c, out.Message, out)
	case service.OutcomeBusy:
		return helper.JsonErrorData(c, fiber.StatusConflict, out.Message, out)
	default:
		return helper.JsonErrorData(c, fiber.StatusBadGateway, out.Message, out)
	}
}
