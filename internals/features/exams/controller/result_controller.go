// file: internals/features/exams/controller/result_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"examku_backend/internals/features/exams/dto"
	helper "examku_backend/internals/helpers"
)

type ResultController struct {
	Results  ResultSaver
	Validate *validator.Validate
}

func NewResultController(r ResultSaver, v *validator.Validate) *ResultController {
	return &ResultController{Results: r, Validate: v}
}

// PUT /exams/:exam_id/results
func (ctl *ResultController) Save(c *fiber.Ctx) error {
	schoolID, examID, err := scope(c)
	if err != nil {
		return writeError(c, err)
	}

	var req dto.SaveResultsRequest
	if ok, resp := bindJSON(c, ctl.Validate, &req); !ok {
		return resp
	}

	report, err := ctl.Results.SaveResults(requestContext(c), schoolID, examID, req.Entries())
	if err != nil {
		return writeError(c, err)
	}
	return helper.JsonUpdated(c, "Results saved", report)
}
