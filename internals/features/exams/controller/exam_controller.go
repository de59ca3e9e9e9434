// file: internals/features/exams/controller/exam_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"examku_backend/internals/features/exams/dto"
	"examku_backend/internals/features/exams/repository"
	helper "examku_backend/internals/helpers"
)

/* =======================================================
   CONTROLLER
   ======================================================= */

type ExamController struct {
	Store        ExamStore
	Validate     *validator.Validate
	DefaultScale string
}

func NewExamController(store ExamStore, v *validator.Validate, defaultScale string) *ExamController {
	return &ExamController{Store: store, Validate: v, DefaultScale: defaultScale}
}

// POST /exams
func (ctl *ExamController) Create(c *fiber.Ctx) error {
	schoolID, err := helper.ResolveSchoolID(c)
	if err != nil {
		return writeError(c, err)
	}

	var req dto.CreateExamRequest
	if ok, resp := bindJSON(c, ctl.Validate, &req); !ok {
		return resp
	}
	req.Normalize(ctl.DefaultScale)
	if err := req.Check(); err != nil {
		return helper.JsonValidationError(c, map[string][]string{"passing_marks": {err.Error()}})
	}

	m := req.ToModel(schoolID)
	if err := ctl.Store.CreateExam(c.UserContext(), &m); err != nil {
		return writeError(c, err)
	}
	return helper.JsonCreated(c, "Exam created", dto.FromExamModel(c, m))
}

// GET /exams?class_section_id=&status=&q=&page=&per_page=
func (ctl *ExamController) List(c *fiber.Ctx) error {
	schoolID, err := helper.ResolveSchoolID(c)
	if err != nil {
		return writeError(c, err)
	}
	p := helper.ResolvePaging(c, 20, 100)

	q := repository.ExamListQuery{
		Status: c.Query("status"),
		Search: c.Query("q"),
		Offset: p.Offset,
		Limit:  p.Limit,
	}
	if raw := strings.TrimSpace(c.Query("class_section_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "class_section_id is not a valid UUID")
		}
		q.ClassSectionID = &id
	}

	rows, total, err := ctl.Store.ListExams(c.UserContext(), schoolID, q)
	if err != nil {
		return writeError(c, err)
	}
	items := dto.FromExamModels(c, rows)
	return helper.JsonList(c, "ok", items, helper.BuildPaginationFromPage(total, p.Page, p.PerPage, len(items)))
}

// GET /exams/:exam_id
func (ctl *ExamController) Get(c *fiber.Ctx) error {
	schoolID, examID, err := scope(c)
	if err != nil {
		return writeError(c, err)
	}
	m, err := ctl.Store.FindExam(c.UserContext(), schoolID, examID)
	if err != nil {
		return writeError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromExamModel(c, m))
}

// PATCH /exams/:exam_id
func (ctl *ExamController) Patch(c *fiber.Ctx) error {
	schoolID, examID, err := scope(c)
	if err != nil {
		return writeError(c, err)
	}

	var req dto.PatchExamRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	updates, fieldErrs := req.ToUpdates()
	if len(fieldErrs) > 0 {
		return helper.JsonValidationError(c, fieldErrs)
	}

	m, err := ctl.Store.PatchExam(c.UserContext(), schoolID, examID, updates)
	if err != nil {
		return writeError(c, err)
	}
	return helper.JsonUpdated(c, "Exam updated", dto.FromExamModel(c, m))
}
