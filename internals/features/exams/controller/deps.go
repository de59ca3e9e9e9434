// file: internals/features/exams/controller/deps.go
package controller

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"examku_backend/internals/features/exams/model"
	"examku_backend/internals/features/exams/repository"
	"examku_backend/internals/features/exams/service"
	"examku_backend/internals/features/exams/stats"
	helper "examku_backend/internals/helpers"
)

// HeaderActorID names the operator recorded on writes. Authentication sits in
// front of this service and is expected to set it.
const HeaderActorID = "X-Actor-ID"

type ExamStore interface {
	CreateExam(ctx context.Context, m *model.ExamModel) error
	ListExams(ctx context.Context, schoolID uuid.UUID, q repository.ExamListQuery) ([]model.ExamModel, int64, error)
	FindExam(ctx context.Context, schoolID, examID uuid.UUID) (model.ExamModel, error)
	PatchExam(ctx context.Context, schoolID, examID uuid.UUID, updates map[string]any) (model.ExamModel, error)
}

type OverviewLoader interface {
	Load(ctx context.Context, schoolID, examID uuid.UUID) (service.Overview, error)
}

type BulkRunner interface {
	Run(ctx context.Context, examID uuid.UUID, action service.Action, sel *stats.Selection, merged []stats.StudentStatus) service.Outcome
}

type ResultSaver interface {
	SaveResults(ctx context.Context, schoolID, examID uuid.UUID, entries []service.ResultEntry) (service.SaveReport, error)
}

// scope resolves school and exam ids from the request.
func scope(c *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	schoolID, err := helper.ResolveSchoolID(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	examID, err := helper.ParseUUIDParam(c, "exam_id")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return schoolID, examID, nil
}

// requestContext carries the actor header into the service layer.
func requestContext(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	if raw := strings.TrimSpace(c.Get(HeaderActorID)); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			ctx = service.WithActor(ctx, id)
		}
	}
	return ctx
}

// writeError maps domain and driver errors to the response envelope.
func writeError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return helper.JsonError(c, fe.Code, fe.Message)
	case errors.Is(err, repository.ErrExamNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Exam not found")
	case errors.Is(err, repository.ErrMalformedExam):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Exam max marks must be greater than 0")
	case errors.Is(err, service.ErrNotEnrolled), errors.Is(err, service.ErrMarksOutOfRange):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrNotRostered):
		return helper.JsonError(c, fiber.StatusNotFound, "Student not found in this exam")
	case errors.Is(err, context.DeadlineExceeded):
		return helper.JsonError(c, fiber.StatusGatewayTimeout, "Request timed out")
	}
	return helper.WritePGError(c, err)
}

// bindJSON parses and validates the body; ok is false when a response was written.
func bindJSON(c *fiber.Ctx, v *validator.Validate, dst any) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		return false, helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := v.Struct(dst); err != nil {
		if fields, ok := helper.ValidationFieldErrors(err); ok {
			return false, helper.JsonValidationError(c, fields)
		}
		return false, helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return true, nil
}
