package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"examku_backend/internals/features/exams/model"
	"examku_backend/internals/features/exams/repository"
	"examku_backend/internals/features/exams/service"
	"examku_backend/internals/features/exams/stats"
	helper "examku_backend/internals/helpers"
)

/* ---------- fakes ---------- */

type fakeLoader struct {
	ov  service.Overview
	err error
}

func (f *fakeLoader) Load(context.Context, uuid.UUID, uuid.UUID) (service.Overview, error) {
	return f.ov, f.err
}

type fakeGateway struct {
	notifyErr error
	actor     *uuid.UUID
}

func (f *fakeGateway) EnrollStudents(_ context.Context, _ uuid.UUID, ids []uuid.UUID) (service.EnrollReply, error) {
	return service.EnrollReply{Success: true, Enrolled: len(ids)}, nil
}

func (f *fakeGateway) NotifyStudentsForEnrollment(ctx context.Context, _ []uuid.UUID, _ uuid.UUID) error {
	f.actor = service.ActorFrom(ctx)
	return f.notifyErr
}

func (f *fakeGateway) IssueHallTickets(context.Context, []uuid.UUID, uuid.UUID) error { return nil }

type busyRunner struct{}

func (busyRunner) Run(_ context.Context, _ uuid.UUID, a service.Action, sel *stats.Selection, _ []stats.StudentStatus) service.Outcome {
	return service.Outcome{Action: a, Status: service.OutcomeBusy, Message: "busy", Selection: sel.IDs(), Err: service.ErrActionInFlight}
}

type fakeStore struct {
	created *model.ExamModel
	exam    model.ExamModel
	err     error
	updates map[string]any
}

func (f *fakeStore) CreateExam(_ context.Context, m *model.ExamModel) error {
	m.ExamID = uuid.New()
	f.created = m
	return f.err
}

func (f *fakeStore) ListExams(context.Context, uuid.UUID, repository.ExamListQuery) ([]model.ExamModel, int64, error) {
	return []model.ExamModel{f.exam}, 1, f.err
}

func (f *fakeStore) FindExam(context.Context, uuid.UUID, uuid.UUID) (model.ExamModel, error) {
	return f.exam, f.err
}

func (f *fakeStore) PatchExam(_ context.Context, _, _ uuid.UUID, updates map[string]any) (model.ExamModel, error) {
	f.updates = updates
	return f.exam, f.err
}

type fakeSaver struct {
	err     error
	entries []service.ResultEntry
}

func (f *fakeSaver) SaveResults(_ context.Context, _, _ uuid.UUID, entries []service.ResultEntry) (service.SaveReport, error) {
	f.entries = entries
	return service.SaveReport{Saved: len(entries)}, f.err
}

/* ---------- fixtures ---------- */

type envelope struct {
	Success    bool                `json:"success"`
	Message    string              `json:"message"`
	ErrorCode  string              `json:"error_code"`
	Errors     map[string][]string `json:"errors"`
	Data       any                 `json:"data"`
	Pagination helper.Pagination   `json:"pagination"`
	Includes   map[string]any      `json:"includes"`
}

func do(t *testing.T, app *fiber.App, method, path, body string, headers ...string) (int, envelope) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, sonic.Unmarshal(raw, &env), string(raw))
	return resp.StatusCode, env
}

// snapshot: roster of three, first two not enrolled, third enrolled with 80/100.
func overviewFixture(published bool) (service.Overview, []uuid.UUID) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	roster := []stats.Student{
		{ID: ids[0], FirstName: "Ayu", RollNumber: "01"},
		{ID: ids[1], FirstName: "Bima", RollNumber: "02"},
		{ID: ids[2], FirstName: "Citra", RollNumber: "03"},
	}
	marks, passed := 80.0, true
	exam := model.ExamModel{ExamID: uuid.New(), ExamTitle: "Midterm", ExamMaxMarks: 100, ExamIsResultsPublished: published}
	snap := service.Aggregate(exam, roster,
		[]stats.Enrollment{{ID: uuid.New(), StudentID: ids[2], Status: stats.EnrollmentStatusEnrolled}},
		[]stats.Result{{ID: uuid.New(), StudentID: ids[2], ObtainedMarks: &marks, IsPassed: &passed}},
		nil)
	return service.Overview{Exam: exam, Snapshot: snap}, ids
}

func newApp(loader OverviewLoader, runner BulkRunner, store ExamStore, saver ResultSaver) *fiber.App {
	v := helper.NewValidator()
	app := fiber.New()
	ov := NewOverviewController(loader)
	bulk := NewBulkController(loader, runner, v)
	ex := NewExamController(store, v, "standard")
	res := NewResultController(saver, v)

	g := app.Group("/api/a/:school_id/exams")
	g.Post("/", ex.Create)
	g.Get("/", ex.List)
	g.Get("/:exam_id", ex.Get)
	g.Patch("/:exam_id", ex.Patch)
	g.Get("/:exam_id/overview", ov.Overview)
	g.Get("/:exam_id/statistics", ov.Statistics)
	g.Post("/:exam_id/bulk/:action", bulk.Run)
	g.Put("/:exam_id/results", res.Save)
	app.Get("/api/u/:school_id/exams/:exam_id/students/:student_id/standing", ov.Standing)
	return app
}

func examPath(suffix string) string {
	return fmt.Sprintf("/api/a/%s/exams/%s%s", uuid.New(), uuid.New(), suffix)
}

/* ---------- overview ---------- */

func TestOverview_FilterAndPage(t *testing.T) {
	ov, ids := overviewFixture(false)
	app := newApp(&fakeLoader{ov: ov}, nil, nil, nil)

	status, env := do(t, app, http.MethodGet, examPath("/overview?filter=not-enrolled&sort=roll_number&order=desc&per_page=1"), "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 2, env.Pagination.Total)
	assert.Equal(t, 2, env.Pagination.TotalPages)

	rows, ok := env.Data.([]any)
	require.True(t, ok)
	require.Len(t, rows, 1)
	assert.Equal(t, ids[1].String(), rows[0].(map[string]any)["id"])

	st := env.Includes["statistics"].(map[string]any)
	assert.EqualValues(t, 3, st["total_students"])
	assert.EqualValues(t, 1, st["enrolled"])
	assert.EqualValues(t, 33.33, st["enrollment_rate"])
	raw := env.Includes["raw_statistics"].(map[string]any)
	assert.InDelta(t, 33.3333, raw["enrollment_rate"], 0.001)
}

func TestOverview_PastLastPageIsEmpty(t *testing.T) {
	ov, _ := overviewFixture(false)
	app := newApp(&fakeLoader{ov: ov}, nil, nil, nil)

	status, env := do(t, app, http.MethodGet, examPath("/overview?page=9"), "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{}, env.Data)
}

func TestOverview_ErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{repository.ErrExamNotFound, http.StatusNotFound},
		{fmt.Errorf("exam x: %w", repository.ErrMalformedExam), http.StatusUnprocessableEntity},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			app := newApp(&fakeLoader{err: tc.err}, nil, nil, nil)
			status, env := do(t, app, http.MethodGet, examPath("/statistics"), "")
			assert.Equal(t, tc.want, status)
			assert.False(t, env.Success)
		})
	}
}

func TestOverview_BadExamID(t *testing.T) {
	app := newApp(&fakeLoader{}, nil, nil, nil)
	status, env := do(t, app, http.MethodGet, fmt.Sprintf("/api/a/%s/exams/nope/overview", uuid.New()), "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "BAD_REQUEST", env.ErrorCode)
}

/* ---------- standing ---------- */

func TestStanding(t *testing.T) {
	published, ids := overviewFixture(true)
	hidden, _ := overviewFixture(false)

	t.Run("unpublished", func(t *testing.T) {
		app := newApp(&fakeLoader{ov: hidden}, nil, nil, nil)
		status, _ := do(t, app, http.MethodGet, fmt.Sprintf("/api/u/%s/exams/%s/students/%s/standing", uuid.New(), uuid.New(), ids[2]), "")
		assert.Equal(t, http.StatusForbidden, status)
	})
	t.Run("not on roster", func(t *testing.T) {
		app := newApp(&fakeLoader{ov: published}, nil, nil, nil)
		status, _ := do(t, app, http.MethodGet, fmt.Sprintf("/api/u/%s/exams/%s/students/%s/standing", uuid.New(), uuid.New(), uuid.New()), "")
		assert.Equal(t, http.StatusNotFound, status)
	})
	t.Run("ranked", func(t *testing.T) {
		app := newApp(&fakeLoader{ov: published}, nil, nil, nil)
		status, env := do(t, app, http.MethodGet, fmt.Sprintf("/api/u/%s/exams/%s/students/%s/standing", uuid.New(), uuid.New(), ids[2]), "")
		require.Equal(t, http.StatusOK, status)
		data := env.Data.(map[string]any)
		assert.EqualValues(t, 1, data["student_rank"])
		assert.EqualValues(t, 1, data["appeared"])
	})
}

/* ---------- bulk ---------- */

func TestBulk_NotifySuccess(t *testing.T) {
	ov, ids := overviewFixture(false)
	gw := &fakeGateway{}
	runner := service.NewBulkActionCoordinator(gw, zap.NewNop())
	app := newApp(&fakeLoader{ov: ov}, runner, nil, nil)
	actor := uuid.New()

	body := fmt.Sprintf(`{"student_ids":["%s","%s","%s"]}`, ids[0], ids[1], ids[2])
	status, env := do(t, app, http.MethodPost, examPath("/bulk/notify"), body, HeaderActorID, actor.String())
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Enrollment notification sent to 2 student(s)", env.Message)

	data := env.Data.(map[string]any)
	assert.Equal(t, "done", data["status"])
	assert.EqualValues(t, 2, data["count"])
	assert.Equal(t, []any{}, data["selection"])
	require.NotNil(t, gw.actor)
	assert.Equal(t, actor, *gw.actor)
}

func TestBulk_FailureEchoesSelection(t *testing.T) {
	ov, ids := overviewFixture(false)
	runner := service.NewBulkActionCoordinator(&fakeGateway{notifyErr: errors.New("smtp down")}, zap.NewNop())
	app := newApp(&fakeLoader{ov: ov}, runner, nil, nil)

	body := fmt.Sprintf(`{"student_ids":["%s","%s"]}`, ids[0], ids[2])
	status, env := do(t, app, http.MethodPost, examPath("/bulk/notify"), body)
	require.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "UPSTREAM_ERROR", env.ErrorCode)
	assert.Equal(t, "Failed to send notifications", env.Message)

	data := env.Data.(map[string]any)
	assert.Equal(t, []any{ids[0].String(), ids[2].String()}, data["selection"])
}

func TestBulk_NothingToDo(t *testing.T) {
	ov, ids := overviewFixture(false)
	runner := service.NewBulkActionCoordinator(&fakeGateway{}, zap.NewNop())
	app := newApp(&fakeLoader{ov: ov}, runner, nil, nil)

	status, env := do(t, app, http.MethodPost, examPath("/bulk/issue-hall-tickets"), fmt.Sprintf(`{"student_ids":["%s"]}`, ids[0]))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "nothing_to_do", env.Data.(map[string]any)["status"])
}

func TestBulk_BusyAndBadInput(t *testing.T) {
	ov, ids := overviewFixture(false)
	app := newApp(&fakeLoader{ov: ov}, busyRunner{}, nil, nil)

	status, env := do(t, app, http.MethodPost, examPath("/bulk/enroll"), fmt.Sprintf(`{"student_ids":["%s"]}`, ids[0]))
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", env.ErrorCode)

	status, env = do(t, app, http.MethodPost, examPath("/bulk/enroll"), `{"student_ids":[]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, env.Errors, "student_ids")

	status, _ = do(t, app, http.MethodPost, examPath("/bulk/delete"), `{"student_ids":[]}`)
	assert.Equal(t, http.StatusNotFound, status)
}

/* ---------- exams ---------- */

func TestExamCreate(t *testing.T) {
	store := &fakeStore{}
	app := newApp(nil, nil, store, nil)
	start := time.Date(2026, 3, 2, 1, 0, 0, 0, time.UTC)
	body := fmt.Sprintf(`{"class_section_id":"%s","title":"Midterm","subject_name":"Math","max_marks":100,"start_at":"%s","end_at":"%s"}`,
		uuid.New(), start.Format(time.RFC3339), start.Add(2*time.Hour).Format(time.RFC3339))

	status, env := do(t, app, http.MethodPost, fmt.Sprintf("/api/a/%s/exams", uuid.New()), body)
	require.Equal(t, http.StatusCreated, status, env.Message)
	require.NotNil(t, store.created)
	assert.Equal(t, 120, store.created.ExamDurationMinutes)
	assert.EqualValues(t, 33, env.Data.(map[string]any)["effective_passing_marks"])
}

func TestExamCreate_Invalid(t *testing.T) {
	app := newApp(nil, nil, &fakeStore{}, nil)
	status, env := do(t, app, http.MethodPost, fmt.Sprintf("/api/a/%s/exams", uuid.New()), `{"title":"Midterm","max_marks":0}`)
	require.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, env.Errors, "max_marks")
	assert.Contains(t, env.Errors, "class_section_id")
}

func TestExamCreate_MissingSchool(t *testing.T) {
	app := fiber.New()
	app.Post("/exams", NewExamController(&fakeStore{}, helper.NewValidator(), "standard").Create)
	status, _ := do(t, app, http.MethodPost, "/exams", `{}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestExamPatch(t *testing.T) {
	store := &fakeStore{exam: model.ExamModel{ExamID: uuid.New(), ExamMaxMarks: 100, ExamIsResultsPublished: true}}
	app := newApp(nil, nil, store, nil)

	status, _ := do(t, app, http.MethodPatch, examPath(""), `{"is_results_published":true,"venue":null}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, store.updates["exam_is_results_published"])
	assert.Contains(t, store.updates, "exam_venue")

	status, env := do(t, app, http.MethodPatch, examPath(""), `{"status":"archived"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, env.Errors, "status")

	store.err = repository.ErrExamNotFound
	status, _ = do(t, app, http.MethodPatch, examPath(""), `{"title":"Final exam"}`)
	assert.Equal(t, http.StatusNotFound, status)
}

/* ---------- results ---------- */

func TestResultsSave(t *testing.T) {
	saver := &fakeSaver{}
	app := newApp(nil, nil, nil, saver)
	sid := uuid.New()

	status, env := do(t, app, http.MethodPut, examPath("/results"), fmt.Sprintf(`{"results":[{"student_id":"%s","obtained_marks":42}]}`, sid))
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, env.Data.(map[string]any)["saved"])
	require.Len(t, saver.entries, 1)
	assert.Equal(t, sid, saver.entries[0].StudentID)

	saver.err = fmt.Errorf("student %s: %w", sid, service.ErrNotEnrolled)
	status, _ = do(t, app, http.MethodPut, examPath("/results"), fmt.Sprintf(`{"results":[{"student_id":"%s","obtained_marks":42}]}`, sid))
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}
