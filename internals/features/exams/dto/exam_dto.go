// file: internals/features/exams/dto/exam_dto.go
package dto

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"examku_backend/internals/features/exams/model"
	"examku_backend/internals/features/exams/stats"
	"examku_backend/internals/helpers/dbtime"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

type CreateExamRequest struct {
	ClassSectionID  string    `json:"class_section_id" validate:"required,uuid"`
	Title           string    `json:"title" validate:"required,min=3,max=180"`
	SubjectName     string    `json:"subject_name" validate:"required,max=120"`
	SubjectCode     *string   `json:"subject_code,omitempty" validate:"omitempty,max=40"`
	SessionTitle    *string   `json:"session_title,omitempty" validate:"omitempty,max=120"`
	MaxMarks        float64   `json:"max_marks" validate:"gt=0"`
	PassingMarks    *float64  `json:"passing_marks,omitempty" validate:"omitempty,gte=0"`
	GradeScale      string    `json:"grade_scale,omitempty" validate:"omitempty,max=40"`
	StartAt         time.Time `json:"start_at" validate:"required"`
	EndAt           time.Time `json:"end_at" validate:"required,gtfield=StartAt"`
	DurationMinutes int       `json:"duration_minutes,omitempty" validate:"omitempty,gte=0"`
	Mode            string    `json:"mode,omitempty" validate:"omitempty,oneof=ONLINE OFFLINE"`
	Venue           *string   `json:"venue,omitempty" validate:"omitempty,max=160"`
}

var ErrPassingAboveMax = errors.New("passing_marks must not exceed max_marks")

func (r *CreateExamRequest) Normalize(defaultScale string) {
	r.Title = strings.TrimSpace(r.Title)
	r.SubjectName = strings.TrimSpace(r.SubjectName)
	r.Mode = strings.ToUpper(strings.TrimSpace(r.Mode))
	r.GradeScale = strings.TrimSpace(r.GradeScale)
	if r.GradeScale == "" {
		r.GradeScale = defaultScale
	}
	if r.Mode == "" {
		r.Mode = string(model.ExamModeOffline)
	}
	r.SubjectCode = trimPtr(r.SubjectCode)
	r.SessionTitle = trimPtr(r.SessionTitle)
	r.Venue = trimPtr(r.Venue)
}

// Check runs the cross-field rules the validator tags cannot express.
func (r *CreateExamRequest) Check() error {
	if r.PassingMarks != nil && *r.PassingMarks > r.MaxMarks {
		return ErrPassingAboveMax
	}
	return nil
}

func (r *CreateExamRequest) ToModel(schoolID uuid.UUID) model.ExamModel {
	duration := r.DurationMinutes
	if duration == 0 {
		duration = int(r.EndAt.Sub(r.StartAt).Minutes())
	}
	return model.ExamModel{
		ExamSchoolID:        schoolID,
		ExamClassSectionID:  uuid.MustParse(r.ClassSectionID),
		ExamTitle:           r.Title,
		ExamSubjectName:     r.SubjectName,
		ExamSubjectCode:     r.SubjectCode,
		ExamSessionTitle:    r.SessionTitle,
		ExamMaxMarks:        r.MaxMarks,
		ExamPassingMarks:    r.PassingMarks,
		ExamGradeScale:      r.GradeScale,
		ExamStartAt:         r.StartAt.UTC(),
		ExamEndAt:           r.EndAt.UTC(),
		ExamDurationMinutes: duration,
		ExamMode:            model.ExamMode(r.Mode),
		ExamStatus:          model.ExamStatusUpcoming,
		ExamVenue:           r.Venue,
	}
}

/* =======================================================
   PATCH DTO (tri-state)
   ======================================================= */

type PatchExamRequest struct {
	Title              Optional[string]            `json:"title"`
	SubjectName        Optional[string]            `json:"subject_name"`
	SubjectCode        Optional[Nullable[string]]  `json:"subject_code"`
	SessionTitle       Optional[Nullable[string]]  `json:"session_title"`
	MaxMarks           Optional[float64]           `json:"max_marks"`
	PassingMarks       Optional[Nullable[float64]] `json:"passing_marks"`
	GradeScale         Optional[string]            `json:"grade_scale"`
	StartAt            Optional[time.Time]         `json:"start_at"`
	EndAt              Optional[time.Time]         `json:"end_at"`
	DurationMinutes    Optional[int]               `json:"duration_minutes"`
	Mode               Optional[string]            `json:"mode"`
	Status             Optional[string]            `json:"status"`
	Venue              Optional[Nullable[string]]  `json:"venue"`
	IsResultsPublished Optional[bool]              `json:"is_results_published"`
}

// ToUpdates validates present fields and builds the column update map.
// Field errors are keyed by json name.
func (p *PatchExamRequest) ToUpdates() (map[string]any, map[string][]string) {
	up := map[string]any{}
	errs := map[string][]string{}
	bad := func(field, msg string) { errs[field] = append(errs[field], msg) }

	if p.Title.Present {
		v := strings.TrimSpace(p.Title.Value)
		if len(v) < 3 || len(v) > 180 {
			bad("title", "must be 3..180 characters")
		}
		up["exam_title"] = v
	}
	if p.SubjectName.Present {
		v := strings.TrimSpace(p.SubjectName.Value)
		if v == "" {
			bad("subject_name", "is required")
		}
		up["exam_subject_name"] = v
	}
	if p.SubjectCode.Present {
		up["exam_subject_code"] = trimPtr(p.SubjectCode.Value.Ptr())
	}
	if p.SessionTitle.Present {
		up["exam_session_title"] = trimPtr(p.SessionTitle.Value.Ptr())
	}
	if p.MaxMarks.Present {
		if p.MaxMarks.Value <= 0 {
			bad("max_marks", "must be greater than 0")
		}
		up["exam_max_marks"] = p.MaxMarks.Value
	}
	if p.PassingMarks.Present {
		v := p.PassingMarks.Value.Ptr()
		if v != nil && *v < 0 {
			bad("passing_marks", "must be at least 0")
		}
		if v != nil && p.MaxMarks.Present && *v > p.MaxMarks.Value {
			bad("passing_marks", ErrPassingAboveMax.Error())
		}
		up["exam_passing_marks"] = v
	}
	if p.GradeScale.Present {
		up["exam_grade_scale"] = strings.TrimSpace(p.GradeScale.Value)
	}
	if p.StartAt.Present {
		up["exam_start_at"] = p.StartAt.Value.UTC()
	}
	if p.EndAt.Present {
		up["exam_end_at"] = p.EndAt.Value.UTC()
	}
	if p.StartAt.Present && p.EndAt.Present && !p.EndAt.Value.After(p.StartAt.Value) {
		bad("end_at", "must be after start_at")
	}
	if p.DurationMinutes.Present {
		if p.DurationMinutes.Value < 0 {
			bad("duration_minutes", "must be at least 0")
		}
		up["exam_duration_minutes"] = p.DurationMinutes.Value
	}
	if p.Mode.Present {
		m := model.ExamMode(strings.ToUpper(strings.TrimSpace(p.Mode.Value)))
		if !m.Valid() {
			bad("mode", "must be one of [ONLINE OFFLINE]")
		}
		up["exam_mode"] = m
	}
	if p.Status.Present {
		s := model.ExamStatus(strings.ToUpper(strings.TrimSpace(p.Status.Value)))
		if !s.Valid() {
			bad("status", "must be one of [UPCOMING ONGOING COMPLETED CANCELLED]")
		}
		up["exam_status"] = s
	}
	if p.Venue.Present {
		up["exam_venue"] = trimPtr(p.Venue.Value.Ptr())
	}
	if p.IsResultsPublished.Present {
		up["exam_is_results_published"] = p.IsResultsPublished.Value
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return up, nil
}

/* =======================================================
   RESPONSE DTO
   ======================================================= */

type ExamResponse struct {
	ExamID             uuid.UUID `json:"exam_id"`
	SchoolID           uuid.UUID `json:"school_id"`
	ClassSectionID     uuid.UUID `json:"class_section_id"`
	Title              string    `json:"title"`
	SubjectName        string    `json:"subject_name"`
	SubjectCode        *string   `json:"subject_code,omitempty"`
	SessionTitle       *string   `json:"session_title,omitempty"`
	MaxMarks           float64   `json:"max_marks"`
	PassingMarks       *float64  `json:"passing_marks,omitempty"`
	EffectivePassing   float64   `json:"effective_passing_marks"`
	GradeScale         string    `json:"grade_scale"`
	StartAt            time.Time `json:"start_at"`
	EndAt              time.Time `json:"end_at"`
	DurationMinutes    int       `json:"duration_minutes"`
	Mode               string    `json:"mode"`
	Status             string    `json:"status"`
	Venue              *string   `json:"venue,omitempty"`
	IsResultsPublished bool      `json:"is_results_published"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// FromExamModel renders times in the school timezone.
func FromExamModel(c *fiber.Ctx, m model.ExamModel) ExamResponse {
	return ExamResponse{
		ExamID:             m.ExamID,
		SchoolID:           m.ExamSchoolID,
		ClassSectionID:     m.ExamClassSectionID,
		Title:              m.ExamTitle,
		SubjectName:        m.ExamSubjectName,
		SubjectCode:        m.ExamSubjectCode,
		SessionTitle:       m.ExamSessionTitle,
		MaxMarks:           m.ExamMaxMarks,
		PassingMarks:       m.ExamPassingMarks,
		EffectivePassing:   stats.PassingMarks(m.Context()),
		GradeScale:         m.ExamGradeScale,
		StartAt:            dbtime.ToSchoolTime(c, m.ExamStartAt),
		EndAt:              dbtime.ToSchoolTime(c, m.ExamEndAt),
		DurationMinutes:    m.ExamDurationMinutes,
		Mode:               string(m.ExamMode),
		Status:             string(m.ExamStatus),
		Venue:              m.ExamVenue,
		IsResultsPublished: m.ExamIsResultsPublished,
		CreatedAt:          dbtime.ToSchoolTime(c, m.ExamCreatedAt),
		UpdatedAt:          dbtime.ToSchoolTime(c, m.ExamUpdatedAt),
	}
}

func FromExamModels(c *fiber.Ctx, rows []model.ExamModel) []ExamResponse {
	out := make([]ExamResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, FromExamModel(c, m))
	}
	return out
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
