package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"examku_backend/internals/features/exams/model"
)

func TestValidateExam(t *testing.T) {
	assert.NoError(t, ValidateExam(model.ExamModel{ExamMaxMarks: 100}))

	for _, max := range []float64{0, -5} {
		err := ValidateExam(model.ExamModel{ExamID: uuid.New(), ExamMaxMarks: max})
		assert.True(t, errors.Is(err, ErrMalformedExam), "max=%v", max)
	}
}

func TestFingerprintString_ChangesWithEachStream(t *testing.T) {
	at := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	later := at.Add(time.Second)
	base := fingerprintRow{RosterCount: 30, RosterAt: &at, EnrollmentCount: 20, EnrollmentAt: &at}
	fp := base.String(at)

	assert.Equal(t, fp, base.String(at))
	assert.NotEqual(t, fp, base.String(later), "exam update")

	bumped := base
	bumped.ResultCount = 1
	assert.NotEqual(t, fp, bumped.String(at))

	touched := base
	touched.EnrollmentAt = &later
	assert.NotEqual(t, fp, touched.String(at))
}

func TestMapRows(t *testing.T) {
	id := uuid.New()
	out := mapRows([]model.SchoolStudentModel{{SchoolStudentID: id, SchoolStudentRollNumber: "R-1"}}, model.SchoolStudentModel.ToStats)
	assert.Len(t, out, 1)
	assert.Equal(t, id, out[0].ID)
	assert.Equal(t, "R-1", out[0].RollNumber)

	assert.Empty(t, mapRows(nil, model.SchoolStudentModel.ToStats))
}
