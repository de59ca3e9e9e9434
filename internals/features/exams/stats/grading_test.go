package stats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradeScale_Grade(t *testing.T) {
	std := FindGradeScale(DefaultGradeScales, "standard")

	tests := []struct {
		pct  float64
		want string
	}{
		{100, "A+"},
		{90, "A+"},
		{89.99, "A"},
		{59, "C"},
		{33, "E"},
		{32.99, "F"},
		{0, "F"},
	}
	for _, tt := range tests {
		got, ok := std.Grade(tt.pct)
		assert.True(t, ok)
		assert.Equalf(t, tt.want, got, "pct=%v", tt.pct)
	}

	_, ok := GradeScale{Name: "strict", Bands: []GradeBand{{Label: "P", MinPercent: 50}}}.Grade(10)
	assert.False(t, ok)
}

func TestParseGradeScales(t *testing.T) {
	doc := `
scales:
  - name: simple
    bands:
      - {label: C, min_percent: 0}
      - {label: A, min_percent: 80}
      - {label: B, min_percent: 50}
`
	scales, err := ParseGradeScales(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, scales, 1)
	assert.Equal(t, "simple", scales[0].Name)
	assert.Equal(t, []string{"A", "B", "C"}, []string{
		scales[0].Bands[0].Label, scales[0].Bands[1].Label, scales[0].Bands[2].Label,
	})
}

func TestParseGradeScales_Invalid(t *testing.T) {
	for name, doc := range map[string]string{
		"empty":         "scales: []\n",
		"no name":       "scales:\n  - bands: [{label: A, min_percent: 1}]\n",
		"no bands":      "scales:\n  - name: x\n",
		"out of range":  "scales:\n  - name: x\n    bands: [{label: A, min_percent: 120}]\n",
		"duplicate":     "scales:\n  - name: x\n    bands: [{label: A, min_percent: 1}, {label: A, min_percent: 2}]\n",
		"not yaml list": "scales: nope\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseGradeScales(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadGradeScales_DefaultsWhenUnset(t *testing.T) {
	scales, err := LoadGradeScales("")
	require.NoError(t, err)
	assert.Equal(t, DefaultGradeScales, scales)

	_, err = LoadGradeScales("/nonexistent/grades.yaml")
	assert.Error(t, err)
}

func TestFindGradeScale_FallsBackToFirst(t *testing.T) {
	assert.Equal(t, "standard", FindGradeScale(DefaultGradeScales, "missing").Name)
	assert.Equal(t, "pass-fail", FindGradeScale(DefaultGradeScales, "pass-fail").Name)
	assert.Equal(t, "standard", FindGradeScale(nil, "x").Name)
}

func TestResultFromMarks(t *testing.T) {
	exam := ExamContext{MaxMarks: 100}
	std := DefaultGradeScales[0]

	r := ResultFromMarks(33, exam, std)
	require.NotNil(t, r.IsPassed)
	assert.True(t, *r.IsPassed, "passing marks are inclusive")
	assert.Equal(t, 33.0, *r.Percentage)
	assert.Equal(t, "E", *r.GradeLabel)
	assert.False(t, r.IsAbsent)

	r = ResultFromMarks(32.5, exam, std)
	assert.False(t, *r.IsPassed)
	assert.Equal(t, "F", *r.GradeLabel)

	r = ResultFromMarks(20, ExamContext{MaxMarks: 30, PassingMarks: fptr(15)}, std)
	assert.True(t, *r.IsPassed)
	assert.Equal(t, 66.67, *r.Percentage)
	assert.Equal(t, "B", *r.GradeLabel)
}

func TestAbsentResult(t *testing.T) {
	r := AbsentResult()
	assert.True(t, r.IsAbsent)
	assert.False(t, r.Passed())
	assert.Nil(t, r.ObtainedMarks)
	assert.Equal(t, AbsentGradeLabel, *r.GradeLabel)
}
