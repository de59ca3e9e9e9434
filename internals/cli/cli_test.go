package cli

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"examku_backend/internals/features/exams/model"
	"examku_backend/internals/features/exams/service"
	"examku_backend/internals/features/exams/stats"
)

func TestRenderStats(t *testing.T) {
	ov := service.Overview{
		Exam:     model.ExamModel{ExamID: uuid.New(), ExamTitle: "Midterm"},
		Snapshot: stats.Snapshot{Stats: stats.Statistics{TotalStudents: 3, Enrolled: 1, EnrollmentRate: 100.0 / 3}},
	}

	out, err := renderStats(ov, false)
	require.NoError(t, err)
	var got struct {
		Title      string           `json:"title"`
		Statistics stats.Statistics `json:"statistics"`
	}
	require.NoError(t, sonic.Unmarshal(out, &got))
	assert.Equal(t, "Midterm", got.Title)
	assert.Equal(t, 33.33, got.Statistics.EnrollmentRate)

	out, err = renderStats(ov, true)
	require.NoError(t, err)
	require.NoError(t, sonic.Unmarshal(out, &got))
	assert.InDelta(t, 33.3333, got.Statistics.EnrollmentRate, 0.001)
}

func TestCommandTree(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "migrate", "stats", "seed"} {
		assert.True(t, names[want], want)
	}
	assert.NotNil(t, statsCmd.Flags().Lookup("school"))
	assert.NotNil(t, seedCmd.Flags().Lookup("section"))
}
