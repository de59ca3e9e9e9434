package stats

import "github.com/google/uuid"

// Standing is the student-facing view of an exam: class-wide figures plus the
// student's own rank. Rank and Percentile are nil unless the student appeared.
type Standing struct {
	TotalEnrolled  int      `json:"total_enrolled"`
	Appeared       int      `json:"appeared"`
	Passed         int      `json:"passed"`
	Failed         int      `json:"failed"`
	Absent         int      `json:"absent"`
	PassRate       float64  `json:"pass_rate"`
	AttendanceRate float64  `json:"attendance_rate"`
	AvgMarks       float64  `json:"avg_marks"`
	AvgPercentage  float64  `json:"avg_percentage"`
	HighestMarks   float64  `json:"highest_marks"`
	LowestMarks    float64  `json:"lowest_marks"`
	PassingMarks   float64  `json:"passing_marks"`
	StudentRank    *int     `json:"student_rank"`
	Percentile     *float64 `json:"student_percentile"`
	Result         *Result  `json:"result,omitempty"`
}

// ComputeStanding ranks studentID among appeared students. Ties share a rank
// (1, 2, 2, 4). Percentile is the share of appeared students scoring strictly
// below the student.
func ComputeStanding(merged []StudentStatus, studentID uuid.UUID, exam ExamContext) Standing {
	st := ComputeStatistics(merged, exam)
	out := Standing{
		TotalEnrolled:  st.Enrolled,
		Appeared:       st.Appeared,
		Passed:         st.Passed,
		Failed:         st.Failed,
		Absent:         st.Absent,
		PassRate:       Round2(st.SuccessRate),
		AttendanceRate: Round2(st.AttendanceRate),
		AvgMarks:       Round2(st.AvgMarks),
		AvgPercentage:  Round2(st.AvgPercent),
		HighestMarks:   st.TopScore,
		PassingMarks:   st.PassingMarks,
	}

	var (
		appeared []float64
		mine     *float64
	)
	for _, row := range merged {
		if !row.IsEnrolled || row.Result == nil || row.Result.IsAbsent {
			if row.ID == studentID && row.Result != nil {
				r := *row.Result
				out.Result = &r
			}
			continue
		}
		m := row.Result.Marks()
		appeared = append(appeared, m)
		if row.ID == studentID {
			v := m
			mine = &v
			r := *row.Result
			out.Result = &r
		}
	}

	for i, m := range appeared {
		if i == 0 || m < out.LowestMarks {
			out.LowestMarks = m
		}
	}

	if mine != nil {
		higher, lower := 0, 0
		for _, m := range appeared {
			switch {
			case m > *mine:
				higher++
			case m < *mine:
				lower++
			}
		}
		rank := higher + 1
		pct := Round2(float64(lower) / float64(len(appeared)) * 100)
		out.StudentRank = &rank
		out.Percentile = &pct
	}
	return out
}
