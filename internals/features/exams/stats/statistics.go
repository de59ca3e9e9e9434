package stats

import "math"

// DefaultPassingRatio applies when an exam has no explicit passing marks.
const DefaultPassingRatio = 0.33

// Statistics is the exam summary. Values are raw; use Rounded for display.
type Statistics struct {
	TotalStudents   int `json:"total_students"`
	Enrolled        int `json:"enrolled"`
	NotEnrolled     int `json:"not_enrolled"`
	EnrolledResults int `json:"enrolled_results"`
	Appeared        int `json:"appeared"`
	Absent          int `json:"absent"`
	Passed          int `json:"passed"`
	Failed          int `json:"failed"`
	TicketsIssued   int `json:"tickets_issued"`

	AvgMarks        float64 `json:"avg_marks"`
	AvgPercent      float64 `json:"avg_percent"`
	TopScore        float64 `json:"top_score"`
	TopScorePercent float64 `json:"top_score_percent"`
	PassingMarks    float64 `json:"passing_marks"`

	EnrollmentRate float64 `json:"enrollment_rate"`
	AttendanceRate float64 `json:"attendance_rate"`
	SuccessRate    float64 `json:"success_rate"`
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 { return math.Round(v*100) / 100 }

// Rounded returns a copy with averages, percentages and rates at 2 decimals.
func (s Statistics) Rounded() Statistics {
	s.AvgMarks = Round2(s.AvgMarks)
	s.AvgPercent = Round2(s.AvgPercent)
	s.TopScorePercent = Round2(s.TopScorePercent)
	s.EnrollmentRate = Round2(s.EnrollmentRate)
	s.AttendanceRate = Round2(s.AttendanceRate)
	s.SuccessRate = Round2(s.SuccessRate)
	return s
}

// PassingMarks returns the explicit passing marks or ceil(max * 0.33).
func PassingMarks(exam ExamContext) float64 {
	if exam.PassingMarks != nil {
		return *exam.PassingMarks
	}
	return math.Ceil(exam.MaxMarks * DefaultPassingRatio)
}

// percentOf returns part/whole*100, or 0 when whole is not positive.
func percentOf(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}

// ComputeStatistics derives the exam summary from merged rows.
//
// Only results of enrolled students count. Success rate divides by the
// enrolled count, so a student who never appeared lowers it.
func ComputeStatistics(merged []StudentStatus, exam ExamContext) Statistics {
	var (
		st         Statistics
		totalMarks float64
		topScore   float64
		seenTop    bool
	)
	st.TotalStudents = len(merged)

	for _, row := range merged {
		if !row.IsEnrolled {
			st.NotEnrolled++
			continue
		}
		st.Enrolled++
		if row.HallTicket != nil {
			st.TicketsIssued++
		}
		if row.Result == nil {
			continue
		}
		st.EnrolledResults++
		if row.Result.IsAbsent {
			st.Absent++
			continue
		}

		st.Appeared++
		if row.Result.Passed() {
			st.Passed++
		}
		m := row.Result.Marks()
		totalMarks += m
		if !seenTop || m > topScore {
			topScore = m
			seenTop = true
		}
	}
	st.Failed = st.Appeared - st.Passed

	if st.Appeared > 0 {
		st.AvgMarks = totalMarks / float64(st.Appeared)
		st.TopScore = topScore
	}
	if st.AvgMarks > 0 {
		st.AvgPercent = percentOf(st.AvgMarks, exam.MaxMarks)
	}
	if st.TopScore > 0 {
		st.TopScorePercent = percentOf(st.TopScore, exam.MaxMarks)
	}
	st.PassingMarks = PassingMarks(exam)

	st.EnrollmentRate = percentOf(float64(st.Enrolled), float64(st.TotalStudents))
	st.AttendanceRate = percentOf(float64(st.Appeared), float64(st.Enrolled))
	st.SuccessRate = percentOf(float64(st.Passed), float64(st.Enrolled))
	return st
}
