package stats

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

type EnrollmentFilter string

const (
	FilterAll         EnrollmentFilter = "all"
	FilterEnrolled    EnrollmentFilter = "enrolled"
	FilterNotEnrolled EnrollmentFilter = "not-enrolled"
)

type Tab string

const (
	TabEnrollment Tab = "enrollment"
	TabResults    Tab = "results"
	TabReports    Tab = "reports"
)

func foldText(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

func matchesQuery(row StudentStatus, q string) bool {
	return strings.Contains(foldText(row.FirstName), q) ||
		strings.Contains(foldText(row.LastName), q) ||
		strings.Contains(foldText(row.RollNumber), q) ||
		strings.Contains(foldText(row.Email), q)
}

// FilterStudents returns the subsequence of merged that passes, in order:
// the enrollment filter, the free-text query (any of first name, last name,
// roll number, email; case-insensitive substring), then the tab rule
// (results tab keeps enrolled rows only). Unknown filter values act as all.
func FilterStudents(merged []StudentStatus, filter EnrollmentFilter, query string, tab Tab) []StudentStatus {
	q := foldText(query)

	out := make([]StudentStatus, 0, len(merged))
	for _, row := range merged {
		switch filter {
		case FilterEnrolled:
			if !row.IsEnrolled {
				continue
			}
		case FilterNotEnrolled:
			if row.IsEnrolled {
				continue
			}
		}
		if q != "" && !matchesQuery(row, q) {
			continue
		}
		if tab == TabResults && !row.IsEnrolled {
			continue
		}
		out = append(out, row)
	}
	return out
}

// Sort keys accepted by SortStatuses.
const (
	SortRollNumber = "roll_number"
	SortName       = "name"
	SortMarks      = "marks"
	SortStatus     = "status"
)

// SortStatuses returns a stably sorted copy. Unknown keys keep input order.
// Rows without marks sort after rows with marks in either direction.
func SortStatuses(rows []StudentStatus, key string, desc bool) []StudentStatus {
	out := append([]StudentStatus(nil), rows...)

	var less func(a, b StudentStatus) bool
	switch key {
	case SortRollNumber:
		less = func(a, b StudentStatus) bool { return a.RollNumber < b.RollNumber }
	case SortName:
		less = func(a, b StudentStatus) bool {
			an, bn := foldText(a.FirstName+" "+a.LastName), foldText(b.FirstName+" "+b.LastName)
			return an < bn
		}
	case SortStatus:
		less = func(a, b StudentStatus) bool { return !a.IsEnrolled && b.IsEnrolled }
	case SortMarks:
		sort.SliceStable(out, func(i, j int) bool {
			hi, hj := hasMarks(out[i]), hasMarks(out[j])
			if hi != hj {
				return hi
			}
			if !hi {
				return false
			}
			if desc {
				return out[i].Result.Marks() > out[j].Result.Marks()
			}
			return out[i].Result.Marks() < out[j].Result.Marks()
		})
		return out
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

func hasMarks(row StudentStatus) bool {
	return row.Result != nil && !row.Result.IsAbsent && row.Result.ObtainedMarks != nil
}
