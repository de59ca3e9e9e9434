package stats

import (
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// AbsentGradeLabel is stored for absent students.
const AbsentGradeLabel = "AB"

type GradeBand struct {
	Label      string  `yaml:"label" json:"label"`
	MinPercent float64 `yaml:"min_percent" json:"min_percent"`
}

type GradeScale struct {
	Name  string      `yaml:"name" json:"name"`
	Bands []GradeBand `yaml:"bands" json:"bands"`
}

// DefaultGradeScales is used when no grade scale file is configured.
var DefaultGradeScales = []GradeScale{
	{
		Name: "standard",
		Bands: []GradeBand{
			{Label: "A+", MinPercent: 90},
			{Label: "A", MinPercent: 80},
			{Label: "B+", MinPercent: 70},
			{Label: "B", MinPercent: 60},
			{Label: "C", MinPercent: 50},
			{Label: "D", MinPercent: 40},
			{Label: "E", MinPercent: 33},
			{Label: "F", MinPercent: 0},
		},
	},
	{
		Name: "pass-fail",
		Bands: []GradeBand{
			{Label: "PASS", MinPercent: 33},
			{Label: "FAIL", MinPercent: 0},
		},
	},
}

// Grade returns the label of the highest band whose minimum is reached.
func (g GradeScale) Grade(percentage float64) (string, bool) {
	best := -1
	for i, b := range g.Bands {
		if percentage >= b.MinPercent && (best < 0 || b.MinPercent > g.Bands[best].MinPercent) {
			best = i
		}
	}
	if best < 0 {
		return "", false
	}
	return g.Bands[best].Label, true
}

func (g GradeScale) validate() error {
	if g.Name == "" {
		return fmt.Errorf("grade scale without name")
	}
	if len(g.Bands) == 0 {
		return fmt.Errorf("grade scale %q has no bands", g.Name)
	}
	seen := map[string]struct{}{}
	for _, b := range g.Bands {
		if b.Label == "" {
			return fmt.Errorf("grade scale %q has a band without label", g.Name)
		}
		if b.MinPercent < 0 || b.MinPercent > 100 {
			return fmt.Errorf("grade scale %q band %q: min_percent out of range", g.Name, b.Label)
		}
		if _, dup := seen[b.Label]; dup {
			return fmt.Errorf("grade scale %q: duplicate label %q", g.Name, b.Label)
		}
		seen[b.Label] = struct{}{}
	}
	return nil
}

// ParseGradeScales reads a YAML document of the form
//
//	scales:
//	  - name: standard
//	    bands:
//	      - {label: A, min_percent: 80}
func ParseGradeScales(r io.Reader) ([]GradeScale, error) {
	var doc struct {
		Scales []GradeScale `yaml:"scales"`
	}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode grade scales: %w", err)
	}
	if len(doc.Scales) == 0 {
		return nil, fmt.Errorf("decode grade scales: no scales defined")
	}
	for i := range doc.Scales {
		if err := doc.Scales[i].validate(); err != nil {
			return nil, err
		}
		bands := doc.Scales[i].Bands
		sort.SliceStable(bands, func(a, b int) bool { return bands[a].MinPercent > bands[b].MinPercent })
	}
	return doc.Scales, nil
}

// LoadGradeScales reads scales from path, or returns the defaults when path is empty.
func LoadGradeScales(path string) ([]GradeScale, error) {
	if path == "" {
		return DefaultGradeScales, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open grade scales: %w", err)
	}
	defer f.Close()
	return ParseGradeScales(f)
}

// FindGradeScale looks a scale up by name, falling back to the first one.
func FindGradeScale(scales []GradeScale, name string) GradeScale {
	for _, s := range scales {
		if s.Name == name {
			return s
		}
	}
	if len(scales) > 0 {
		return scales[0]
	}
	return DefaultGradeScales[0]
}

// ResultFromMarks fills percentage, pass flag and grade label for entered marks.
// Passing is inclusive: marks equal to the passing marks pass.
func ResultFromMarks(marks float64, exam ExamContext, scale GradeScale) Result {
	m := marks
	pct := Round2(percentOf(marks, exam.MaxMarks))
	passed := marks >= PassingMarks(exam)

	r := Result{
		ObtainedMarks: &m,
		Percentage:    &pct,
		IsPassed:      &passed,
	}
	if label, ok := scale.Grade(pct); ok {
		r.GradeLabel = &label
	}
	return r
}

// AbsentResult is the canonical row for an absent student.
func AbsentResult() Result {
	failed := false
	label := AbsentGradeLabel
	return Result{
		IsAbsent:   true,
		IsPassed:   &failed,
		GradeLabel: &label,
	}
}
