// file: internals/features/exams/dto/action_dto.go
package dto

import (
	"github.com/google/uuid"

	"examku_backend/internals/features/exams/service"
	"examku_backend/internals/features/exams/stats"
)

type BulkActionRequest struct {
	StudentIDs []string `json:"student_ids" validate:"required,min=1,max=1000,dive,uuid"`
}

// Selection keeps request order; duplicates collapse to the first occurrence.
func (r BulkActionRequest) Selection() *stats.Selection {
	sel := stats.NewSelection()
	for _, raw := range r.StudentIDs {
		sel.Add(uuid.MustParse(raw))
	}
	return sel
}

type ResultEntryRequest struct {
	StudentID     string   `json:"student_id" validate:"required,uuid"`
	ObtainedMarks *float64 `json:"obtained_marks" validate:"omitempty,gte=0"`
	IsAbsent      bool     `json:"is_absent"`
	Remarks       *string  `json:"remarks,omitempty" validate:"omitempty,max=500"`
}

type SaveResultsRequest struct {
	Results []ResultEntryRequest `json:"results" validate:"required,min=1,max=1000,dive"`
}

func (r SaveResultsRequest) Entries() []service.ResultEntry {
	out := make([]service.ResultEntry, 0, len(r.Results))
	for _, e := range r.Results {
		out = append(out, service.ResultEntry{
			StudentID:     uuid.MustParse(e.StudentID),
			ObtainedMarks: e.ObtainedMarks,
			IsAbsent:      e.IsAbsent,
			Remarks:       trimPtr(e.Remarks),
		})
	}
	return out
}
