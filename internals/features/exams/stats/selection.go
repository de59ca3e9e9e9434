package stats

import "github.com/google/uuid"

// Partition splits a selection into the subsets each bulk action may act on.
// EnrollEligible and TicketEligible are disjoint: one requires an enrollment,
// the other its absence.
type Partition struct {
	NotifyEligible []uuid.UUID `json:"notify_eligible"`
	EnrollEligible []uuid.UUID `json:"enroll_eligible"`
	TicketEligible []uuid.UUID `json:"ticket_eligible"`
}

// PartitionSelection classifies selected ids against merged rows. Duplicate
// ids count once, first occurrence wins the position. Ids without a merged
// row are ignored.
func PartitionSelection(selected []uuid.UUID, merged []StudentStatus) Partition {
	byID := make(map[uuid.UUID]*StudentStatus, len(merged))
	for i := range merged {
		byID[merged[i].ID] = &merged[i]
	}

	p := Partition{
		NotifyEligible: []uuid.UUID{},
		EnrollEligible: []uuid.UUID{},
		TicketEligible: []uuid.UUID{},
	}
	seen := make(map[uuid.UUID]struct{}, len(selected))
	for _, id := range selected {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		row, ok := byID[id]
		if !ok {
			continue
		}
		switch {
		case !row.IsEnrolled:
			p.NotifyEligible = append(p.NotifyEligible, id)
			p.EnrollEligible = append(p.EnrollEligible, id)
		case row.HallTicket == nil:
			p.TicketEligible = append(p.TicketEligible, id)
		}
	}
	return p
}

// Selection is an ordered set of student ids picked by an operator.
// The zero value is an empty selection.
type Selection struct {
	ids  []uuid.UUID
	seen map[uuid.UUID]struct{}
}

func NewSelection(ids ...uuid.UUID) *Selection {
	s := &Selection{}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

func (s *Selection) Has(id uuid.UUID) bool {
	_, ok := s.seen[id]
	return ok
}

// Add appends id unless it is already selected.
func (s *Selection) Add(id uuid.UUID) {
	if s.seen == nil {
		s.seen = map[uuid.UUID]struct{}{}
	}
	if _, ok := s.seen[id]; ok {
		return
	}
	s.seen[id] = struct{}{}
	s.ids = append(s.ids, id)
}

func (s *Selection) Clear() {
	s.ids = nil
	s.seen = nil
}

func (s *Selection) Len() int { return len(s.ids) }

// IDs returns a copy in selection order.
func (s *Selection) IDs() []uuid.UUID {
	return append([]uuid.UUID{}, s.ids...)
}
