package service

import "lanterna/internal/domain"

// outcomeRing keeps the most recent probe outcomes in arrival order.
// When full, the oldest entry is dropped.
type outcomeRing struct {
	entries []domain.ProbeOutcome
	size    int
}

func newOutcomeRing(size int) *outcomeRing {
	if size <= 0 {
		size = 1
	}
	return &outcomeRing{size: size}
}

func (r *outcomeRing) add(outcome domain.ProbeOutcome) {
	r.entries = append(r.entries, outcome)
	if len(r.entries) > r.size {
		r.entries = r.entries[1:]
	}
}

// snapshot returns a copy of the entries, oldest first
func (r *outcomeRing) snapshot() []domain.ProbeOutcome {
	out := make([]domain.ProbeOutcome, len(r.entries))
	copy(out, r.entries)
	return out
}
