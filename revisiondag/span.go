package revisiondag

// Span is a contiguous, inclusive range of revision ids [Start, End].
type Span struct {
	Start, End uint32
}

// Set is a compact representation of a set of revision ids as a list of
// contiguous spans. It accepts revisions in descending order — the order
// PhaseSets produces them in — collapsing adjacent ids into a single
// span as it goes.
type Set struct {
	spans []Span // stored with Start <= End, highest span first
}

// Push adds rev to the set. Callers must push in strictly descending
// order; pushing out of order still records the revision correctly but
// forfeits the compaction this type exists for.
func (s *Set) Push(rev uint32) {
	if n := len(s.spans); n > 0 && s.spans[n-1].Start == rev+1 {
		s.spans[n-1].Start = rev
		return
	}
	s.spans = append(s.spans, Span{Start: rev, End: rev})
}

// Contains reports whether rev is a member of the set.
func (s Set) Contains(rev uint32) bool {
	for _, sp := range s.spans {
		if rev >= sp.Start && rev <= sp.End {
			return true
		}
	}
	return false
}

// Len returns the total number of revisions represented, summed across
// spans.
func (s Set) Len() int {
	n := 0
	for _, sp := range s.spans {
		n += int(sp.End-sp.Start) + 1
	}
	return n
}

// Spans returns the underlying contiguous ranges, highest first.
func (s Set) Spans() []Span {
	return append([]Span(nil), s.spans...)
}

// ToSlice expands the set into an explicit, descending list of
// revisions. Intended for tests and small sets; callers working with
// large sets should iterate Spans() instead.
func (s Set) ToSlice() []uint32 {
	var out []uint32
	for _, sp := range s.spans {
		for r := sp.End; ; r-- {
			out = append(out, r)
			if r == sp.Start {
				break
			}
		}
	}
	return out
}
