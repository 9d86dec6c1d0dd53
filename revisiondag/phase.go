package revisiondag

// Phase classifies a revision as public, draft, or not assigned a phase
// at all. The numeric ordering matters: PhaseSets relies on
// Unspecified < Draft < Public so that propagation can assign
// max(parent, child) without a branch on which phase "wins".
type Phase uint8

const (
	PhaseUnspecified Phase = iota
	PhaseDraft
	PhasePublic
)

func maxPhase(a, b Phase) Phase {
	if a > b {
		return a
	}
	return b
}

// PhaseSets sorts the revisions in [0, Len) into a public set and a draft
// set by propagating phases from the given heads backwards through the
// DAG. A revision that is not an ancestor of any head (or a head itself)
// stays Unspecified and appears in neither set.
//
// publicHeads and draftHeads seed the initial assignment; draft is
// assigned first and public second, so a revision named in both ends up
// Public. This order is part of the contract, not an incidental
// implementation detail.
//
// The walk proceeds from the highest revision down to 0. By the time a
// revision is visited, every one of its descendants has already
// propagated its phase to it, so a single descending pass suffices: no
// revision is visited before all of its phase-contributing descendants.
func (d *DAG) PhaseSets(publicHeads, draftHeads []uint32) (public, draft Set) {
	n := d.Len()
	phases := make([]Phase, n)

	for _, r := range draftHeads {
		phases[r] = PhaseDraft
	}
	for _, r := range publicHeads {
		phases[r] = PhasePublic
	}

	for r := n - 1; r >= 0; r-- {
		switch phases[r] {
		case PhasePublic:
			public.Push(uint32(r))
		case PhaseDraft:
			draft.Push(uint32(r))
		case PhaseUnspecified:
			// Not tracked: output size stays bounded by the
			// reachable-ancestor count of the heads, not by Len().
		}
		for _, p := range d.Parents(uint32(r)) {
			phases[p] = maxPhase(phases[p], phases[r])
		}
	}

	return public, draft
}
