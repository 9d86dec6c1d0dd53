package revisiondag

// AncestorsOf returns the set of revisions reachable from revs by
// repeatedly following Parents, including the seed revisions themselves.
// It exists as an independent check on PhaseSets's propagation (every
// revision PhaseSets assigns a phase to must be an ancestor of some
// head), grounded on the same "walk parents" idea PhaseSets uses, not as
// a new contract operation.
func (d *DAG) AncestorsOf(revs []uint32) Set {
	n := d.Len()
	seen := make([]bool, n)
	var out Set

	stack := append([]uint32(nil), revs...)
	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[r] {
			continue
		}
		seen[r] = true
		stack = append(stack, d.Parents(r)...)
	}

	// Push in descending order so Set can compact adjacent ids.
	for i := n - 1; i >= 0; i-- {
		if seen[uint32(i)] {
			out.Push(uint32(i))
		}
	}
	return out
}
