package revisiondag

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func linearChain(t *testing.T, n int) *DAG {
	t.Helper()
	var data []byte
	data = append(data, encodeRecord(noParent, noParent, nodeOfByte(0))...)
	for i := 1; i < n; i++ {
		data = append(data, encodeRecord(int32(i-1), noParent, nodeOfByte(byte(i)))...)
	}
	d, err := Open(data)
	require.NoError(t, err)
	return d
}

// TestPhaseSets_LinearChain checks that on the chain 0<-1<-2<-3 with
// public_heads=[1] and draft_heads=[3], phase propagation yields
// public_set={0,1} and draft_set={2,3}.
func TestPhaseSets_LinearChain(t *testing.T) {
	d := linearChain(t, 4)

	public, draft := d.PhaseSets([]uint32{1}, []uint32{3})

	require.Equal(t, []uint32{1, 0}, public.ToSlice())
	require.Equal(t, []uint32{3, 2}, draft.ToSlice())
	require.Equal(t, 2, public.Len())
	require.Equal(t, 2, draft.Len())
}

// TestPhaseSets_PublicWinsTies checks that a revision named in both
// draftHeads and publicHeads ends up Public, per the documented
// draft-then-public assignment order.
func TestPhaseSets_PublicWinsTies(t *testing.T) {
	d := linearChain(t, 2)
	public, draft := d.PhaseSets([]uint32{1}, []uint32{1})
	require.True(t, public.Contains(1))
	require.False(t, draft.Contains(1))
}

func TestPhaseSets_Unassigned(t *testing.T) {
	d := linearChain(t, 3)
	public, draft := d.PhaseSets(nil, nil)
	require.Equal(t, 0, public.Len())
	require.Equal(t, 0, draft.Len())
}

func TestAncestorsOf(t *testing.T) {
	d := linearChain(t, 4)
	got := d.AncestorsOf([]uint32{2})
	require.Equal(t, []uint32{2, 1, 0}, got.ToSlice())
}

func TestAncestorsOf_MergeParents(t *testing.T) {
	var data []byte
	data = append(data, encodeRecord(noParent, noParent, nodeOfByte(0))...)
	data = append(data, encodeRecord(noParent, noParent, nodeOfByte(1))...)
	data = append(data, encodeRecord(0, 1, nodeOfByte(2))...)
	d, err := Open(data)
	require.NoError(t, err)

	got := d.AncestorsOf([]uint32{2})
	require.Equal(t, []uint32{2, 1, 0}, got.ToSlice())
}
