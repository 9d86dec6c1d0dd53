package revisiondag

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetPushMergesAdjacent(t *testing.T) {
	var s Set
	s.Push(5)
	s.Push(4)
	s.Push(3)
	require.Equal(t, []Span{{Start: 3, End: 5}}, s.Spans())
	require.Equal(t, 3, s.Len())
}

func TestSetPushNonAdjacent(t *testing.T) {
	var s Set
	s.Push(5)
	s.Push(1)
	require.Equal(t, []Span{{Start: 5, End: 5}, {Start: 1, End: 1}}, s.Spans())
	require.Equal(t, 2, s.Len())
}

func TestSetContains(t *testing.T) {
	var s Set
	s.Push(5)
	s.Push(4)
	s.Push(1)
	require.True(t, s.Contains(4))
	require.True(t, s.Contains(5))
	require.True(t, s.Contains(1))
	require.False(t, s.Contains(3))
	require.False(t, s.Contains(0))
}

func TestSetToSlice(t *testing.T) {
	var s Set
	for _, r := range []uint32{6, 5, 4, 2} {
		s.Push(r)
	}
	require.Equal(t, []uint32{6, 5, 4, 2}, s.ToSlice())
}

func TestSetEmpty(t *testing.T) {
	var s Set
	require.Equal(t, 0, s.Len())
	require.False(t, s.Contains(0))
	require.Nil(t, s.ToSlice())
}
