package deltaindex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNodeCompare(t *testing.T) {
	a, _ := NodeFromSlice(bytesOfLen(NodeSize, 0x01))
	b, _ := NodeFromSlice(bytesOfLen(NodeSize, 0x02))

	require.True(t, a.Less(b))
	require.False(t, b.Less(a))
	require.Equal(t, 0, a.Compare(a))
}

func TestNodeFromSlice_WrongLength(t *testing.T) {
	_, ok := NodeFromSlice(make([]byte, NodeSize-1))
	require.False(t, ok)
}

func TestNodePrefix(t *testing.T) {
	n, _ := NodeFromSlice(append([]byte{0xAB, 0xCD}, make([]byte, NodeSize-2)...))
	require.Equal(t, uint16(0xAB), n.prefix(false))
	require.Equal(t, uint16(0xABCD), n.prefix(true))
}

func bytesOfLen(n int, fill byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = fill
	}
	return b
}
