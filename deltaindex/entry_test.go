package deltaindex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeltaBaseOffsetRoundTrip(t *testing.T) {
	cases := []DeltaBaseOffset{
		FullText(),
		Missing(),
		AtOffset(0),
		AtOffset(123456),
	}
	for _, c := range cases {
		got, err := decodeDeltaBaseOffset(c.encode())
		require.NoError(t, err)
		require.Equal(t, c, got)
	}
}

func TestDeltaBaseOffsetInvalidSentinel(t *testing.T) {
	_, err := decodeDeltaBaseOffset(-3)
	require.Error(t, err)
	var invalid *InvalidDeltaBaseOffsetError
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, int32(-3), invalid.Value)
}

func TestEntryRoundTrip(t *testing.T) {
	node, _ := NodeFromSlice(bytesOfLen(NodeSize, 0x42))
	e := IndexEntry{
		Node:            node,
		DeltaBaseOffset: AtOffset(80),
		PackEntryOffset: 1000,
		PackEntrySize:   42,
	}
	buf := encodeEntry(e)
	require.Len(t, buf, EntrySize)

	got, err := decodeEntry(buf)
	require.NoError(t, err)
	require.Equal(t, e, got)
}

func TestDecodeEntry_ShortBuffer(t *testing.T) {
	_, err := decodeEntry(make([]byte, EntrySize-1))
	require.Error(t, err)
}
