package deltaindex

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadPayload(t *testing.T) {
	pack := bytes.NewReader([]byte("hello world"))
	e := IndexEntry{PackEntryOffset: 6, PackEntrySize: 5}

	got, err := ReadPayload(pack, e)
	require.NoError(t, err)
	require.Equal(t, []byte("world"), got)
}

func TestReadPayload_OutOfRange(t *testing.T) {
	pack := bytes.NewReader([]byte("short"))
	e := IndexEntry{PackEntryOffset: 100, PackEntrySize: 5}

	_, err := ReadPayload(pack, e)
	require.Error(t, err)
}
