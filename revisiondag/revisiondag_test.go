package revisiondag

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// encodeRecord builds one RecordSize-byte packed revision record. Only
// p1/p2/node are meaningful to this package; the other fields are filled
// with arbitrary non-zero bytes to guard against offset mistakes reading
// the wrong field.
func encodeRecord(p1, p2 int32, node [32]byte) []byte {
	rec := make([]byte, RecordSize)
	binary.BigEndian.PutUint64(rec[0:8], 0xdeadbeefcafebabe)
	binary.BigEndian.PutUint32(rec[8:12], 0x11111111)
	binary.BigEndian.PutUint32(rec[12:16], 0x22222222)
	binary.BigEndian.PutUint32(rec[16:20], 0x33333333)
	binary.BigEndian.PutUint32(rec[20:24], 0x44444444)
	binary.BigEndian.PutUint32(rec[24:28], uint32(p1))
	binary.BigEndian.PutUint32(rec[28:32], uint32(p2))
	copy(rec[32:64], node[:])
	return rec
}

func nodeOfByte(b byte) [32]byte {
	var n [32]byte
	for i := range n {
		n[i] = b
	}
	return n
}

func TestRecordSize(t *testing.T) {
	require.Equal(t, 64, RecordSize)
}

func TestOpen_InvalidLength(t *testing.T) {
	_, err := Open(make([]byte, RecordSize+1))
	require.Error(t, err)
}

func TestOpen_Empty(t *testing.T) {
	d, err := Open(nil)
	require.NoError(t, err)
	require.Equal(t, 0, d.Len())
}

// TestParentsOnDisk_LinearChain builds revisions 0..3 where each revision's
// sole parent is its predecessor, and checks Parents and Node for each.
func TestParentsOnDisk_LinearChain(t *testing.T) {
	var data []byte
	data = append(data, encodeRecord(noParent, noParent, nodeOfByte(0))...)
	data = append(data, encodeRecord(0, noParent, nodeOfByte(1))...)
	data = append(data, encodeRecord(1, noParent, nodeOfByte(2))...)
	data = append(data, encodeRecord(2, noParent, nodeOfByte(3))...)

	d, err := Open(data)
	require.NoError(t, err)
	require.Equal(t, 4, d.Len())

	require.Nil(t, d.Parents(0))
	require.Equal(t, []uint32{0}, d.Parents(1))
	require.Equal(t, []uint32{1}, d.Parents(2))
	require.Equal(t, []uint32{2}, d.Parents(3))

	require.Equal(t, nodeOfByte(2), d.Node(2))
}

// TestParentsOnDisk_MergeScenarios checks that p1=-1, p2=-1 decodes as
// no parents; p1=5, p2=-1 decodes as one parent; p1=5, p2=7 decodes as
// two parents.
func TestParentsOnDisk_MergeScenarios(t *testing.T) {
	var data []byte
	for i := 0; i < 8; i++ {
		data = append(data, encodeRecord(noParent, noParent, nodeOfByte(byte(i)))...)
	}
	data = append(data, encodeRecord(noParent, noParent, nodeOfByte(8))...)
	d, err := Open(data)
	require.NoError(t, err)
	require.Equal(t, 9, d.Len())
	require.Nil(t, d.Parents(8))

	// Rebuild a record at revision 9 referencing p1=5, p2=-1.
	data2 := append(data, encodeRecord(5, noParent, nodeOfByte(9))...)
	d2, err := Open(data2)
	require.NoError(t, err)
	require.Equal(t, []uint32{5}, d2.Parents(9))

	// And a merge record at revision 10 referencing p1=5, p2=7.
	data3 := append(data2, encodeRecord(5, 7, nodeOfByte(10))...)
	d3, err := Open(data3)
	require.NoError(t, err)
	require.Equal(t, []uint32{5, 7}, d3.Parents(10))
}

func TestInsert_Tail(t *testing.T) {
	data := encodeRecord(noParent, noParent, nodeOfByte(0))
	d, err := Open(data)
	require.NoError(t, err)

	rev := d.Insert([]uint32{0})
	require.Equal(t, uint32(1), rev)
	require.Equal(t, 2, d.Len())
	require.Equal(t, []uint32{0}, d.Parents(1))

	rev2 := d.Insert([]uint32{0, 1})
	require.Equal(t, uint32(2), rev2)
	require.Equal(t, []uint32{0, 1}, d.Parents(2))
}

func TestParents_OutOfRangePanics(t *testing.T) {
	data := encodeRecord(noParent, noParent, nodeOfByte(0))
	d, err := Open(data)
	require.NoError(t, err)
	require.Panics(t, func() { d.Parents(1) })
}
