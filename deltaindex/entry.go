package deltaindex

import (
	"encoding/binary"
	"fmt"
)

// EntrySize is the on-disk width, in bytes, of one IndexEntry record.
const EntrySize = NodeSize + 4 + 8 + 8

// DeltaBaseKind distinguishes the three ways an entry's delta base can be
// recorded.
type DeltaBaseKind uint8

const (
	// DeltaBaseOffsetKind means the base entry lives at a known byte
	// offset within this same index's entry table.
	DeltaBaseOffsetKind DeltaBaseKind = iota
	// DeltaBaseFullText means the payload is stored whole, with no base.
	DeltaBaseFullText
	// DeltaBaseMissing means a base was named but its entry is not
	// present in this index.
	DeltaBaseMissing
)

// DeltaBaseOffset is the in-memory tagged-union form of the on-disk signed
// 32-bit delta_base_offset field.
type DeltaBaseOffset struct {
	Kind   DeltaBaseKind
	Offset uint32 // valid only when Kind == DeltaBaseOffsetKind
}

// FullText reports the absence of a delta base.
func FullText() DeltaBaseOffset { return DeltaBaseOffset{Kind: DeltaBaseFullText} }

// Missing reports a delta base that is named but not present in this index.
func Missing() DeltaBaseOffset { return DeltaBaseOffset{Kind: DeltaBaseMissing} }

// AtOffset reports a delta base entry located at the given offset within
// the entry table.
func AtOffset(offset uint32) DeltaBaseOffset {
	return DeltaBaseOffset{Kind: DeltaBaseOffsetKind, Offset: offset}
}

// the on-disk sentinels for delta_base_offset, per spec.
const (
	sentinelFullText int32 = -1
	sentinelMissing  int32 = -2
)

func decodeDeltaBaseOffset(v int32) (DeltaBaseOffset, error) {
	switch {
	case v >= 0:
		return AtOffset(uint32(v)), nil
	case v == sentinelFullText:
		return FullText(), nil
	case v == sentinelMissing:
		return Missing(), nil
	default:
		return DeltaBaseOffset{}, &InvalidDeltaBaseOffsetError{Value: v}
	}
}

func (d DeltaBaseOffset) encode() int32 {
	switch d.Kind {
	case DeltaBaseOffsetKind:
		return int32(d.Offset)
	case DeltaBaseFullText:
		return sentinelFullText
	case DeltaBaseMissing:
		return sentinelMissing
	default:
		panic(fmt.Sprintf("deltaindex: invalid DeltaBaseKind %d", d.Kind))
	}
}

// IndexEntry is a single 40-byte on-disk record: node, delta-base offset,
// and the payload's location in the companion pack file.
type IndexEntry struct {
	Node            Node
	DeltaBaseOffset DeltaBaseOffset
	PackEntryOffset uint64
	PackEntrySize   uint64
}

// decodeEntry decodes one EntrySize-byte record.
func decodeEntry(buf []byte) (IndexEntry, error) {
	if len(buf) < EntrySize {
		return IndexEntry{}, fmt.Errorf("deltaindex: short entry buffer: %d < %d", len(buf), EntrySize)
	}
	node, _ := NodeFromSlice(buf[0:NodeSize])
	rawBase := int32(binary.BigEndian.Uint32(buf[NodeSize : NodeSize+4]))
	base, err := decodeDeltaBaseOffset(rawBase)
	if err != nil {
		return IndexEntry{}, err
	}
	offset := binary.BigEndian.Uint64(buf[NodeSize+4 : NodeSize+12])
	size := binary.BigEndian.Uint64(buf[NodeSize+12 : NodeSize+20])
	return IndexEntry{
		Node:            node,
		DeltaBaseOffset: base,
		PackEntryOffset: offset,
		PackEntrySize:   size,
	}, nil
}

// encodeEntry writes e into a freshly allocated EntrySize-byte record.
func encodeEntry(e IndexEntry) []byte {
	buf := make([]byte, EntrySize)
	copy(buf[0:NodeSize], e.Node[:])
	binary.BigEndian.PutUint32(buf[NodeSize:NodeSize+4], uint32(e.DeltaBaseOffset.encode()))
	binary.BigEndian.PutUint64(buf[NodeSize+4:NodeSize+12], e.PackEntryOffset)
	binary.BigEndian.PutUint64(buf[NodeSize+12:NodeSize+20], e.PackEntrySize)
	return buf
}
