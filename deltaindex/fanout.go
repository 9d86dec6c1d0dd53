package deltaindex

import "encoding/binary"

// smallFanoutSlots / largeFanoutSlots are the two permitted table sizes,
// indexed by one byte or two bytes of prefix respectively.
const (
	smallFanoutSlots = 256
	largeFanoutSlots = 65536
)

// smallFanoutCutoff is the entry count above which the writer switches
// from a 1-byte to a 2-byte fanout prefix. It is 2^16 / 8: a large table
// costs 256KiB, which only pays for itself once amortized across at
// least this many entries.
const smallFanoutCutoff = 1 << 16 / 8

// fanoutSize returns the byte length of a fanout table, given whether it
// uses the large (2-byte prefix) layout.
func fanoutSize(large bool) int {
	if large {
		return largeFanoutSlots * 4
	}
	return smallFanoutSlots * 4
}

// fanoutTable is the decoded in-memory form of the on-disk fanout region:
// for each prefix, the byte offset (relative to the start of the entry
// table) of the first entry bearing that prefix.
type fanoutTable struct {
	large bool
	slots []uint32
}

func readFanoutTable(buf []byte, large bool) fanoutTable {
	n := smallFanoutSlots
	if large {
		n = largeFanoutSlots
	}
	slots := make([]uint32, n)
	for i := range slots {
		slots[i] = binary.BigEndian.Uint32(buf[i*4 : i*4+4])
	}
	return fanoutTable{large: large, slots: slots}
}

// bounds returns the [start, end) byte range, relative to the start of
// the entry table, that the given node's prefix is confined to. end is
// entryTableLen when the prefix is the last populated one.
func (f fanoutTable) bounds(n Node, entryTableLen uint32) (start, end uint32) {
	p := n.prefix(f.large)
	start = f.slots[p]
	if int(p)+1 < len(f.slots) {
		end = f.slots[p+1]
	} else {
		end = entryTableLen
	}
	return start, end
}

// buildFanout computes the fanout table for a set of nodes that are
// already sorted ascending. It assumes nodes[i] occupies byte offset
// i*EntrySize in the entry table. Unpopulated prefixes are right-filled
// with the offset of the next populated prefix, so every
// [slots[p], slots[p+1]) range is well-formed even for prefixes with no
// entries.
func buildFanout(nodes []Node, large bool) fanoutTable {
	n := smallFanoutSlots
	if large {
		n = largeFanoutSlots
	}
	slots := make([]uint32, n)
	entryTableLen := uint32(len(nodes)) * EntrySize

	// Fill slots observed in the data with the offset of their first
	// entry. Walking nodes once suffices because they are sorted, so a
	// prefix's entries form a contiguous run.
	lastPrefix := -1
	for i, node := range nodes {
		p := int(node.prefix(large))
		if p != lastPrefix {
			slots[p] = uint32(i) * EntrySize
			lastPrefix = p
		}
	}

	// Right-fill: walk backwards, and any slot that was never touched
	// (because no entry had that prefix) inherits the next slot's value.
	next := entryTableLen
	touched := make([]bool, n)
	for _, node := range nodes {
		p := int(node.prefix(large))
		touched[p] = true
	}
	for p := n - 1; p >= 0; p-- {
		if touched[p] {
			next = slots[p]
		} else {
			slots[p] = next
		}
	}

	return fanoutTable{large: large, slots: slots}
}

func (f fanoutTable) bytes() []byte {
	buf := make([]byte, len(f.slots)*4)
	for i, v := range f.slots {
		binary.BigEndian.PutUint32(buf[i*4:i*4+4], v)
	}
	return buf
}
