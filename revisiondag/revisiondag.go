// Package revisiondag reads a packed revision-log file — fixed-size
// records carrying big-endian parent fields — and augments it with an
// in-memory, append-only tail of revisions inserted after open. It
// answers parent queries and phase (public/draft) propagation over the
// resulting DAG.
package revisiondag

import (
	"encoding/binary"
	"fmt"
	"sync"
)

// RecordSize is the on-disk width, in bytes, of one packed revision
// record: offset_flags(8) + compressed(4) + len(4) + base(4) + link(4) +
// p1(4) + p2(4) + node(32). Only p1 and p2 are consumed by this package;
// the rest are carried so callers can extend decoding without a format
// break.
const RecordSize = 8 + 4 + 4 + 4 + 4 + 4 + 4 + 32

const noParent = -1

// DAG is a read handle over a packed revision log plus a mutable,
// append-only tail of revisions inserted after Open. A DAG's on-disk
// portion is immutable; its tail is guarded by an RWMutex so the
// single-writer/many-reader discipline is enforced by the type itself
// rather than left to caller convention.
type DAG struct {
	data []byte // on-disk records, RecordSize bytes each

	mu   sync.RWMutex
	tail [][]uint32 // parent lists for revisions appended after Open
}

// Open wraps data — the raw bytes of a packed revision-log file — as a
// DAG with an empty tail. data's length must be a multiple of
// RecordSize.
func Open(data []byte) (*DAG, error) {
	if len(data)%RecordSize != 0 {
		return nil, fmt.Errorf("revisiondag: data length %d is not a multiple of record size %d", len(data), RecordSize)
	}
	return &DAG{data: data}, nil
}

func (d *DAG) onDiskCount() uint32 {
	return uint32(len(d.data) / RecordSize)
}

// Len returns the total number of revisions: on-disk records plus
// inserted tail entries.
func (d *DAG) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return int(d.onDiskCount()) + len(d.tail)
}

// Parents returns the parent revisions of rev in stored order (p1, then
// p2, or the tail's list as inserted): zero, one, or two entries. It panics if rev is out of range —
// callers are expected to bound rev by Len() first, as with a slice
// index.
func (d *DAG) Parents(rev uint32) []uint32 {
	onDisk := d.onDiskCount()
	if rev >= onDisk {
		d.mu.RLock()
		defer d.mu.RUnlock()
		i := int(rev - onDisk)
		if i >= len(d.tail) {
			panic(fmt.Sprintf("revisiondag: revision %d out of range (len=%d)", rev, int(onDisk)+len(d.tail)))
		}
		parents := make([]uint32, len(d.tail[i]))
		copy(parents, d.tail[i])
		return parents
	}
	return d.parentsOnDisk(rev)
}

func (d *DAG) parentsOnDisk(rev uint32) []uint32 {
	rec := d.record(rev)
	p1 := int32(binary.BigEndian.Uint32(rec[24:28]))
	p2 := int32(binary.BigEndian.Uint32(rec[28:32]))

	if p1 == noParent {
		if p2 != noParent {
			panic(fmt.Sprintf("revisiondag: revision %d has p1=-1 but p2=%d", rev, p2))
		}
		return nil
	}
	if uint32(p1) >= rev {
		panic(fmt.Sprintf("revisiondag: revision %d has parent p1=%d >= rev", rev, p1))
	}
	if p2 == noParent {
		return []uint32{uint32(p1)}
	}
	if uint32(p2) >= rev {
		panic(fmt.Sprintf("revisiondag: revision %d has parent p2=%d >= rev", rev, p2))
	}
	return []uint32{uint32(p1), uint32(p2)}
}

func (d *DAG) record(rev uint32) []byte {
	off := int(rev) * RecordSize
	return d.data[off : off+RecordSize]
}

// Insert appends a new revision with the given parents to the tail.
// Insert is safe to call concurrently with Parents/Len, but not
// concurrently with another Insert — that single-writer requirement is
// enforced here by an exclusive lock rather than left to caller
// discipline.
func (d *DAG) Insert(parents []uint32) uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	cp := make([]uint32, len(parents))
	copy(cp, parents)
	d.tail = append(d.tail, cp)
	return d.onDiskCount() + uint32(len(d.tail)) - 1
}

// Node returns the 32-byte node identifier stored in the on-disk record
// for rev. It panics if rev addresses the tail, which carries no node
// field (tail revisions have not been assigned one yet).
func (d *DAG) Node(rev uint32) [32]byte {
	rec := d.record(rev)
	var n [32]byte
	copy(n[:], rec[32:64])
	return n
}
