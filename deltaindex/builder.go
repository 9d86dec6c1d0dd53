package deltaindex

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/rpcpool/deltapackidx/internal/continuity"
)

// DeltaLocation describes where one node's payload lives in the
// companion pack file, and — if the payload is stored as a delta —
// which other node is its base.
type DeltaLocation struct {
	DeltaBase *Node // nil means the payload is stored as full text
	Offset    uint64
	Size      uint64
}

// Builder accumulates (node, DeltaLocation) pairs in memory and, on
// SealAndClose, writes them out as a single sealed DeltaIndex file.
//
// Builder is not safe for concurrent use.
type Builder struct {
	values   map[Node]DeltaLocation
	metadata Metadata
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{values: make(map[Node]DeltaLocation)}
}

// Insert records the location of node's payload. Inserting the same node
// twice overwrites the earlier value — builders are expected to be fed a
// complete, deduplicated set.
func (b *Builder) Insert(node Node, loc DeltaLocation) {
	b.values[node] = loc
}

// SetMetadata adds a descriptive key-value pair to the sealed file's
// header. Metadata has no effect on lookup semantics.
func (b *Builder) SetMetadata(key, value []byte) error {
	return b.metadata.Add(key, value)
}

// Len returns the number of pairs inserted so far.
func (b *Builder) Len() int {
	return len(b.values)
}

// SealAndClose writes the complete, sorted index to file and then syncs
// and closes it. file must be empty and opened for writing; passing a
// non-empty file produces a corrupted index.
func (b *Builder) SealAndClose(ctx context.Context, file *os.File) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := writeIndex(file, b.values, b.metadata); err != nil {
		return fmt.Errorf("deltaindex: failed to write index: %w", err)
	}
	return continuity.New().
		Thenf("sync", func() error {
			if err := file.Sync(); err != nil {
				return fmt.Errorf("deltaindex: failed to sync index file: %w", err)
			}
			return nil
		}).
		Thenf("close", func() error {
			if err := file.Close(); err != nil {
				return fmt.Errorf("deltaindex: failed to close index file: %w", err)
			}
			return nil
		}).
		Err()
}

// Write emits a complete, well-formed index for values directly, without
// going through a Builder.
func Write(w writerAt, values map[Node]DeltaLocation) error {
	return writeIndex(w, values, Metadata{})
}

// writerAt is the subset of *os.File that writeIndex needs; it is
// satisfied by any io.Writer, since the format is written in a single
// forward pass.
type writerAt interface {
	Write(p []byte) (n int, err error)
}

func writeIndex(w writerAt, values map[Node]DeltaLocation, meta Metadata) error {
	large := len(values) > smallFanoutCutoff

	nodes := make([]Node, 0, len(values))
	for n := range values {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Less(nodes[j]) })

	fanout := buildFanout(nodes, large)

	// Map each node to the byte offset its entry will occupy within the
	// entry table, so delta-base references can be resolved to offsets.
	nodeOffsets := make(map[Node]uint32, len(nodes))
	for i, n := range nodes {
		nodeOffsets[n] = uint32(i) * EntrySize
	}

	header, err := headerBytes(Version1, large, uint64(len(nodes)), fanout, meta)
	if err != nil {
		return err
	}
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("deltaindex: failed to write header: %w", err)
	}

	for _, n := range nodes {
		loc := values[n]
		base := resolveDeltaBase(loc.DeltaBase, nodeOffsets)
		entry := IndexEntry{
			Node:            n,
			DeltaBaseOffset: base,
			PackEntryOffset: loc.Offset,
			PackEntrySize:   loc.Size,
		}
		if _, err := w.Write(encodeEntry(entry)); err != nil {
			return fmt.Errorf("deltaindex: failed to write entry for node %s: %w", n, err)
		}
	}
	return nil
}

// resolveDeltaBase never fails: a base that isn't present in this index
// is recorded as Missing rather than rejected.
func resolveDeltaBase(base *Node, nodeOffsets map[Node]uint32) DeltaBaseOffset {
	if base == nil {
		return FullText()
	}
	if offset, ok := nodeOffsets[*base]; ok {
		return AtOffset(offset)
	}
	return Missing()
}
