package deltaindex

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/valyala/bytebufferpool"
	"golang.org/x/exp/mmap"
	"golang.org/x/sys/unix"
)

// DeltaIndex is a read-only handle onto a sealed index file. It is
// immutable once opened: GetEntry and ReadEntry may be called
// concurrently from multiple goroutines with no external
// synchronization.
type DeltaIndex struct {
	region        *mmap.ReaderAt
	header        Header
	fanout        fanoutTable
	indexStart    int64
	entryTableLen int64
}

// Open memory-maps path and parses its header.
//
// Open validates the header and every region it addresses (fanout table,
// entry count, metadata block) before returning, so a reader handle is
// never returned for a file that is merely not-yet-fully-read-but-might-work.
func Open(path string) (*DeltaIndex, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("deltaindex: failed to stat %s: %w", path, err)
	}
	if stat.Size() == 0 {
		return nil, ErrEmptyFile
	}

	region, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("deltaindex: failed to mmap %s: %w", path, err)
	}
	idx, err := newDeltaIndex(region)
	if err != nil {
		region.Close()
		return nil, err
	}

	if f, ok := interface{}(region).(interface {
		Fd() uintptr
	}); ok {
		if err := unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_RANDOM); err != nil {
			slog.Warn("deltaindex: fadvise(RANDOM) failed", "path", path, "error", err)
		}
	}

	return idx, nil
}

func newDeltaIndex(region *mmap.ReaderAt) (*DeltaIndex, error) {
	length := region.Len()
	if length == 0 {
		return nil, ErrEmptyFile
	}

	// Read a generous header prefix; decodeHeader reports precisely how
	// much of it, if any, was missing.
	const maxHeaderProbe = 2 + largeFanoutSlots*4 + 8 + 4 + 1 + 255*(1+255+1+255)
	probeLen := maxHeaderProbe
	if probeLen > length {
		probeLen = length
	}
	probe := make([]byte, probeLen)
	if _, err := region.ReadAt(probe, 0); err != nil && err != io.EOF {
		return nil, fmt.Errorf("deltaindex: failed to read header: %w", err)
	}

	header, indexStart, err := decodeHeader(probe)
	if err != nil {
		return nil, err
	}
	if indexStart > length {
		return nil, &InvalidHeaderError{Reason: "header region exceeds file length"}
	}

	entryTableLen := int64(length - indexStart)
	if entryTableLen%EntrySize != 0 {
		return nil, &InvalidHeaderError{Reason: "entry table length is not a multiple of entry size"}
	}

	fanoutBuf := probe[2 : 2+fanoutSize(header.Large)]
	fanout := readFanoutTable(fanoutBuf, header.Large)

	return &DeltaIndex{
		region:        region,
		header:        header,
		fanout:        fanout,
		indexStart:    int64(indexStart),
		entryTableLen: entryTableLen,
	}, nil
}

// Close releases the memory mapping.
func (d *DeltaIndex) Close() error {
	return d.region.Close()
}

// Metadata returns the descriptive key-value pairs recorded by the
// writer, if any.
func (d *DeltaIndex) Metadata() Metadata {
	return d.header.Metadata
}

// NumEntries returns the number of records in the entry table.
func (d *DeltaIndex) NumEntries() int {
	return int(d.entryTableLen / EntrySize)
}

// GetEntry looks up node and returns its entry. It returns
// ErrKeyNotFound, wrapped for errors.Is, when no entry matches.
func (d *DeltaIndex) GetEntry(node Node) (IndexEntry, error) {
	start, end := d.fanout.bounds(node, uint32(d.entryTableLen))
	if int64(end) > d.entryTableLen || start > end {
		return IndexEntry{}, &InvalidEntryOffsetError{Offset: int64(start), Length: d.entryTableLen}
	}

	relOffset, err := d.binarySearch(node, int64(start), int64(end))
	if err != nil {
		return IndexEntry{}, err
	}
	return d.ReadEntry(uint32(relOffset))
}

// ReadEntry decodes the record at offset, which is relative to the start
// of the entry table. It is the primitive used to chase a delta-base
// link: a caller that received an Offset(k) from GetEntry calls
// ReadEntry(k) to obtain the base entry.
func (d *DeltaIndex) ReadEntry(offset uint32) (IndexEntry, error) {
	if int64(offset)+EntrySize > d.entryTableLen {
		return IndexEntry{}, &InvalidEntryOffsetError{Offset: int64(offset), Length: d.entryTableLen}
	}
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	buf.B = append(buf.B[:0], make([]byte, EntrySize)...)

	abs := d.indexStart + int64(offset)
	if _, err := d.region.ReadAt(buf.B, abs); err != nil {
		return IndexEntry{}, fmt.Errorf("deltaindex: failed to read entry at offset %d: %w", offset, err)
	}
	return decodeEntry(buf.B)
}

// binarySearch bisects the entry table slice [start, end) — both byte
// offsets relative to the start of the entry table — for node, returning
// the relative offset of the matching record.
func (d *DeltaIndex) binarySearch(node Node, start, end int64) (int64, error) {
	numRecords := (end - start) / EntrySize
	var nodeBuf [NodeSize]byte

	readNodeAt := func(i int64) (Node, error) {
		abs := d.indexStart + start + i*EntrySize
		if _, err := d.region.ReadAt(nodeBuf[:], abs); err != nil {
			return Node{}, fmt.Errorf("deltaindex: failed to read node at record %d: %w", i, err)
		}
		n, _ := NodeFromSlice(nodeBuf[:])
		return n, nil
	}

	lo, hi := int64(0), numRecords
	for lo < hi {
		mid := lo + (hi-lo)/2
		midNode, err := readNodeAt(mid)
		if err != nil {
			return 0, err
		}
		switch midNode.Compare(node) {
		case 0:
			return start + mid*EntrySize, nil
		case -1:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrKeyNotFound, node)
}
