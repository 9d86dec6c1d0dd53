package deltaindex

import "io"

// PackLocator is the shape a companion pack file must satisfy for a
// caller to turn an IndexEntry's (PackEntryOffset, PackEntrySize) into
// actual payload bytes. DeltaIndex never reads the pack file itself —
// it only resolves a node to this pair — so the interface exists for
// callers (and tests) to plug in a real file or a bytes-backed fake.
type PackLocator interface {
	io.ReaderAt
}

// ReadPayload reads the raw, possibly-delta-encoded bytes an entry
// points to out of pack. It performs no decompression or delta
// reconstruction — that belongs to the layer above this package.
func ReadPayload(pack PackLocator, e IndexEntry) ([]byte, error) {
	buf := make([]byte, e.PackEntrySize)
	if _, err := pack.ReadAt(buf, int64(e.PackEntryOffset)); err != nil {
		return nil, err
	}
	return buf, nil
}
