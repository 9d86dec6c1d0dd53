package deltaindex

import (
	"errors"
	"fmt"
)

// ErrKeyNotFound is returned by GetEntry when no entry matches the
// requested node. Wrap/compare with errors.Is.
var ErrKeyNotFound = errors.New("deltaindex: key not found")

// ErrEmptyFile is returned by Open for a zero-length file.
var ErrEmptyFile = errors.New("deltaindex: file is empty")

// InvalidHeaderError is returned by Open and LoadHeader when the header
// fails to parse: a buffer too short for the header regions, an
// unsupported version, or a config byte outside {0x00, 0x80}. Open
// reports a zero-length file as ErrEmptyFile, not as InvalidHeaderError.
type InvalidHeaderError struct {
	Reason  string
	Version uint8
	Config  byte
}

func (e *InvalidHeaderError) Error() string {
	switch {
	case e.Reason == "unsupported version":
		return fmt.Sprintf("deltaindex: invalid header: unsupported version %d", e.Version)
	case e.Reason == "invalid config byte":
		return fmt.Sprintf("deltaindex: invalid header: invalid config byte 0x%02x", e.Config)
	default:
		return fmt.Sprintf("deltaindex: invalid header: %s", e.Reason)
	}
}

// InvalidEntryOffsetError is returned when a decoded offset would read
// past the mapped region.
type InvalidEntryOffsetError struct {
	Offset int64
	Length int64
}

func (e *InvalidEntryOffsetError) Error() string {
	return fmt.Sprintf("deltaindex: entry offset %d out of bounds for region of length %d", e.Offset, e.Length)
}

// InvalidDeltaBaseOffsetError is returned when an on-disk
// delta_base_offset is less than the smallest valid sentinel (-2).
type InvalidDeltaBaseOffsetError struct {
	Value int32
}

func (e *InvalidDeltaBaseOffsetError) Error() string {
	return fmt.Sprintf("deltaindex: invalid delta base offset %d", e.Value)
}
