package deltaindex

import "encoding/binary"

// Version identifies the on-disk header layout. Version 0 is the bare
// header (no entry count, no metadata); version 1 additionally carries
// an entry count and an optional metadata block. Builder always emits
// version 1.
const (
	Version0 = uint8(0)
	Version1 = uint8(1)
)

// config byte values.
const (
	configSmallFanout = 0b00000000
	configLargeFanout = 0b10000000
)

// Header describes the fixed preamble of a sealed DeltaIndex file.
type Header struct {
	Version  uint8
	Large    bool
	Metadata Metadata
}

// decodeHeader parses the header starting at the beginning of buf and
// returns the header plus the absolute offset of the entry table
// (index_start).
func decodeHeader(buf []byte) (Header, int, error) {
	if len(buf) < 2 {
		return Header{}, 0, &InvalidHeaderError{Reason: "file shorter than 2-byte preamble"}
	}
	version := buf[0]
	if version > Version1 {
		return Header{}, 0, &InvalidHeaderError{Reason: "unsupported version", Version: version}
	}
	config := buf[1]
	var large bool
	switch config {
	case configSmallFanout:
		large = false
	case configLargeFanout:
		large = true
	default:
		return Header{}, 0, &InvalidHeaderError{Reason: "invalid config byte", Config: config}
	}

	offset := 2 + fanoutSize(large)
	if len(buf) < offset {
		return Header{}, 0, &InvalidHeaderError{Reason: "file too short for fanout table"}
	}

	h := Header{Version: version, Large: large}
	if version == Version1 {
		if len(buf) < offset+8 {
			return Header{}, 0, &InvalidHeaderError{Reason: "file too short for entry count"}
		}
		// entry count is re-derived by the caller from the mapped file
		// length rather than trusted blindly; see reader.go.
		offset += 8

		if len(buf) < offset+4 {
			return Header{}, 0, &InvalidHeaderError{Reason: "file too short for metadata length"}
		}
		metaLen := int(binary.LittleEndian.Uint32(buf[offset : offset+4]))
		offset += 4
		if len(buf) < offset+metaLen {
			return Header{}, 0, &InvalidHeaderError{Reason: "file too short for metadata block"}
		}
		meta, err := unmarshalMetadata(buf[offset : offset+metaLen])
		if err != nil {
			return Header{}, 0, err
		}
		h.Metadata = meta
		offset += metaLen
	}

	return h, offset, nil
}

// headerBytes encodes the fixed preamble (version, config, fanout,
// optionally entry count + metadata) preceding the entry table.
// entryCount and meta are only written for version 1.
func headerBytes(version uint8, large bool, entryCount uint64, fanout fanoutTable, meta Metadata) ([]byte, error) {
	var out []byte
	out = append(out, version, configByte(large))
	out = append(out, fanout.bytes()...)

	if version == Version1 {
		var countBuf [8]byte
		binary.BigEndian.PutUint64(countBuf[:], entryCount)
		out = append(out, countBuf[:]...)

		metaBytes, err := meta.marshal()
		if err != nil {
			return nil, err
		}
		var lenBuf [4]byte
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(metaBytes)))
		out = append(out, lenBuf[:]...)
		out = append(out, metaBytes...)
	}
	return out, nil
}

// Bytes encodes h's fixed preamble with the given entry count and an
// all-zero fanout table; it does not reproduce the fanout of a sealed
// file that holds entries. It lets a caller inspect an index's header in
// isolation, without a full Open.
func (h Header) Bytes(entryCount uint64) ([]byte, error) {
	fanout := fanoutTable{large: h.Large}
	if h.Large {
		fanout.slots = make([]uint32, largeFanoutSlots)
	} else {
		fanout.slots = make([]uint32, smallFanoutSlots)
	}
	return headerBytes(h.Version, h.Large, entryCount, fanout, h.Metadata)
}

// LoadHeader decodes a Header from the start of buf, discarding the
// fanout table and returning only version/config/metadata plus
// index_start, mirroring Bytes.
func LoadHeader(buf []byte) (Header, int, error) {
	return decodeHeader(buf)
}

func configByte(large bool) byte {
	if large {
		return configLargeFanout
	}
	return configSmallFanout
}
