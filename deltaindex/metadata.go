package deltaindex

import (
	"bytes"
	"fmt"
)

// Metadata limits, mirroring the single-byte length-prefix framing below.
const (
	MaxMetaKeyVals = 255
	MaxMetaKeySize = 255
	MaxMetaValSize = 255
)

// KV is one key/value pair in a Metadata block.
type KV struct {
	Key   []byte
	Value []byte
}

// Metadata is an optional, additive block of descriptive key-value pairs
// carried in a DeltaIndex header — for example a digest of the companion
// pack file, or a human-readable label. It has no bearing on lookup
// semantics; a reader that ignores it still decodes entries correctly.
type Metadata struct {
	KeyVals []KV
}

// Add appends a key-value pair. Keys are not required to be unique; use
// Get to fetch the first match.
func (m *Metadata) Add(key, value []byte) error {
	if len(m.KeyVals) >= MaxMetaKeyVals {
		return fmt.Errorf("deltaindex: metadata has %d pairs, max is %d", len(m.KeyVals), MaxMetaKeyVals)
	}
	if len(key) > MaxMetaKeySize {
		return fmt.Errorf("deltaindex: metadata key length %d exceeds max %d", len(key), MaxMetaKeySize)
	}
	if len(value) > MaxMetaValSize {
		return fmt.Errorf("deltaindex: metadata value length %d exceeds max %d", len(value), MaxMetaValSize)
	}
	m.KeyVals = append(m.KeyVals, KV{Key: cloneBytes(key), Value: cloneBytes(value)})
	return nil
}

// Get returns the first value recorded for key.
func (m Metadata) Get(key []byte) ([]byte, bool) {
	for _, kv := range m.KeyVals {
		if bytes.Equal(kv.Key, key) {
			return kv.Value, true
		}
	}
	return nil, false
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// marshal encodes the metadata block: one length byte, then for each
// pair a length-prefixed key followed by a length-prefixed value.
func (m Metadata) marshal() ([]byte, error) {
	if len(m.KeyVals) > MaxMetaKeyVals {
		return nil, fmt.Errorf("deltaindex: metadata has %d pairs, max is %d", len(m.KeyVals), MaxMetaKeyVals)
	}
	var buf bytes.Buffer
	buf.WriteByte(byte(len(m.KeyVals)))
	for _, kv := range m.KeyVals {
		if len(kv.Key) > MaxMetaKeySize {
			return nil, fmt.Errorf("deltaindex: metadata key length %d exceeds max %d", len(kv.Key), MaxMetaKeySize)
		}
		if len(kv.Value) > MaxMetaValSize {
			return nil, fmt.Errorf("deltaindex: metadata value length %d exceeds max %d", len(kv.Value), MaxMetaValSize)
		}
		buf.WriteByte(byte(len(kv.Key)))
		buf.Write(kv.Key)
		buf.WriteByte(byte(len(kv.Value)))
		buf.Write(kv.Value)
	}
	return buf.Bytes(), nil
}

// unmarshalMetadata decodes a metadata block previously produced by
// marshal, starting at buf[0].
func unmarshalMetadata(buf []byte) (Metadata, error) {
	var m Metadata
	if len(buf) == 0 {
		return m, nil
	}
	numKVs := int(buf[0])
	buf = buf[1:]
	for i := 0; i < numKVs; i++ {
		if len(buf) < 1 {
			return Metadata{}, fmt.Errorf("deltaindex: truncated metadata at key length %d", i)
		}
		keyLen := int(buf[0])
		buf = buf[1:]
		if len(buf) < keyLen {
			return Metadata{}, fmt.Errorf("deltaindex: truncated metadata at key %d", i)
		}
		key := buf[:keyLen]
		buf = buf[keyLen:]

		if len(buf) < 1 {
			return Metadata{}, fmt.Errorf("deltaindex: truncated metadata at value length %d", i)
		}
		valLen := int(buf[0])
		buf = buf[1:]
		if len(buf) < valLen {
			return Metadata{}, fmt.Errorf("deltaindex: truncated metadata at value %d", i)
		}
		value := buf[:valLen]
		buf = buf[valLen:]

		m.KeyVals = append(m.KeyVals, KV{Key: cloneBytes(key), Value: cloneBytes(value)})
	}
	return m, nil
}
