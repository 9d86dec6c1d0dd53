package deltaindex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	for _, version := range []uint8{Version0, Version1} {
		for _, large := range []bool{false, true} {
			t.Run("", func(t *testing.T) {
				fanout := buildFanout(nil, large)
				meta := Metadata{}
				if version == Version1 {
					require.NoError(t, meta.Add([]byte("kind"), []byte("test")))
				}

				encoded, err := headerBytes(version, large, 0, fanout, meta)
				require.NoError(t, err)

				got, indexStart, err := decodeHeader(encoded)
				require.NoError(t, err)
				require.Equal(t, version, got.Version)
				require.Equal(t, large, got.Large)
				require.Equal(t, len(encoded), indexStart)
				if version == Version1 {
					require.Equal(t, meta, got.Metadata)
				}
			})
		}
	}
}

func TestHeaderInvalid_EmptyOrShort(t *testing.T) {
	_, _, err := decodeHeader(nil)
	require.Error(t, err)

	_, _, err = decodeHeader([]byte{0x00})
	require.Error(t, err)
}

// bytes [0x02, 0x00] is an unsupported version;
// [0x00, 0x01] is an invalid config byte.
func TestHeaderInvalid_Scenario1(t *testing.T) {
	_, _, err := decodeHeader([]byte{0x02, 0x00})
	require.Error(t, err)
	var headerErr *InvalidHeaderError
	require.ErrorAs(t, err, &headerErr)

	_, _, err = decodeHeader([]byte{0x00, 0x01})
	require.Error(t, err)
	require.ErrorAs(t, err, &headerErr)
}

func TestConfigByteAcceptsOnlyTwoValues(t *testing.T) {
	require.Equal(t, byte(0x00), configByte(false))
	require.Equal(t, byte(0x80), configByte(true))
}

func TestHeaderBytesAndLoad(t *testing.T) {
	h := Header{Version: Version1, Large: false}
	require.NoError(t, h.Metadata.Add([]byte("k"), []byte("v")))

	encoded, err := h.Bytes(3)
	require.NoError(t, err)

	got, indexStart, err := LoadHeader(encoded)
	require.NoError(t, err)
	require.Equal(t, h, got)
	require.Equal(t, len(encoded), indexStart)
}
