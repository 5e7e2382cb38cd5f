package audio

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMP3(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr bool
	}{
		{
			name: "id3 header",
			data: append([]byte("ID3"), make([]byte, 64)...),
		},
		{
			name: "mpeg sync at start",
			data: append([]byte{0xFF, 0xFB, 0x90, 0x00}, make([]byte, 64)...),
		},
		{
			name: "mpeg sync after junk within first kilobyte",
			data: append(append(make([]byte, 1, 520), bytes.Repeat([]byte{0x01}, 500)...), 0xFF, 0xF3, 0x44),
		},
		{
			name:    "all zeros",
			data:    make([]byte, 2048),
			wantErr: true,
		},
		{
			name:    "too short",
			data:    []byte{0xFF},
			wantErr: true,
		},
		{
			name:    "json error body",
			data:    []byte(`{"base_resp":{"status_code":1004}}`),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMP3(tt.data)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNotMP3)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDecodeHexRoundTrip(t *testing.T) {
	original := append([]byte{0xFF, 0xFB, 0x90, 0x64}, []byte("frame payload bytes")...)

	decoded, err := DecodeHex(hex.EncodeToString(original))
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestDecodeHexRejectsGarbage(t *testing.T) {
	_, err := DecodeHex("not hex at all")
	assert.Error(t, err)

	_, err = DecodeHex("")
	assert.Error(t, err)
}

func TestEstimateDuration(t *testing.T) {
	// 128kbps: 16000 bytes per second.
	assert.InDelta(t, 1.0, EstimateDuration(16000, DefaultBitrate), 0.001)
	assert.InDelta(t, 30.0, EstimateDuration(480000, DefaultBitrate), 0.001)

	// Zero bitrate falls back to the default instead of dividing by zero.
	assert.Greater(t, EstimateDuration(16000, 0), 0.0)
}
