// Package audio validates and measures synthesized audio payloads before
// they are persisted as memories.
package audio

import (
	"encoding/hex"
	"errors"
	"fmt"
)

// DefaultBitrate is the nominal MP3 bitrate (bits per second) the provider
// synthesizes at.
const DefaultBitrate = 128000

// How far into the payload we scan for an MPEG sync word. The provider has
// occasionally returned hex-encoded error bodies instead of audio, and a
// short scan catches MP3 streams with leading junk without accepting
// arbitrary binaries.
const syncScanWindow = 1024

var ErrNotMP3 = errors.New("payload does not look like MP3 audio")

// DecodeHex decodes the provider's hex-encoded audio payload into bytes.
func DecodeHex(payload string) ([]byte, error) {
	data, err := hex.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid hex audio payload: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty audio payload")
	}
	return data, nil
}

// ValidateMP3 checks that data plausibly contains MP3 audio, either an
// ID3v2 tag or an MPEG sync word at the start or within the first kilobyte.
// This is a magic-byte heuristic, not a decode.
func ValidateMP3(data []byte) error {
	if len(data) < 3 {
		return ErrNotMP3
	}
	if data[0] == 'I' && data[1] == 'D' && data[2] == '3' {
		return nil
	}
	limit := len(data) - 1
	if limit > syncScanWindow {
		limit = syncScanWindow
	}
	for i := 0; i < limit; i++ {
		if data[i] == 0xFF && data[i+1]&0xF0 == 0xF0 {
			return nil
		}
	}
	return ErrNotMP3
}

// EstimateDuration estimates playback length in seconds from the byte size
// and a nominal bitrate. It is an approximation for display purposes, not a
// decoded measurement.
func EstimateDuration(sizeBytes int64, bitrate int) float64 {
	if bitrate <= 0 {
		bitrate = DefaultBitrate
	}
	return float64(sizeBytes) / (float64(bitrate) / 8)
}
