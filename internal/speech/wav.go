// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package speech

import "encoding/binary"

const (
	wavChannels      = 1
	wavBitsPerSample = 16
)

// encodeWAV wraps raw 16-bit little-endian mono PCM in a RIFF/WAVE
// container. The provider hands back bare samples, so the container is
// assembled in memory before upload.
func encodeWAV(pcm []byte, sampleRate int) []byte {
	byteRate := sampleRate * wavChannels * wavBitsPerSample / 8
	blockAlign := wavChannels * wavBitsPerSample / 8

	buf := make([]byte, 0, 44+len(pcm))
	le := binary.LittleEndian

	u32 := func(v uint32) []byte {
		b := make([]byte, 4)
		le.PutUint32(b, v)
		return b
	}
	u16 := func(v uint16) []byte {
		b := make([]byte, 2)
		le.PutUint16(b, v)
		return b
	}

	buf = append(buf, "RIFF"...)
	buf = append(buf, u32(uint32(36+len(pcm)))...)
	buf = append(buf, "WAVE"...)

	buf = append(buf, "fmt "...)
	buf = append(buf, u32(16)...)
	buf = append(buf, u16(1)...) // PCM format
	buf = append(buf, u16(wavChannels)...)
	buf = append(buf, u32(uint32(sampleRate))...)
	buf = append(buf, u32(uint32(byteRate))...)
	buf = append(buf, u16(uint16(blockAlign))...)
	buf = append(buf, u16(wavBitsPerSample)...)

	buf = append(buf, "data"...)
	buf = append(buf, u32(uint32(len(pcm)))...)
	buf = append(buf, pcm...)

	return buf
}

// pcmDurationSeconds derives the play length of a PCM stream, rounded
// down to whole seconds.
func pcmDurationSeconds(pcmBytes, sampleRate int) int {
	bytesPerSecond := sampleRate * wavChannels * wavBitsPerSample / 8
	if bytesPerSecond == 0 {
		return 0
	}
	return pcmBytes / bytesPerSecond
}
