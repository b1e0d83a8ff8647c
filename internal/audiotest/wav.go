// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// WAVFixture describes a RIFF/WAVE file to build byte by byte. Zero values
// yield a canonical 16-bit PCM header around Data.
type WAVFixture struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
	AudioFormat   uint16 // 1 when zero
	BlockAlign    int    // derived when zero
	Data          []byte

	// DataSize overrides the size written in the data chunk header.
	DataSize *uint32
	// ExtraChunks are inserted between "fmt " and "data" as-is.
	ExtraChunks [][]byte
}

// PCM16 encodes samples as little-endian 16-bit PCM.
func PCM16(samples []int16) []byte {
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(s))
	}
	return buf
}

// Chunk builds a RIFF chunk with id and body, adding the pad byte for odd bodies.
func Chunk(id string, body []byte) []byte {
	buf := new(bytes.Buffer)
	buf.WriteString(id)
	binary.Write(buf, binary.LittleEndian, uint32(len(body)))
	buf.Write(body)
	if len(body)%2 == 1 {
		buf.WriteByte(0)
	}
	return buf.Bytes()
}

// Bytes renders the file.
func (s WAVFixture) Bytes() []byte {
	format := s.AudioFormat
	if format == 0 {
		format = 1
	}
	bits := s.BitsPerSample
	if bits == 0 {
		bits = 16
	}
	blockAlign := s.BlockAlign
	if blockAlign == 0 {
		blockAlign = s.Channels * bits / 8
	}

	fmtBody := new(bytes.Buffer)
	binary.Write(fmtBody, binary.LittleEndian, format)
	binary.Write(fmtBody, binary.LittleEndian, uint16(s.Channels))
	binary.Write(fmtBody, binary.LittleEndian, uint32(s.SampleRate))
	binary.Write(fmtBody, binary.LittleEndian, uint32(s.SampleRate*blockAlign))
	binary.Write(fmtBody, binary.LittleEndian, uint16(blockAlign))
	binary.Write(fmtBody, binary.LittleEndian, uint16(bits))

	body := new(bytes.Buffer)
	body.WriteString("WAVE")
	body.Write(Chunk("fmt ", fmtBody.Bytes()))
	for _, c := range s.ExtraChunks {
		body.Write(c)
	}

	body.WriteString("data")
	dataSize := uint32(len(s.Data))
	if s.DataSize != nil {
		dataSize = *s.DataSize
	}
	binary.Write(body, binary.LittleEndian, dataSize)
	body.Write(s.Data)

	out := new(bytes.Buffer)
	out.WriteString("RIFF")
	binary.Write(out, binary.LittleEndian, uint32(body.Len()))
	out.Write(body.Bytes())

	return out.Bytes()
}

// MonoWAV is a 16-bit mono file at rate holding samples.
func MonoWAV(rate int, samples []int16) []byte {
	return WAVFixture{SampleRate: rate, Channels: 1, Data: PCM16(samples)}.Bytes()
}

// StereoWAV is a 16-bit stereo file at rate holding interleaved samples.
func StereoWAV(rate int, samples []int16) []byte {
	return WAVFixture{SampleRate: rate, Channels: 2, Data: PCM16(samples)}.Bytes()
}

// Sine16 renders frames frames of a sine at freq Hz and the given peak
// amplitude, duplicated across channels.
func Sine16(rate, channels, frames int, freq, amplitude float64) []int16 {
	out := make([]int16, frames*channels)
	for f := range frames {
		v := int16(math.Round(amplitude * math.Sin(2*math.Pi*freq*float64(f)/float64(rate))))
		for c := range channels {
			out[f*channels+c] = v
		}
	}
	return out
}

// WriteFile stores data under t.TempDir() as name and returns the path.
func WriteFile(t testing.TB, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}

	return path
}
