// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/ik5/soundboard/audio"
)

// mockMP3Reader simulates the gomp3.Decoder for testing
type mockMP3Reader struct {
	sampleRate int
	pcm        []byte
	offset     int
	chunk      int // max bytes per Read, 0 means unlimited
	failAfter  int // fail once offset reaches this, -1 disables
}

func newMockReader(rate int, samples []int16) *mockMP3Reader {
	pcm := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(pcm[2*i:], uint16(s))
	}
	return &mockMP3Reader{sampleRate: rate, pcm: pcm, failAfter: -1}
}

func (m *mockMP3Reader) SampleRate() int { return m.sampleRate }

func (m *mockMP3Reader) Read(buf []byte) (int, error) {
	if m.failAfter >= 0 && m.offset >= m.failAfter {
		return 0, io.ErrUnexpectedEOF
	}
	if m.offset >= len(m.pcm) {
		return 0, io.EOF
	}

	end := len(m.pcm)
	if m.chunk > 0 {
		end = min(end, m.offset+m.chunk)
	}
	n := copy(buf, m.pcm[m.offset:end])
	m.offset += n

	return n, nil
}

func newTestSource(dec mp3Reader) *source {
	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, 8192),
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "renamed text file", data: []byte("This is not MP3 data, just a text file with an .mp3 name\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, audio.ErrDecode) {
				t.Errorf("Decode() error = %v, want audio.ErrDecode", err)
			}
		})
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := newTestSource(newMockReader(44100, make([]int16, 100)))

	if src.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", src.SampleRate())
	}
	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}
	if src.BufSize() != 4096 {
		t.Errorf("BufSize() = %d, want 4096", src.BufSize())
	}
}

func TestSource_ConversionAccuracy(t *testing.T) {
	t.Parallel()

	samples := []int16{0, 1, -1, 32767, -32768, 16384, -16384, 0}
	src := newTestSource(newMockReader(44100, samples))

	clip, err := audio.ReadClip(src)
	if err != nil {
		t.Fatalf("ReadClip() error = %v", err)
	}

	want := []float32{0, 1.0 / 32768.0, -1.0 / 32768.0, 32767.0 / 32768.0, -1.0, 0.5, -0.5, 0}
	if len(clip.Samples) != len(want) {
		t.Fatalf("len(Samples) = %d, want %d", len(clip.Samples), len(want))
	}
	for i := range want {
		if clip.Samples[i] != want[i] {
			t.Errorf("Samples[%d] = %v, want %v", i, clip.Samples[i], want[i])
		}
	}
}

func TestSource_OddByteReads(t *testing.T) {
	t.Parallel()

	samples := []int16{1000, 2000, 3000, 4000, 5000, 6000}
	reader := newMockReader(8000, samples)
	reader.chunk = 3

	clip, err := audio.ReadClip(newTestSource(reader))
	if err != nil {
		t.Fatalf("ReadClip() error = %v", err)
	}

	if len(clip.Samples) != len(samples) {
		t.Fatalf("len(Samples) = %d, want %d", len(clip.Samples), len(samples))
	}
	for i, s := range samples {
		if want := float32(s) / 32768.0; clip.Samples[i] != want {
			t.Errorf("Samples[%d] = %v, want %v", i, clip.Samples[i], want)
		}
	}
}

func TestSource_MidStreamError(t *testing.T) {
	t.Parallel()

	reader := newMockReader(8000, make([]int16, 100))
	reader.chunk = 40
	reader.failAfter = 80

	_, err := audio.ReadClip(newTestSource(reader))
	if !errors.Is(err, audio.ErrDecode) {
		t.Errorf("ReadClip() error = %v, want audio.ErrDecode", err)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadClip() error = %v, want it to keep the cause", err)
	}
}

func TestSource_OddTotalSampleCount(t *testing.T) {
	t.Parallel()

	// Three int16 values cannot form whole stereo frames.
	_, err := audio.ReadClip(newTestSource(newMockReader(8000, []int16{1, 2, 3})))
	if !errors.Is(err, audio.ErrDecode) {
		t.Errorf("ReadClip() error = %v, want audio.ErrDecode", err)
	}
}

func TestSource_EOF(t *testing.T) {
	t.Parallel()

	src := newTestSource(newMockReader(8000, []int16{100, 200, 300, 400}))
	dst := make([]float32, 4)

	n, err := src.ReadSamples(dst)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 4 {
		t.Errorf("ReadSamples() n = %d, want 4", n)
	}

	n, err = src.ReadSamples(dst)
	if err != io.EOF {
		t.Errorf("second ReadSamples() error = %v, want io.EOF", err)
	}
	if n != 0 {
		t.Errorf("second ReadSamples() n = %d, want 0", n)
	}
}

func TestSource_BufferResize(t *testing.T) {
	t.Parallel()

	src := &source{
		dec:        newMockReader(44100, make([]int16, 1000)),
		sampleRate: 44100,
		buf:        make([]byte, 100),
	}

	if _, err := src.ReadSamples(make([]float32, 1000)); err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}

	if cap(src.buf) < 2000 {
		t.Errorf("buffer capacity = %d, want >= 2000", cap(src.buf))
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	samples := make([]int16, 44100*2)
	for i := range samples {
		samples[i] = int16(i % 1000)
	}

	reader := newMockReader(44100, samples)
	src := newTestSource(reader)
	dst := make([]float32, 4096)

	b.ReportAllocs()

	for b.Loop() {
		reader.offset = 0
		_, _ = src.ReadSamples(dst)
	}
}
