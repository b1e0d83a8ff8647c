// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"testing"

	"github.com/ik5/soundboard/internal/audiotest"
)

func TestChannelMixer_StereoToMono(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(8000, 2, 4, func(frame, ch int) float32 {
		if ch == 0 {
			return float32(frame) * 0.2
		}
		return -0.1
	})

	out := drain(t, NewMonoMixer(src), 2)
	want := []float32{-0.05, 0.05, 0.15, 0.25}

	if len(out) != len(want) {
		t.Fatalf("got %d samples, want %d", len(out), len(want))
	}
	for i := range want {
		if d := out[i] - want[i]; d > 1e-6 || d < -1e-6 {
			t.Errorf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
}

func TestChannelMixer_MonoToStereo(t *testing.T) {
	t.Parallel()

	src := audiotest.NewRampSource(8000, 1, 5)
	m, err := NewChannelMixer(src, 2)
	if err != nil {
		t.Fatal(err)
	}

	if m.Channels() != 2 || m.SampleRate() != 8000 {
		t.Fatalf("mixer reports %d Hz/%d ch", m.SampleRate(), m.Channels())
	}

	out := drain(t, m, 4)
	if len(out) != 10 {
		t.Fatalf("got %d samples, want 10", len(out))
	}
	for f := range 5 {
		want := float32(f) / 5
		if out[2*f] != want || out[2*f+1] != want {
			t.Errorf("frame %d = (%v, %v), want both %v", f, out[2*f], out[2*f+1], want)
		}
	}
}

func TestChannelMixer_Identity(t *testing.T) {
	t.Parallel()

	src := audiotest.NewRampSource(8000, 2, 3)
	m, err := NewChannelMixer(src, 2)
	if err != nil {
		t.Fatal(err)
	}

	out := drain(t, m, 6)
	want := []float32{0, 0.5, 1.0 / 3, 1.0/3 + 0.5, 2.0 / 3, 2.0/3 + 0.5}
	for i := range want {
		if d := out[i] - want[i]; d > 1e-6 || d < -1e-6 {
			t.Errorf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
}

func TestChannelMixer_Unsupported(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in, outC int
	}{
		{"stereo to 6", 2, 6},
		{"6 to stereo", 6, 2},
		{"to zero", 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewChannelMixer(audiotest.NewSilentSource(8000, tt.in, 1), tt.outC)
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("NewChannelMixer() error = %v, want ErrUnsupportedFormat", err)
			}
		})
	}
}

func TestChannelMixer_InvalidDstSize(t *testing.T) {
	t.Parallel()

	m, _ := NewChannelMixer(audiotest.NewSilentSource(8000, 1, 10), 2)
	if _, err := m.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func BenchmarkChannelMixer_StereoToMono(b *testing.B) {
	buf := make([]float32, 2048)
	b.ReportAllocs()

	for b.Loop() {
		m := NewMonoMixer(audiotest.NewSineSource(44100, 2, 44100, 440))
		for {
			if _, err := m.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
