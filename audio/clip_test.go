// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"testing"
	"time"

	"github.com/ik5/soundboard/internal/audiotest"
)

func TestClip_Frames(t *testing.T) {
	t.Parallel()

	c := &Clip{SampleRate: 4, Channels: 2, Samples: []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3}}

	if got := c.Frames(); got != 3 {
		t.Fatalf("Frames() = %d, want 3", got)
	}
	if got := c.Frame(1); got[0] != 0.2 || got[1] != -0.2 || len(got) != 2 {
		t.Errorf("Frame(1) = %v, want [0.2 -0.2]", got)
	}
	if got := c.Duration(); got != 750*time.Millisecond {
		t.Errorf("Duration() = %v, want 750ms", got)
	}
}

func TestClip_FrameDoesNotSpill(t *testing.T) {
	t.Parallel()

	c := &Clip{SampleRate: 8000, Channels: 2, Samples: []float32{1, 2, 3, 4}}
	f := c.Frame(0)
	f = append(f, 9)
	_ = f

	if c.Samples[2] != 3 {
		t.Error("appending to a frame overwrote the next one")
	}
}

func TestClip_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		clip Clip
		want error
	}{
		{"mono", Clip{SampleRate: 8000, Channels: 1, Samples: []float32{0}}, nil},
		{"empty stereo", Clip{SampleRate: 8000, Channels: 2}, nil},
		{"zero rate", Clip{Channels: 1}, ErrUnsupportedFormat},
		{"negative rate", Clip{SampleRate: -1, Channels: 1}, ErrUnsupportedFormat},
		{"no channels", Clip{SampleRate: 8000}, ErrUnsupportedFormat},
		{"surround", Clip{SampleRate: 8000, Channels: 6}, ErrUnsupportedFormat},
		{"odd stereo", Clip{SampleRate: 8000, Channels: 2, Samples: []float32{0, 0, 0}}, ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.clip.Validate()
			if tt.want == nil && err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReadClip(t *testing.T) {
	t.Parallel()

	src := audiotest.NewRampSource(16000, 2, 10000).WithBufSize(333)
	clip, err := ReadClip(src)
	if err != nil {
		t.Fatal(err)
	}

	if !src.Closed {
		t.Error("ReadClip did not close the source")
	}
	if clip.SampleRate != 16000 || clip.Channels != 2 || clip.Frames() != 10000 {
		t.Fatalf("clip = %d Hz, %d ch, %d frames", clip.SampleRate, clip.Channels, clip.Frames())
	}
	if f := clip.Frame(5000); f[0] != 0.5 || f[1] != 1.0 {
		t.Errorf("Frame(5000) = %v, want [0.5 1]", f)
	}
}

func TestReadClip_Errors(t *testing.T) {
	t.Parallel()

	boom := errors.New("short read")

	tests := []struct {
		name string
		src  *audiotest.MockSource
		want error
	}{
		{"zero rate", audiotest.NewSilentSource(0, 1, 10), ErrDecode},
		{"six channels", audiotest.NewSilentSource(8000, 6, 10), ErrUnsupportedFormat},
		{"read failure", func() *audiotest.MockSource {
			s := audiotest.NewSilentSource(8000, 1, 10)
			s.FailAt, s.Err = 4, boom
			return s
		}(), ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			clip, err := ReadClip(tt.src)
			if !errors.Is(err, tt.want) {
				t.Fatalf("ReadClip() error = %v, want %v", err, tt.want)
			}
			if clip != nil {
				t.Error("ReadClip returned a partial clip")
			}
			if !tt.src.Closed {
				t.Error("source left open")
			}
		})
	}
}

func TestClip_SourceRoundTrip(t *testing.T) {
	t.Parallel()

	orig := &Clip{SampleRate: 22050, Channels: 1, Samples: []float32{0.1, 0.2, 0.3, 0.4, 0.5}}
	got, err := ReadClip(orig.Source())
	if err != nil {
		t.Fatal(err)
	}

	if got.SampleRate != orig.SampleRate || got.Channels != orig.Channels {
		t.Fatalf("format changed: %+v", got)
	}
	for i := range orig.Samples {
		if got.Samples[i] != orig.Samples[i] {
			t.Errorf("Samples[%d] = %v, want %v", i, got.Samples[i], orig.Samples[i])
		}
	}
}
