// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// Clip is a fully decoded sound held in memory.
// Samples are interleaved (L, R, L, R, ... for stereo) and normalized to [-1, 1].
type Clip struct {
	SampleRate int
	Channels   int
	Samples    []float32
}

// Frames returns the number of frames (one sample per channel) in the clip.
func (c *Clip) Frames() int {
	if c.Channels <= 0 {
		return 0
	}
	return len(c.Samples) / c.Channels
}

// Frame returns the samples of frame i, one per channel. The returned
// slice aliases the clip buffer.
func (c *Clip) Frame(i int) []float32 {
	start := i * c.Channels
	return c.Samples[start : start+c.Channels : start+c.Channels]
}

// Duration is the playback length at the clip's sample rate.
func (c *Clip) Duration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	return time.Duration(c.Frames()) * time.Second / time.Duration(c.SampleRate)
}

// Validate checks the invariants every decoded clip holds.
func (c *Clip) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrUnsupportedFormat, c.SampleRate)
	}
	if !SupportedChannels(c.Channels) {
		return fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, c.Channels)
	}
	if len(c.Samples)%c.Channels != 0 {
		return fmt.Errorf("%w: %d samples do not form whole %d-channel frames",
			ErrDecode, len(c.Samples), c.Channels)
	}

	return nil
}

// Source returns a Source streaming the clip's samples from the start.
// The clip must not be modified while the source is in use.
func (c *Clip) Source() Source {
	return &clipSource{clip: c}
}

// ReadClip drains src into a Clip and closes it. A stream that ends in the
// middle of a frame is reported as ErrDecode rather than truncated.
func ReadClip(src Source) (*Clip, error) {
	defer src.Close()

	clip := &Clip{
		SampleRate: src.SampleRate(),
		Channels:   src.Channels(),
	}

	if clip.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrDecode, clip.SampleRate)
	}
	if !SupportedChannels(clip.Channels) {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, clip.Channels)
	}

	bufSize := src.BufSize()
	if bufSize <= 0 {
		bufSize = 4096
	}
	buf := make([]float32, bufSize)

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			clip.Samples = append(clip.Samples, buf[:n]...)
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if errors.Is(err, ErrDecode) || errors.Is(err, ErrUnsupportedFormat) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
	}

	if err := clip.Validate(); err != nil {
		return nil, err
	}

	return clip, nil
}

type clipSource struct {
	clip *Clip
	pos  int
}

func (s *clipSource) SampleRate() int { return s.clip.SampleRate }
func (s *clipSource) Channels() int   { return s.clip.Channels }
func (s *clipSource) BufSize() int    { return 4096 }
func (s *clipSource) Close() error    { return nil }

func (s *clipSource) ReadSamples(dst []float32) (int, error) {
	if s.pos >= len(s.clip.Samples) {
		return 0, io.EOF
	}

	n := copy(dst, s.clip.Samples[s.pos:])
	s.pos += n

	if s.pos >= len(s.clip.Samples) {
		return n, io.EOF
	}
	return n, nil
}
