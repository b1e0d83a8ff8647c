// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelMixer converts a source to a different channel count.
// Down to mono it averages all channels; up from mono it duplicates the
// single channel into every output channel.
type ChannelMixer struct {
	src      Source
	channels int
	tmp      []float32
}

// NewChannelMixer returns a mixer producing channels output channels from src.
// Conversions other than identity, N->1 and 1->N report ErrUnsupportedFormat.
func NewChannelMixer(src Source, channels int) (*ChannelMixer, error) {
	in := src.Channels()
	if channels <= 0 || (in != channels && channels != 1 && in != 1) {
		return nil, fmt.Errorf("%w: cannot mix %d channels into %d", ErrUnsupportedFormat, in, channels)
	}

	return &ChannelMixer{
		src:      src,
		channels: channels,
		tmp:      make([]float32, 4096),
	}, nil
}

// NewMonoMixer averages every channel of src into one.
func NewMonoMixer(src Source) *ChannelMixer {
	m, _ := NewChannelMixer(src, 1)
	return m
}

func (m *ChannelMixer) SampleRate() int { return m.src.SampleRate() }
func (m *ChannelMixer) Channels() int   { return m.channels }
func (m *ChannelMixer) BufSize() int    { return m.src.BufSize() }
func (m *ChannelMixer) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (m *ChannelMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	in := m.src.Channels()
	if in == m.channels {
		return m.src.ReadSamples(dst)
	}

	if len(dst)%m.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	frames := len(dst) / m.channels
	samplesNeeded := frames * in

	// Grow tmp buffer if needed (but don't shrink to avoid thrashing)
	if cap(m.tmp) < samplesNeeded {
		m.tmp = make([]float32, max(samplesNeeded, 8192))
	}
	m.tmp = m.tmp[:samplesNeeded]

	n, err := m.src.ReadSamples(m.tmp)
	if n == 0 {
		return 0, err
	}
	got := n / in

	if m.channels == 1 {
		switch in {
		case 2: // Stereo (most common)
			for f := range got {
				idx := f << 1
				dst[f] = (m.tmp[idx] + m.tmp[idx+1]) * 0.5
			}
		default:
			inv := float32(1.0) / float32(in)
			for f := range got {
				sum := float32(0)
				base := f * in
				for c := range in {
					sum += m.tmp[base+c]
				}
				dst[f] = sum * inv
			}
		}

		return got, err
	}

	// mono -> N
	for f := range got {
		base := f * m.channels
		for c := range m.channels {
			dst[base+c] = m.tmp[f]
		}
	}

	return got * m.channels, err
}
