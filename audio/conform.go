// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Conform builds a pipeline that presents src at rate Hz with channels
// channels. Channel mixing runs before resampling so the resampler works on
// the smaller of the two layouts when downmixing. src is returned as is when
// it already matches.
func Conform(src Source, rate, channels int) (Source, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrUnsupportedFormat, rate)
	}

	out := src
	if out.Channels() != channels {
		mixer, err := NewChannelMixer(out, channels)
		if err != nil {
			return nil, err
		}
		out = mixer
	}

	if out.SampleRate() != rate {
		out = NewResampler(out, rate)
	}

	return out, nil
}
