// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/soundboard/utils"
)

// Resampler presents src at another sample rate using Catmull-Rom
// interpolation over a four-frame window. The channel count is preserved.
// When downsampling, input frames pass through a one-pole low-pass first.
type Resampler struct {
	src      Source
	rate     int
	step     float64 // source frames per output frame
	channels int

	// win holds frames t-1, t, t+1, t+2; output lies between win[1] and win[2].
	win  [4][]float32
	pads int // trailing window slots holding a copy instead of a real frame
	pos  float64

	in     []float32
	primed bool
	done   bool

	lowpass bool
	lpState []float32
}

const lowpassAlpha = 0.5

func NewResampler(src Source, rate int) *Resampler {
	ch := src.Channels()
	r := &Resampler{
		src:      src,
		rate:     rate,
		step:     float64(src.SampleRate()) / float64(rate),
		channels: ch,
		in:       make([]float32, ch),
		lpState:  make([]float32, ch),
	}
	r.lowpass = r.step > 1

	for i := range r.win {
		r.win[i] = make([]float32, ch)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.rate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// readFrame pulls one frame from src into r.in. ok is false at end of stream.
func (r *Resampler) readFrame() (ok bool, err error) {
	for {
		n, err := r.src.ReadSamples(r.in)
		if n == r.channels {
			if r.lowpass {
				for c, v := range r.in {
					r.lpState[c] = lowpassAlpha*v + (1-lowpassAlpha)*r.lpState[c]
					r.in[c] = r.lpState[c]
				}
			}
			return true, nil
		}

		if errors.Is(err, io.EOF) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("%w", err)
		}
	}
}

// fill stores the next frame in slot i, or repeats slot i-1 past the end.
func (r *Resampler) fill(i int) error {
	if r.pads == 0 {
		ok, err := r.readFrame()
		if err != nil {
			return err
		}
		if ok {
			copy(r.win[i], r.in)
			return nil
		}
	}

	copy(r.win[i], r.win[i-1])
	r.pads++
	return nil
}

func (r *Resampler) prime() (bool, error) {
	r.primed = true

	// Seed the filter with the first frame so it does not ramp up from zero.
	lp := r.lowpass
	r.lowpass = false
	ok, err := r.readFrame()
	r.lowpass = lp
	if err != nil || !ok {
		return false, err
	}
	copy(r.lpState, r.in)

	copy(r.win[0], r.in)
	copy(r.win[1], r.in)
	for i := 2; i < 4; i++ {
		if err := r.fill(i); err != nil {
			return false, err
		}
	}

	return true, nil
}

func (r *Resampler) advance() error {
	r.win[0], r.win[1], r.win[2], r.win[3] = r.win[1], r.win[2], r.win[3], r.win[0]
	return r.fill(3)
}

// ReadSamples fills dst, whose length must be a multiple of Channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.done {
		return 0, io.EOF
	}

	if !r.primed {
		ok, err := r.prime()
		if err != nil {
			return 0, err
		}
		if !ok {
			r.done = true
			return 0, io.EOF
		}
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		for r.pos >= 1 {
			r.pos--
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		// win[2] must be real to interpolate; past it only an exact hit
		// on the last real frame is emitted.
		if r.pads >= 3 || (r.pads == 2 && r.pos > 0) {
			r.done = true
			return written * r.channels, io.EOF
		}

		x := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = utils.Clamp(utils.CubicInterpolate(r.win[0][c], r.win[1][c], r.win[2][c], r.win[3][c], x))
		}

		written++
		r.pos += r.step
	}

	return written * r.channels, nil
}
