// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/ik5/soundboard/audio"
)

const defaultChunkFrames = 4096

// Player renders clips on a Device, one blocking call at a time.
// Concurrent Play calls on the same device are not serialized here.
type Player struct {
	dev         Device
	conform     bool
	chunkFrames int
	onState     func(State)

	state atomic.Int32
}

type Option func(*Player)

// WithConform lets the player resample and remix a clip when the device
// stream runs at a different format. Without it such a mismatch is
// reported as ErrDeviceUnavailable.
func WithConform(enabled bool) Option {
	return func(p *Player) { p.conform = enabled }
}

// WithChunkFrames sets how many frames are handed to the device per write.
// Cancellation is checked between chunks.
func WithChunkFrames(frames int) Option {
	return func(p *Player) {
		if frames > 0 {
			p.chunkFrames = frames
		}
	}
}

// WithStateHook calls fn on every state transition.
func WithStateHook(fn func(State)) Option {
	return func(p *Player) { p.onState = fn }
}

func NewPlayer(dev Device, opts ...Option) *Player {
	p := &Player{
		dev:         dev,
		chunkFrames: defaultChunkFrames,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// State returns the state of the current or most recent Play call.
func (p *Player) State() State {
	return State(p.state.Load())
}

func (p *Player) setState(s State) {
	p.state.Store(int32(s))
	if p.onState != nil {
		p.onState(s)
	}
}

// Play streams the whole clip to the device and returns once the device
// has consumed it. The stream is closed on every return path.
func (p *Player) Play(ctx context.Context, clip *audio.Clip) (err error) {
	if clip == nil {
		return fmt.Errorf("%w: nil clip", audio.ErrUnsupportedFormat)
	}
	if err := clip.Validate(); err != nil {
		return err
	}

	want := Format{SampleRate: clip.SampleRate, Channels: clip.Channels}

	p.setState(StateDeviceOpening)

	stream, err := p.dev.Open(ctx, want)
	if err != nil {
		p.setState(StateFailed)
		return wrap(ErrDeviceUnavailable, err)
	}

	defer func() {
		if cerr := stream.Close(); cerr != nil && err == nil {
			err = wrap(ErrPlayback, cerr)
		}

		if err != nil {
			p.setState(StateFailed)
			return
		}
		p.setState(StateIdle)
	}()

	src := clip.Source()
	if got := stream.Format(); got != want {
		if !p.conform {
			return fmt.Errorf("%w: device runs at %s, clip needs %s", ErrDeviceUnavailable, got, want)
		}

		src, err = audio.Conform(src, got.SampleRate, got.Channels)
		if err != nil {
			return wrap(ErrDeviceUnavailable, err)
		}
	}

	p.setState(StateStreaming)

	buf := make([]float32, p.chunkFrames*stream.Format().Channels)
	for {
		if err := ctx.Err(); err != nil {
			return wrap(ErrPlayback, err)
		}

		n, rerr := src.ReadSamples(buf)
		if n > 0 {
			if err := stream.Write(buf[:n]); err != nil {
				return wrap(ErrPlayback, err)
			}
		}

		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			return wrap(ErrPlayback, rerr)
		}
	}

	if err := stream.Drain(ctx); err != nil {
		return wrap(ErrPlayback, err)
	}

	return nil
}

func wrap(sentinel, err error) error {
	if errors.Is(err, sentinel) {
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
