// SPDX-License-Identifier: EPL-2.0

//go:build portaudio

package playback

import (
	"context"
	"errors"
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// PortAudioAvailable reports whether this build links PortAudio.
const PortAudioAvailable = true

// PortAudioDevice opens the default PortAudio output for every stream and
// terminates the library again on Close, so nothing outlives a Play call.
type PortAudioDevice struct {
	framesPerBuffer int
}

func NewPortAudioDevice() *PortAudioDevice {
	return &PortAudioDevice{framesPerBuffer: 1024}
}

func (d *PortAudioDevice) Open(ctx context.Context, f Format) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeviceUnavailable, err)
	}

	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeviceUnavailable, err)
	}

	buf := make([]float32, d.framesPerBuffer*f.Channels)

	stream, err := portaudio.OpenDefaultStream(0, f.Channels, float64(f.SampleRate), d.framesPerBuffer, buf)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("%w: %w", ErrDeviceUnavailable, err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("%w: %w", ErrDeviceUnavailable, err)
	}

	return &portAudioStream{stream: stream, buf: buf, format: f}, nil
}

type portAudioStream struct {
	stream  *portaudio.Stream
	buf     []float32
	filled  int
	format  Format
	stopped bool
	closed  bool
}

func (s *portAudioStream) Format() Format { return s.format }

func (s *portAudioStream) Write(samples []float32) error {
	for len(samples) > 0 {
		n := copy(s.buf[s.filled:], samples)
		s.filled += n
		samples = samples[n:]

		if s.filled == len(s.buf) {
			if err := s.flush(); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *portAudioStream) flush() error {
	s.filled = 0
	err := s.stream.Write()
	if errors.Is(err, portaudio.OutputUnderflowed) {
		return nil
	}
	return err
}

func (s *portAudioStream) Drain(ctx context.Context) error {
	if s.filled > 0 {
		clear(s.buf[s.filled:])
		if err := s.flush(); err != nil {
			return err
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	// Pa_StopStream returns once queued buffers have played.
	s.stopped = true
	return s.stream.Stop()
}

func (s *portAudioStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if !s.stopped {
		errs = append(errs, s.stream.Abort())
	}
	errs = append(errs, s.stream.Close(), portaudio.Terminate())

	return errors.Join(errs...)
}
