// SPDX-License-Identifier: EPL-2.0

//go:build !linux || cgo

package playback

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// OtoAvailable reports whether this build can open an oto device.
const OtoAvailable = true

const otoPollInterval = 10 * time.Millisecond

// OtoDevice plays through github.com/ebitengine/oto/v3.
//
// oto allows a single context per process and its format cannot change
// afterwards, so the context is created lazily for the first format
// requested and kept for the life of the process. Each Open acquires a
// fresh oto.Player on that context and Close detaches it. Streams opened
// for a different format report the pinned format from Stream.Format.
type OtoDevice struct {
	mu     sync.Mutex
	ctx    *oto.Context
	ready  chan struct{}
	format Format
	buffer time.Duration
}

// NewOtoDevice returns a device with oto's default buffer size.
func NewOtoDevice() *OtoDevice {
	return &OtoDevice{}
}

// NewOtoDeviceBuffer sets the oto buffer duration; larger values trade
// latency for resilience against underruns.
func NewOtoDeviceBuffer(buffer time.Duration) *OtoDevice {
	return &OtoDevice{buffer: buffer}
}

func (d *OtoDevice) context(ctx context.Context, f Format) (*oto.Context, Format, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.ctx == nil {
		otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   f.SampleRate,
			ChannelCount: f.Channels,
			Format:       oto.FormatFloat32LE,
			BufferSize:   d.buffer,
		})
		if err != nil {
			return nil, Format{}, fmt.Errorf("%w: %w", ErrDeviceUnavailable, err)
		}

		d.ctx = otoCtx
		d.ready = ready
		d.format = f
	}

	select {
	case <-d.ready:
	case <-ctx.Done():
		return nil, Format{}, fmt.Errorf("%w: %w", ErrDeviceUnavailable, ctx.Err())
	}

	if err := d.ctx.Err(); err != nil {
		return nil, Format{}, fmt.Errorf("%w: %w", ErrDeviceUnavailable, err)
	}

	return d.ctx, d.format, nil
}

func (d *OtoDevice) Open(ctx context.Context, f Format) (Stream, error) {
	otoCtx, format, err := d.context(ctx, f)
	if err != nil {
		return nil, err
	}

	if err := otoCtx.Resume(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeviceUnavailable, err)
	}

	pr, pw := io.Pipe()
	player := otoCtx.NewPlayer(pr)
	player.Play()

	return &otoStream{
		player: player,
		pr:     pr,
		pw:     pw,
		format: format,
	}, nil
}

type otoStream struct {
	player *oto.Player
	pr     *io.PipeReader
	pw     *io.PipeWriter
	format Format
	buf    []byte
	closed bool
}

func (s *otoStream) Format() Format { return s.format }

func (s *otoStream) Write(samples []float32) error {
	if err := s.player.Err(); err != nil {
		return err
	}

	if cap(s.buf) < len(samples)*4 {
		s.buf = make([]byte, len(samples)*4)
	}
	s.buf = s.buf[:len(samples)*4]

	for i, v := range samples {
		binary.LittleEndian.PutUint32(s.buf[4*i:], math.Float32bits(v))
	}

	// Blocks until oto has pulled the bytes into its own buffer.
	if _, err := s.pw.Write(s.buf); err != nil {
		return err
	}

	return nil
}

func (s *otoStream) Drain(ctx context.Context) error {
	if err := s.pw.Close(); err != nil {
		return err
	}

	ticker := time.NewTicker(otoPollInterval)
	defer ticker.Stop()

	for s.player.IsPlaying() || s.player.BufferedSize() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}

	return s.player.Err()
}

func (s *otoStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	// Pausing detaches the player from oto's mixer; the pipe is closed
	// first so a pending read in the mixer returns.
	s.pw.CloseWithError(io.ErrClosedPipe)
	s.player.Pause()
	s.pr.Close()

	if err := s.player.Err(); err != nil && !errors.Is(err, io.ErrClosedPipe) {
		return err
	}

	return nil
}
