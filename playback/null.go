// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"context"
	"sync/atomic"
)

// NullDevice accepts any format and discards the audio. It counts what it
// was given, which makes it useful for dry runs and tests.
type NullDevice struct {
	pinned  *Format
	opens   atomic.Int64
	samples atomic.Int64
}

func NewNullDevice() *NullDevice {
	return &NullDevice{}
}

// NewPinnedNullDevice is a NullDevice whose streams always run at f,
// whatever format was asked for, the way the oto and beep devices do once
// initialized.
func NewPinnedNullDevice(f Format) *NullDevice {
	return &NullDevice{pinned: &f}
}

func (d *NullDevice) Open(ctx context.Context, f Format) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if d.pinned != nil {
		f = *d.pinned
	}

	d.opens.Add(1)
	return &nullStream{dev: d, format: f}, nil
}

// Opens is the number of streams opened so far.
func (d *NullDevice) Opens() int64 { return d.opens.Load() }

// Samples is the number of samples written across all streams.
func (d *NullDevice) Samples() int64 { return d.samples.Load() }

type nullStream struct {
	dev    *NullDevice
	format Format
}

func (s *nullStream) Format() Format { return s.format }

func (s *nullStream) Write(samples []float32) error {
	s.dev.samples.Add(int64(len(samples)))
	return nil
}

func (s *nullStream) Drain(ctx context.Context) error { return ctx.Err() }
func (s *nullStream) Close() error                    { return nil }
