// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"context"
	"fmt"
)

// Format is the sample rate and channel layout of an output stream.
// Samples are always float32 in [-1, 1], interleaved.
type Format struct {
	SampleRate int
	Channels   int
}

func (f Format) String() string {
	return fmt.Sprintf("%d Hz/%d ch", f.SampleRate, f.Channels)
}

// Device hands out output streams on the system's default output.
type Device interface {
	// Open acquires a stream for f. A device pinned to one format may
	// return a stream running at another; Stream.Format tells.
	Open(ctx context.Context, f Format) (Stream, error)
}

// Stream is one acquisition of the output device.
type Stream interface {
	Format() Format
	// Write queues interleaved samples, blocking while the device buffer is full.
	Write(samples []float32) error
	// Drain blocks until every written sample has been played.
	Drain(ctx context.Context) error
	// Close releases the device. It is safe to call after a failed Write or Drain.
	Close() error
}
