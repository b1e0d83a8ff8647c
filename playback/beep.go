// SPDX-License-Identifier: EPL-2.0

//go:build !linux || cgo

package playback

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// beepBuffer is the speaker buffer length. Audio handed to the speaker
// is heard up to this long after the feed runs dry.
const beepBuffer = time.Second / 10

// BeepDevice plays through the gopxl/beep speaker. The speaker always
// mixes stereo and, like oto underneath it, is initialized once per
// process at the first requested sample rate.
type BeepDevice struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	inited bool
}

func NewBeepDevice() *BeepDevice {
	return &BeepDevice{}
}

func (d *BeepDevice) Open(ctx context.Context, f Format) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeviceUnavailable, err)
	}

	d.mu.Lock()
	if !d.inited {
		rate := beep.SampleRate(f.SampleRate)
		if err := speaker.Init(rate, rate.N(beepBuffer)); err != nil {
			d.mu.Unlock()
			return nil, fmt.Errorf("%w: %w", ErrDeviceUnavailable, err)
		}
		d.rate = rate
		d.inited = true
	}
	rate := d.rate
	d.mu.Unlock()

	feed := &beepFeed{done: make(chan struct{})}
	speaker.Play(beep.Seq(feed, beep.Callback(func() { close(feed.done) })))

	return &beepStream{
		feed:   feed,
		format: Format{SampleRate: int(rate), Channels: 2},
		tail:   beepBuffer,
	}, nil
}

// beepFeed is the streamer the speaker pulls from. It pads with silence
// while the writer is behind and ends once the writer is done.
type beepFeed struct {
	mu      sync.Mutex
	buf     []float32
	pos     int
	eof     bool
	aborted bool
	done    chan struct{}
}

func (f *beepFeed) Stream(samples [][2]float64) (int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.aborted {
		return 0, false
	}

	n := 0
	for n < len(samples) && f.pos+1 < len(f.buf) {
		samples[n][0] = float64(f.buf[f.pos])
		samples[n][1] = float64(f.buf[f.pos+1])
		f.pos += 2
		n++
	}

	if f.pos > len(f.buf)/2 {
		f.buf = f.buf[:copy(f.buf, f.buf[f.pos:])]
		f.pos = 0
	}

	if f.eof {
		return n, n > 0
	}

	for ; n < len(samples); n++ {
		samples[n] = [2]float64{}
	}
	return n, true
}

func (f *beepFeed) Err() error { return nil }

type beepStream struct {
	feed   *beepFeed
	format Format
	tail   time.Duration
}

func (s *beepStream) Format() Format { return s.format }

func (s *beepStream) Write(samples []float32) error {
	s.feed.mu.Lock()
	defer s.feed.mu.Unlock()

	if s.feed.aborted || s.feed.eof {
		return fmt.Errorf("write on finished stream")
	}
	s.feed.buf = append(s.feed.buf, samples...)

	return nil
}

// Drain returns once the speaker has pulled the last sample and played
// out its buffer.
func (s *beepStream) Drain(ctx context.Context) error {
	s.feed.mu.Lock()
	s.feed.eof = true
	s.feed.mu.Unlock()

	select {
	case <-s.feed.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	if s.tail <= 0 {
		return nil
	}

	timer := time.NewTimer(s.tail)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *beepStream) Close() error {
	s.feed.mu.Lock()
	s.feed.aborted = true
	s.feed.mu.Unlock()

	return nil
}
