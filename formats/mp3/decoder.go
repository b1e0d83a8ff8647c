// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/soundboard/audio"
	"github.com/ik5/soundboard/utils"
)

// go-mp3 always produces 16-bit little-endian stereo.
const channels = 2

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte
	// pending holds a trailing odd byte between reads
	pending []byte
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / 2 } // return sample capacity, not bytes

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	bytesNeeded := len(dst) * 2
	if cap(s.buf) < bytesNeeded {
		s.buf = make([]byte, bytesNeeded)
	}
	s.buf = s.buf[:bytesNeeded]

	off := copy(s.buf, s.pending)
	s.pending = s.pending[:0]

	n, err := s.dec.Read(s.buf[off:])
	n += off

	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("%w: %w", audio.ErrDecode, err)
	}

	if n%2 == 1 {
		if err != nil {
			return 0, fmt.Errorf("%w: odd byte count in decoded PCM", audio.ErrDecode)
		}
		s.pending = append(s.pending, s.buf[n-1])
		n--
	}

	samples := utils.DecodePCM16LE(dst, s.buf[:n])

	return samples, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: mp3: %w", audio.ErrDecode, err)
	}

	if dec.SampleRate() <= 0 {
		return nil, fmt.Errorf("%w: mp3: sample rate %d", audio.ErrDecode, dec.SampleRate())
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, 8192),
		pending:    make([]byte, 0, 1),
	}, nil
}
