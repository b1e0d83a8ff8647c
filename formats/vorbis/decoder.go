// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/soundboard/audio"
	"github.com/ik5/soundboard/utils"
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
	frameBuf   []float32 // buffer for reading frames from decoder
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.frameBuf) }

func (s *source) ReadSamples(dst []float32) (int, error) {
	framesRequested := len(dst) / s.channels
	if framesRequested == 0 {
		return 0, nil
	}

	if cap(s.frameBuf) < framesRequested*s.channels {
		s.frameBuf = make([]float32, framesRequested*s.channels)
	}
	s.frameBuf = s.frameBuf[:framesRequested*s.channels]

	// oggvorbis.Reader.Read takes interleaved samples and returns samples read
	n, err := s.dec.Read(s.frameBuf)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("%w: vorbis: %w", audio.ErrDecode, err)
	}

	// Vorbis synthesis can overshoot full scale slightly.
	for i, v := range s.frameBuf[:n] {
		dst[i] = utils.Clamp(v)
	}

	return n, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: vorbis: %w", audio.ErrDecode, err)
	}

	if !audio.SupportedChannels(dec.Channels()) {
		return nil, fmt.Errorf("%w: vorbis stream with %d channels", audio.ErrUnsupportedFormat, dec.Channels())
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
		frameBuf:   make([]float32, 4096),
	}, nil
}
