// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/soundboard/audio"
	"github.com/ik5/soundboard/utils"
)

const (
	formatPCM        = 0x0001
	formatExtensible = 0xFFFE

	// Streamed writers leave the data size unset; read until EOF.
	unknownDataSize = 0xFFFFFFFF
)

// Header is the subset of the "fmt " chunk the decoder acts on.
type Header struct {
	AudioFormat   uint16
	Channels      int
	SampleRate    int
	BlockAlign    int
	BitsPerSample int
	// DataSize is the declared byte length of the data chunk, -1 when unknown.
	DataSize int64
}

type wavSource struct {
	r          io.Reader
	sampleRate int
	channels   int
	buf        []byte
	eof        bool
	bufSize    int
}

func (s *wavSource) SampleRate() int { return s.sampleRate }
func (s *wavSource) Channels() int   { return s.channels }
func (s *wavSource) Close() error    { return nil }
func (s *wavSource) BufSize() int    { return s.bufSize }

func (s *wavSource) ReadSamples(dst []float32) (int, error) {
	if s.eof {
		return 0, io.EOF
	}
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) * 2
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	n, err := io.ReadFull(s.r, s.buf)

	switch {
	case err == nil:
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		s.eof = true
	case errors.Is(err, audio.ErrDecode):
		return 0, err
	default:
		return 0, fmt.Errorf("%w: %w", audio.ErrDecode, err)
	}

	if s.eof && n%2 != 0 {
		return 0, fmt.Errorf("%w: odd byte count in sample data", ErrTruncated)
	}

	samples := utils.DecodePCM16LE(dst, s.buf[:n])
	if s.eof {
		if samples == 0 {
			return 0, io.EOF
		}
		return samples, io.EOF
	}

	return samples, nil
}

type Decoder struct{}

// Decode parses the RIFF header and chunk list up to the start of the
// "data" chunk and returns a Source streaming its samples.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	hdr, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}

	data := r
	if hdr.DataSize >= 0 {
		data = &sizedReader{r: io.LimitReader(r, hdr.DataSize), remaining: hdr.DataSize}
	}

	return &wavSource{
		r:          data,
		sampleRate: hdr.SampleRate,
		channels:   hdr.Channels,
		buf:        make([]byte, 8192),
		bufSize:    4096,
	}, nil
}

// ReadHeader consumes r up to the first byte of sample data.
func ReadHeader(r io.Reader) (*Header, error) {
	riff := make([]byte, 12)
	if _, err := io.ReadFull(r, riff); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}

	if !bytes.Equal(riff[:4], []byte("RIFF")) || !bytes.Equal(riff[8:12], []byte("WAVE")) {
		return nil, ErrNotWavFile
	}

	var hdr *Header
	chunk := make([]byte, 8)

	for {
		if _, err := io.ReadFull(r, chunk); err != nil {
			if hdr == nil {
				return nil, fmt.Errorf("%w: missing fmt chunk", ErrUnsupportedWavChunks)
			}
			return nil, fmt.Errorf("%w: missing data chunk", ErrUnsupportedWavChunks)
		}

		id := string(chunk[:4])
		size := binary.LittleEndian.Uint32(chunk[4:8])

		switch id {
		case "fmt ":
			if hdr != nil {
				return nil, fmt.Errorf("%w: duplicate fmt chunk", ErrUnsupportedWavChunks)
			}
			h, err := readFmt(r, size)
			if err != nil {
				return nil, err
			}
			hdr = h

		case "data":
			if hdr == nil {
				return nil, fmt.Errorf("%w: data before fmt", ErrUnsupportedWavChunks)
			}
			if size == unknownDataSize {
				hdr.DataSize = -1
				return hdr, nil
			}
			if int(size)%hdr.BlockAlign != 0 {
				return nil, fmt.Errorf("%w: data size %d is not a multiple of block align %d",
					ErrUnsupportedWavLayout, size, hdr.BlockAlign)
			}
			hdr.DataSize = int64(size)
			return hdr, nil

		default:
			if err := skip(r, int64(size)+int64(size&1)); err != nil {
				return nil, fmt.Errorf("%w: chunk %q: %w", ErrTruncated, id, err)
			}
		}
	}
}

const fmtExtensibleSize = 40

func readFmt(r io.Reader, size uint32) (*Header, error) {
	if size < 16 {
		return nil, fmt.Errorf("%w: fmt chunk of %d bytes", ErrUnsupportedWavLayout, size)
	}

	// Fields past the extensible layout are skipped, not buffered.
	body := make([]byte, min(size, fmtExtensibleSize))
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("%w: fmt chunk: %w", ErrTruncated, err)
	}
	if err := skip(r, int64(size)-int64(len(body))+int64(size&1)); err != nil {
		return nil, fmt.Errorf("%w: fmt chunk: %w", ErrTruncated, err)
	}

	hdr := &Header{
		AudioFormat:   binary.LittleEndian.Uint16(body[0:2]),
		Channels:      int(binary.LittleEndian.Uint16(body[2:4])),
		SampleRate:    int(binary.LittleEndian.Uint32(body[4:8])),
		BlockAlign:    int(binary.LittleEndian.Uint16(body[12:14])),
		BitsPerSample: int(binary.LittleEndian.Uint16(body[14:16])),
	}

	format := hdr.AudioFormat
	if format == formatExtensible {
		// cbSize(2) validBits(2) channelMask(4) then the sub-format GUID,
		// whose first two bytes carry the actual format tag.
		if size < fmtExtensibleSize {
			return nil, fmt.Errorf("%w: short WAVE_FORMAT_EXTENSIBLE", ErrUnsupportedWavLayout)
		}
		format = binary.LittleEndian.Uint16(body[24:26])
	}

	if hdr.Channels == 0 || hdr.SampleRate == 0 {
		return nil, fmt.Errorf("%w: %d channels at %d Hz", ErrUnsupportedWavLayout, hdr.Channels, hdr.SampleRate)
	}
	if format != formatPCM || hdr.BitsPerSample != 16 {
		return nil, fmt.Errorf("%w: format 0x%04x, %d bits", ErrOnlyPCM16bitSupported, format, hdr.BitsPerSample)
	}
	if !audio.SupportedChannels(hdr.Channels) {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedChannels, hdr.Channels)
	}
	if hdr.BlockAlign != hdr.Channels*2 {
		return nil, fmt.Errorf("%w: block align %d for %d channels", ErrUnsupportedWavLayout, hdr.BlockAlign, hdr.Channels)
	}

	return hdr, nil
}

func skip(r io.Reader, n int64) error {
	if n == 0 {
		return nil
	}
	if s, ok := r.(io.Seeker); ok {
		_, err := s.Seek(n, io.SeekCurrent)
		return err
	}

	copied, err := io.CopyN(io.Discard, r, n)
	if copied < n && err == nil {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// sizedReader reports a data chunk shorter than its declared size.
type sizedReader struct {
	r         io.Reader
	remaining int64
}

func (s *sizedReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	s.remaining -= int64(n)
	if errors.Is(err, io.EOF) && s.remaining > 0 {
		return n, fmt.Errorf("%w: %d bytes missing", ErrTruncated, s.remaining)
	}
	return n, err
}
