// SPDX-License-Identifier: EPL-2.0

package soundboard

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/soundboard/audio"
	"github.com/ik5/soundboard/formats/aiff"
	"github.com/ik5/soundboard/formats/mp3"
	"github.com/ik5/soundboard/formats/vorbis"
	"github.com/ik5/soundboard/formats/wav"
)

// ErrUnknownExtension is returned for a path whose extension no decoder claims.
var ErrUnknownExtension = fmt.Errorf("%w: unrecognized file extension", audio.ErrDecode)

// DefaultRegistry holds every decoder shipped with the module.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register(wav.Decoder{}, "wav", "wave")
	reg.Register(mp3.Decoder{}, "mp3")
	reg.Register(vorbis.Decoder{}, "ogg", "oga")
	reg.Register(aiff.Decoder{}, "aif", "aiff")

	return reg
}

// Decoder turns sound files into fully decoded clips.
type Decoder struct {
	reg *audio.Registry
}

// NewDecoder uses reg to pick a format decoder; nil selects DefaultRegistry.
func NewDecoder(reg *audio.Registry) *Decoder {
	if reg == nil {
		reg = DefaultRegistry()
	}
	return &Decoder{reg: reg}
}

// Supports reports whether path carries an extension the decoder handles.
func (d *Decoder) Supports(path string) bool {
	_, ok := d.reg.ForPath(path)
	return ok
}

// Extensions lists the extensions the decoder handles, without dots.
func (d *Decoder) Extensions() []string {
	return d.reg.Extensions()
}

// Decode reads the whole file at path into memory as a Clip. The file is
// closed before Decode returns. Every failure wraps audio.ErrDecode or
// audio.ErrUnsupportedFormat.
func (d *Decoder) Decode(path string) (*audio.Clip, error) {
	dec, ok := d.reg.ForPath(path)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownExtension, filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrDecode, err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), classify(err))
	}

	clip, err := audio.ReadClip(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), classify(err))
	}

	return clip, nil
}

// Decode decodes path with the default registry.
func Decode(path string) (*audio.Clip, error) {
	return NewDecoder(nil).Decode(path)
}

func classify(err error) error {
	if errors.Is(err, audio.ErrDecode) || errors.Is(err, audio.ErrUnsupportedFormat) {
		return err
	}
	return fmt.Errorf("%w: %w", audio.ErrDecode, err)
}
