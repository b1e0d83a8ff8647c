// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/soundboard/audio"
	"github.com/ik5/soundboard/utils"
)

// WritePCM16 writes interleaved 16-bit samples as a PCM WAV file.
// The encoder patches chunk sizes on close, so w must be seekable.
func WritePCM16(w io.WriteSeeker, sampleRate, channels int, samples []int16) error {
	if !audio.SupportedChannels(channels) {
		return fmt.Errorf("%w: %d channels", ErrUnsupportedChannels, channels)
	}
	if len(samples)%channels != 0 {
		return fmt.Errorf("%w: %d samples for %d channels", audio.ErrInvalidDstSize, len(samples), channels)
	}

	enc := gowav.NewEncoder(w, sampleRate, 16, channels, formatPCM)

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("%w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// WriteClip stores clip as 16-bit PCM, the inverse of decoding it.
func WriteClip(w io.WriteSeeker, clip *audio.Clip) error {
	if err := clip.Validate(); err != nil {
		return err
	}

	samples := make([]int16, len(clip.Samples))
	for i, v := range clip.Samples {
		samples[i] = utils.Float32ToInt16(v)
	}

	return WritePCM16(w, clip.SampleRate, clip.Channels, samples)
}
