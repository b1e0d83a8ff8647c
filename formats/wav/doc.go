// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes RIFF/WAVE files holding 16-bit PCM.
//
// The decoder parses the container itself: it walks the chunk list, skips
// chunks it does not know (LIST, fact, cue and so on) and streams the
// "data" chunk as float32 samples normalized by 32768.
//
//	src, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    // errors.Is(err, audio.ErrDecode) or audio.ErrUnsupportedFormat
//	}
//
// # Accepted input
//
//   - WAVE_FORMAT_PCM, or WAVE_FORMAT_EXTENSIBLE with a PCM sub-format
//   - 16 bits per sample
//   - mono or stereo, any sample rate
//
// Other bit depths, float or compressed encodings and more than two
// channels fail with an error wrapping audio.ErrUnsupportedFormat. Missing
// or truncated chunks, a zero sample rate and a data chunk that does not
// hold whole frames fail with audio.ErrDecode. A data chunk of size
// 0xFFFFFFFF, left by streaming writers, is read to end of input.
//
// # Writing
//
// WritePCM16 and WriteClip produce PCM files through github.com/go-audio/wav:
//
//	f, _ := os.Create("tone.wav")
//	err := wav.WritePCM16(f, 44100, 1, samples)
package wav
