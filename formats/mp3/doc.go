// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III audio through
// github.com/hajimehoshi/go-mp3.
//
// go-mp3 acts as the codec engine: it turns the compressed stream into
// 16-bit little-endian stereo PCM, which this package normalizes to
// float32 by dividing by 32768. Output is therefore always two channels,
// mono files included, at the sample rate of the first frame.
//
//	src, err := mp3.Decoder{}.Decode(file)
//	if errors.Is(err, audio.ErrDecode) {
//	    // not an MP3 stream, or go-mp3 rejected it
//	}
//
// Every failure, whether while locating the first frame or part way
// through the stream, wraps audio.ErrDecode.
package mp3
