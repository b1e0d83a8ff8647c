// SPDX-License-Identifier: EPL-2.0

// Package audio holds the in-memory clip model and the streaming pieces
// the decoders and the player share.
//
// A Source yields interleaved float32 samples normalized to [-1, 1]:
//
//	for {
//	    n, err := src.ReadSamples(buf)
//	    // use buf[:n]
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
//
// Format decoders register with a Registry under one or more file
// extensions. ReadClip drains a Source into a Clip, which is the unit of
// playback. Conform chains a ChannelMixer and a Resampler to present a
// Source at another rate or channel layout when the output device cannot
// run at the clip's own format.
//
// Decoding failures wrap ErrDecode; recognized but unhandled layouts wrap
// ErrUnsupportedFormat. Compare with errors.Is.
package audio
