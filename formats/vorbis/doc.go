// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis through github.com/jfreymuth/oggvorbis.
//
// Vorbis decodes straight to float samples, so no integer normalization
// happens here; values that overshoot full scale are clamped to [-1, 1].
// Mono and stereo streams are accepted; other channel counts fail with
// audio.ErrUnsupportedFormat and anything the library rejects wraps
// audio.ErrDecode.
package vorbis
