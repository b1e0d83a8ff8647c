// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF (Audio Interchange File Format) files through
// github.com/go-audio/aiff.
//
// AIFF is the big-endian cousin of WAV. Only uncompressed 16-bit PCM in
// mono or stereo is accepted; the samples are normalized by 32768 exactly
// like the WAV decoder, so the same sound stored in either container
// decodes to identical floats.
//
// # Errors
//
//   - ErrNotAiffFile: not a FORM/AIFF container (wraps audio.ErrDecode)
//   - ErrUnsupportedAiffLayout: missing or unreadable COMM chunk (wraps audio.ErrDecode)
//   - ErrOnlyPCM16bitSupported: any other bit depth (wraps audio.ErrUnsupportedFormat)
//   - ErrUnsupportedChannels: more than two channels (wraps audio.ErrUnsupportedFormat)
//
// AIFF-C (.aifc) compressed variants are not supported.
package aiff
