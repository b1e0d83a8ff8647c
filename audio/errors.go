// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrDecode reports an unreadable file, a malformed container or a
	// stream the codec engine rejected.
	ErrDecode = errors.New("decode error")

	// ErrUnsupportedFormat reports a recognized container whose bit depth,
	// encoding or channel layout is outside what the decoders handle.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)

// SupportedChannels reports whether n is a channel count a Clip may carry.
func SupportedChannels(n int) bool {
	return n == 1 || n == 2
}
