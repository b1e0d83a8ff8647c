// SPDX-License-Identifier: EPL-2.0

package playback

import "errors"

var (
	// ErrDeviceUnavailable reports that no output device could be opened
	// for the requested sample rate and channel count.
	ErrDeviceUnavailable = errors.New("audio output device unavailable")

	// ErrPlayback reports a device failure after streaming started.
	ErrPlayback = errors.New("playback failed")
)
