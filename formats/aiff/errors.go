// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"

	"github.com/ik5/soundboard/audio"
)

var (
	// ErrNotAiffFile indicates the file is not a valid AIFF file
	ErrNotAiffFile = fmt.Errorf("%w: not an AIFF file", audio.ErrDecode)

	// ErrOnlyPCM16bitSupported indicates only 16-bit PCM is supported
	ErrOnlyPCM16bitSupported = fmt.Errorf("%w: only 16-bit PCM AIFF is supported", audio.ErrUnsupportedFormat)

	// ErrUnsupportedChannels indicates a channel count other than mono or stereo
	ErrUnsupportedChannels = fmt.Errorf("%w: only mono and stereo AIFF supported", audio.ErrUnsupportedFormat)

	// ErrUnsupportedAiffLayout indicates an unsupported AIFF layout
	ErrUnsupportedAiffLayout = fmt.Errorf("%w: unsupported AIFF layout", audio.ErrDecode)
)
