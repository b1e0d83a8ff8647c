// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"

	"github.com/ik5/soundboard/audio"
)

var (
	ErrNotWavFile            = fmt.Errorf("%w: not a WAV file", audio.ErrDecode)
	ErrUnsupportedWavLayout  = fmt.Errorf("%w: unsupported WAV layout", audio.ErrDecode)
	ErrUnsupportedWavChunks  = fmt.Errorf("%w: unsupported WAV chunks", audio.ErrDecode)
	ErrTruncated             = fmt.Errorf("%w: truncated WAV data", audio.ErrDecode)
	ErrOnlyPCM16bitSupported = fmt.Errorf("%w: only PCM 16-bit supported", audio.ErrUnsupportedFormat)
	ErrUnsupportedChannels   = fmt.Errorf("%w: only mono and stereo WAV supported", audio.ErrUnsupportedFormat)
)
