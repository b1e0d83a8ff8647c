// SPDX-License-Identifier: EPL-2.0

//go:build !portaudio

package playback

import (
	"context"
	"fmt"
)

// PortAudioAvailable reports whether this build links PortAudio.
const PortAudioAvailable = false

// PortAudioDevice is a placeholder when built without the portaudio tag.
type PortAudioDevice struct{}

func NewPortAudioDevice() *PortAudioDevice { return &PortAudioDevice{} }

func (*PortAudioDevice) Open(context.Context, Format) (Stream, error) {
	return nil, fmt.Errorf("%w: PortAudio support not enabled (build with -tags portaudio)", ErrDeviceUnavailable)
}
