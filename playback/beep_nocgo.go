// SPDX-License-Identifier: EPL-2.0

//go:build linux && !cgo

package playback

import (
	"context"
	"fmt"
)

// BeepDevice is a stand-in for builds without cgo; it never opens.
type BeepDevice struct{}

func NewBeepDevice() *BeepDevice { return &BeepDevice{} }

func (*BeepDevice) Open(context.Context, Format) (Stream, error) {
	return nil, fmt.Errorf("%w: built without cgo, no ALSA output", ErrDeviceUnavailable)
}
