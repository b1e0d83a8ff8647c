// SPDX-License-Identifier: EPL-2.0

//go:build linux && !cgo

package playback

import (
	"context"
	"fmt"
	"time"
)

// OtoAvailable reports whether this build can open an oto device.
// On Linux oto needs cgo for ALSA.
const OtoAvailable = false

// OtoDevice is a stand-in for builds without cgo; it never opens.
type OtoDevice struct{}

func NewOtoDevice() *OtoDevice { return &OtoDevice{} }

func NewOtoDeviceBuffer(time.Duration) *OtoDevice { return &OtoDevice{} }

func (*OtoDevice) Open(context.Context, Format) (Stream, error) {
	return nil, fmt.Errorf("%w: built without cgo, no ALSA output", ErrDeviceUnavailable)
}
