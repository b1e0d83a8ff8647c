// SPDX-License-Identifier: EPL-2.0

package playback

// State of a Player. A call moves Idle -> DeviceOpening -> Streaming and
// back to Idle, or ends in Failed from either of the middle states.
type State int32

const (
	StateIdle State = iota
	StateDeviceOpening
	StateStreaming
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDeviceOpening:
		return "device-opening"
	case StateStreaming:
		return "streaming"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}
