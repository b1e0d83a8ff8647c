// SPDX-License-Identifier: EPL-2.0

// Package playback renders decoded clips on an audio output.
//
// A Player opens a Stream on a Device for each Play call, writes the clip
// in chunks, waits for the device to drain and closes the stream again
// whatever happened. Failures to acquire the device wrap
// ErrDeviceUnavailable; anything that goes wrong once samples flow wraps
// ErrPlayback.
//
// Devices:
//   - OtoDevice plays through ebitengine/oto. The process holds a single
//     oto context whose format is fixed by the first clip; later streams
//     report that format and the Player either conforms the clip
//     (WithConform) or refuses it.
//   - PortAudioDevice opens and terminates PortAudio on every stream.
//     It needs the portaudio build tag and the PortAudio C library.
//   - NullDevice discards audio and counts it.
package playback
