// SPDX-License-Identifier: EPL-2.0

// Package soundboard is the playback core of a soundboard: it decodes a
// sound file into memory and hands the result to a player.
//
// # Decoding
//
// Decode picks a format decoder from the file extension, reads the whole
// file and returns an audio.Clip holding interleaved float32 samples in
// [-1.0, 1.0]:
//
//	clip, err := soundboard.Decode("airhorn.mp3")
//	if err != nil {
//	    // errors.Is(err, audio.ErrDecode) or audio.ErrUnsupportedFormat
//	}
//
// # Supported Formats
//
//   - .wav, .wave: RIFF/WAVE 16-bit PCM, parsed natively (formats/wav)
//   - .mp3: MPEG Layer III through go-mp3 (formats/mp3)
//   - .ogg, .oga: Ogg Vorbis (formats/vorbis)
//   - .aif, .aiff: AIFF 16-bit PCM (formats/aiff)
//
// Only mono and stereo are accepted. 16-bit integer PCM is normalized by
// dividing by 32768, so -32768 becomes exactly -1.0 and 32767 lands just
// below 1.0.
//
// # Playback
//
// The playback package renders a clip on an output device and blocks
// until the device has consumed every sample:
//
//	player := playback.NewPlayer(playback.NewOtoDevice())
//	err = player.Play(ctx, clip)
//
// The board package ties both together behind image buttons, serializing
// presses so one clip finishes before the next starts.
package soundboard
