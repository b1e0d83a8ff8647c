// SPDX-License-Identifier: EPL-2.0

package soundboard

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/soundboard/audio"
	"github.com/ik5/soundboard/formats/wav"
	"github.com/ik5/soundboard/internal/audiotest"
)

func TestDecode_OneSecondSilence(t *testing.T) {
	t.Parallel()

	path := audiotest.WriteFile(t, "silence.wav", audiotest.MonoWAV(44100, make([]int16, 44100)))

	clip, err := Decode(path)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if clip.SampleRate != 44100 {
		t.Errorf("SampleRate = %d, want 44100", clip.SampleRate)
	}
	if clip.Channels != 1 {
		t.Errorf("Channels = %d, want 1", clip.Channels)
	}
	if len(clip.Samples) != 44100 {
		t.Fatalf("len(Samples) = %d, want 44100", len(clip.Samples))
	}
	for i, v := range clip.Samples {
		if v != 0 {
			t.Fatalf("Samples[%d] = %v, want 0", i, v)
		}
	}
}

func TestDecode_RenamedTextAsMP3(t *testing.T) {
	t.Parallel()

	path := audiotest.WriteFile(t, "notes.mp3", []byte("shopping list:\n- eggs\n- milk\n"))

	_, err := Decode(path)
	if !errors.Is(err, audio.ErrDecode) {
		t.Errorf("Decode() error = %v, want audio.ErrDecode", err)
	}
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		data    []byte
		wantErr error
	}{
		{name: "missing file", path: filepath.Join(dir, "nope.wav"), wantErr: audio.ErrDecode},
		{name: "unknown extension", path: filepath.Join(dir, "clip.flac"), data: []byte("fLaC"), wantErr: ErrUnknownExtension},
		{name: "no extension", path: filepath.Join(dir, "clip"), data: []byte("RIFF"), wantErr: ErrUnknownExtension},
		{name: "zero-byte wav", path: filepath.Join(dir, "empty.wav"), data: []byte{}, wantErr: wav.ErrNotWavFile},
		{
			name:    "24-bit wav",
			path:    filepath.Join(dir, "deep.wav"),
			data:    audiotest.WAVFixture{SampleRate: 48000, Channels: 2, BitsPerSample: 24, Data: make([]byte, 12)}.Bytes(),
			wantErr: audio.ErrUnsupportedFormat,
		},
		{
			name:    "odd stereo samples",
			path:    filepath.Join(dir, "odd.wav"),
			data:    audiotest.WAVFixture{SampleRate: 48000, Channels: 2, Data: audiotest.PCM16([]int16{1, 2, 3})}.Bytes(),
			wantErr: audio.ErrDecode,
		},
	}

	for _, tt := range tests {
		if tt.data != nil {
			if err := os.WriteFile(tt.path, tt.data, 0o644); err != nil {
				t.Fatal(err)
			}
		}

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			clip, err := Decode(tt.path)
			if clip != nil {
				t.Errorf("Decode() clip = %+v, want nil", clip)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Decode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecode_ExtensionCaseInsensitive(t *testing.T) {
	t.Parallel()

	path := audiotest.WriteFile(t, "LOUD.WAV", audiotest.StereoWAV(22050, []int16{1, -1, 2, -2}))

	clip, err := Decode(path)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if clip.Frames() != 2 {
		t.Errorf("Frames() = %d, want 2", clip.Frames())
	}
}

func TestDecode_Idempotent(t *testing.T) {
	t.Parallel()

	path := audiotest.WriteFile(t, "tone.wav",
		audiotest.StereoWAV(48000, audiotest.Sine16(48000, 2, 4800, 523.25, 25000)))

	a, err := Decode(path)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	b, err := Decode(path)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if a.SampleRate != b.SampleRate || a.Channels != b.Channels || len(a.Samples) != len(b.Samples) {
		t.Fatalf("clips differ in shape: %d/%d/%d vs %d/%d/%d",
			a.SampleRate, a.Channels, len(a.Samples), b.SampleRate, b.Channels, len(b.Samples))
	}
	for i := range a.Samples {
		if math.Float32bits(a.Samples[i]) != math.Float32bits(b.Samples[i]) {
			t.Fatalf("Samples[%d]: %v vs %v", i, a.Samples[i], b.Samples[i])
		}
	}
}

func TestDecode_SamplesInRange(t *testing.T) {
	t.Parallel()

	samples := []int16{math.MinInt16, math.MaxInt16, 0, -1, 1, math.MinInt16 + 1}
	path := audiotest.WriteFile(t, "edges.wav", audiotest.StereoWAV(8000, samples))

	clip, err := Decode(path)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if len(clip.Samples) != clip.Frames()*clip.Channels {
		t.Errorf("len(Samples) = %d, want Frames*Channels = %d", len(clip.Samples), clip.Frames()*clip.Channels)
	}
	for i, v := range clip.Samples {
		if v < -1 || v > 1 {
			t.Errorf("Samples[%d] = %v outside [-1, 1]", i, v)
		}
	}
	if clip.Samples[0] != -1 {
		t.Errorf("Samples[0] = %v, want -1", clip.Samples[0])
	}
}

func TestDecode_WriterRoundTrip(t *testing.T) {
	t.Parallel()

	samples := audiotest.Sine16(16000, 1, 1600, 250, 32000)
	path := filepath.Join(t.TempDir(), "written.wav")

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := wav.WritePCM16(f, 16000, 1, samples); err != nil {
		t.Fatalf("WritePCM16() error = %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	clip, err := Decode(path)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if len(clip.Samples) != len(samples) {
		t.Fatalf("len(Samples) = %d, want %d", len(clip.Samples), len(samples))
	}
	for i, s := range samples {
		want := float64(s) / 32768.0
		if diff := math.Abs(float64(clip.Samples[i]) - want); diff > 1e-4 {
			t.Fatalf("Samples[%d] = %v, want %v", i, clip.Samples[i], want)
		}
	}
}

func TestDecoder_Supports(t *testing.T) {
	t.Parallel()

	dec := NewDecoder(nil)

	for _, p := range []string{"a.wav", "b.MP3", "c.ogg", "d.aiff", "e.aif"} {
		if !dec.Supports(p) {
			t.Errorf("Supports(%q) = false, want true", p)
		}
	}
	for _, p := range []string{"a.txt", "b", "c.flac"} {
		if dec.Supports(p) {
			t.Errorf("Supports(%q) = true, want false", p)
		}
	}
}

func TestDecoder_CustomRegistry(t *testing.T) {
	t.Parallel()

	reg := audio.NewRegistry()
	reg.Register(wav.Decoder{}, "snd")

	path := audiotest.WriteFile(t, "beep.snd", audiotest.MonoWAV(8000, []int16{1, 2}))

	clip, err := NewDecoder(reg).Decode(path)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(clip.Samples) != 2 {
		t.Errorf("len(Samples) = %d, want 2", len(clip.Samples))
	}

	if _, err := NewDecoder(reg).Decode(audiotest.WriteFile(t, "x.wav", audiotest.MonoWAV(8000, nil))); !errors.Is(err, ErrUnknownExtension) {
		t.Errorf("Decode(.wav) with custom registry error = %v, want ErrUnknownExtension", err)
	}
}
