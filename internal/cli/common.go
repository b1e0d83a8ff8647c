// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/GiGurra/boa/pkg/boa"

	"github.com/ik5/soundboard/playback"
)

const (
	BackendOto       = "oto"
	BackendPortAudio = "portaudio"
	BackendBeep      = "beep"
	BackendNull      = "null"
)

func defaultParamEnricher() boa.ParamEnricher {
	return boa.ParamEnricherCombine(
		boa.ParamEnricherBool,
		boa.ParamEnricherName,
		boa.ParamEnricherShort,
	)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newDevice(backend string) (playback.Device, error) {
	switch backend {
	case BackendOto, "":
		return playback.NewOtoDevice(), nil
	case BackendPortAudio:
		if !playback.PortAudioAvailable {
			return nil, fmt.Errorf("%w: this binary was built without PortAudio", playback.ErrDeviceUnavailable)
		}
		return playback.NewPortAudioDevice(), nil
	case BackendBeep:
		return playback.NewBeepDevice(), nil
	case BackendNull:
		return playback.NewNullDevice(), nil
	}

	return nil, fmt.Errorf("unknown backend %q", backend)
}

// newPlayer conforms clips unless strict is set. The oto and beep devices
// keep one format for the life of the process.
func newPlayer(dev playback.Device, strict, verbose bool, log *slog.Logger) *playback.Player {
	opts := []playback.Option{playback.WithConform(!strict)}
	if verbose {
		opts = append(opts, playback.WithStateHook(func(s playback.State) {
			log.Debug("player state", "state", s)
		}))
	}

	return playback.NewPlayer(dev, opts...)
}

func fail(name string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
	os.Exit(1)
}
