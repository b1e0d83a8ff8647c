// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/spf13/cobra"

	"github.com/ik5/soundboard"
	"github.com/ik5/soundboard/playback"
)

type PlayParams struct {
	Files   []string `pos:"true" help:"Sound files to play, one after another."`
	Backend string   `short:"b" help:"Output backend: oto, beep, portaudio or null." default:"oto" alts:"oto,beep,portaudio,null"`
	Strict  bool     `short:"s" help:"Fail on clips the device cannot play as they are instead of resampling and remixing them."`
	Verbose bool     `short:"v" help:"Log debug output, including player state changes."`
}

func PlayCmd() *cobra.Command {
	return boa.CmdT[PlayParams]{
		Use:         "play",
		Short:       "Decode and play sound files",
		ParamEnrich: defaultParamEnricher(),
		RunFunc: func(params *PlayParams, cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			dev, err := newDevice(params.Backend)
			if err != nil {
				fail("play", err)
			}

			if err := runPlay(ctx, params, dev, newLogger(os.Stderr, params.Verbose)); err != nil {
				fail("play", err)
			}
		},
	}.ToCobra()
}

func runPlay(ctx context.Context, params *PlayParams, dev playback.Device, log *slog.Logger) error {
	if len(params.Files) == 0 {
		return fmt.Errorf("no files given")
	}

	dec := soundboard.NewDecoder(nil)
	player := newPlayer(dev, params.Strict, params.Verbose, log)

	for _, path := range params.Files {
		clip, err := dec.Decode(path)
		if err != nil {
			return err
		}

		log.Debug("decoded", "file", path, "rate", clip.SampleRate, "channels", clip.Channels, "duration", clip.Duration())

		if err := player.Play(ctx, clip); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		log.Info("played", "file", path)
	}

	return nil
}
