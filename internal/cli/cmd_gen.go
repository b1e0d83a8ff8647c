// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/spf13/cobra"

	"github.com/ik5/soundboard/audio"
	"github.com/ik5/soundboard/formats/wav"
	"github.com/ik5/soundboard/utils"
)

type GenParams struct {
	Out       string  `pos:"true" help:"WAV file to write."`
	Freq      float64 `short:"f" help:"Tone frequency in Hz." default:"440"`
	Millis    int     `short:"d" help:"Length in milliseconds." default:"1000"`
	Rate      int     `short:"r" help:"Sample rate in Hz." default:"44100"`
	Channels  int     `short:"n" help:"Channel count, 1 or 2." default:"1"`
	Amplitude float64 `short:"a" help:"Peak amplitude in (0, 1]." default:"0.5"`
	Silence   bool    `short:"s" help:"Write silence instead of a tone."`
}

func GenCmd() *cobra.Command {
	return boa.CmdT[GenParams]{
		Use:         "gen",
		Short:       "Write a test tone or silence as 16-bit PCM WAV",
		ParamEnrich: defaultParamEnricher(),
		RunFunc: func(params *GenParams, cmd *cobra.Command, args []string) {
			if err := runGen(params, os.Stdout); err != nil {
				fail("gen", err)
			}
		},
	}.ToCobra()
}

func runGen(params *GenParams, stdout io.Writer) error {
	if params.Rate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", params.Rate)
	}
	if !audio.SupportedChannels(params.Channels) {
		return fmt.Errorf("channels must be 1 or 2, got %d", params.Channels)
	}
	if params.Millis < 0 {
		return fmt.Errorf("duration must not be negative, got %dms", params.Millis)
	}
	if !params.Silence && (params.Amplitude <= 0 || params.Amplitude > 1) {
		return fmt.Errorf("amplitude must be in (0, 1], got %g", params.Amplitude)
	}
	if nyquist := float64(params.Rate) / 2; !params.Silence && (params.Freq <= 0 || params.Freq >= nyquist) {
		return fmt.Errorf("frequency must be in (0, %g) Hz at %d Hz, got %g", nyquist, params.Rate, params.Freq)
	}

	frames := params.Rate * params.Millis / 1000
	samples := make([]int16, frames*params.Channels)

	if !params.Silence {
		for f := range frames {
			v := float32(params.Amplitude * math.Sin(2*math.Pi*params.Freq*float64(f)/float64(params.Rate)))
			s := utils.Float32ToInt16(v)
			for ch := range params.Channels {
				samples[f*params.Channels+ch] = s
			}
		}
	}

	f, err := os.Create(params.Out)
	if err != nil {
		return err
	}

	if err := wav.WritePCM16(f, params.Rate, params.Channels, samples); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "wrote %s: %d frames at %d Hz, %d channel(s)\n", params.Out, frames, params.Rate, params.Channels)

	return nil
}
