// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ik5/soundboard"
	"github.com/ik5/soundboard/audio"
)

type InfoParams struct {
	Files []string `pos:"true" help:"Sound files to inspect."`
}

func InfoCmd() *cobra.Command {
	return boa.CmdT[InfoParams]{
		Use:         "info",
		Short:       "Show the format of sound files",
		ParamEnrich: defaultParamEnricher(),
		RunFunc: func(params *InfoParams, cmd *cobra.Command, args []string) {
			if err := runInfo(params, os.Stdout); err != nil {
				fail("info", err)
			}
		},
	}.ToCobra()
}

// runInfo prints one row per file. Files that fail to decode get an error
// row and the decode errors are returned after the table is rendered.
func runInfo(params *InfoParams, stdout io.Writer) error {
	dec := soundboard.NewDecoder(nil)

	t := table.NewWriter()
	t.SetOutputMirror(stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"File", "Rate", "Channels", "Frames", "Duration", "Peak"})

	var errs []error
	for _, path := range params.Files {
		clip, err := dec.Decode(path)
		if err != nil {
			t.AppendRow(table.Row{path, fmt.Sprintf("error: %v", err)})
			errs = append(errs, err)
			continue
		}

		t.AppendRow(table.Row{
			path,
			clip.SampleRate,
			clip.Channels,
			clip.Frames(),
			clip.Duration().Round(time.Millisecond),
			fmt.Sprintf("%.1f dBFS", peakDBFS(clip)),
		})
	}

	t.Render()

	return errors.Join(errs...)
}

func peakDBFS(clip *audio.Clip) float64 {
	var peak float32
	for _, s := range clip.Samples {
		peak = max(peak, s, -s)
	}
	if peak == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(float64(peak))
}
