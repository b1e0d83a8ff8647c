// SPDX-License-Identifier: EPL-2.0

package main

import (
	"runtime/debug"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/spf13/cobra"

	"github.com/ik5/soundboard/internal/cli"
)

func main() {
	boa.CmdT[boa.NoParams]{
		Use:     "soundboard",
		Short:   "Play sound clips from the terminal",
		Version: appVersion(),
		SubCmds: []*cobra.Command{
			cli.PlayCmd(),
			cli.InfoCmd(),
			cli.GenCmd(),
			cli.BoardCmd(),
		},
	}.Run()
}

func appVersion() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi.Main.Version == "" {
		return "unknown"
	}

	return bi.Main.Version
}
