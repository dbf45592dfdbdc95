package main

import (
	"runtime/debug"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/karaoke/cmd/common"
	"github.com/gigurra/karaoke/cmd/queue"
	"github.com/gigurra/karaoke/cmd/serve"
	"github.com/gigurra/karaoke/cmd/songs"
	"github.com/spf13/cobra"
)

func main() {
	common.LoadDotEnv()

	boa.CmdT[boa.NoParams]{
		Use:     "karaoke",
		Short:   "Karaoke song queue server",
		Version: appVersion(),
		SubCmds: []*cobra.Command{
			serve.Cmd(),
			songs.Cmd(),
			queue.Cmd(),
		},
	}.Run()
}

func appVersion() string {
	bi, hasBuilInfo := debug.ReadBuildInfo()
	if !hasBuilInfo {
		return "unknown-(no build info)"
	}

	versionString := bi.Main.Version
	if versionString == "" {
		versionString = "unknown-(no version)"
	}

	return versionString
}
