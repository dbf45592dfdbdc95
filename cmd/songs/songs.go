package songs

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/karaoke/cmd/common"
	"github.com/gigurra/karaoke/cmd/serve/catalog"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

type Params struct {
	Catalog string `short:"c" env:"KARAOKE_CATALOG" optional:"true" help:"JSON file with the song catalog. The built-in catalog is used when empty." default:""`
	Json    bool   `short:"j" help:"Output in JSON format."`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "songs",
		Short:       "List the songs in the catalog",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			if err := Run(params, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "songs: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func Run(params *Params, stdout io.Writer) error {
	cat, err := catalog.Load(params.Catalog)
	if err != nil {
		return err
	}

	if params.Json {
		encoder := json.NewEncoder(stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(cat.ListSongs())
	}

	RenderTable(stdout, cat.ListSongs())
	return nil
}

// RenderTable prints songs with their catalog position.
func RenderTable(w io.Writer, songs []catalog.Song) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Song", "Artist", "Duration"})
	for i, s := range songs {
		t.AppendRow(table.Row{i + 1, s.SongName, s.Artist, s.Duration})
	}
	t.Render()
}
