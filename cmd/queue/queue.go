package queue

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/karaoke/cmd/common"
	"github.com/gigurra/karaoke/cmd/serve/catalog"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var (
	ErrSongNotFound  = errors.New("song not found in catalog")
	ErrAmbiguousSong = errors.New("several songs match, specify the artist")
)

const defaultServer = "http://localhost:5001"

func Cmd() *cobra.Command {
	return boa.CmdT[boa.NoParams]{
		Use:   "queue",
		Short: "Inspect and change the queue of a running server",
		SubCmds: []*cobra.Command{
			listCmd(),
			addCmd(),
			removeCmd(),
			playCmd(),
			clearCmd(),
		},
	}.ToCobra()
}

type ListParams struct {
	Server string `short:"s" env:"KARAOKE_SERVER" help:"Base URL of the karaoke server." default:"http://localhost:5001"`
}

type AddParams struct {
	Name   string `pos:"true" help:"Song name, as listed in the catalog."`
	Artist string `pos:"true" optional:"true" help:"Artist, needed when several songs share a name." default:""`
	Server string `short:"s" env:"KARAOKE_SERVER" help:"Base URL of the karaoke server." default:"http://localhost:5001"`
}

type RemoveParams struct {
	Index  int    `pos:"true" help:"Zero-based position in the queue."`
	Server string `short:"s" env:"KARAOKE_SERVER" help:"Base URL of the karaoke server." default:"http://localhost:5001"`
}

func fail(name string, err error) {
	fmt.Fprintf(os.Stderr, "queue %s: %v\n", name, err)
	os.Exit(1)
}

func listCmd() *cobra.Command {
	return boa.CmdT[ListParams]{
		Use:         "list",
		Short:       "Show the queue",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *ListParams, cmd *cobra.Command, args []string) {
			if err := RunList(cmd.Context(), NewClient(params.Server), os.Stdout); err != nil {
				fail("list", err)
			}
		},
	}.ToCobra()
}

func addCmd() *cobra.Command {
	return boa.CmdT[AddParams]{
		Use:         "add",
		Short:       "Queue a song from the catalog",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *AddParams, cmd *cobra.Command, args []string) {
			if err := RunAdd(cmd.Context(), NewClient(params.Server), params.Name, params.Artist, os.Stdout); err != nil {
				fail("add", err)
			}
		},
	}.ToCobra()
}

func removeCmd() *cobra.Command {
	return boa.CmdT[RemoveParams]{
		Use:         "remove",
		Short:       "Remove the song at a queue position",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *RemoveParams, cmd *cobra.Command, args []string) {
			msg, err := NewClient(params.Server).Remove(cmd.Context(), params.Index)
			if err != nil {
				fail("remove", err)
			}
			fmt.Println(msg)
		},
	}.ToCobra()
}

func playCmd() *cobra.Command {
	return boa.CmdT[ListParams]{
		Use:         "play",
		Short:       "Take the next song off the queue",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *ListParams, cmd *cobra.Command, args []string) {
			if err := RunPlay(cmd.Context(), NewClient(params.Server), os.Stdout); err != nil {
				fail("play", err)
			}
		},
	}.ToCobra()
}

func clearCmd() *cobra.Command {
	return boa.CmdT[ListParams]{
		Use:         "clear",
		Short:       "Empty the queue",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *ListParams, cmd *cobra.Command, args []string) {
			msg, err := NewClient(params.Server).Clear(cmd.Context())
			if err != nil {
				fail("clear", err)
			}
			fmt.Println(msg)
		},
	}.ToCobra()
}

func RunList(ctx context.Context, client *Client, stdout io.Writer) error {
	entries, err := client.Queue(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(stdout, "The queue is empty.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Index", "Song", "Artist", "Duration"})
	for i, e := range entries {
		t.AppendRow(table.Row{i, field(e, "song_name"), field(e, "artist"), field(e, "duration")})
	}
	t.Render()
	return nil
}

// RunAdd looks the song up in the server's catalog and queues the full record.
func RunAdd(ctx context.Context, client *Client, name, artist string, stdout io.Writer) error {
	songs, err := client.Songs(ctx)
	if err != nil {
		return err
	}

	song, err := findSong(songs, name, artist)
	if err != nil {
		return err
	}

	msg, err := client.Add(ctx, song)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s: %s by %s\n", msg, song.SongName, song.Artist)
	return nil
}

func RunPlay(ctx context.Context, client *Client, stdout io.Writer) error {
	entry, err := client.PlayNext(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Now playing: %s by %s\n", field(entry, "song_name"), field(entry, "artist"))
	return nil
}

func findSong(songs []catalog.Song, name, artist string) (catalog.Song, error) {
	matches := lo.Filter(songs, func(s catalog.Song, _ int) bool {
		return strings.EqualFold(s.SongName, name) &&
			(artist == "" || strings.EqualFold(s.Artist, artist))
	})

	switch len(matches) {
	case 0:
		return catalog.Song{}, fmt.Errorf("%q: %w", name, ErrSongNotFound)
	case 1:
		return matches[0], nil
	default:
		artists := lo.Map(matches, func(s catalog.Song, _ int) string { return s.Artist })
		return catalog.Song{}, fmt.Errorf("%q (%s): %w", name, strings.Join(artists, ", "), ErrAmbiguousSong)
	}
}

func field(entry map[string]any, key string) string {
	if v, ok := entry[key]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return ""
}
