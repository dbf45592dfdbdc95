package queue

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gigurra/karaoke/cmd/serve/api"
	"github.com/gigurra/karaoke/cmd/serve/catalog"
	servequeue "github.com/gigurra/karaoke/cmd/serve/queue"
	"github.com/gin-gonic/gin"
)

func newTestServer(t *testing.T) (*Client, *servequeue.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	q := servequeue.New()
	handler, err := api.New(catalog.Default(), q, api.Options{})
	if err != nil {
		t.Fatalf("api.New failed: %v", err)
	}
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	t.Cleanup(handler.Close)
	return NewClient(srv.URL + "/"), q
}

func TestCmd(t *testing.T) {
	cmd := Cmd()
	if cmd == nil {
		t.Fatal("Cmd returned nil")
	}
	if cmd.Name() != "queue" {
		t.Errorf("expected Name()='queue', got '%s'", cmd.Name())
	}

	want := []string{"list", "add", "remove", "play", "clear"}
	for _, name := range want {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
			}
		}
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestFindSong(t *testing.T) {
	songs := catalog.Default().ListSongs()
	songs = append(songs, catalog.Song{SongName: "Neon Nights", Artist: "Tribute Band"})

	tests := []struct {
		name    string
		song    string
		artist  string
		want    string
		wantErr error
	}{
		{"exact", "Desert Bloom", "", "Sandstone Singers", nil},
		{"case insensitive", "desert bloom", "", "Sandstone Singers", nil},
		{"ambiguous", "Neon Nights", "", "", ErrAmbiguousSong},
		{"disambiguated", "Neon Nights", "tribute band", "Tribute Band", nil},
		{"unknown", "Nope", "", "", ErrSongNotFound},
		{"wrong artist", "Desert Bloom", "Someone", "", ErrSongNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := findSong(songs, tt.song, tt.artist)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Artist != tt.want {
				t.Errorf("found artist %q, want %q", got.Artist, tt.want)
			}
		})
	}
}

func TestRunAddListPlay(t *testing.T) {
	client, q := newTestServer(t)
	ctx := context.Background()

	var out bytes.Buffer
	if err := RunList(ctx, client, &out); err != nil {
		t.Fatalf("RunList failed: %v", err)
	}
	if !strings.Contains(out.String(), "empty") {
		t.Errorf("expected empty queue message, got %q", out.String())
	}

	out.Reset()
	if err := RunAdd(ctx, client, "whispering pines", "", &out); err != nil {
		t.Fatalf("RunAdd failed: %v", err)
	}
	if !strings.Contains(out.String(), "Song added to queue") {
		t.Errorf("unexpected add output: %q", out.String())
	}
	if q.Len() != 1 {
		t.Fatalf("expected one queued song, got %d", q.Len())
	}
	if raw, ok := q.List()[0].Field("audio_path"); !ok || !strings.Contains(string(raw), "whispering_pines.mp3") {
		t.Errorf("expected the full catalog record to be queued, got %s", raw)
	}

	err := RunAdd(ctx, client, "Whispering Pines", "", &out)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusBadRequest || apiErr.Message != "Song is already in the queue" {
		t.Errorf("expected duplicate API error, got %v", err)
	}

	out.Reset()
	if err := RunList(ctx, client, &out); err != nil {
		t.Fatalf("RunList failed: %v", err)
	}
	if !strings.Contains(out.String(), "Whispering Pines") || !strings.Contains(out.String(), "Forest Folk") {
		t.Errorf("expected queued song in table, got:\n%s", out.String())
	}

	out.Reset()
	if err := RunPlay(ctx, client, &out); err != nil {
		t.Fatalf("RunPlay failed: %v", err)
	}
	if out.String() != "Now playing: Whispering Pines by Forest Folk\n" {
		t.Errorf("unexpected play output: %q", out.String())
	}

	err = RunPlay(ctx, client, &out)
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 API error on empty queue, got %v", err)
	}
}

func TestClientRemoveAndClear(t *testing.T) {
	client, q := newTestServer(t)
	ctx := context.Background()

	_ = q.Add(servequeue.NewEntry("A", "X"))
	_ = q.Add(servequeue.NewEntry("B", "Y"))

	msg, err := client.Remove(ctx, 1)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if msg != "Removed 'B'" {
		t.Errorf("unexpected message %q", msg)
	}

	if _, err := client.Remove(ctx, 7); err == nil {
		t.Errorf("expected error for out-of-range index")
	}

	if _, err := client.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if q.Len() != 0 {
		t.Errorf("expected empty queue, got %d", q.Len())
	}
}

func TestClient_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")
	if _, err := client.Songs(context.Background()); err == nil {
		t.Errorf("expected error for unreachable server")
	}
}
