package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	c := Default()
	if c.Len() != 13 {
		t.Fatalf("expected 13 built-in songs, got %d", c.Len())
	}

	songs := c.ListSongs()
	if songs[0].SongName != "Midnight Serenade" || songs[0].Artist != "Dreamweavers" {
		t.Errorf("unexpected first song: %+v", songs[0])
	}
	if songs[12].SongName != "Man In The Mirror" {
		t.Errorf("unexpected last song: %+v", songs[12])
	}
}

func TestListSongsReturnsCopy(t *testing.T) {
	c := Default()
	songs := c.ListSongs()
	songs[0].SongName = "changed"

	if c.ListSongs()[0].SongName != "Midnight Serenade" {
		t.Errorf("mutating the returned slice changed the catalog")
	}
}

func TestNewCopiesInput(t *testing.T) {
	in := []Song{{SongName: "A", Artist: "X"}}
	c := New(in)
	in[0].SongName = "B"

	if c.ListSongs()[0].SongName != "A" {
		t.Errorf("catalog shares memory with the input slice")
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(tmpDir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
		return path
	}

	valid := write("valid.json", `[
		{"song_name": "A", "artist": "X", "duration": "1:00", "audio_path": "a.mp3", "lyrics_path": "a.txt"},
		{"song_name": "B", "artist": "Y"}
	]`)
	missingArtist := write("missing.json", `[{"song_name": "A"}]`)
	broken := write("broken.json", `{not json`)

	tests := []struct {
		name      string
		path      string
		wantLen   int
		wantErr   bool
		wantIdent bool
	}{
		{"empty path uses built-in", "", 13, false, false},
		{"valid file", valid, 2, false, false},
		{"missing artist", missingArtist, 0, true, true},
		{"broken json", broken, 0, true, false},
		{"missing file", filepath.Join(tmpDir, "nope.json"), 0, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Load(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got none")
				}
				if tt.wantIdent && !errors.Is(err, ErrMissingIdentity) {
					t.Errorf("expected ErrMissingIdentity, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.Len() != tt.wantLen {
				t.Errorf("expected %d songs, got %d", tt.wantLen, c.Len())
			}
		})
	}
}

func TestLoadPreservesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	content := `[{"song_name": "A", "artist": "X", "duration": "1:00", "audio_path": "a.mp3", "lyrics_path": "a.txt"}]`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write catalog: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := Song{SongName: "A", Artist: "X", Duration: "1:00", AudioPath: "a.mp3", LyricsPath: "a.txt"}
	if got := c.ListSongs()[0]; got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}
