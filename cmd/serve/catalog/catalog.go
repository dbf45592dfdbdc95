// Package catalog holds the fixed list of songs a karaoke server offers.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

var ErrMissingIdentity = errors.New("song is missing song_name or artist")

// Song is a single entry in the catalog.
type Song struct {
	SongName   string `json:"song_name"`
	Artist     string `json:"artist"`
	Duration   string `json:"duration"`
	AudioPath  string `json:"audio_path"`
	LyricsPath string `json:"lyrics_path"`
}

// Catalog is an ordered, read-only list of songs.
type Catalog struct {
	songs []Song
}

// New creates a catalog from the given songs. The slice is copied.
func New(songs []Song) *Catalog {
	out := make([]Song, len(songs))
	copy(out, songs)
	return &Catalog{songs: out}
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return New(defaultSongs)
}

// Load reads a catalog from a JSON array file.
// An empty path returns the built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	var songs []Song
	if err := json.Unmarshal(data, &songs); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}

	for i, s := range songs {
		if s.SongName == "" || s.Artist == "" {
			return nil, fmt.Errorf("catalog %s entry %d: %w", path, i, ErrMissingIdentity)
		}
	}

	return New(songs), nil
}

// ListSongs returns a copy of all songs in catalog order.
func (c *Catalog) ListSongs() []Song {
	out := make([]Song, len(c.songs))
	copy(out, c.songs)
	return out
}

// Len returns the number of songs.
func (c *Catalog) Len() int {
	return len(c.songs)
}

var defaultSongs = []Song{
	{SongName: "Midnight Serenade", Artist: "Dreamweavers", Duration: "4:10", AudioPath: "assets/songs/midnight_serenade.mp3", LyricsPath: "assets/lyrics/midnight_serenade.txt"},
	{SongName: "Electric Dreams", Artist: "Synthwave Collective", Duration: "3:20", AudioPath: "assets/songs/electric_dreams.mp3", LyricsPath: "assets/lyrics/electric_dreams.txt"},
	{SongName: "Starlight Symphony", Artist: "Cosmic Echoes", Duration: "5:05", AudioPath: "assets/songs/starlight_symphony.mp3", LyricsPath: "assets/lyrics/starlight_symphony.txt"},
	{SongName: "Rhythm of the City", Artist: "Urban Beats", Duration: "3:55", AudioPath: "assets/songs/rhythm_of_the_city.mp3", LyricsPath: "assets/lyrics/rhythm_of_the_city.txt"},
	{SongName: "Whispering Pines", Artist: "Forest Folk", Duration: "2:40", AudioPath: "assets/songs/whispering_pines.mp3", LyricsPath: "assets/lyrics/whispering_pines.txt"},
	{SongName: "Neon Nights", Artist: "Chrome Crusaders", Duration: "4:30", AudioPath: "assets/songs/neon_nights.mp3", LyricsPath: "assets/lyrics/neon_nights.txt"},
	{SongName: "Ocean's Embrace", Artist: "Aqua Tones", Duration: "3:15", AudioPath: "assets/songs/ocean_embrace.mp3", LyricsPath: "assets/lyrics/ocean_embrace.txt"},
	{SongName: "Galactic Groove", Artist: "Astro Funk", Duration: "4:50", AudioPath: "assets/songs/galactic_groove.mp3", LyricsPath: "assets/lyrics/galactic_groove.txt"},
	{SongName: "Desert Bloom", Artist: "Sandstone Singers", Duration: "2:58", AudioPath: "assets/songs/desert_bloom.mp3", LyricsPath: "assets/lyrics/desert_bloom.txt"},
	{SongName: "Cybernetic Heartbeat", Artist: "Digital Pulse", Duration: "4:00", AudioPath: "assets/songs/cybernetic_heartbeat.mp3", LyricsPath: "assets/lyrics/cybernetic_heartbeat.txt"},
	{SongName: "Moonlit Dance", Artist: "Dreamweavers", Duration: "3:45", AudioPath: "assets/songs/moonlit_dance.mp3", LyricsPath: "assets/lyrics/moonlit_dance.txt"},
	{SongName: "Digital Dawn", Artist: "Digital Pulse", Duration: "3:30", AudioPath: "assets/songs/digital_dawn.mp3", LyricsPath: "assets/lyrics/digital_dawn.txt"},
	{SongName: "Man In The Mirror", Artist: "Michael Jackson", Duration: "5:19", AudioPath: "assets/songs/Man_In_The_Mirror.mp3", LyricsPath: "assets/lyrics/man_in_the_mirror.txt"},
}
