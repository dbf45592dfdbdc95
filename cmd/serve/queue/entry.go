package queue

import (
	"encoding/json"
	"maps"
)

// Entry is a queued song. SongName and Artist form its identity; every field the
// client sent is kept and encoded back unchanged.
type Entry struct {
	SongName string
	Artist   string

	fields map[string]json.RawMessage
}

// NewEntry creates an entry carrying only the identity pair.
func NewEntry(songName, artist string) Entry {
	e := Entry{SongName: songName, Artist: artist, fields: map[string]json.RawMessage{}}
	e.fields["song_name"], _ = json.Marshal(songName)
	e.fields["artist"], _ = json.Marshal(artist)
	return e
}

// With returns a copy of e with an extra field set.
func (e Entry) With(key string, value any) Entry {
	raw, err := json.Marshal(value)
	if err != nil {
		return e
	}
	out := e
	out.fields = maps.Clone(e.fields)
	if out.fields == nil {
		out.fields = map[string]json.RawMessage{}
	}
	out.fields[key] = raw
	switch key {
	case "song_name":
		out.SongName, _ = value.(string)
	case "artist":
		out.Artist, _ = value.(string)
	}
	return out
}

// Field returns the raw JSON of a field, if present.
func (e Entry) Field(key string) (json.RawMessage, bool) {
	raw, ok := e.fields[key]
	return raw, ok
}

// IsEmpty reports whether the entry carries no fields at all.
func (e Entry) IsEmpty() bool {
	return len(e.fields) == 0 && e.SongName == "" && e.Artist == ""
}

func (e Entry) sameIdentity(other Entry) bool {
	return e.SongName == other.SongName && e.Artist == other.Artist
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*e = Entry{fields: fields}
	// Non-string identity values are left blank and rejected on Add.
	if raw, ok := fields["song_name"]; ok {
		_ = json.Unmarshal(raw, &e.SongName)
	}
	if raw, ok := fields["artist"]; ok {
		_ = json.Unmarshal(raw, &e.Artist)
	}
	return nil
}

func (e Entry) MarshalJSON() ([]byte, error) {
	if e.fields == nil {
		return json.Marshal(map[string]string{"song_name": e.SongName, "artist": e.Artist})
	}
	return json.Marshal(e.fields)
}
