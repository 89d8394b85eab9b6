package application

import (
	"bytes"
	"encoding/json"
)

// SongInput describes a new song. OtherArtists are the co-artists; the
// caller is always credited.
type SongInput struct {
	Name         string   `json:"name"`
	Genre        string   `json:"type"`
	Duration     int      `json:"duration"`
	ReleaseDate  string   `json:"release_date"`
	Publisher    string   `json:"publisher"`
	OtherArtists []string `json:"other_artists"`
}

type CreateAlbumRequest struct {
	Name        string           `json:"name"`
	ReleaseDate string           `json:"release_date"`
	Publisher   string           `json:"publisher"`
	Songs       []AlbumSongEntry `json:"songs"`
}

// AlbumSongEntry is either the id of an existing song or an inline song
type AlbumSongEntry struct {
	SongID string
	Song   *SongInput
}

func (e *AlbumSongEntry) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var s SongInput
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		e.Song = &s
		return nil
	}
	return json.Unmarshal(b, &e.SongID)
}

func (e AlbumSongEntry) MarshalJSON() ([]byte, error) {
	if e.Song != nil {
		return json.Marshal(e.Song)
	}
	return json.Marshal(e.SongID)
}
