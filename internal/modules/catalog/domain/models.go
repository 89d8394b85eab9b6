package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Song struct {
	ID              uuid.UUID `db:"id"`
	Title           string    `db:"title"`
	Genre           string    `db:"genre"`
	DurationSeconds int       `db:"duration_seconds"`
	ReleaseDate     time.Time `db:"release_date"`
	Publisher       string    `db:"publisher"`
	CreatedAt       time.Time `db:"created_at"`
}

type Album struct {
	ID          uuid.UUID `db:"id"`
	Title       string    `db:"title"`
	ReleaseDate time.Time `db:"release_date"`
	Publisher   string    `db:"publisher"`
	CreatedAt   time.Time `db:"created_at"`
}

// SearchHit groups every song sharing a title
type SearchHit struct {
	Title   string   `json:"title"`
	Artists []string `json:"artists"`
	Albums  []string `json:"albums"`
}

// ArtistInfo lists an artist's work. Playlists holds the public playlists
// that contain at least one of the artist's songs.
type ArtistInfo struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	ArtisticName string      `json:"artistic_name"`
	Songs        []uuid.UUID `json:"songs"`
	Albums       []uuid.UUID `json:"albums"`
	Playlists    []uuid.UUID `json:"playlists"`
}

type SongRepository interface {
	Create(ctx context.Context, song *Song) error
	LinkArtists(ctx context.Context, songID uuid.UUID, artistIDs []uuid.UUID) error
	Search(ctx context.Context, keyword string) ([]SearchHit, error)
	SongFinder
}

type AlbumRepository interface {
	Create(ctx context.Context, album *Album) error
	// AddSongs links songs to the album with positions 1..n in slice order
	AddSongs(ctx context.Context, albumID uuid.UUID, songIDs []uuid.UUID) error
	LinkArtist(ctx context.Context, albumID, artistID uuid.UUID) error
}

type ArtistRepository interface {
	ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
	Info(ctx context.Context, artistID uuid.UUID) (*ArtistInfo, error)
}

// SongFinder is exposed to the engagement and playlist modules
type SongFinder interface {
	ExistingSongIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
}
