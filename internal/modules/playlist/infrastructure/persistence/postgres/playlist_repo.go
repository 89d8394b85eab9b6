package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/AlexandreFerreir/BD-Project/internal/modules/playlist/domain"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/infrastructure/database"
)

type PgPlaylistRepository struct {
	db *sqlx.DB
}

func NewPlaylistRepository(db *sqlx.DB) *PgPlaylistRepository {
	return &PgPlaylistRepository{db: db}
}

func (r *PgPlaylistRepository) Create(ctx context.Context, p *domain.Playlist) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO playlists (id, name, is_public, owner_id, created_at)
		VALUES (:id, :name, :is_public, :owner_id, :created_at)`

	_, err := sqlx.NamedExecContext(ctx, database.Executor(ctx, r.db), query, p)
	return err
}

type playlistSong struct {
	PlaylistID uuid.UUID `db:"playlist_id"`
	SongID     uuid.UUID `db:"song_id"`
	Position   int       `db:"position"`
}

func (r *PgPlaylistRepository) AddSongs(ctx context.Context, playlistID uuid.UUID, songIDs []uuid.UUID) error {
	if len(songIDs) == 0 {
		return nil
	}
	rows := make([]playlistSong, len(songIDs))
	for i, id := range songIDs {
		rows[i] = playlistSong{PlaylistID: playlistID, SongID: id, Position: i + 1}
	}
	query := `INSERT INTO playlist_songs (playlist_id, song_id, position) VALUES (:playlist_id, :song_id, :position)`

	_, err := sqlx.NamedExecContext(ctx, database.Executor(ctx, r.db), query, rows)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return domain.ErrSongNotFound
		}
		return err
	}
	return nil
}
