package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/AlexandreFerreir/BD-Project/internal/modules/catalog/domain"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/infrastructure/database"
)

type PgArtistRepository struct {
	db *sqlx.DB
}

func NewArtistRepository(db *sqlx.DB) *PgArtistRepository {
	return &PgArtistRepository{db: db}
}

func (r *PgArtistRepository) ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT user_id FROM artists WHERE user_id = ANY($1)`

	found := []uuid.UUID{}
	if err := sqlx.SelectContext(ctx, database.Executor(ctx, r.db), &found, query, pq.Array(ids)); err != nil {
		return nil, err
	}
	return found, nil
}

// Info loads the artist and the ids of their songs, albums and the public
// playlists featuring any of their songs.
func (r *PgArtistRepository) Info(ctx context.Context, artistID uuid.UUID) (*domain.ArtistInfo, error) {
	exec := database.Executor(ctx, r.db)

	var head struct {
		Name         string `db:"name"`
		ArtisticName string `db:"artistic_name"`
	}
	err := sqlx.GetContext(ctx, exec, &head, `SELECT name, artistic_name FROM artists WHERE user_id = $1`, artistID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrArtistNotFound
	}
	if err != nil {
		return nil, err
	}

	info := &domain.ArtistInfo{
		ID:           artistID,
		Name:         head.Name,
		ArtisticName: head.ArtisticName,
		Songs:        []uuid.UUID{},
		Albums:       []uuid.UUID{},
		Playlists:    []uuid.UUID{},
	}

	lists := []struct {
		dst   *[]uuid.UUID
		query string
	}{
		{&info.Songs, `SELECT song_id FROM artist_songs WHERE artist_id = $1 ORDER BY song_id`},
		{&info.Albums, `SELECT album_id FROM artist_albums WHERE artist_id = $1 ORDER BY album_id`},
		{&info.Playlists, `
			SELECT DISTINCT p.id
			FROM playlists p
			JOIN playlist_songs ps ON ps.playlist_id = p.id
			JOIN artist_songs ars ON ars.song_id = ps.song_id
			WHERE ars.artist_id = $1 AND p.is_public
			ORDER BY p.id`},
	}
	for _, l := range lists {
		if err := sqlx.SelectContext(ctx, exec, l.dst, l.query, artistID); err != nil {
			return nil, err
		}
	}
	return info, nil
}
