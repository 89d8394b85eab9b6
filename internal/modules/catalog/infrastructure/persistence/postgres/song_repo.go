package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/AlexandreFerreir/BD-Project/internal/modules/catalog/domain"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/infrastructure/database"
)

type PgSongRepository struct {
	db *sqlx.DB
}

func NewSongRepository(db *sqlx.DB) *PgSongRepository {
	return &PgSongRepository{db: db}
}

func (r *PgSongRepository) Create(ctx context.Context, song *domain.Song) error {
	if song.CreatedAt.IsZero() {
		song.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO songs (id, title, genre, duration_seconds, release_date, publisher, created_at)
		VALUES (:id, :title, :genre, :duration_seconds, :release_date, :publisher, :created_at)`

	_, err := sqlx.NamedExecContext(ctx, database.Executor(ctx, r.db), query, song)
	return err
}

type artistSong struct {
	ArtistID uuid.UUID `db:"artist_id"`
	SongID   uuid.UUID `db:"song_id"`
}

func (r *PgSongRepository) LinkArtists(ctx context.Context, songID uuid.UUID, artistIDs []uuid.UUID) error {
	if len(artistIDs) == 0 {
		return nil
	}
	rows := make([]artistSong, len(artistIDs))
	for i, id := range artistIDs {
		rows[i] = artistSong{ArtistID: id, SongID: songID}
	}
	query := `INSERT INTO artist_songs (artist_id, song_id) VALUES (:artist_id, :song_id)`

	_, err := sqlx.NamedExecContext(ctx, database.Executor(ctx, r.db), query, rows)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return domain.ErrArtistNotFound
		}
		return err
	}
	return nil
}

// ExistingSongIDs implements domain.SongFinder
func (r *PgSongRepository) ExistingSongIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT id FROM songs WHERE id = ANY($1)`

	found := []uuid.UUID{}
	if err := sqlx.SelectContext(ctx, database.Executor(ctx, r.db), &found, query, pq.Array(ids)); err != nil {
		return nil, err
	}
	return found, nil
}

type searchRow struct {
	Title   string         `db:"title"`
	Artists pq.StringArray `db:"artists"`
	Albums  pq.StringArray `db:"albums"`
}

// Search matches keyword literally inside song titles, case-sensitive
func (r *PgSongRepository) Search(ctx context.Context, keyword string) ([]domain.SearchHit, error) {
	query := `
		SELECT s.title,
			COALESCE(array_agg(DISTINCT a.artistic_name) FILTER (WHERE a.artistic_name IS NOT NULL), '{}') AS artists,
			COALESCE(array_agg(DISTINCT als.album_id::text) FILTER (WHERE als.album_id IS NOT NULL), '{}') AS albums
		FROM songs s
		LEFT JOIN artist_songs ars ON ars.song_id = s.id
		LEFT JOIN artists a ON a.user_id = ars.artist_id
		LEFT JOIN album_songs als ON als.song_id = s.id
		WHERE s.title LIKE '%' || $1 || '%' ESCAPE '\'
		GROUP BY s.title
		ORDER BY s.title`

	var rows []searchRow
	if err := sqlx.SelectContext(ctx, database.Executor(ctx, r.db), &rows, query, escapeLike(keyword)); err != nil {
		return nil, err
	}

	hits := make([]domain.SearchHit, len(rows))
	for i, row := range rows {
		hits[i] = domain.SearchHit{Title: row.Title, Artists: row.Artists, Albums: row.Albums}
	}
	return hits, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
