package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/AlexandreFerreir/BD-Project/internal/modules/analytics/domain"
)

type PgAnalyticsRepository struct {
	db *sqlx.DB
}

func NewAnalyticsRepository(db *sqlx.DB) *PgAnalyticsRepository {
	return &PgAnalyticsRepository{db: db}
}

func (r *PgAnalyticsRepository) GenrePlaybacks(ctx context.Context, from, to time.Time) ([]domain.GenrePlaybacks, error) {
	query := `
		SELECT to_char(pe.played_on, 'YYYY-MM') AS month,
		       s.genre                          AS genre,
		       COUNT(*)                         AS playbacks
		FROM play_events pe
		JOIN songs s ON s.id = pe.song_id
		WHERE pe.played_on >= $1 AND pe.played_on < $2
		GROUP BY month, s.genre
		ORDER BY month ASC, playbacks DESC, s.genre ASC`

	rows := []domain.GenrePlaybacks{}
	if err := r.db.SelectContext(ctx, &rows, query, from, to); err != nil {
		return nil, err
	}
	return rows, nil
}
