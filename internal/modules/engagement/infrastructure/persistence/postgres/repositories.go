package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/AlexandreFerreir/BD-Project/internal/modules/engagement/domain"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/infrastructure/database"
)

type PgPlayRepository struct {
	db *sqlx.DB
}

func NewPlayRepository(db *sqlx.DB) *PgPlayRepository {
	return &PgPlayRepository{db: db}
}

func (r *PgPlayRepository) Record(ctx context.Context, event *domain.PlayEvent) error {
	query := `INSERT INTO play_events (played_on, user_id, song_id) VALUES ($1, $2, $3) RETURNING id`

	err := sqlx.GetContext(ctx, database.Executor(ctx, r.db), &event.ID, query, event.PlayedOn, event.UserID, event.SongID)
	if isForeignKeyViolation(err) {
		return domain.ErrSongNotFound
	}
	return err
}

type PgCommentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) *PgCommentRepository {
	return &PgCommentRepository{db: db}
}

// SongOf share-locks the parent so it cannot vanish before the reply links to it
func (r *PgCommentRepository) SongOf(ctx context.Context, commentID uuid.UUID) (uuid.UUID, error) {
	query := `SELECT song_id FROM comments WHERE id = $1 FOR SHARE`

	var songID uuid.UUID
	err := sqlx.GetContext(ctx, database.Executor(ctx, r.db), &songID, query, commentID)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, domain.ErrCommentNotFound
	}
	if err != nil {
		return uuid.Nil, err
	}
	return songID, nil
}

func (r *PgCommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	query := `
		INSERT INTO comments (id, body, created_on, song_id, author_id)
		VALUES (:id, :body, :created_on, :song_id, :author_id)`

	_, err := sqlx.NamedExecContext(ctx, database.Executor(ctx, r.db), query, c)
	if isForeignKeyViolation(err) {
		return domain.ErrSongNotFound
	}
	return err
}

func (r *PgCommentRepository) LinkReply(ctx context.Context, parentID, replyID uuid.UUID) error {
	query := `INSERT INTO comment_replies (parent_id, reply_id) VALUES ($1, $2)`

	_, err := database.Executor(ctx, r.db).ExecContext(ctx, query, parentID, replyID)
	if isForeignKeyViolation(err) {
		return domain.ErrCommentNotFound
	}
	return err
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}
