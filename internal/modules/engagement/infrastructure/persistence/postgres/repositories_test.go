package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexandreFerreir/BD-Project/internal/modules/engagement/domain"
	"github.com/AlexandreFerreir/BD-Project/internal/modules/engagement/infrastructure/persistence/postgres"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/testutil"
)

func TestPgPlayRepository_Record(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := postgres.NewPlayRepository(db)
	ctx := context.Background()

	event := &domain.PlayEvent{PlayedOn: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), UserID: uuid.New(), SongID: uuid.New()}
	mock.ExpectQuery(`INSERT INTO play_events \(played_on, user_id, song_id\) VALUES \(\$1, \$2, \$3\) RETURNING id`).
		WithArgs(event.PlayedOn, event.UserID, event.SongID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
	require.NoError(t, repo.Record(ctx, event))
	assert.Equal(t, int64(7), event.ID)

	mock.ExpectQuery(`INSERT INTO play_events`).WillReturnError(&pq.Error{Code: "23503"})
	assert.ErrorIs(t, repo.Record(ctx, event), domain.ErrSongNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgCommentRepository_SongOf(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := postgres.NewCommentRepository(db)
	ctx := context.Background()
	comment, song := uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT song_id FROM comments WHERE id = \$1 FOR SHARE`).
		WithArgs(comment).
		WillReturnRows(sqlmock.NewRows([]string{"song_id"}).AddRow(song.String()))
	got, err := repo.SongOf(ctx, comment)
	require.NoError(t, err)
	assert.Equal(t, song, got)

	mock.ExpectQuery(`FROM comments`).WillReturnError(sql.ErrNoRows)
	_, err = repo.SongOf(ctx, comment)
	assert.ErrorIs(t, err, domain.ErrCommentNotFound)
}

func TestPgCommentRepository_CreateAndLink(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := postgres.NewCommentRepository(db)
	ctx := context.Background()
	c := &domain.Comment{ID: uuid.New(), Body: "nice", CreatedOn: time.Now(), SongID: uuid.New(), AuthorID: uuid.New()}
	parent := uuid.New()

	mock.ExpectExec(`INSERT INTO comments \(id, body, created_on, song_id, author_id\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Create(ctx, c))

	mock.ExpectExec(`INSERT INTO comment_replies \(parent_id, reply_id\) VALUES \(\$1, \$2\)`).
		WithArgs(parent, c.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.LinkReply(ctx, parent, c.ID))

	mock.ExpectExec(`INSERT INTO comment_replies`).WillReturnError(&pq.Error{Code: "23503"})
	assert.ErrorIs(t, repo.LinkReply(ctx, parent, c.ID), domain.ErrCommentNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
