package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type PlayEvent struct {
	ID       int64     `db:"id"`
	PlayedOn time.Time `db:"played_on"`
	UserID   uuid.UUID `db:"user_id"`
	SongID   uuid.UUID `db:"song_id"`
}

type Comment struct {
	ID        uuid.UUID `db:"id"`
	Body      string    `db:"body"`
	CreatedOn time.Time `db:"created_on"`
	SongID    uuid.UUID `db:"song_id"`
	AuthorID  uuid.UUID `db:"author_id"`
}

type PlayRepository interface {
	// Record appends the event and sets its ID
	Record(ctx context.Context, event *PlayEvent) error
}

type CommentRepository interface {
	// SongOf returns the song a comment was posted on
	SongOf(ctx context.Context, commentID uuid.UUID) (uuid.UUID, error)
	Create(ctx context.Context, c *Comment) error
	LinkReply(ctx context.Context, parentID, replyID uuid.UUID) error
}

// SongFinder is provided by the catalog module
type SongFinder interface {
	ExistingSongIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
}
