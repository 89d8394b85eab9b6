package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/AlexandreFerreir/BD-Project/internal/modules/engagement/domain"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/clock"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/infrastructure/database"
)

type CommentRequest struct {
	Comment string `json:"comment"`
}

// EngagementService records plays and comments on songs
type EngagementService struct {
	plays    domain.PlayRepository
	comments domain.CommentRepository
	songs    domain.SongFinder
	tx       database.Transactor
	clock    clock.Clock
	logger   zerolog.Logger
}

func NewEngagementService(
	plays domain.PlayRepository,
	comments domain.CommentRepository,
	songs domain.SongFinder,
	tx database.Transactor,
	clk clock.Clock,
	logger zerolog.Logger,
) *EngagementService {
	return &EngagementService{
		plays:    plays,
		comments: comments,
		songs:    songs,
		tx:       tx,
		clock:    clk,
		logger:   logger.With().Str("module", "engagement").Logger(),
	}
}

// RecordPlay appends a play of songID by userID dated today
func (s *EngagementService) RecordPlay(ctx context.Context, userID, songID uuid.UUID) (int64, error) {
	if err := s.requireSong(ctx, songID); err != nil {
		return 0, err
	}

	event := &domain.PlayEvent{
		PlayedOn: clock.Today(s.clock),
		UserID:   userID,
		SongID:   songID,
	}
	if err := s.plays.Record(ctx, event); err != nil {
		return 0, err
	}
	return event.ID, nil
}

// PostComment adds a comment on songID. With a parent the comment becomes a
// reply, and the parent must be on the same song.
func (s *EngagementService) PostComment(ctx context.Context, songID, authorID uuid.UUID, text string, parentID *uuid.UUID) (uuid.UUID, error) {
	if strings.TrimSpace(text) == "" {
		return uuid.Nil, fmt.Errorf("%w: comment is required", domain.ErrInvalidInput)
	}

	comment := &domain.Comment{
		ID:        uuid.New(),
		Body:      text,
		CreatedOn: clock.Today(s.clock),
		SongID:    songID,
		AuthorID:  authorID,
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.requireSong(ctx, songID); err != nil {
			return err
		}
		if parentID != nil {
			parentSong, err := s.comments.SongOf(ctx, *parentID)
			if err != nil {
				return err
			}
			if parentSong != songID {
				return domain.ErrCommentMismatch
			}
		}

		if err := s.comments.Create(ctx, comment); err != nil {
			return err
		}
		if parentID != nil {
			return s.comments.LinkReply(ctx, *parentID, comment.ID)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.logger.Debug().Str("comment_id", comment.ID.String()).Str("song_id", songID.String()).Msg("comment posted")
	return comment.ID, nil
}

func (s *EngagementService) requireSong(ctx context.Context, songID uuid.UUID) error {
	found, err := s.songs.ExistingSongIDs(ctx, []uuid.UUID{songID})
	if err != nil {
		return err
	}
	if len(found) == 0 {
		return domain.ErrSongNotFound
	}
	return nil
}
