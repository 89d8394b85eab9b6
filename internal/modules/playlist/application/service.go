package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/AlexandreFerreir/BD-Project/internal/modules/playlist/domain"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/clock"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/infrastructure/database"
)

type CreatePlaylistRequest struct {
	PlaylistName string   `json:"playlist_name"`
	Visibility   string   `json:"visibility"`
	Songs        []string `json:"songs"`
}

type PlaylistService struct {
	playlists domain.PlaylistRepository
	songs     domain.SongFinder
	plans     domain.PlanChecker
	tx        database.Transactor
	clock     clock.Clock
	logger    zerolog.Logger
}

func NewPlaylistService(
	playlists domain.PlaylistRepository,
	songs domain.SongFinder,
	plans domain.PlanChecker,
	tx database.Transactor,
	clk clock.Clock,
	logger zerolog.Logger,
) *PlaylistService {
	return &PlaylistService{
		playlists: playlists,
		songs:     songs,
		plans:     plans,
		tx:        tx,
		clock:     clk,
		logger:    logger.With().Str("module", "playlist").Logger(),
	}
}

// CreatePlaylist stores a playlist for a premium consumer. The plan is read
// in the same transaction as the insert. Repeated song ids keep their first
// position.
func (s *PlaylistService) CreatePlaylist(ctx context.Context, ownerID uuid.UUID, req CreatePlaylistRequest) (uuid.UUID, error) {
	if strings.TrimSpace(req.PlaylistName) == "" {
		return uuid.Nil, fmt.Errorf("%w: playlist_name is required", domain.ErrInvalidInput)
	}
	if req.PlaylistName == domain.ReservedName {
		return uuid.Nil, domain.ErrReservedName
	}
	visibility, err := domain.ParseVisibility(req.Visibility)
	if err != nil {
		return uuid.Nil, err
	}

	songIDs := make([]uuid.UUID, 0, len(req.Songs))
	for _, raw := range req.Songs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return uuid.Nil, fmt.Errorf("%w: %q is not a song id", domain.ErrInvalidInput, raw)
		}
		songIDs = append(songIDs, id)
	}
	songIDs = lo.Uniq(songIDs)

	playlist := &domain.Playlist{
		ID:        uuid.New(),
		Name:      req.PlaylistName,
		IsPublic:  visibility == domain.VisibilityPublic,
		OwnerID:   ownerID,
		CreatedAt: s.clock.Now(),
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		plan, err := s.plans.CurrentPlan(ctx, ownerID)
		if err != nil {
			return err
		}
		if !plan.IsPremium() {
			return domain.ErrPlanRequired
		}

		if len(songIDs) > 0 {
			found, err := s.songs.ExistingSongIDs(ctx, songIDs)
			if err != nil {
				return err
			}
			if missing, _ := lo.Difference(songIDs, found); len(missing) > 0 {
				return fmt.Errorf("%w: %s", domain.ErrSongNotFound, missing[0])
			}
		}
		if err := s.playlists.Create(ctx, playlist); err != nil {
			return err
		}
		return s.playlists.AddSongs(ctx, playlist.ID, songIDs)
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.logger.Info().
		Str("playlist_id", playlist.ID.String()).
		Str("owner_id", ownerID.String()).
		Int("songs", len(songIDs)).
		Msg("playlist created")
	return playlist.ID, nil
}
