package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/AlexandreFerreir/BD-Project/internal/modules/catalog/domain"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/clock"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/infrastructure/database"
)

// CatalogService manages songs, albums and artist lookups
type CatalogService struct {
	songs   domain.SongRepository
	albums  domain.AlbumRepository
	artists domain.ArtistRepository
	tx      database.Transactor
	clock   clock.Clock
	logger  zerolog.Logger
}

func NewCatalogService(
	songs domain.SongRepository,
	albums domain.AlbumRepository,
	artists domain.ArtistRepository,
	tx database.Transactor,
	clk clock.Clock,
	logger zerolog.Logger,
) *CatalogService {
	return &CatalogService{
		songs:   songs,
		albums:  albums,
		artists: artists,
		tx:      tx,
		clock:   clk,
		logger:  logger.With().Str("module", "catalog").Logger(),
	}
}

// CreateSong publishes a song credited to artistID and its co-artists.
// Listing the caller among the co-artists is rejected.
func (s *CatalogService) CreateSong(ctx context.Context, artistID uuid.UUID, req SongInput) (uuid.UUID, error) {
	song, coArtists, err := s.prepareSong(req)
	if err != nil {
		return uuid.Nil, err
	}
	if lo.Contains(coArtists, artistID) {
		return uuid.Nil, domain.ErrArtistSelfReference
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		return s.insertSong(ctx, song, append([]uuid.UUID{artistID}, coArtists...))
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.logger.Info().Str("song_id", song.ID.String()).Str("artist_id", artistID.String()).Msg("song created")
	return song.ID, nil
}

// CreateAlbum creates the album and its tracklist in one transaction. Inline
// songs are created first; referenced songs must already exist.
func (s *CatalogService) CreateAlbum(ctx context.Context, artistID uuid.UUID, req CreateAlbumRequest) (uuid.UUID, error) {
	album, err := s.prepareAlbum(req)
	if err != nil {
		return uuid.Nil, err
	}

	type track struct {
		existing uuid.UUID
		song     *domain.Song
		artists  []uuid.UUID
	}
	tracks := make([]track, 0, len(req.Songs))
	for i, entry := range req.Songs {
		if entry.Song == nil {
			id, err := uuid.Parse(entry.SongID)
			if err != nil {
				return uuid.Nil, fmt.Errorf("%w: songs[%d] is not a song id", domain.ErrInvalidInput, i)
			}
			tracks = append(tracks, track{existing: id})
			continue
		}
		song, coArtists, err := s.prepareSong(*entry.Song)
		if err != nil {
			return uuid.Nil, fmt.Errorf("songs[%d]: %w", i, err)
		}
		artists := append([]uuid.UUID{artistID}, lo.Without(coArtists, artistID)...)
		tracks = append(tracks, track{song: song, artists: artists})
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		referenced := lo.FilterMap(tracks, func(t track, _ int) (uuid.UUID, bool) {
			return t.existing, t.song == nil
		})
		if err := s.requireSongs(ctx, referenced); err != nil {
			return err
		}

		if err := s.albums.Create(ctx, album); err != nil {
			return err
		}

		order := make([]uuid.UUID, 0, len(tracks))
		for _, t := range tracks {
			if t.song == nil {
				order = append(order, t.existing)
				continue
			}
			if err := s.insertSong(ctx, t.song, t.artists); err != nil {
				return err
			}
			order = append(order, t.song.ID)
		}

		if err := s.albums.AddSongs(ctx, album.ID, lo.Uniq(order)); err != nil {
			return err
		}
		return s.albums.LinkArtist(ctx, album.ID, artistID)
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.logger.Info().
		Str("album_id", album.ID.String()).
		Str("artist_id", artistID.String()).
		Int("tracks", len(tracks)).
		Msg("album created")
	return album.ID, nil
}

// SearchSongs finds songs whose title contains keyword, grouped by title
func (s *CatalogService) SearchSongs(ctx context.Context, keyword string) ([]domain.SearchHit, error) {
	if keyword == "" {
		return nil, fmt.Errorf("%w: keyword is required", domain.ErrInvalidInput)
	}
	return s.songs.Search(ctx, keyword)
}

func (s *CatalogService) ArtistInfo(ctx context.Context, artistID uuid.UUID) (*domain.ArtistInfo, error) {
	return s.artists.Info(ctx, artistID)
}

func (s *CatalogService) insertSong(ctx context.Context, song *domain.Song, artists []uuid.UUID) error {
	if err := s.requireArtists(ctx, artists[1:]); err != nil {
		return err
	}
	if err := s.songs.Create(ctx, song); err != nil {
		return err
	}
	return s.songs.LinkArtists(ctx, song.ID, artists)
}

func (s *CatalogService) requireArtists(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := s.artists.ExistingIDs(ctx, ids)
	if err != nil {
		return err
	}
	if missing, _ := lo.Difference(ids, found); len(missing) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrArtistNotFound, missing[0])
	}
	return nil
}

func (s *CatalogService) requireSongs(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := s.songs.ExistingSongIDs(ctx, lo.Uniq(ids))
	if err != nil {
		return err
	}
	if missing, _ := lo.Difference(ids, found); len(missing) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrSongNotFound, missing[0])
	}
	return nil
}

func (s *CatalogService) prepareSong(req SongInput) (*domain.Song, []uuid.UUID, error) {
	if err := requireFields(map[string]string{
		"name":         req.Name,
		"type":         req.Genre,
		"release_date": req.ReleaseDate,
		"publisher":    req.Publisher,
	}, "name", "type", "release_date", "publisher"); err != nil {
		return nil, nil, err
	}
	if req.Duration <= 0 {
		return nil, nil, fmt.Errorf("%w: duration must be positive", domain.ErrInvalidInput)
	}
	released, err := parseDate(req.ReleaseDate)
	if err != nil {
		return nil, nil, err
	}

	coArtists := make([]uuid.UUID, 0, len(req.OtherArtists))
	for _, raw := range req.OtherArtists {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %q is not an artist id", domain.ErrInvalidInput, raw)
		}
		coArtists = append(coArtists, id)
	}

	return &domain.Song{
		ID:              uuid.New(),
		Title:           req.Name,
		Genre:           req.Genre,
		DurationSeconds: req.Duration,
		ReleaseDate:     released,
		Publisher:       req.Publisher,
		CreatedAt:       s.clock.Now(),
	}, lo.Uniq(coArtists), nil
}

func (s *CatalogService) prepareAlbum(req CreateAlbumRequest) (*domain.Album, error) {
	if err := requireFields(map[string]string{
		"name":         req.Name,
		"release_date": req.ReleaseDate,
		"publisher":    req.Publisher,
	}, "name", "release_date", "publisher"); err != nil {
		return nil, err
	}
	if len(req.Songs) == 0 {
		return nil, fmt.Errorf("%w: songs is required", domain.ErrInvalidInput)
	}
	released, err := parseDate(req.ReleaseDate)
	if err != nil {
		return nil, err
	}

	return &domain.Album{
		ID:          uuid.New(),
		Title:       req.Name,
		ReleaseDate: released,
		Publisher:   req.Publisher,
		CreatedAt:   s.clock.Now(),
	}, nil
}

func requireFields(values map[string]string, order ...string) error {
	for _, field := range order {
		if strings.TrimSpace(values[field]) == "" {
			return fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, field)
		}
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	d, err := clock.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: release_date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}
	return d, nil
}
