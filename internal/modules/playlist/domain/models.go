package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	ledger "github.com/AlexandreFerreir/BD-Project/internal/modules/ledger/domain"
)

// ReservedName belongs to the personal playlist every consumer gets at sign-up
const ReservedName = "TOP10"

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

func ParseVisibility(s string) (Visibility, error) {
	switch v := Visibility(s); v {
	case VisibilityPublic, VisibilityPrivate:
		return v, nil
	}
	return "", fmt.Errorf("%w: visibility must be public or private", ErrInvalidInput)
}

type Playlist struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	IsPublic  bool      `db:"is_public"`
	OwnerID   uuid.UUID `db:"owner_id"`
	CreatedAt time.Time `db:"created_at"`
}

type PlaylistRepository interface {
	Create(ctx context.Context, p *Playlist) error
	// AddSongs stores songIDs with positions 1..n in slice order
	AddSongs(ctx context.Context, playlistID uuid.UUID, songIDs []uuid.UUID) error
}

// SongFinder is provided by the catalog module
type SongFinder interface {
	ExistingSongIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
}

// PlanChecker is provided by the ledger module
type PlanChecker interface {
	CurrentPlan(ctx context.Context, userID uuid.UUID) (ledger.PlanStatus, error)
}
