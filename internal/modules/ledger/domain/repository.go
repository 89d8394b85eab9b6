package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type CardRepository interface {
	// LockByIDs returns the cards with the given ids, locked for update
	LockByIDs(ctx context.Context, ids []string) ([]PrepaidCard, error)
	// ExistingIDs returns the subset of ids already present in the store
	ExistingIDs(ctx context.Context, ids []string) ([]string, error)
	CreateBatch(ctx context.Context, cards []PrepaidCard) error
	UpdateBalance(ctx context.Context, id string, balance int) error
}

type SubscriptionRepository interface {
	// LockOwner serialises funding for a consumer
	LockOwner(ctx context.Context, userID uuid.UUID) error
	LatestPremiumExpiry(ctx context.Context, userID uuid.UUID) (*time.Time, error)
	Create(ctx context.Context, sub *Subscription) error
	LinkCards(ctx context.Context, subscriptionID uuid.UUID, contributions []Contribution) error
}

// CardNumberSource draws candidate card ids
type CardNumberSource interface {
	Next() (string, error)
}
