package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/AlexandreFerreir/BD-Project/internal/modules/ledger/domain"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/infrastructure/database"
)

type PgSubscriptionRepository struct {
	db *sqlx.DB
}

func NewSubscriptionRepository(db *sqlx.DB) *PgSubscriptionRepository {
	return &PgSubscriptionRepository{db: db}
}

// LockOwner takes a row lock on the consumer so two fundings for the same
// user cannot both chain from the same expiry.
func (r *PgSubscriptionRepository) LockOwner(ctx context.Context, userID uuid.UUID) error {
	query := `SELECT user_id FROM consumers WHERE user_id = $1 FOR UPDATE`

	var id uuid.UUID
	err := sqlx.GetContext(ctx, database.Executor(ctx, r.db), &id, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrConsumerNotFound
	}
	return err
}

func (r *PgSubscriptionRepository) LatestPremiumExpiry(ctx context.Context, userID uuid.UUID) (*time.Time, error) {
	query := `SELECT MAX(expires_on) FROM subscriptions WHERE user_id = $1 AND plan = 'premium'`

	var latest sql.NullTime
	if err := sqlx.GetContext(ctx, database.Executor(ctx, r.db), &latest, query, userID); err != nil {
		return nil, err
	}
	if !latest.Valid {
		return nil, nil
	}
	return &latest.Time, nil
}

func (r *PgSubscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) error {
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO subscriptions (id, plan, starts_on, expires_on, user_id, created_at)
		VALUES (:id, :plan, :starts_on, :expires_on, :user_id, :created_at)`

	_, err := sqlx.NamedExecContext(ctx, database.Executor(ctx, r.db), query, sub)
	return err
}

func (r *PgSubscriptionRepository) LinkCards(ctx context.Context, subscriptionID uuid.UUID, contributions []domain.Contribution) error {
	query := `INSERT INTO subscription_cards (subscription_id, card_id, amount) VALUES ($1, $2, $3)`

	exec := database.Executor(ctx, r.db)
	for _, c := range contributions {
		if _, err := exec.ExecContext(ctx, query, subscriptionID, c.CardID, c.Amount); err != nil {
			return err
		}
	}
	return nil
}
