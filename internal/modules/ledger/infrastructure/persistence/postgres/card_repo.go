package postgres

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/AlexandreFerreir/BD-Project/internal/modules/ledger/domain"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/infrastructure/database"
)

// ErrCardIDTaken is returned when an insert races another batch for the same id
var ErrCardIDTaken = errors.New("prepaid card id already exists")

type PgCardRepository struct {
	db *sqlx.DB
}

func NewCardRepository(db *sqlx.DB) *PgCardRepository {
	return &PgCardRepository{db: db}
}

// LockByIDs reads the cards row-locked in id order so concurrent fundings
// sharing a card queue up instead of deadlocking.
func (r *PgCardRepository) LockByIDs(ctx context.Context, ids []string) ([]domain.PrepaidCard, error) {
	query := `
		SELECT id, face_value, balance, expires_on, issued_by, issued_on
		FROM prepaid_cards
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE`

	var cards []domain.PrepaidCard
	if err := sqlx.SelectContext(ctx, database.Executor(ctx, r.db), &cards, query, pq.Array(ids)); err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *PgCardRepository) ExistingIDs(ctx context.Context, ids []string) ([]string, error) {
	query := `SELECT id FROM prepaid_cards WHERE id = ANY($1)`

	existing := []string{}
	if err := sqlx.SelectContext(ctx, database.Executor(ctx, r.db), &existing, query, pq.Array(ids)); err != nil {
		return nil, err
	}
	return existing, nil
}

func (r *PgCardRepository) CreateBatch(ctx context.Context, cards []domain.PrepaidCard) error {
	if len(cards) == 0 {
		return nil
	}
	query := `
		INSERT INTO prepaid_cards (id, face_value, balance, expires_on, issued_by, issued_on)
		VALUES (:id, :face_value, :balance, :expires_on, :issued_by, :issued_on)`

	_, err := sqlx.NamedExecContext(ctx, database.Executor(ctx, r.db), query, cards)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrCardIDTaken
		}
		return err
	}
	return nil
}

func (r *PgCardRepository) UpdateBalance(ctx context.Context, id string, balance int) error {
	query := `UPDATE prepaid_cards SET balance = $1 WHERE id = $2`

	res, err := database.Executor(ctx, r.db).ExecContext(ctx, query, balance, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrCardNotFound
	}
	return nil
}
