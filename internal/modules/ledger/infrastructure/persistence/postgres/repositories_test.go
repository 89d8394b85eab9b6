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

	"github.com/AlexandreFerreir/BD-Project/internal/modules/ledger/domain"
	"github.com/AlexandreFerreir/BD-Project/internal/modules/ledger/infrastructure/persistence/postgres"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/infrastructure/database"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/testutil"
)

var cardCols = []string{"id", "face_value", "balance", "expires_on", "issued_by", "issued_on"}

func TestPgCardRepository_LockByIDs(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := postgres.NewCardRepository(db)
	ctx := context.Background()
	admin := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows(cardCols).
		AddRow("1111111111111111", 10, 5, now, admin, now).
		AddRow("2222222222222222", 25, 25, now, admin, now)
	mock.ExpectQuery(`SELECT id, face_value, balance, expires_on, issued_by, issued_on\s+FROM prepaid_cards\s+WHERE id = ANY\(\$1\)\s+ORDER BY id\s+FOR UPDATE`).
		WillReturnRows(rows)

	cards, err := repo.LockByIDs(ctx, []string{"2222222222222222", "1111111111111111"})
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, 5, cards[0].Balance)
	assert.Equal(t, admin, cards[1].IssuedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgCardRepository_LockByIDs_Error(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := postgres.NewCardRepository(db)

	mock.ExpectQuery(`FROM prepaid_cards`).WillReturnError(sql.ErrConnDone)
	_, err := repo.LockByIDs(context.Background(), []string{"1111111111111111"})
	assert.ErrorIs(t, err, sql.ErrConnDone)
}

func TestPgCardRepository_ExistingIDs(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := postgres.NewCardRepository(db)

	mock.ExpectQuery(`SELECT id FROM prepaid_cards WHERE id = ANY\(\$1\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("1111111111111111"))
	ids, err := repo.ExistingIDs(context.Background(), []string{"1111111111111111", "2222222222222222"})
	require.NoError(t, err)
	assert.Equal(t, []string{"1111111111111111"}, ids)

	mock.ExpectQuery(`SELECT id FROM prepaid_cards`).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	ids, err = repo.ExistingIDs(context.Background(), []string{"3333333333333333"})
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestPgCardRepository_CreateBatch(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := postgres.NewCardRepository(db)
	ctx := context.Background()
	admin := uuid.New()
	today := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)

	cards := []domain.PrepaidCard{
		{ID: "1111111111111111", FaceValue: 10, Balance: 10, ExpiresOn: today.AddDate(1, 0, 0), IssuedBy: admin, IssuedOn: today},
		{ID: "2222222222222222", FaceValue: 10, Balance: 10, ExpiresOn: today.AddDate(1, 0, 0), IssuedBy: admin, IssuedOn: today},
	}

	mock.ExpectExec(`INSERT INTO prepaid_cards \(id, face_value, balance, expires_on, issued_by, issued_on\)`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	require.NoError(t, repo.CreateBatch(ctx, cards))

	mock.ExpectExec(`INSERT INTO prepaid_cards`).WillReturnError(&pq.Error{Code: "23505"})
	assert.ErrorIs(t, repo.CreateBatch(ctx, cards), postgres.ErrCardIDTaken)

	assert.NoError(t, repo.CreateBatch(ctx, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgCardRepository_UpdateBalance(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := postgres.NewCardRepository(db)
	ctx := context.Background()

	mock.ExpectExec(`UPDATE prepaid_cards SET balance = \$1 WHERE id = \$2`).
		WithArgs(3, "1111111111111111").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateBalance(ctx, "1111111111111111", 3))

	mock.ExpectExec(`UPDATE prepaid_cards`).
		WithArgs(0, "9999999999999999").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdateBalance(ctx, "9999999999999999", 0), domain.ErrCardNotFound)
}

func TestPgCardRepository_UsesContextTransaction(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := postgres.NewCardRepository(db)
	tx := database.NewTxManager(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE prepaid_cards`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	err := tx.WithinTx(context.Background(), func(ctx context.Context) error {
		if err := repo.UpdateBalance(ctx, "1111111111111111", 0); err != nil {
			return err
		}
		return domain.ErrInsufficientFunds
	})

	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgSubscriptionRepository_LockOwner(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := postgres.NewSubscriptionRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	mock.ExpectQuery(`SELECT user_id FROM consumers WHERE user_id = \$1 FOR UPDATE`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(userID))
	require.NoError(t, repo.LockOwner(ctx, userID))

	mock.ExpectQuery(`SELECT user_id FROM consumers`).
		WithArgs(userID).
		WillReturnError(sql.ErrNoRows)
	assert.ErrorIs(t, repo.LockOwner(ctx, userID), domain.ErrConsumerNotFound)
}

func TestPgSubscriptionRepository_LatestPremiumExpiry(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := postgres.NewSubscriptionRepository(db)
	ctx := context.Background()
	userID := uuid.New()
	expires := time.Date(2024, time.August, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT MAX\(expires_on\) FROM subscriptions WHERE user_id = \$1 AND plan = 'premium'`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(expires))
	got, err := repo.LatestPremiumExpiry(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, expires.Equal(*got))

	mock.ExpectQuery(`SELECT MAX\(expires_on\)`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(nil))
	got, err = repo.LatestPremiumExpiry(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPgSubscriptionRepository_CreateAndLink(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := postgres.NewSubscriptionRepository(db)
	ctx := context.Background()

	end := time.Date(2024, time.July, 10, 0, 0, 0, 0, time.UTC)
	sub := &domain.Subscription{
		Plan:      domain.PlanPremium,
		StartsOn:  time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
		ExpiresOn: &end,
		UserID:    uuid.New(),
	}

	mock.ExpectExec(`INSERT INTO subscriptions \(id, plan, starts_on, expires_on, user_id, created_at\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Create(ctx, sub))
	assert.NotEqual(t, uuid.Nil, sub.ID)
	assert.False(t, sub.CreatedAt.IsZero())

	mock.ExpectExec(`INSERT INTO subscription_cards \(subscription_id, card_id, amount\) VALUES \(\$1, \$2, \$3\)`).
		WithArgs(sub.ID, "1111111111111111", 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO subscription_cards`).
		WithArgs(sub.ID, "2222222222222222", 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.LinkCards(ctx, sub.ID, []domain.Contribution{
		{CardID: "1111111111111111", Amount: 5},
		{CardID: "2222222222222222", Amount: 2, Remaining: 3},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgSubscriptionRepository_LinkCardsError(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := postgres.NewSubscriptionRepository(db)

	mock.ExpectExec(`INSERT INTO subscription_cards`).WillReturnError(sql.ErrConnDone)
	err := repo.LinkCards(context.Background(), uuid.New(), []domain.Contribution{{CardID: "1111111111111111", Amount: 7}})
	assert.ErrorIs(t, err, sql.ErrConnDone)
}
