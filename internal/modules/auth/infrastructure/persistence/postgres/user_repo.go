package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/AlexandreFerreir/BD-Project/internal/modules/auth/domain"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/infrastructure/database"
)

type PgUserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a PostgreSQL-backed domain.UserRepository
func NewUserRepository(db *sqlx.DB) *PgUserRepository {
	return &PgUserRepository{db: db}
}

// CreateUser inserts the credentials row. A unique violation on username
// maps to domain.ErrUsernameTaken.
func (r *PgUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, username, password_hash, created_at) VALUES (:id, :username, :password_hash, :created_at)`

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	_, err := sqlx.NamedExecContext(ctx, database.Executor(ctx, r.db), query, user)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrUsernameTaken
		}
		return err
	}
	return nil
}

func (r *PgUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user := &domain.User{}
	query := `SELECT id, username, password_hash, created_at FROM users WHERE username = $1`

	err := sqlx.GetContext(ctx, database.Executor(ctx, r.db), user, query, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Roles lists every role table the user appears in
func (r *PgUserRepository) Roles(ctx context.Context, userID uuid.UUID) ([]domain.Role, error) {
	query := `
		SELECT 'consumer' FROM consumers WHERE user_id = $1
		UNION ALL
		SELECT 'artist' FROM artists WHERE user_id = $1
		UNION ALL
		SELECT 'administrator' FROM administrators WHERE user_id = $1`

	roles := []domain.Role{}
	if err := sqlx.SelectContext(ctx, database.Executor(ctx, r.db), &roles, query, userID); err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *PgUserRepository) CreateConsumer(ctx context.Context, c *domain.Consumer) error {
	query := `
		INSERT INTO consumers (user_id, name, address, birth_date, contact)
		VALUES (:user_id, :name, :address, :birth_date, :contact)`

	_, err := sqlx.NamedExecContext(ctx, database.Executor(ctx, r.db), query, c)
	return err
}

func (r *PgUserRepository) CreateArtist(ctx context.Context, a *domain.Artist) error {
	query := `
		INSERT INTO artists (user_id, name, artistic_name, address, birth_date, contact, created_by)
		VALUES (:user_id, :name, :artistic_name, :address, :birth_date, :contact, :created_by)`

	_, err := sqlx.NamedExecContext(ctx, database.Executor(ctx, r.db), query, a)
	return err
}

func (r *PgUserRepository) CreateAdministrator(ctx context.Context, a *domain.Administrator) error {
	query := `INSERT INTO administrators (user_id, name) VALUES (:user_id, :name)`

	_, err := sqlx.NamedExecContext(ctx, database.Executor(ctx, r.db), query, a)
	return err
}

func (r *PgUserRepository) ProvisionConsumer(ctx context.Context, userID uuid.UUID, today time.Time) error {
	exec := database.Executor(ctx, r.db)

	_, err := exec.ExecContext(ctx,
		`INSERT INTO subscriptions (id, plan, starts_on, expires_on, user_id) VALUES ($1, 'regular', $2, NULL, $3)`,
		uuid.New(), today, userID)
	if err != nil {
		return err
	}

	_, err = exec.ExecContext(ctx,
		`INSERT INTO playlists (id, name, is_public, owner_id) VALUES ($1, $2, FALSE, $3)`,
		uuid.New(), domain.PersonalPlaylistName, userID)
	return err
}
