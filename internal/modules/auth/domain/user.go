package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleConsumer      Role = "consumer"
	RoleArtist        Role = "artist"
	RoleAdministrator Role = "administrator"
)

// PersonalPlaylistName is created for every consumer and cannot be reused
const PersonalPlaylistName = "TOP10"

type User struct {
	ID           uuid.UUID `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// Profile is the personal data shared by consumers and artists
type Profile struct {
	Name      string    `db:"name"`
	Address   string    `db:"address"`
	BirthDate time.Time `db:"birth_date"`
	Contact   string    `db:"contact"`
}

type Consumer struct {
	UserID uuid.UUID `db:"user_id"`
	Profile
}

type Artist struct {
	UserID       uuid.UUID `db:"user_id"`
	ArtisticName string    `db:"artistic_name"`
	CreatedBy    uuid.UUID `db:"created_by"`
	Profile
}

type Administrator struct {
	UserID uuid.UUID `db:"user_id"`
	Name   string    `db:"name"`
}

// UserRepository stores accounts and their role rows. Writes made through a
// context carrying a transaction join it.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
	Roles(ctx context.Context, userID uuid.UUID) ([]Role, error)
	CreateConsumer(ctx context.Context, c *Consumer) error
	CreateArtist(ctx context.Context, a *Artist) error
	CreateAdministrator(ctx context.Context, a *Administrator) error
	// ProvisionConsumer gives a new consumer the open-ended regular plan and
	// the private personal playlist.
	ProvisionConsumer(ctx context.Context, userID uuid.UUID, today time.Time) error
}
