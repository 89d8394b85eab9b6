package migration_test

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexandreFerreir/BD-Project/db"
	"github.com/AlexandreFerreir/BD-Project/pkg/migration"
)

func TestNewRunner_DefaultLogger(t *testing.T) {
	r := migration.NewRunner(&migration.Config{DatabaseURL: "postgres://invalid"})
	require.NotNil(t, r)
}

func TestRunner_UnreachableDatabase(t *testing.T) {
	logger := zerolog.Nop()
	for _, path := range []string{"", "../../db/migrations"} {
		r := migration.NewRunner(&migration.Config{
			MigrationsPath: path,
			DatabaseURL:    "bad://url",
			Logger:         &logger,
		})

		assert.Error(t, r.Up())
		assert.Error(t, r.Down())
		assert.Error(t, r.Force(1))
		_, _, err := r.Version()
		assert.ErrorContains(t, err, "failed to initialize migrate")
	}
}

func TestAutoMigrate_InvalidURL(t *testing.T) {
	assert.Error(t, migration.AutoMigrate("bad://url", "", zerolog.Nop()))
}

func TestEmbeddedMigrations_Paired(t *testing.T) {
	entries, err := fs.ReadDir(db.Migrations, "migrations")
	require.NoError(t, err)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}

	require.NotEmpty(t, ups)
	assert.Equal(t, ups, downs)
}

func TestEmbeddedMigrations_CreateEveryTable(t *testing.T) {
	up, err := fs.ReadFile(db.Migrations, "migrations/000001_init_schema.up.sql")
	require.NoError(t, err)

	for _, table := range []string{
		"users", "consumers", "artists", "administrators", "songs", "albums",
		"artist_songs", "artist_albums", "album_songs", "playlists", "playlist_songs",
		"play_events", "comments", "comment_replies", "prepaid_cards", "subscriptions",
		"subscription_cards",
	} {
		assert.Contains(t, string(up), "CREATE TABLE IF NOT EXISTS "+table+" (", table)
	}
}
