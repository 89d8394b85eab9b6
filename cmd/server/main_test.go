package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexandreFerreir/BD-Project/internal/shared/clock"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/infrastructure/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_NAME", "soundbase")
	t.Setenv("PORT", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_EXPIRATION", "")
	t.Setenv("APP_ENV", "")

	cfg, _, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiry)
}

func TestLoadConfig_RejectsDevSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, _, err := loadConfig()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestModules_Handler(t *testing.T) {
	cfg := config.Load()
	cfg.JWT.Secret = "test-secret"
	mods := newModules(&sqlx.DB{}, cfg, clock.System{}, zerolog.Nop())

	h := mods.handler(cfg, zerolog.Nop())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/add_playlist", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRootCmd_Commands(t *testing.T) {
	root := newRootCmd()

	for _, path := range [][]string{
		{"serve"},
		{"migrate", "up"},
		{"migrate", "down"},
		{"migrate", "version"},
		{"migrate", "force"},
		{"create-admin"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}

func TestCreateAdminCmd_RequiresFlags(t *testing.T) {
	root := newRootCmd()
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"create-admin", "--username", "root"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestMigrateForce_RejectsBadVersion(t *testing.T) {
	root := newRootCmd()
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"migrate", "force", "abc"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid version")
}
