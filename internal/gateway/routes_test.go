package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexandreFerreir/BD-Project/internal/gateway/middleware"
	analyticsDomain "github.com/AlexandreFerreir/BD-Project/internal/modules/analytics/domain"
	analytics_http "github.com/AlexandreFerreir/BD-Project/internal/modules/analytics/interfaces/http"
	auth_http "github.com/AlexandreFerreir/BD-Project/internal/modules/auth/interfaces/http"
	"github.com/AlexandreFerreir/BD-Project/internal/modules/auth/infrastructure/jwt"
	catalog_http "github.com/AlexandreFerreir/BD-Project/internal/modules/catalog/interfaces/http"
	engagement_http "github.com/AlexandreFerreir/BD-Project/internal/modules/engagement/interfaces/http"
	ledger_http "github.com/AlexandreFerreir/BD-Project/internal/modules/ledger/interfaces/http"
	playlist_http "github.com/AlexandreFerreir/BD-Project/internal/modules/playlist/interfaces/http"
)

type stubReports struct{}

func (stubReports) MonthlyGenreReport(context.Context, string) ([]analyticsDomain.GenrePlaybacks, error) {
	return []analyticsDomain.GenrePlaybacks{}, nil
}

type stubPlays struct{ songs []uuid.UUID }

func (s *stubPlays) RecordPlay(_ context.Context, _ uuid.UUID, songID uuid.UUID) (int64, error) {
	s.songs = append(s.songs, songID)
	return 1, nil
}

func (s *stubPlays) PostComment(context.Context, uuid.UUID, uuid.UUID, string, *uuid.UUID) (uuid.UUID, error) {
	return uuid.New(), nil
}

type routesFixture struct {
	mux    http.Handler
	tokens *jwt.Provider
	plays  *stubPlays
}

func newRoutesFixture() *routesFixture {
	tokens := jwt.NewProvider("test-secret", time.Hour)
	plays := &stubPlays{}
	mux := SetupRoutes(RouterConfig{
		AuthHandler:       &auth_http.AuthHandler{},
		AuthMiddleware:    middleware.NewAuthMiddleware(tokens),
		CatalogHandler:    &catalog_http.CatalogHandler{},
		LedgerHandler:     &ledger_http.LedgerHandler{},
		PlaylistHandler:   &playlist_http.PlaylistHandler{},
		EngagementHandler: engagement_http.NewEngagementHandler(plays),
		AnalyticsHandler:  analytics_http.NewAnalyticsHandler(stubReports{}),
	})
	return &routesFixture{mux: mux, tokens: tokens, plays: plays}
}

func (f *routesFixture) do(t *testing.T, method, path, role string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if role != "" {
		token, err := f.tokens.Issue(uuid.New(), role)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.mux.ServeHTTP(w, req)
	return w
}

func TestSetupRoutes_HealthAndMetrics(t *testing.T) {
	f := newRoutesFixture()

	w := f.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())

	w = f.do(t, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetupRoutes_RequiresToken(t *testing.T) {
	f := newRoutesFixture()
	song := uuid.NewString()

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/card"},
		{http.MethodPost, "/subscribe"},
		{http.MethodPost, "/add_song"},
		{http.MethodPost, "/add_album"},
		{http.MethodGet, "/search_song/love"},
		{http.MethodGet, "/artist_info/" + song},
		{http.MethodPost, "/add_playlist"},
		{http.MethodPut, "/" + song},
		{http.MethodPost, "/comment/" + song},
		{http.MethodPost, "/comment/" + song + "/" + song},
		{http.MethodGet, "/report/2024-03"},
	} {
		w := f.do(t, tc.method, tc.path, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, tc.method+" "+tc.path)
	}
}

func TestSetupRoutes_RoleChecks(t *testing.T) {
	f := newRoutesFixture()
	song := uuid.NewString()

	for _, tc := range []struct{ method, path, role string }{
		{http.MethodPost, "/card", "consumer"},
		{http.MethodPost, "/subscribe", "artist"},
		{http.MethodPost, "/add_song", "consumer"},
		{http.MethodPost, "/add_album", "administrator"},
		{http.MethodPost, "/add_playlist", "artist"},
		{http.MethodPut, "/" + song, "administrator"},
		{http.MethodPost, "/comment/" + song, "artist"},
	} {
		w := f.do(t, tc.method, tc.path, tc.role)
		assert.Equal(t, http.StatusBadRequest, w.Code, tc.method+" "+tc.path)
	}
}

func TestSetupRoutes_Dispatch(t *testing.T) {
	f := newRoutesFixture()
	song := uuid.New()

	w := f.do(t, http.MethodPut, "/"+song.String(), "consumer")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []uuid.UUID{song}, f.plays.songs)

	for _, role := range []string{"consumer", "artist", "administrator"} {
		w = f.do(t, http.MethodGet, "/report/2024-03", role)
		assert.Equal(t, http.StatusOK, w.Code, role)
	}

	w = f.do(t, http.MethodGet, "/"+song.String(), "consumer")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestSetupRoutes_UnmatchedRoutesUseEnvelope(t *testing.T) {
	f := newRoutesFixture()

	tests := []struct {
		name, method, path string
		status             int
		message, allow     string
	}{
		{"unknown path", http.MethodGet, "/no/such/route", http.StatusNotFound, "not found", ""},
		{"wrong method", http.MethodDelete, "/search_song/rock", http.StatusMethodNotAllowed, "method not allowed", "GET, HEAD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(t, tt.method, tt.path, "")

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, tt.allow, w.Header().Get("Allow"))

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, float64(tt.status), body["status"])
			assert.Equal(t, tt.message, body["errors"])
		})
	}
}

func TestSetupRoutes_CreateRejectsExpiredToken(t *testing.T) {
	f := newRoutesFixture()
	expired, err := jwt.NewProvider("test-secret", -time.Minute).Issue(uuid.New(), "administrator")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/create", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	w := httptest.NewRecorder()
	f.mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWrap(t *testing.T) {
	f := newRoutesFixture()
	h := Wrap(f.mux, zerolog.Nop(), "http://localhost:4200")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:4200")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "http://localhost:4200", w.Header().Get("Access-Control-Allow-Origin"))
}
