package gateway

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexandreFerreir/BD-Project/internal/gateway/middleware"
	"github.com/AlexandreFerreir/BD-Project/internal/modules/auth/domain"
	"github.com/AlexandreFerreir/BD-Project/internal/modules/auth/infrastructure/jwt"
)

func echoRole(w http.ResponseWriter, r *http.Request) {
	role, ok := middleware.Role(r.Context())
	if !ok {
		role = "anonymous"
	}
	_, _ = w.Write([]byte(role))
}

func TestRouter_AccessLevels(t *testing.T) {
	tokens := jwt.NewProvider("router-secret", time.Hour)
	router := NewRouter(middleware.NewAuthMiddleware(tokens))
	router.Public("GET /open", http.HandlerFunc(echoRole))
	router.Optional("GET /maybe", echoRole)
	router.Protected("GET /any", echoRole)
	router.Protected("GET /artists", echoRole, domain.RoleArtist)

	artist, err := tokens.Issue(uuid.New(), string(domain.RoleArtist))
	require.NoError(t, err)
	consumer, err := tokens.Issue(uuid.New(), string(domain.RoleConsumer))
	require.NoError(t, err)

	tests := []struct {
		path, token string
		status      int
		body        string
	}{
		{"/open", "", http.StatusOK, "anonymous"},
		{"/maybe", "", http.StatusOK, "anonymous"},
		{"/maybe", "garbage", http.StatusUnauthorized, ""},
		{"/maybe", consumer, http.StatusOK, "consumer"},
		{"/any", "", http.StatusUnauthorized, ""},
		{"/any", consumer, http.StatusOK, "consumer"},
		{"/artists", consumer, http.StatusBadRequest, ""},
		{"/artists", artist, http.StatusOK, "artist"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		if tt.token != "" {
			req.Header.Set("Authorization", "Bearer "+tt.token)
		}
		w := httptest.NewRecorder()
		router.Mux().ServeHTTP(w, req)

		assert.Equal(t, tt.status, w.Code, tt.path)
		if tt.body != "" {
			assert.Equal(t, tt.body, w.Body.String(), tt.path)
		}
	}
}

func TestRouter_MethodPatternsCoexist(t *testing.T) {
	router := NewRouter(middleware.NewAuthMiddleware(jwt.NewProvider("s", time.Hour)))
	router.Public("GET /health", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	router.Public("PUT /{song_id}", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.PathValue("song_id")))
	}))

	w := httptest.NewRecorder()
	router.Mux().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	router.Mux().ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "health", w.Body.String())
}
