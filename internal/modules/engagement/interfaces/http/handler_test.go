package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/AlexandreFerreir/BD-Project/internal/gateway/middleware"
	"github.com/AlexandreFerreir/BD-Project/internal/modules/engagement/domain"
	engagement_http "github.com/AlexandreFerreir/BD-Project/internal/modules/engagement/interfaces/http"
)

type MockEngagementService struct {
	mock.Mock
}

func (m *MockEngagementService) RecordPlay(ctx context.Context, userID, songID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID, songID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEngagementService) PostComment(ctx context.Context, songID, authorID uuid.UUID, text string, parentID *uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, songID, authorID, text, parentID)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func newMux(h *engagement_http.EngagementHandler, userID uuid.UUID) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /{song_id}", h.Play)
	mux.HandleFunc("POST /comment/{song_id}", h.Comment)
	mux.HandleFunc("POST /comment/{song_id}/{parent_id}", h.Comment)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mux.ServeHTTP(w, r.WithContext(middleware.WithIdentity(r.Context(), userID, "consumer")))
	})
}

func envelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestPlay(t *testing.T) {
	svc := new(MockEngagementService)
	user, song := uuid.New(), uuid.New()
	svc.On("RecordPlay", mock.Anything, user, song).Return(int64(3), nil)

	w := httptest.NewRecorder()
	newMux(engagement_http.NewEngagementHandler(svc), user).ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/"+song.String(), nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), envelope(t, w)["results"])
}

func TestPlay_Errors(t *testing.T) {
	svc := new(MockEngagementService)
	user, song := uuid.New(), uuid.New()
	svc.On("RecordPlay", mock.Anything, user, song).Return(int64(0), domain.ErrSongNotFound)
	h := newMux(engagement_http.NewEngagementHandler(svc), user)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/"+song.String(), nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "given song does not exist", envelope(t, w)["errors"])

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestComment_TopLevel(t *testing.T) {
	svc := new(MockEngagementService)
	user, song, comment := uuid.New(), uuid.New(), uuid.New()
	svc.On("PostComment", mock.Anything, song, user, "love it", (*uuid.UUID)(nil)).Return(comment, nil)

	w := httptest.NewRecorder()
	newMux(engagement_http.NewEngagementHandler(svc), user).ServeHTTP(w,
		httptest.NewRequest(http.MethodPost, "/comment/"+song.String(), bytes.NewBufferString(`{"comment": "love it"}`)))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, comment.String(), envelope(t, w)["results"])
}

func TestComment_Reply(t *testing.T) {
	svc := new(MockEngagementService)
	user, song, parent, comment := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	svc.On("PostComment", mock.Anything, song, user, "same", mock.MatchedBy(func(p *uuid.UUID) bool {
		return p != nil && *p == parent
	})).Return(comment, nil)

	w := httptest.NewRecorder()
	newMux(engagement_http.NewEngagementHandler(svc), user).ServeHTTP(w,
		httptest.NewRequest(http.MethodPost, "/comment/"+song.String()+"/"+parent.String(), bytes.NewBufferString(`{"comment": "same"}`)))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestComment_Mismatch(t *testing.T) {
	svc := new(MockEngagementService)
	user, song, parent := uuid.New(), uuid.New(), uuid.New()
	svc.On("PostComment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(uuid.Nil, domain.ErrCommentMismatch)

	w := httptest.NewRecorder()
	newMux(engagement_http.NewEngagementHandler(svc), user).ServeHTTP(w,
		httptest.NewRequest(http.MethodPost, "/comment/"+song.String()+"/"+parent.String(), bytes.NewBufferString(`{"comment": "x"}`)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "given comment does not refer to given song", envelope(t, w)["errors"])
}

func TestComment_BadParent(t *testing.T) {
	svc := new(MockEngagementService)

	w := httptest.NewRecorder()
	newMux(engagement_http.NewEngagementHandler(svc), uuid.New()).ServeHTTP(w,
		httptest.NewRequest(http.MethodPost, "/comment/"+uuid.NewString()+"/7", bytes.NewBufferString(`{"comment": "x"}`)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "PostComment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
