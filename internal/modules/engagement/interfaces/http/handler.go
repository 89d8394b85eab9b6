package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/AlexandreFerreir/BD-Project/internal/gateway/middleware"
	"github.com/AlexandreFerreir/BD-Project/internal/modules/engagement/application"
	"github.com/AlexandreFerreir/BD-Project/internal/modules/engagement/domain"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/utils"
)

type EngagementService interface {
	RecordPlay(ctx context.Context, userID, songID uuid.UUID) (int64, error)
	PostComment(ctx context.Context, songID, authorID uuid.UUID, text string, parentID *uuid.UUID) (uuid.UUID, error)
}

var clientErrors = []error{
	domain.ErrInvalidInput,
	domain.ErrSongNotFound,
	domain.ErrCommentNotFound,
	domain.ErrCommentMismatch,
}

type EngagementHandler struct {
	service EngagementService
}

func NewEngagementHandler(service EngagementService) *EngagementHandler {
	return &EngagementHandler{service: service}
}

// Play handles PUT /{song_id}
func (h *EngagementHandler) Play(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}
	songID, err := pathID(r, "song_id")
	if err != nil {
		utils.RespondError(w, r, err, clientErrors...)
		return
	}

	id, err := h.service.RecordPlay(r.Context(), userID, songID)
	if err != nil {
		utils.RespondError(w, r, err, clientErrors...)
		return
	}
	utils.WriteResults(w, id)
}

// Comment handles POST /comment/{song_id} and POST /comment/{song_id}/{parent_id}
func (h *EngagementHandler) Comment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}
	songID, err := pathID(r, "song_id")
	if err != nil {
		utils.RespondError(w, r, err, clientErrors...)
		return
	}

	var parentID *uuid.UUID
	if r.PathValue("parent_id") != "" {
		id, err := pathID(r, "parent_id")
		if err != nil {
			utils.RespondError(w, r, err, clientErrors...)
			return
		}
		parentID = &id
	}

	var req application.CommentRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.service.PostComment(r.Context(), songID, userID, req.Comment, parentID)
	if err != nil {
		utils.RespondError(w, r, err, clientErrors...)
		return
	}
	utils.WriteResults(w, id)
}

func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s", domain.ErrInvalidInput, name)
	}
	return id, nil
}
