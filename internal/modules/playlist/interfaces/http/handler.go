package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/AlexandreFerreir/BD-Project/internal/gateway/middleware"
	"github.com/AlexandreFerreir/BD-Project/internal/modules/playlist/application"
	"github.com/AlexandreFerreir/BD-Project/internal/modules/playlist/domain"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/utils"
)

type PlaylistService interface {
	CreatePlaylist(ctx context.Context, ownerID uuid.UUID, req application.CreatePlaylistRequest) (uuid.UUID, error)
}

var clientErrors = []error{
	domain.ErrInvalidInput,
	domain.ErrReservedName,
	domain.ErrPlanRequired,
	domain.ErrSongNotFound,
}

type PlaylistHandler struct {
	service PlaylistService
}

func NewPlaylistHandler(service PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{service: service}
}

// Create handles POST /add_playlist
func (h *PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req application.CreatePlaylistRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.service.CreatePlaylist(r.Context(), userID, req)
	if err != nil {
		utils.RespondError(w, r, err, clientErrors...)
		return
	}
	utils.WriteResults(w, id)
}
