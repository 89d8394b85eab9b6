package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/AlexandreFerreir/BD-Project/internal/gateway/middleware"
	"github.com/AlexandreFerreir/BD-Project/internal/modules/catalog/application"
	"github.com/AlexandreFerreir/BD-Project/internal/modules/catalog/domain"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/utils"
)

// CatalogService defines the catalog operations used by the handler
type CatalogService interface {
	CreateSong(ctx context.Context, artistID uuid.UUID, req application.SongInput) (uuid.UUID, error)
	CreateAlbum(ctx context.Context, artistID uuid.UUID, req application.CreateAlbumRequest) (uuid.UUID, error)
	SearchSongs(ctx context.Context, keyword string) ([]domain.SearchHit, error)
	ArtistInfo(ctx context.Context, artistID uuid.UUID) (*domain.ArtistInfo, error)
}

var clientErrors = []error{
	domain.ErrInvalidInput,
	domain.ErrArtistNotFound,
	domain.ErrArtistSelfReference,
	domain.ErrSongNotFound,
}

type CatalogHandler struct {
	service CatalogService
}

func NewCatalogHandler(service CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// AddSong handles POST /add_song
func (h *CatalogHandler) AddSong(w http.ResponseWriter, r *http.Request) {
	artistID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req application.SongInput
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.service.CreateSong(r.Context(), artistID, req)
	if err != nil {
		utils.RespondError(w, r, err, clientErrors...)
		return
	}
	utils.WriteResults(w, id)
}

// AddAlbum handles POST /add_album
func (h *CatalogHandler) AddAlbum(w http.ResponseWriter, r *http.Request) {
	artistID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req application.CreateAlbumRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.service.CreateAlbum(r.Context(), artistID, req)
	if err != nil {
		utils.RespondError(w, r, err, clientErrors...)
		return
	}
	utils.WriteResults(w, id)
}

// SearchSong handles GET /search_song/{keyword}
func (h *CatalogHandler) SearchSong(w http.ResponseWriter, r *http.Request) {
	hits, err := h.service.SearchSongs(r.Context(), r.PathValue("keyword"))
	if err != nil {
		utils.RespondError(w, r, err, clientErrors...)
		return
	}
	utils.WriteResults(w, hits)
}

// ArtistInfo handles GET /artist_info/{artist_id}
func (h *CatalogHandler) ArtistInfo(w http.ResponseWriter, r *http.Request) {
	artistID, err := uuid.Parse(r.PathValue("artist_id"))
	if err != nil {
		utils.RespondError(w, r, fmt.Errorf("%w: invalid artist id", domain.ErrInvalidInput), clientErrors...)
		return
	}

	info, err := h.service.ArtistInfo(r.Context(), artistID)
	if err != nil {
		utils.RespondError(w, r, err, clientErrors...)
		return
	}
	utils.WriteResults(w, info)
}
