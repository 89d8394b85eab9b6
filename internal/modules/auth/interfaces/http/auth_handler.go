package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/AlexandreFerreir/BD-Project/internal/gateway/middleware"
	"github.com/AlexandreFerreir/BD-Project/internal/modules/auth/application"
	"github.com/AlexandreFerreir/BD-Project/internal/modules/auth/domain"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/utils"
)

// AuthService defines the interface for auth operations
type AuthService interface {
	Login(ctx context.Context, req application.LoginRequest) (string, error)
	RegisterConsumer(ctx context.Context, req application.RegisterRequest) (uuid.UUID, error)
	RegisterArtist(ctx context.Context, adminID uuid.UUID, req application.RegisterRequest) (uuid.UUID, error)
}

var clientErrors = []error{
	domain.ErrInvalidInput,
	domain.ErrInvalidCredentials,
	domain.ErrUsernameTaken,
	domain.ErrAdminRequired,
}

type AuthHandler struct {
	service AuthService
}

func NewAuthHandler(service AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req application.LoginRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.service.Login(r.Context(), req)
	if err != nil {
		utils.RespondError(w, r, err, clientErrors...)
		return
	}

	utils.WriteResults(w, token)
}

// Create handles POST /create. Anonymous callers register as consumers and
// administrators create artists; any other identity is refused.
func (h *AuthHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req application.RegisterRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var (
		id  uuid.UUID
		err error
	)
	callerID, authenticated := middleware.UserID(r.Context())
	switch {
	case !authenticated:
		id, err = h.service.RegisterConsumer(r.Context(), req)
	case isAdmin(r.Context()):
		id, err = h.service.RegisterArtist(r.Context(), callerID, req)
	default:
		err = domain.ErrAdminRequired
	}
	if err != nil {
		utils.RespondError(w, r, err, clientErrors...)
		return
	}

	utils.WriteResults(w, id)
}

func isAdmin(ctx context.Context) bool {
	role, _ := middleware.Role(ctx)
	return role == string(domain.RoleAdministrator)
}
