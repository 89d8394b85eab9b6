package auth

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/AlexandreFerreir/BD-Project/internal/modules/auth/application"
	"github.com/AlexandreFerreir/BD-Project/internal/modules/auth/infrastructure/jwt"
	"github.com/AlexandreFerreir/BD-Project/internal/modules/auth/infrastructure/persistence/postgres"
	auth_http "github.com/AlexandreFerreir/BD-Project/internal/modules/auth/interfaces/http"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/clock"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/infrastructure/database"
)

// Module represents the Auth module
type Module struct {
	service *application.AuthService
	tokens  *jwt.Provider
	handler *auth_http.AuthHandler
}

// NewModule creates and initializes the Auth module
func NewModule(db *sqlx.DB, jwtSecret string, jwtExpiry time.Duration, clk clock.Clock, logger zerolog.Logger) *Module {
	tokens := jwt.NewProvider(jwtSecret, jwtExpiry)
	repository := postgres.NewUserRepository(db)
	service := application.NewAuthService(repository, database.NewTxManager(db), tokens, clk, logger)

	return &Module{
		service: service,
		tokens:  tokens,
		handler: auth_http.NewAuthHandler(service),
	}
}

// Service returns the auth service for use by the gateway layer and the CLI
func (m *Module) Service() *application.AuthService {
	return m.service
}

// Tokens validates identity tokens for the gateway middleware
func (m *Module) Tokens() *jwt.Provider {
	return m.tokens
}

// HTTPHandler returns the HTTP handler for the auth module
func (m *Module) HTTPHandler() *auth_http.AuthHandler {
	return m.handler
}
