package playlist

import (
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/AlexandreFerreir/BD-Project/internal/modules/playlist/application"
	"github.com/AlexandreFerreir/BD-Project/internal/modules/playlist/domain"
	"github.com/AlexandreFerreir/BD-Project/internal/modules/playlist/infrastructure/persistence/postgres"
	playlistHttp "github.com/AlexandreFerreir/BD-Project/internal/modules/playlist/interfaces/http"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/clock"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/infrastructure/database"
)

// Module represents the user playlist store
type Module struct {
	service *application.PlaylistService
	handler *playlistHttp.PlaylistHandler
}

func NewModule(db *sqlx.DB, songs domain.SongFinder, plans domain.PlanChecker, clk clock.Clock, logger zerolog.Logger) *Module {
	service := application.NewPlaylistService(
		postgres.NewPlaylistRepository(db),
		songs,
		plans,
		database.NewTxManager(db),
		clk,
		logger,
	)
	return &Module{service: service, handler: playlistHttp.NewPlaylistHandler(service)}
}

func (m *Module) Service() *application.PlaylistService {
	return m.service
}

func (m *Module) HTTPHandler() *playlistHttp.PlaylistHandler {
	return m.handler
}
