package catalog

import (
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/AlexandreFerreir/BD-Project/internal/modules/catalog/application"
	"github.com/AlexandreFerreir/BD-Project/internal/modules/catalog/domain"
	persistence "github.com/AlexandreFerreir/BD-Project/internal/modules/catalog/infrastructure/persistence/postgres"
	catalogHttp "github.com/AlexandreFerreir/BD-Project/internal/modules/catalog/interfaces/http"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/clock"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/infrastructure/database"
)

// Module represents the Catalog module
type Module struct {
	songs   *persistence.PgSongRepository
	service *application.CatalogService
	handler *catalogHttp.CatalogHandler
}

// NewModule creates and initializes the Catalog module
func NewModule(db *sqlx.DB, clk clock.Clock, logger zerolog.Logger) *Module {
	songs := persistence.NewSongRepository(db)
	service := application.NewCatalogService(
		songs,
		persistence.NewAlbumRepository(db),
		persistence.NewArtistRepository(db),
		database.NewTxManager(db),
		clk,
		logger,
	)

	return &Module{
		songs:   songs,
		service: service,
		handler: catalogHttp.NewCatalogHandler(service),
	}
}

// SongFinder returns the song lookup for use by other modules (Engagement, Playlist)
func (m *Module) SongFinder() domain.SongFinder {
	return m.songs
}

// Service returns the catalog service
func (m *Module) Service() *application.CatalogService {
	return m.service
}

// HTTPHandler returns the HTTP handler
func (m *Module) HTTPHandler() *catalogHttp.CatalogHandler {
	return m.handler
}
