package engagement

import (
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/AlexandreFerreir/BD-Project/internal/modules/engagement/application"
	"github.com/AlexandreFerreir/BD-Project/internal/modules/engagement/domain"
	"github.com/AlexandreFerreir/BD-Project/internal/modules/engagement/infrastructure/persistence/postgres"
	engagementHttp "github.com/AlexandreFerreir/BD-Project/internal/modules/engagement/interfaces/http"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/clock"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/infrastructure/database"
)

// Module represents the play and comment store
type Module struct {
	service *application.EngagementService
	handler *engagementHttp.EngagementHandler
}

func NewModule(db *sqlx.DB, songs domain.SongFinder, clk clock.Clock, logger zerolog.Logger) *Module {
	service := application.NewEngagementService(
		postgres.NewPlayRepository(db),
		postgres.NewCommentRepository(db),
		songs,
		database.NewTxManager(db),
		clk,
		logger,
	)
	return &Module{service: service, handler: engagementHttp.NewEngagementHandler(service)}
}

func (m *Module) Service() *application.EngagementService {
	return m.service
}

func (m *Module) HTTPHandler() *engagementHttp.EngagementHandler {
	return m.handler
}
