package analytics

import (
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/AlexandreFerreir/BD-Project/internal/modules/analytics/application"
	"github.com/AlexandreFerreir/BD-Project/internal/modules/analytics/infrastructure/persistence/postgres"
	"github.com/AlexandreFerreir/BD-Project/internal/modules/analytics/interfaces/http"
)

// Module represents the reporting engine
type Module struct {
	AnalyticsService *application.AnalyticsService
	AnalyticsHandler *http.AnalyticsHandler
}

func NewModule(db *sqlx.DB, logger zerolog.Logger) *Module {
	service := application.NewAnalyticsService(postgres.NewAnalyticsRepository(db), logger)
	return &Module{
		AnalyticsService: service,
		AnalyticsHandler: http.NewAnalyticsHandler(service),
	}
}
