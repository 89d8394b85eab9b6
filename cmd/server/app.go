package main

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/AlexandreFerreir/BD-Project/internal/gateway"
	"github.com/AlexandreFerreir/BD-Project/internal/gateway/middleware"
	"github.com/AlexandreFerreir/BD-Project/internal/modules/analytics"
	"github.com/AlexandreFerreir/BD-Project/internal/modules/auth"
	"github.com/AlexandreFerreir/BD-Project/internal/modules/catalog"
	"github.com/AlexandreFerreir/BD-Project/internal/modules/engagement"
	"github.com/AlexandreFerreir/BD-Project/internal/modules/ledger"
	"github.com/AlexandreFerreir/BD-Project/internal/modules/playlist"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/clock"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/infrastructure/config"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/infrastructure/database"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/logger"
)

// modules wires every feature module against one database handle
type modules struct {
	auth       *auth.Module
	catalog    *catalog.Module
	ledger     *ledger.Module
	playlist   *playlist.Module
	engagement *engagement.Module
	analytics  *analytics.Module
}

func newModules(db *sqlx.DB, cfg config.Config, clk clock.Clock, log zerolog.Logger) *modules {
	catalogModule := catalog.NewModule(db, clk, log)
	ledgerModule := ledger.NewModule(db, clk, log)

	return &modules{
		auth:       auth.NewModule(db, cfg.JWT.Secret, cfg.JWT.Expiry, clk, log),
		catalog:    catalogModule,
		ledger:     ledgerModule,
		playlist:   playlist.NewModule(db, catalogModule.SongFinder(), ledgerModule.Service(), clk, log),
		engagement: engagement.NewModule(db, catalogModule.SongFinder(), clk, log),
		analytics:  analytics.NewModule(db, log),
	}
}

// handler builds the routed mux wrapped in the global middleware chain
func (m *modules) handler(cfg config.Config, log zerolog.Logger) http.Handler {
	mux := gateway.SetupRoutes(gateway.RouterConfig{
		AuthHandler:       m.auth.HTTPHandler(),
		AuthMiddleware:    middleware.NewAuthMiddleware(m.auth.Tokens()),
		CatalogHandler:    m.catalog.HTTPHandler(),
		LedgerHandler:     m.ledger.HTTPHandler(),
		PlaylistHandler:   m.playlist.HTTPHandler(),
		EngagementHandler: m.engagement.HTTPHandler(),
		AnalyticsHandler:  m.analytics.AnalyticsHandler,
	})
	return gateway.Wrap(mux, log, cfg.Server.AllowedOrigins)
}

// loadConfig reads .env and the environment, then validates the result
func loadConfig() (config.Config, zerolog.Logger, error) {
	config.LoadDotEnv()
	cfg := config.Load()
	log := logger.New(cfg.Logging.Level, cfg.Logging.Pretty)
	if err := cfg.Validate(); err != nil {
		return cfg, log, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, log, nil
}

func openDB(cfg config.Config, log zerolog.Logger) (*sqlx.DB, error) {
	log.Info().Str("host", cfg.Database.Host).Str("db", cfg.Database.DBName).Msg("connecting to database")
	db, err := database.NewPostgresDB(cfg.Database)
	if err != nil {
		return nil, err
	}
	log.Info().Msg("database connected")
	return db, nil
}
