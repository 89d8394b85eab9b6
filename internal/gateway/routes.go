package gateway

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/AlexandreFerreir/BD-Project/internal/gateway/middleware"
	analytics_http "github.com/AlexandreFerreir/BD-Project/internal/modules/analytics/interfaces/http"
	auth_http "github.com/AlexandreFerreir/BD-Project/internal/modules/auth/interfaces/http"
	"github.com/AlexandreFerreir/BD-Project/internal/modules/auth/domain"
	catalog_http "github.com/AlexandreFerreir/BD-Project/internal/modules/catalog/interfaces/http"
	engagement_http "github.com/AlexandreFerreir/BD-Project/internal/modules/engagement/interfaces/http"
	ledger_http "github.com/AlexandreFerreir/BD-Project/internal/modules/ledger/interfaces/http"
	playlist_http "github.com/AlexandreFerreir/BD-Project/internal/modules/playlist/interfaces/http"
)

// RouterConfig holds all the handlers and middleware needed for routing
type RouterConfig struct {
	AuthHandler       *auth_http.AuthHandler
	AuthMiddleware    *middleware.AuthMiddleWare
	CatalogHandler    *catalog_http.CatalogHandler
	LedgerHandler     *ledger_http.LedgerHandler
	PlaylistHandler   *playlist_http.PlaylistHandler
	EngagementHandler *engagement_http.EngagementHandler
	AnalyticsHandler  *analytics_http.AnalyticsHandler
}

// SetupRoutes creates and configures all application routes
func SetupRoutes(config RouterConfig) http.Handler {
	router := NewRouter(config.AuthMiddleware)

	// Health Check
	router.Public("GET /health", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}))

	// Prometheus Metrics Endpoint
	router.Public("GET /metrics", promhttp.Handler())

	// Auth Routes
	router.Public("POST /login", http.HandlerFunc(config.AuthHandler.Login))
	router.Optional("POST /create", config.AuthHandler.Create)

	// Ledger Routes
	router.Protected("POST /card", config.LedgerHandler.IssueCards, domain.RoleAdministrator)
	router.Protected("POST /subscribe", config.LedgerHandler.Subscribe, domain.RoleConsumer)

	// Catalog Routes
	router.Protected("POST /add_song", config.CatalogHandler.AddSong, domain.RoleArtist)
	router.Protected("POST /add_album", config.CatalogHandler.AddAlbum, domain.RoleArtist)
	router.Protected("GET /search_song/{keyword}", config.CatalogHandler.SearchSong)
	router.Protected("GET /artist_info/{artist_id}", config.CatalogHandler.ArtistInfo)

	// Playlist Routes
	router.Protected("POST /add_playlist", config.PlaylistHandler.Create, domain.RoleConsumer)

	// Engagement Routes
	router.Protected("PUT /{song_id}", config.EngagementHandler.Play, domain.RoleConsumer)
	router.Protected("POST /comment/{song_id}", config.EngagementHandler.Comment, domain.RoleConsumer)
	router.Protected("POST /comment/{song_id}/{parent_id}", config.EngagementHandler.Comment, domain.RoleConsumer)

	// Analytics Routes
	router.Protected("GET /report/{year_month}", config.AnalyticsHandler.Report)

	return router.Handler()
}

// Wrap applies the global middleware chain: request logging, metrics, CORS
func Wrap(mux http.Handler, logger zerolog.Logger, allowedOrigins string) http.Handler {
	return middleware.RequestLogger(logger)(
		middleware.PrometheusMiddleware(
			middleware.CORSMiddleware(mux, allowedOrigins),
		),
	)
}
