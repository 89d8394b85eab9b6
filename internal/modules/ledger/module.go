package ledger

import (
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/AlexandreFerreir/BD-Project/internal/modules/ledger/application"
	"github.com/AlexandreFerreir/BD-Project/internal/modules/ledger/infrastructure/persistence/postgres"
	"github.com/AlexandreFerreir/BD-Project/internal/modules/ledger/infrastructure/random"
	ledgerHttp "github.com/AlexandreFerreir/BD-Project/internal/modules/ledger/interfaces/http"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/clock"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/infrastructure/database"
)

// Module represents the prepaid card and subscription ledger
type Module struct {
	service *application.LedgerService
	handler *ledgerHttp.LedgerHandler
}

// NewModule wires the ledger against Postgres
func NewModule(db *sqlx.DB, clk clock.Clock, logger zerolog.Logger) *Module {
	service := application.NewLedgerService(
		postgres.NewCardRepository(db),
		postgres.NewSubscriptionRepository(db),
		database.NewTxManager(db),
		clk,
		random.NewCardNumbers(),
		logger,
	)

	return &Module{
		service: service,
		handler: ledgerHttp.NewLedgerHandler(service),
	}
}

// Service exposes the ledger to other modules (plan checks)
func (m *Module) Service() *application.LedgerService {
	return m.service
}

// HTTPHandler returns the HTTP handler
func (m *Module) HTTPHandler() *ledgerHttp.LedgerHandler {
	return m.handler
}
