package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/AlexandreFerreir/BD-Project/internal/gateway/middleware"
	"github.com/AlexandreFerreir/BD-Project/internal/modules/ledger/application"
	"github.com/AlexandreFerreir/BD-Project/internal/modules/ledger/domain"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/utils"
)

type LedgerService interface {
	FundSubscription(ctx context.Context, userID uuid.UUID, req application.FundSubscriptionRequest) (uuid.UUID, error)
	IssueCards(ctx context.Context, adminID uuid.UUID, req application.IssueCardsRequest) ([]string, error)
}

var clientErrors = []error{
	domain.ErrInvalidInput,
	domain.ErrCardNotFound,
	domain.ErrInsufficientFunds,
	domain.ErrConsumerNotFound,
}

type LedgerHandler struct {
	service LedgerService
}

func NewLedgerHandler(service LedgerService) *LedgerHandler {
	return &LedgerHandler{service: service}
}

// IssueCards handles POST /card
func (h *LedgerHandler) IssueCards(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var body issueCardsBody
	if err := utils.DecodeJSON(w, r, &body); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ids, err := h.service.IssueCards(r.Context(), adminID, body.toRequest())
	if err != nil {
		utils.RespondError(w, r, err, clientErrors...)
		return
	}

	utils.WriteResults(w, ids)
}

// Subscribe handles POST /subscribe
func (h *LedgerHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req application.FundSubscriptionRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.service.FundSubscription(r.Context(), userID, req)
	if err != nil {
		utils.RespondError(w, r, err, clientErrors...)
		return
	}

	utils.WriteResults(w, id)
}
