package http

import (
	"context"
	"net/http"

	"github.com/AlexandreFerreir/BD-Project/internal/modules/analytics/domain"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/utils"
)

type AnalyticsService interface {
	MonthlyGenreReport(ctx context.Context, yearMonth string) ([]domain.GenrePlaybacks, error)
}

type AnalyticsHandler struct {
	service AnalyticsService
}

func NewAnalyticsHandler(service AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// Report handles GET /report/{year_month}
func (h *AnalyticsHandler) Report(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.MonthlyGenreReport(r.Context(), r.PathValue("year_month"))
	if err != nil {
		utils.RespondError(w, r, err, domain.ErrInvalidInput)
		return
	}
	utils.WriteResults(w, rows)
}
