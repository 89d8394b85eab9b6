package application

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/AlexandreFerreir/BD-Project/internal/modules/analytics/domain"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/clock"
)

const monthLayout = "2006-01"

type AnalyticsService struct {
	repo   domain.ReportRepository
	logger zerolog.Logger
}

func NewAnalyticsService(repo domain.ReportRepository, logger zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{
		repo:   repo,
		logger: logger.With().Str("module", "analytics").Logger(),
	}
}

// ReportRange returns the half-open window of the twelve whole months that
// precede yearMonth.
func ReportRange(yearMonth string) (from, to time.Time, err error) {
	to, err = time.Parse(monthLayout, yearMonth)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: year_month must look like YYYY-MM", domain.ErrInvalidInput)
	}
	return clock.AddMonths(to, -domain.ReportWindow), to, nil
}

// MonthlyGenreReport counts playbacks per month and genre, ordered by month,
// then by playbacks descending.
func (s *AnalyticsService) MonthlyGenreReport(ctx context.Context, yearMonth string) ([]domain.GenrePlaybacks, error) {
	from, to, err := ReportRange(yearMonth)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.GenrePlaybacks(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("monthly genre report: %w", err)
	}

	s.logger.Debug().
		Str("from", from.Format(clock.DateLayout)).
		Str("to", to.Format(clock.DateLayout)).
		Int("rows", len(rows)).
		Msg("report generated")
	return rows, nil
}
