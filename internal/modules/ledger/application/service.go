package application

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/AlexandreFerreir/BD-Project/internal/modules/ledger/domain"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/clock"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/infrastructure/database"
)

const (
	// MaxCardsPerBatch bounds a single issue request
	MaxCardsPerBatch = 1000
	maxRedraws       = 100
)

// LedgerService funds subscriptions from prepaid cards and issues new cards
type LedgerService struct {
	cards   domain.CardRepository
	subs    domain.SubscriptionRepository
	tx      database.Transactor
	clock   clock.Clock
	numbers domain.CardNumberSource
	logger  zerolog.Logger
}

func NewLedgerService(
	cards domain.CardRepository,
	subs domain.SubscriptionRepository,
	tx database.Transactor,
	clk clock.Clock,
	numbers domain.CardNumberSource,
	logger zerolog.Logger,
) *LedgerService {
	return &LedgerService{
		cards:   cards,
		subs:    subs,
		tx:      tx,
		clock:   clk,
		numbers: numbers,
		logger:  logger.With().Str("module", "ledger").Logger(),
	}
}

// FundSubscription debits the given cards, in order, for one period of
// premium and records the new subscription row.
func (s *LedgerService) FundSubscription(ctx context.Context, userID uuid.UUID, req FundSubscriptionRequest) (uuid.UUID, error) {
	period, err := domain.ParsePeriod(req.Period)
	if err != nil {
		return uuid.Nil, err
	}
	if err := validateCardIDs(req.Cards); err != nil {
		return uuid.Nil, err
	}

	today := clock.Today(s.clock)
	var sub *domain.Subscription

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.subs.LockOwner(ctx, userID); err != nil {
			return err
		}

		locked, err := s.cards.LockByIDs(ctx, req.Cards)
		if err != nil {
			return err
		}
		byID := lo.KeyBy(locked, func(c domain.PrepaidCard) string { return c.ID })

		ordered := make([]domain.PrepaidCard, 0, len(req.Cards))
		for _, id := range req.Cards {
			c, ok := byID[id]
			if !ok {
				return fmt.Errorf("%w: %s", domain.ErrCardNotFound, id)
			}
			ordered = append(ordered, c)
		}

		alloc := domain.Allocate(ordered, period.Price(), today)
		if !alloc.Covered() {
			fundingRejectedTotal.Inc()
			return domain.ErrInsufficientFunds
		}

		for _, c := range alloc.Contributions {
			if err := s.cards.UpdateBalance(ctx, c.CardID, c.Remaining); err != nil {
				return err
			}
		}

		latest, err := s.subs.LatestPremiumExpiry(ctx, userID)
		if err != nil {
			return err
		}
		start := domain.RenewalStart(latest, today)
		end := clock.AddMonths(start, period.Months())

		sub = &domain.Subscription{
			ID:        uuid.New(),
			Plan:      domain.PlanPremium,
			StartsOn:  start,
			ExpiresOn: &end,
			UserID:    userID,
			CreatedAt: s.clock.Now(),
		}
		if err := s.subs.Create(ctx, sub); err != nil {
			return err
		}
		return s.subs.LinkCards(ctx, sub.ID, alloc.Contributions)
	})
	if err != nil {
		return uuid.Nil, err
	}

	subscriptionsFundedTotal.WithLabelValues(string(period)).Inc()
	s.logger.Info().
		Str("user_id", userID.String()).
		Str("subscription_id", sub.ID.String()).
		Str("period", string(period)).
		Time("starts_on", sub.StartsOn).
		Time("expires_on", *sub.ExpiresOn).
		Msg("subscription funded")

	return sub.ID, nil
}

// IssueCards creates count cards of the given face value, each with a
// fresh 16 digit id and valid for one year.
func (s *LedgerService) IssueCards(ctx context.Context, adminID uuid.UUID, req IssueCardsRequest) ([]string, error) {
	if req.Count < 1 || req.Count > MaxCardsPerBatch {
		return nil, fmt.Errorf("%w: number_cards must be between 1 and %d", domain.ErrInvalidInput, MaxCardsPerBatch)
	}
	if !lo.Contains(domain.FaceValues, req.FaceValue) {
		return nil, fmt.Errorf("%w: card price can only be 10, 25 or 50", domain.ErrInvalidInput)
	}

	today := clock.Today(s.clock)
	var ids []string

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		ids, err = s.drawUnused(ctx, req.Count)
		if err != nil {
			return err
		}

		cards := lo.Map(ids, func(id string, _ int) domain.PrepaidCard {
			return domain.PrepaidCard{
				ID:        id,
				FaceValue: req.FaceValue,
				Balance:   req.FaceValue,
				ExpiresOn: clock.AddYears(today, 1),
				IssuedBy:  adminID,
				IssuedOn:  today,
			}
		})
		return s.cards.CreateBatch(ctx, cards)
	})
	if err != nil {
		return nil, err
	}

	cardsIssuedTotal.WithLabelValues(strconv.Itoa(req.FaceValue)).Add(float64(len(ids)))
	s.logger.Info().
		Str("admin_id", adminID.String()).
		Int("count", len(ids)).
		Int("face_value", req.FaceValue).
		Msg("prepaid cards issued")

	return ids, nil
}

// drawUnused draws count ids that collide neither with each other nor with
// ids already in the store. Colliding candidates are redrawn.
func (s *LedgerService) drawUnused(ctx context.Context, count int) ([]string, error) {
	accepted := make([]string, 0, count)
	seen := make(map[string]struct{}, count)
	redraws := 0

	for len(accepted) < count {
		want := count - len(accepted)
		candidates := make([]string, 0, want)
		for len(candidates) < want {
			id, err := s.numbers.Next()
			if err != nil {
				return nil, fmt.Errorf("draw card number: %w", err)
			}
			if _, dup := seen[id]; dup {
				redraws++
				if redraws > maxRedraws {
					return nil, domain.ErrCardNumberExhausted
				}
				continue
			}
			seen[id] = struct{}{}
			candidates = append(candidates, id)
		}

		taken, err := s.cards.ExistingIDs(ctx, candidates)
		if err != nil {
			return nil, err
		}
		redraws += len(taken)
		if redraws > maxRedraws {
			return nil, domain.ErrCardNumberExhausted
		}
		accepted = append(accepted, lo.Without(candidates, taken...)...)
	}

	return accepted, nil
}

// CurrentPlan reports the consumer's plan as of today. It holds the same
// owner lock as FundSubscription; called inside a caller's transaction the
// lock lasts until that transaction ends.
func (s *LedgerService) CurrentPlan(ctx context.Context, userID uuid.UUID) (domain.PlanStatus, error) {
	var latest *time.Time
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.subs.LockOwner(ctx, userID); err != nil {
			return err
		}
		var err error
		latest, err = s.subs.LatestPremiumExpiry(ctx, userID)
		return err
	})
	if err != nil {
		return domain.PlanStatus{}, err
	}
	return domain.StatusAt(latest, clock.Today(s.clock)), nil
}

func validateCardIDs(ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: at least one card is required", domain.ErrInvalidInput)
	}
	for _, id := range ids {
		if !domain.ValidCardID(id) {
			return fmt.Errorf("%w: card id %q must be %d digits", domain.ErrInvalidInput, id, domain.CardIDLength)
		}
	}
	if dups := lo.FindDuplicates(ids); len(dups) > 0 {
		return fmt.Errorf("%w: card %s listed more than once", domain.ErrInvalidInput, dups[0])
	}
	return nil
}
