package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/AlexandreFerreir/BD-Project/internal/modules/auth/domain"
	"github.com/AlexandreFerreir/BD-Project/internal/modules/auth/infrastructure/jwt"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/clock"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/infrastructure/database"
)

// TokenIssuer signs identity tokens
type TokenIssuer interface {
	Issue(userID uuid.UUID, role string) (string, error)
	ValidateToken(tokenStr string) (*jwt.CustomClaims, error)
}

// AuthService provides authentication and account creation
type AuthService struct {
	repo   domain.UserRepository
	tx     database.Transactor
	tokens TokenIssuer
	clock  clock.Clock
	logger zerolog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(repo domain.UserRepository, tx database.Transactor, tokens TokenIssuer, clk clock.Clock, logger zerolog.Logger) *AuthService {
	return &AuthService{
		repo:   repo,
		tx:     tx,
		tokens: tokens,
		clock:  clk,
		logger: logger.With().Str("module", "auth").Logger(),
	}
}

// Login authenticates a user and returns a signed identity token
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (string, error) {
	if req.Username == "" || req.Password == "" {
		return "", fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}

	user, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials // Don't reveal user existence
		}
		return "", err
	}

	if !domain.CheckPassword(user.PasswordHash, req.Password) {
		return "", domain.ErrInvalidCredentials
	}

	roles, err := s.repo.Roles(ctx, user.ID)
	if err != nil {
		return "", err
	}
	if len(roles) != 1 {
		return "", fmt.Errorf("%w: user %s has %d", domain.ErrAmbiguousRole, user.ID, len(roles))
	}

	return s.tokens.Issue(user.ID, string(roles[0]))
}

// RegisterConsumer creates a consumer account together with its regular
// plan and personal playlist.
func (s *AuthService) RegisterConsumer(ctx context.Context, req RegisterRequest) (uuid.UUID, error) {
	profile, err := parseProfile(req)
	if err != nil {
		return uuid.Nil, err
	}

	user, err := s.newUser(req.Username, req.Password)
	if err != nil {
		return uuid.Nil, err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.CreateUser(ctx, user); err != nil {
			return err
		}
		if err := s.repo.CreateConsumer(ctx, &domain.Consumer{UserID: user.ID, Profile: profile}); err != nil {
			return err
		}
		return s.repo.ProvisionConsumer(ctx, user.ID, clock.Today(s.clock))
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.logger.Info().Str("user_id", user.ID.String()).Str("role", string(domain.RoleConsumer)).Msg("account created")
	return user.ID, nil
}

// RegisterArtist creates an artist account on behalf of an administrator
func (s *AuthService) RegisterArtist(ctx context.Context, adminID uuid.UUID, req RegisterRequest) (uuid.UUID, error) {
	profile, err := parseProfile(req)
	if err != nil {
		return uuid.Nil, err
	}
	if strings.TrimSpace(req.ArtisticName) == "" {
		return uuid.Nil, fmt.Errorf("%w: artistic_name is required", domain.ErrInvalidInput)
	}

	user, err := s.newUser(req.Username, req.Password)
	if err != nil {
		return uuid.Nil, err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.CreateUser(ctx, user); err != nil {
			return err
		}
		return s.repo.CreateArtist(ctx, &domain.Artist{
			UserID:       user.ID,
			ArtisticName: req.ArtisticName,
			CreatedBy:    adminID,
			Profile:      profile,
		})
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID.String()).
		Str("role", string(domain.RoleArtist)).
		Str("created_by", adminID.String()).
		Msg("account created")
	return user.ID, nil
}

// CreateAdmin bootstraps an administrator. There is no HTTP route for it.
func (s *AuthService) CreateAdmin(ctx context.Context, req CreateAdminRequest) (uuid.UUID, error) {
	if strings.TrimSpace(req.Name) == "" {
		return uuid.Nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	user, err := s.newUser(req.Username, req.Password)
	if err != nil {
		return uuid.Nil, err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.CreateUser(ctx, user); err != nil {
			return err
		}
		return s.repo.CreateAdministrator(ctx, &domain.Administrator{UserID: user.ID, Name: req.Name})
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.logger.Info().Str("user_id", user.ID.String()).Str("role", string(domain.RoleAdministrator)).Msg("account created")
	return user.ID, nil
}

// ValidateToken validates a JWT token and returns the claims
func (s *AuthService) ValidateToken(tokenStr string) (*jwt.CustomClaims, error) {
	return s.tokens.ValidateToken(tokenStr)
}

func (s *AuthService) newUser(username, password string) (*domain.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}

	hash, err := domain.HashPassword(password)
	if err != nil {
		return nil, err
	}

	return &domain.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    s.clock.Now(),
	}, nil
}

func parseProfile(req RegisterRequest) (domain.Profile, error) {
	required := map[string]string{
		"name":       req.Name,
		"address":    req.Address,
		"birth_date": req.BirthDate,
		"contact":    req.Contact,
	}
	for _, field := range []string{"name", "address", "birth_date", "contact"} {
		if strings.TrimSpace(required[field]) == "" {
			return domain.Profile{}, fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, field)
		}
	}

	birth, err := clock.ParseDate(req.BirthDate)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("%w: birth_date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}

	return domain.Profile{
		Name:      req.Name,
		Address:   req.Address,
		BirthDate: birth,
		Contact:   req.Contact,
	}, nil
}
