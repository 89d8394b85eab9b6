package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type CustomClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 token carrying the user id and role, valid
// for duration from now.
func GenerateToken(secret string, duration time.Duration, userID uuid.UUID, role string) (string, error) {
	return generateAt(time.Now(), secret, duration, userID, role)
}

func generateAt(now time.Time, secret string, duration time.Duration, userID uuid.UUID, role string) (string, error) {
	claims := CustomClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken parses tokenStr, checks the HMAC signature and the time
// based claims, and returns the custom claims. Tokens without an expiry
// are rejected.
func ValidateToken(tokenStr string, secret string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired(), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenMalformed
	}
	if claims.UserID == uuid.Nil || claims.Role == "" {
		return nil, ErrMissingIdentity
	}
	return claims, nil
}

var ErrMissingIdentity = errors.New("token carries no identity")

// Provider issues and validates tokens with a fixed secret and lifetime
type Provider struct {
	secret string
	expiry time.Duration
}

func NewProvider(secret string, expiry time.Duration) *Provider {
	return &Provider{secret: secret, expiry: expiry}
}

func (p *Provider) Issue(userID uuid.UUID, role string) (string, error) {
	return GenerateToken(p.secret, p.expiry, userID, role)
}

func (p *Provider) ValidateToken(tokenStr string) (*CustomClaims, error) {
	return ValidateToken(tokenStr, p.secret)
}
