package userservice

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrMissingSecret = errors.New("token signing secret must be provided")
)

// Claims is the payload of an access token: the user's id and username.
type Claims struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenMaker issues and verifies HS256 access tokens. A zero lifetime issues
// tokens without an expiry.
type TokenMaker struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

func NewTokenMaker(secret string, lifetime time.Duration) (*TokenMaker, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	return &TokenMaker{
		secret:   []byte(secret),
		lifetime: lifetime,
		now:      time.Now,
	}, nil
}

func (m *TokenMaker) Generate(id uuid.UUID, username string) (string, error) {
	now := m.now()

	claims := Claims{
		UserID:   id.String(),
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if m.lifetime > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(m.lifetime))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("could not sign token: %w", err)
	}

	return signed, nil
}

// Verify checks the signature and expiry of token and returns its claims. Every
// failure is reported as ErrInvalidToken.
func (m *TokenMaker) Verify(token string) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	if _, err := uuid.Parse(claims.UserID); err != nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
