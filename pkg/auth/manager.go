package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/vibe-gaming/geodirectory/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

const RoleAdmin = "admin"

var ErrNotAdmin = errors.New("token does not carry the admin role")

// TokenManager issues and verifies the bearer tokens of the admin api.
type TokenManager interface {
	NewJWT(subject string) (string, time.Duration, error)
	Parse(accessToken string) (string, error)
}

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type Manager struct {
	signingKey     string
	accessTokenTTL time.Duration
}

func NewManager(cfg config.JWTConfig) (*Manager, error) {
	if cfg.SigningKey == "" {
		return nil, errors.New("empty signing key")
	}

	if cfg.AccessTokenTTL == 0 {
		return nil, errors.New("empty access token ttl")
	}

	return &Manager{
		signingKey:     cfg.SigningKey,
		accessTokenTTL: cfg.AccessTokenTTL,
	}, nil
}

func (m *Manager) NewJWT(subject string) (string, time.Duration, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   subject,
		},
	})

	accessToken, err := token.SignedString([]byte(m.signingKey))
	if err != nil {
		return "", 0, errors.New("sign jwt failed")
	}

	return accessToken, m.accessTokenTTL, nil
}

// Parse verifies an admin token and returns its subject.
func (m *Manager) Parse(accessToken string) (string, error) {
	var c claims
	_, err := jwt.ParseWithClaims(accessToken, &c, func(token *jwt.Token) (i interface{}, err error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(m.signingKey), nil
	})
	if err != nil {
		return "", err
	}

	if c.Role != RoleAdmin {
		return "", ErrNotAdmin
	}

	return c.Subject, nil
}
