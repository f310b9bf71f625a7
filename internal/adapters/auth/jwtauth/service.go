// Package jwtauth emite y verifica los tokens de sesión (HS256) que reemplazan al login del cliente.
package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"guidedog-records/internal/ports/auth"
)

const DefaultTTL = 12 * time.Hour

var (
	ErrNotConfigured = errors.New("jwtauth: secret not configured")
	ErrTokenEmpty    = errors.New("jwtauth: token is empty")
	ErrInvalidToken  = errors.New("jwtauth: invalid token")
	ErrRevoked       = errors.New("jwtauth: token revoked")
)

// RevocationStore guarda los jti revocados hasta que el token expiraría.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type Config struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

type tokenClaims struct {
	Role string `json:"role"`
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Service implementa auth.TokenIssuer, auth.AuthVerifier y auth.TokenRevoker.
type Service struct {
	secret  []byte
	ttl     time.Duration
	issuer  string
	revoked RevocationStore
	now     func() time.Time
}

func New(cfg Config, revoked RevocationStore) (*Service, error) {
	secret := strings.TrimSpace(cfg.Secret)
	if secret == "" {
		return nil, ErrNotConfigured
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		secret:  []byte(secret),
		ttl:     ttl,
		issuer:  strings.TrimSpace(cfg.Issuer),
		revoked: revoked,
		now:     time.Now,
	}, nil
}

func (s *Service) Issue(c auth.Claims) (string, time.Time, error) {
	if strings.TrimSpace(c.UserID) == "" {
		return "", time.Time{}, errors.New("jwtauth: user id required")
	}

	now := s.now()
	exp := now.Add(s.ttl)
	claims := &tokenClaims{
		Role: c.Role,
		Name: c.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   c.UserID,
			Issuer:    s.issuer,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("jwtauth: sign: %w", err)
	}
	return token, exp, nil
}

// parse valida firma y expiración, sin mirar revocación.
func (s *Service) parse(token string) (*tokenClaims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrTokenEmpty
	}

	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid || strings.TrimSpace(claims.Subject) == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *Service) Revoke(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return err
	}
	if s.revoked == nil || claims.ID == "" {
		return nil
	}

	until := s.now().Add(s.ttl)
	if claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Time
	}
	if err := s.revoked.Revoke(ctx, claims.ID, until); err != nil {
		return fmt.Errorf("jwtauth: revoke: %w", err)
	}
	return nil
}
