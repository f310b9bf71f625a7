package jwtauth

import (
	"context"
	"fmt"

	"guidedog-records/internal/ports/auth"
)

func (s *Service) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if s == nil {
		return auth.Claims{}, ErrNotConfigured
	}

	claims, err := s.parse(token)
	if err != nil {
		return auth.Claims{}, err
	}

	if s.revoked != nil && claims.ID != "" {
		revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			// sin poder consultar la lista, el token no se acepta
			return auth.Claims{}, fmt.Errorf("jwtauth: revocation check: %w", err)
		}
		if revoked {
			return auth.Claims{}, ErrRevoked
		}
	}

	return auth.Claims{
		UserID:  claims.Subject,
		Role:    claims.Role,
		Name:    claims.Name,
		TokenID: claims.ID,
	}, nil
}

var (
	_ auth.AuthVerifier = (*Service)(nil)
	_ auth.TokenIssuer  = (*Service)(nil)
	_ auth.TokenRevoker = (*Service)(nil)
)
