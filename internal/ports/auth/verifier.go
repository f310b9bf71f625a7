package auth

import (
	"context"
	"time"
)

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer emite tokens de sesión después de validar credenciales.
type TokenIssuer interface {
	Issue(claims Claims) (token string, expiresAt time.Time, err error)
}

// TokenRevoker invalida un token antes de su expiración (logout).
type TokenRevoker interface {
	Revoke(ctx context.Context, token string) error
}
