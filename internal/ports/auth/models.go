package auth

// Claims representa la información extraída del token.
type Claims struct {
	UserID string
	Role   string
	Name   string

	// TokenID (jti) se usa para revocar en logout; vacío en modo dev.
	TokenID string
}
