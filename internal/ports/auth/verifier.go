package auth

import (
	"context"
	"errors"
)

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenRevoked = errors.New("token revoked")
	ErrTokenExpired = errors.New("token expired")
)

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenManager emite, renueva e invalida tokens.
type TokenManager interface {
	AuthVerifier

	Issue(ctx context.Context, userID uint64, email string) (Token, error)

	// Refresh acepta un token vigente o vencido dentro de la ventana de
	// refresh, lo revoca y emite uno nuevo.
	Refresh(ctx context.Context, token string) (Token, Claims, error)

	Revoke(ctx context.Context, claims Claims) error
}
