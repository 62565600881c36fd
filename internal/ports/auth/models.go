package auth

import "time"

// Claims representa la información extraída del token.
type Claims struct {
	UserID    uint64
	Email     string
	TokenID   string // jti, lo usa la lista de revocados
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Token es lo que devuelve login/register/refresh.
type Token struct {
	Value     string
	Type      string // siempre "bearer"
	ExpiresIn int64  // segundos
}
