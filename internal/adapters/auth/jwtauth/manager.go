package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"vet-clinic-api/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenType = "bearer"

type Options struct {
	Secret     string
	Issuer     string
	TTL        time.Duration
	RefreshTTL time.Duration
	Denylist   Denylist

	// Clock reemplaza a time.Now; nil usa el reloj del sistema.
	Clock func() time.Time
}

// Manager implementa auth.TokenManager con JWT HS256.
type Manager struct {
	secret     []byte
	issuer     string
	ttl        time.Duration
	refreshTTL time.Duration
	deny       Denylist
	now        func() time.Time
}

func NewManager(opts Options) (*Manager, error) {
	if len(opts.Secret) < 32 {
		return nil, errors.New("jwtauth: secret must be at least 32 bytes")
	}
	if opts.TTL <= 0 {
		return nil, errors.New("jwtauth: ttl must be positive")
	}
	if opts.RefreshTTL < opts.TTL {
		opts.RefreshTTL = opts.TTL
	}
	if opts.Denylist == nil {
		opts.Denylist = NewMemoryDenylist()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Manager{
		secret:     []byte(opts.Secret),
		issuer:     opts.Issuer,
		ttl:        opts.TTL,
		refreshTTL: opts.RefreshTTL,
		deny:       opts.Denylist,
		now:        opts.Clock,
	}, nil
}

type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (m *Manager) Issue(ctx context.Context, userID uint64, email string) (auth.Token, error) {
	now := m.now()
	c := tokenClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(userID, 10),
			Issuer:    m.issuer,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
	if err != nil {
		return auth.Token{}, fmt.Errorf("jwtauth: sign: %w", err)
	}
	return auth.Token{
		Value:     signed,
		Type:      tokenType,
		ExpiresIn: int64(m.ttl / time.Second),
	}, nil
}

func (m *Manager) Verify(ctx context.Context, token string) (auth.Claims, error) {
	c, err := m.parse(token, true)
	if err != nil {
		return auth.Claims{}, err
	}
	if err := m.checkRevoked(ctx, c); err != nil {
		return auth.Claims{}, err
	}
	return c, nil
}

func (m *Manager) Refresh(ctx context.Context, token string) (auth.Token, auth.Claims, error) {
	c, err := m.parse(token, false)
	if err != nil {
		return auth.Token{}, auth.Claims{}, err
	}
	if !m.now().Before(c.IssuedAt.Add(m.refreshTTL)) {
		return auth.Token{}, auth.Claims{}, auth.ErrTokenExpired
	}
	if err := m.checkRevoked(ctx, c); err != nil {
		return auth.Token{}, auth.Claims{}, err
	}

	if err := m.Revoke(ctx, c); err != nil {
		return auth.Token{}, auth.Claims{}, err
	}
	next, err := m.Issue(ctx, c.UserID, c.Email)
	if err != nil {
		return auth.Token{}, auth.Claims{}, err
	}
	return next, c, nil
}

// Revoke deja el jti en la lista hasta que ya no se pueda ni refrescar.
func (m *Manager) Revoke(ctx context.Context, c auth.Claims) error {
	if strings.TrimSpace(c.TokenID) == "" {
		return auth.ErrTokenInvalid
	}
	ttl := c.IssuedAt.Add(m.refreshTTL).Sub(m.now())
	if ttl <= 0 {
		return nil
	}
	if err := m.deny.Add(ctx, c.TokenID, ttl); err != nil {
		return fmt.Errorf("jwtauth: revoke: %w", err)
	}
	return nil
}

func (m *Manager) checkRevoked(ctx context.Context, c auth.Claims) error {
	revoked, err := m.deny.Contains(ctx, c.TokenID)
	if err != nil {
		return fmt.Errorf("jwtauth: denylist: %w", err)
	}
	if revoked {
		return auth.ErrTokenRevoked
	}
	return nil
}

// parse valida firma siempre; exp/nbf solo si validateTime.
func (m *Manager) parse(token string, validateTime bool) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, auth.ErrTokenInvalid
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	}
	if validateTime {
		opts = append(opts, jwt.WithExpirationRequired(), jwt.WithIssuer(m.issuer))
	} else {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	var tc tokenClaims
	_, err := jwt.ParseWithClaims(token, &tc, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return auth.Claims{}, auth.ErrTokenExpired
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", auth.ErrTokenInvalid, err)
	}
	if tc.Issuer != m.issuer {
		return auth.Claims{}, auth.ErrTokenInvalid
	}

	uid, err := strconv.ParseUint(tc.Subject, 10, 64)
	if err != nil || uid == 0 || tc.ID == "" || tc.IssuedAt == nil || tc.ExpiresAt == nil {
		return auth.Claims{}, auth.ErrTokenInvalid
	}

	return auth.Claims{
		UserID:    uid,
		Email:     tc.Email,
		TokenID:   tc.ID,
		IssuedAt:  tc.IssuedAt.Time,
		ExpiresAt: tc.ExpiresAt.Time,
	}, nil
}
