package auth

import (
	"context"
	"errors"
	"strings"

	"vet-clinic-api/internal/domain/users"
	"vet-clinic-api/internal/platform/apperr"
	"vet-clinic-api/internal/platform/validation"
	ports "vet-clinic-api/internal/ports/auth"
)

var (
	ErrBadCredentials = apperr.Unauthorized("Credenciales incorrectas.")
	ErrInvalidToken   = apperr.Unauthorized("Token inválido.")
	ErrInactive       = apperr.Unauthorized("Usuario inactivo.")
)

type Service struct {
	users  *users.Service
	tokens ports.TokenManager
	v      *validation.Validator
}

func NewService(us *users.Service, tokens ports.TokenManager, v *validation.Validator) *Service {
	return &Service{users: us, tokens: tokens, v: v}
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Session es lo que devuelven register, login y refresh.
type Session struct {
	User  users.User
	Token ports.Token
}

func (s *Service) Register(ctx context.Context, in users.CreateInput) (Session, error) {
	// Registro público: nunca crea administradores ni usuarios inactivos.
	in.Status = ""
	in.Privilege = ""

	u, err := s.users.Create(ctx, in)
	if err != nil {
		return Session{}, err
	}
	tok, err := s.tokens.Issue(ctx, u.ID, u.Email)
	if err != nil {
		return Session{}, err
	}
	return Session{User: u, Token: tok}, nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (Session, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := s.v.Struct(ctx, in); err != nil {
		return Session{}, err
	}

	u, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return Session{}, ErrBadCredentials
		}
		return Session{}, err
	}
	if u.Status != users.StatusActive || !users.CheckPassword(u, in.Password) {
		return Session{}, ErrBadCredentials
	}

	tok, err := s.tokens.Issue(ctx, u.ID, u.Email)
	if err != nil {
		return Session{}, err
	}
	return Session{User: u, Token: tok}, nil
}

func (s *Service) Me(ctx context.Context, c ports.Claims) (users.User, error) {
	u, err := s.users.GetByID(ctx, c.UserID)
	if errors.Is(err, users.ErrNotFound) {
		return users.User{}, ErrInvalidToken
	}
	if err != nil {
		return users.User{}, err
	}
	if u.Status != users.StatusActive {
		return users.User{}, ErrInactive
	}
	return u, nil
}

func (s *Service) Logout(ctx context.Context, c ports.Claims) error {
	return s.tokens.Revoke(ctx, c)
}

// Refresh cambia un token (vigente o vencido dentro de la ventana) por uno nuevo.
func (s *Service) Refresh(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, ErrInvalidToken
	}
	tok, c, err := s.tokens.Refresh(ctx, token)
	if err != nil {
		if errors.Is(err, ports.ErrTokenInvalid) || errors.Is(err, ports.ErrTokenRevoked) || errors.Is(err, ports.ErrTokenExpired) {
			return Session{}, ErrInvalidToken.Wrap(err)
		}
		return Session{}, err
	}

	u, err := s.users.GetByID(ctx, c.UserID)
	if err == nil && u.Status != users.StatusActive {
		err = ErrInactive
	}
	if err != nil {
		// el token nuevo no se entrega: se revoca
		if nc, verr := s.tokens.Verify(ctx, tok.Value); verr == nil {
			_ = s.tokens.Revoke(ctx, nc)
		}
		if errors.Is(err, users.ErrNotFound) {
			return Session{}, ErrInvalidToken
		}
		return Session{}, err
	}
	return Session{User: u, Token: tok}, nil
}
