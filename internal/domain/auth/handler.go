package auth

import (
	"net/http"
	"time"

	"vet-clinic-api/internal/domain/users"
	"vet-clinic-api/internal/middleware"
	"vet-clinic-api/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta /auth. register, login y refresh son públicas;
// el resto pasa por RequireAuth.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/register", registerHandler(svc))
		ar.Post("/login", loginHandler(svc))
		ar.Post("/refresh", refreshHandler(svc))

		ar.Group(func(pr chi.Router) {
			pr.Use(middleware.RequireAuth)
			pr.Get("/me", meHandler(svc))
			pr.Post("/me", meHandler(svc))
			pr.Post("/logout", logoutHandler(svc))
		})
	})
}

// sessionResponse lleva el token al nivel superior del sobre.
type sessionResponse struct {
	Success   bool               `json:"success"`
	Message   string             `json:"message"`
	Token     string             `json:"token"`
	TokenType string             `json:"token_type"`
	ExpiresIn int64              `json:"expires_in"`
	User      users.UserResponse `json:"user"`
}

func writeSession(w http.ResponseWriter, status int, msg string, s Session) {
	httpx.WriteJSON(w, status, sessionResponse{
		Success:   true,
		Message:   msg,
		Token:     s.Token.Value,
		TokenType: s.Token.Type,
		ExpiresIn: s.Token.ExpiresIn,
		User:      users.ToResponse(s.User),
	})
}

type meResponse struct {
	ID        uint64          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Status    users.Status    `json:"status"`
	Privilege users.Privilege `json:"privilege"`
	Avatar    string          `json:"avatar"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// registerHandler godoc
// @Summary Registrar usuario
// @Description Crea el usuario y devuelve un token en el primer nivel de la respuesta.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body users.CreateInput true "Datos del usuario"
// @Success 201 {object} sessionResponse
// @Failure 422 {object} httpx.Envelope
// @Router /auth/register [post]
func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in users.CreateInput
		if err := httpx.DecodeJSON(r, &in); err != nil {
			httpx.Error(w, r, err)
			return
		}
		s, err := svc.Register(r.Context(), in)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		writeSession(w, http.StatusCreated, "Usuario registrado con éxito", s)
	}
}

// loginHandler godoc
// @Summary Iniciar sesión
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body LoginInput true "Credenciales"
// @Success 200 {object} sessionResponse
// @Failure 401 {object} httpx.Envelope
// @Failure 422 {object} httpx.Envelope
// @Router /auth/login [post]
func loginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in LoginInput
		if err := httpx.DecodeJSON(r, &in); err != nil {
			httpx.Error(w, r, err)
			return
		}
		s, err := svc.Login(r.Context(), in)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		writeSession(w, http.StatusOK, "Inicio de sesión exitoso", s)
	}
}

// refreshHandler godoc
// @Summary Renovar token
// @Description Acepta un token vigente o vencido dentro de la ventana de renovación. El token anterior queda revocado.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} sessionResponse
// @Failure 401 {object} httpx.Envelope
// @Router /auth/refresh [post]
func refreshHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := svc.Refresh(r.Context(), middleware.BearerToken(r))
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		writeSession(w, http.StatusOK, "Token renovado con éxito", s)
	}
}

// meHandler godoc
// @Summary Usuario autenticado
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} httpx.Envelope
// @Failure 401 {object} httpx.Envelope
// @Router /auth/me [get]
func meHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		u, err := svc.Me(r.Context(), claims)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, "", meResponse{
			ID:        u.ID,
			Name:      u.FullName(),
			Email:     u.Email,
			Status:    u.Status,
			Privilege: u.Privilege,
			Avatar:    u.Photo,
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		})
	}
}

func logoutHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		if err := svc.Logout(r.Context(), claims); err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, "Sesión cerrada con éxito", nil)
	}
}
