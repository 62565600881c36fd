package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"vet-clinic-api/internal/platform/apperr"
	"vet-clinic-api/internal/platform/logger"
	"vet-clinic-api/internal/platform/validation"

	"github.com/go-chi/chi/v5"
)

const (
	MsgValidation = "Errores de validación."
	MsgInternal   = "Error interno del servidor."
	MsgBadJSON    = "El cuerpo de la solicitud no es un JSON válido."
	MsgBadID      = "Identificador inválido."
)

// Envelope es la forma común de todas las respuestas.
type Envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    any               `json:"data,omitempty"`
	Errors  validation.Errors `json:"errors,omitempty"`
}

// WriteJSON antes vivía duplicado en cada módulo; con todos los recursos
// usando el mismo sobre quedó acá.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func OK(w http.ResponseWriter, message string, data any) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

func Created(w http.ResponseWriter, message string, data any) {
	WriteJSON(w, http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

func Fail(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Envelope{Success: false, Message: message})
}

// Error traduce cualquier error al sobre estándar. Lo que no es un error
// conocido se loguea y sale como 500.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		WriteJSON(w, http.StatusUnprocessableEntity, Envelope{
			Success: false,
			Message: MsgValidation,
			Errors:  verrs,
		})
		return
	}

	if ae, ok := apperr.As(err); ok {
		Fail(w, ae.Kind.Status(), ae.Message)
		return
	}

	logger.FromContext(r.Context()).Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"err", err,
	)
	Fail(w, http.StatusInternalServerError, MsgInternal)
}

// DecodeJSON lee el body en v. Un body vacío deja v en cero y la validación
// se encarga de reportar los campos obligatorios. Un valor del tipo
// equivocado queda pendiente para que salga junto con el resto de los
// errores de campo; sin contexto preparado se devuelve solo.
func DecodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var te *json.UnmarshalTypeError
	if errors.As(err, &te) && te.Field != "" {
		verrs := validation.Field(te.Field, validation.TypeMessage(te.Field, te.Type.Kind()))
		if validation.Defer(r.Context(), verrs) {
			return nil
		}
		return verrs
	}
	return apperr.Invalid(MsgBadJSON).Wrap(err)
}

// IDParam lee un id numérico de la URL.
func IDParam(r *http.Request, name string) (uint64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Invalid(MsgBadID)
	}
	return id, nil
}

// QueryID lee un filtro numérico opcional (?species_id=2). Devuelve 0 si no vino.
func QueryID(r *http.Request, name string) (uint64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, validation.Field(name, "El campo "+name+" debe ser un número.")
	}
	return id, nil
}
