package middleware

import (
	"net/http"

	"vet-clinic-api/internal/platform/validation"
)

// FieldErrors deja lugar en el contexto para los errores de campo que
// aparecen al decodificar el body; el validador los reporta junto con los
// de las reglas.
func FieldErrors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(validation.WithPending(r.Context())))
	})
}
