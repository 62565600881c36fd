package validation

import (
	"errors"
	"fmt"
	"html"
	"reflect"
	"strings"

	"vet-clinic-api/internal/platform/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var templates = map[string]string{
	"required": "El campo %s es obligatorio.",
	"email":    "El campo %s debe ser una dirección de correo válida.",
	"oneof":    "El campo %s seleccionado es inválido.",
	"date":     "El campo %s no es una fecha válida.",
	"clock":    "El campo %s no es una hora válida.",
	"exists":   "El campo %s seleccionado no existe.",
	"unique":   "El valor del campo %s ya está en uso.",
	"eqfield":  "La confirmación del campo %s no coincide.",
	"numeric":  "El campo %s debe ser un número.",
	"url":      "El formato del campo %s es inválido.",
}

func message(fe validator.FieldError, overrides []Messages) string {
	key := fe.Field() + "." + fe.Tag()
	for _, o := range overrides {
		if m, ok := o[key]; ok {
			return m
		}
	}

	switch fe.Tag() {
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("El campo %s no debe ser mayor que %s caracteres.", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("El campo %s no debe ser mayor que %s.", fe.Field(), fe.Param())
	case "min", "gte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("El campo %s debe contener al menos %s caracteres.", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("El campo %s debe ser al menos %s.", fe.Field(), fe.Param())
	}

	if tpl, ok := templates[fe.Tag()]; ok {
		return fmt.Sprintf(tpl, fe.Field())
	}
	return fmt.Sprintf("El campo %s es inválido.", fe.Field())
}

// FromDuplicate convierte un DuplicateError del storage en error de campo.
// columns mapea columna -> nombre json.
func FromDuplicate(err error, columns map[string]string) (Errors, bool) {
	var dup *apperr.DuplicateError
	if !errors.As(err, &dup) {
		return nil, false
	}
	field, ok := columns[dup.Column]
	if !ok {
		field = dup.Column
	}
	return Field(field, fmt.Sprintf(templates["unique"], field)), true
}

var strict = bluemonday.StrictPolicy()

// Sanitize quita todo el HTML de un texto libre y devuelve texto plano.
func Sanitize(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// SanitizePtr es Sanitize para campos opcionales.
func SanitizePtr(s *string) *string {
	if s == nil {
		return nil
	}
	out := Sanitize(*s)
	return &out
}
