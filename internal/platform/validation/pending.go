package validation

import (
	"context"
	"fmt"
	"reflect"
	"sync"
)

// Los errores que aparecen al decodificar (un "abc" donde va un número)
// quedan pendientes en el contexto y Struct los devuelve junto con los de
// las reglas.

type pendingKey struct{}

type pending struct {
	mu   sync.Mutex
	errs Errors
}

// WithPending prepara ctx para acumular errores de decodificación.
func WithPending(ctx context.Context) context.Context {
	return context.WithValue(ctx, pendingKey{}, &pending{errs: Errors{}})
}

// Defer deja errs para la próxima llamada a Struct con el mismo contexto.
// Devuelve false si ctx no pasó por WithPending; en ese caso quien llama
// reporta errs por su cuenta.
func Defer(ctx context.Context, errs Errors) bool {
	p, ok := ctx.Value(pendingKey{}).(*pending)
	if !ok {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for field, msgs := range errs {
		p.errs[field] = append(p.errs[field], msgs...)
	}
	return true
}

func takePending(ctx context.Context) Errors {
	p, ok := ctx.Value(pendingKey{}).(*pending)
	if !ok {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.errs
	p.errs = Errors{}
	return out
}

// TypeMessage es el mensaje para un valor que no se pudo convertir al tipo
// del campo.
func TypeMessage(field string, kind reflect.Kind) string {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return fmt.Sprintf(templates["numeric"], field)
	case reflect.String:
		return fmt.Sprintf("El campo %s debe ser una cadena de texto.", field)
	case reflect.Bool:
		return fmt.Sprintf("El campo %s debe ser verdadero o falso.", field)
	}
	return fmt.Sprintf("El campo %s es inválido.", field)
}
