package validation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// Errors agrupa todos los mensajes por campo (nombre json).
type Errors map[string][]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Field construye un error de un solo campo.
func Field(field, msg string) Errors {
	return Errors{field: {msg}}
}

// Merge junta varios errores de validación en uno. Si alguno no es de
// validación se devuelve ese tal cual.
func Merge(errs ...error) error {
	out := Errors{}
	for _, err := range errs {
		if err == nil {
			continue
		}
		var ve Errors
		if !errors.As(err, &ve) {
			return err
		}
		for k, msgs := range ve {
			out[k] = append(out[k], msgs...)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Messages permite reemplazar el mensaje de una regla puntual: "species_id.exists".
type Messages map[string]string

// Lookup resuelve las reglas que necesitan consultar la base (exists / unique).
type Lookup interface {
	// Exists informa si hay alguna fila en table con column = value,
	// ignorando la fila con id = ignoreID cuando ignoreID != 0.
	Exists(ctx context.Context, table, column string, value any, ignoreID uint64) (bool, error)
}

type Validator struct {
	v      *validator.Validate
	lookup Lookup
}

var identRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

func New(lookup Lookup) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	out := &Validator{v: v, lookup: lookup}

	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := ParseClock(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidationCtx("exists", out.existsRule)
	_ = v.RegisterValidationCtx("unique", out.uniqueRule)

	return out
}

type ctxKey int

const (
	ignoreIDKey ctxKey = iota
	stateKey
)

// WithIgnoreID marca la fila que se está actualizando para que "unique"
// no la cuente como duplicado.
func WithIgnoreID(ctx context.Context, id uint64) context.Context {
	return context.WithValue(ctx, ignoreIDKey, id)
}

func ignoreIDFrom(ctx context.Context) uint64 {
	id, _ := ctx.Value(ignoreIDKey).(uint64)
	return id
}

// state guarda el primer error de infraestructura que aparezca durante una pasada.
type state struct {
	mu  sync.Mutex
	err error
}

func (s *state) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = err
	}
}

// Struct valida s completo. Devuelve Errors con todos los campos que fallaron
// (incluidos los pendientes de la decodificación), o el error de lookup si la
// base no respondió.
func (v *Validator) Struct(ctx context.Context, s any, overrides ...Messages) error {
	pend := takePending(ctx)
	st := &state{}
	ctx = context.WithValue(ctx, stateKey, st)

	err := v.v.StructCtx(ctx, s)
	if st.err != nil {
		return st.err
	}

	out := Errors{}
	if err != nil {
		var ferrs validator.ValidationErrors
		if !errors.As(err, &ferrs) {
			return err
		}
		for _, fe := range ferrs {
			// el campo mal tipado quedó en cero; su error real es el de tipo
			if _, ok := pend[fe.Field()]; ok {
				continue
			}
			out.Add(fe.Field(), message(fe, overrides))
		}
	}
	for field, msgs := range pend {
		out[field] = append(out[field], msgs...)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (v *Validator) existsRule(ctx context.Context, fl validator.FieldLevel) bool {
	table := fl.Param()
	if !identRe.MatchString(table) || v.lookup == nil {
		return false
	}
	ok, err := v.lookup.Exists(ctx, table, "id", fl.Field().Interface(), 0)
	if err != nil {
		stateFrom(ctx).fail(fmt.Errorf("exists %s: %w", table, err))
		return true
	}
	return ok
}

func (v *Validator) uniqueRule(ctx context.Context, fl validator.FieldLevel) bool {
	table, column, found := strings.Cut(fl.Param(), ".")
	if !found || !identRe.MatchString(table) || !identRe.MatchString(column) || v.lookup == nil {
		return false
	}
	if fl.Field().Kind() == reflect.String && strings.TrimSpace(fl.Field().String()) == "" {
		return true
	}
	taken, err := v.lookup.Exists(ctx, table, column, fl.Field().Interface(), ignoreIDFrom(ctx))
	if err != nil {
		stateFrom(ctx).fail(fmt.Errorf("unique %s.%s: %w", table, column, err))
		return true
	}
	return !taken
}

func stateFrom(ctx context.Context) *state {
	if st, ok := ctx.Value(stateKey).(*state); ok {
		return st
	}
	return &state{}
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	time.RFC3339,
}

// ParseDate acepta fecha sola, fecha con hora o RFC3339.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// ParseClock acepta HH:MM o HH:MM:SS y devuelve siempre HH:MM:SS.
func ParseClock(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04:05"), nil
		}
	}
	return "", fmt.Errorf("invalid time %q", s)
}
