package apperr

import (
	"errors"
	"net/http"
)

// Errores que devuelve la capa de storage. Los services los traducen a
// errores de dominio (NotFound, validación, conflicto).
var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicate      = errors.New("duplicate key")
	ErrForeignKey     = errors.New("foreign key violated")
)

// DuplicateError indica qué columna única rechazó la escritura. Es la
// autoridad final cuando dos requests pasan la validación a la vez.
type DuplicateError struct {
	Table  string
	Column string
}

func (e *DuplicateError) Error() string {
	return "duplicate key on " + e.Table + "." + e.Column
}

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

type Kind int

const (
	KindInvalid Kind = iota
	KindNotFound
	KindConflict
	KindAuth
	KindUpload
)

// Status devuelve el código HTTP asociado al tipo de error.
func (k Kind) Status() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindAuth:
		return http.StatusUnauthorized
	case KindConflict, KindUpload, KindInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error es un error de aplicación con mensaje apto para el cliente.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is compara por Kind + Message, así los sentinels de cada dominio
// sobreviven a un Wrap.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == e.Message
}

// Wrap conserva el mensaje público y agrega la causa.
func (e *Error) Wrap(err error) *Error {
	return &Error{Kind: e.Kind, Message: e.Message, Err: err}
}

func NotFound(msg string) *Error     { return &Error{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) *Error     { return &Error{Kind: KindConflict, Message: msg} }
func Unauthorized(msg string) *Error { return &Error{Kind: KindAuth, Message: msg} }
func Upload(msg string) *Error       { return &Error{Kind: KindUpload, Message: msg} }
func Invalid(msg string) *Error      { return &Error{Kind: KindInvalid, Message: msg} }

// As extrae un *Error de la cadena.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
