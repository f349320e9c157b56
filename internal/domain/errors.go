package domain

import (
	"errors"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrProductNotFound    = errors.New("producto no encontrado")
	ErrOrderNotFound      = errors.New("pedido no encontrado")
	ErrMessageNotFound    = errors.New("mensaje no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthenticated    = errors.New("no autenticado")
	ErrUnauthorized       = errors.New("credenciales inválidas")
	ErrForbidden          = errors.New("acceso denegado")
)

// ValidationError describe un payload rechazado por el esquema, campo por campo.
// errors.Is(err, ErrInvalidInput) es verdadero para cualquier ValidationError.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

// NewValidationError construye el error; fields puede ser nil.
func NewValidationError(message string, fields map[string]string) *ValidationError {
	if fields == nil {
		fields = map[string]string{}
	}
	return &ValidationError{Message: message, Fields: fields}
}

// FieldError atajo para un único campo inválido.
func FieldError(field, reason string) *ValidationError {
	return NewValidationError("datos inválidos", map[string]string{field: reason})
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return e.Message + " (" + strings.Join(parts, ", ") + ")"
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
