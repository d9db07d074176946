package domain

import (
	"errors"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrNotAuthenticated  = errors.New("debes iniciar sesión para acceder")
	ErrNoProfile         = errors.New("la cuenta no tiene un perfil asignado")
	ErrRoleMismatch      = errors.New("rol no autorizado para la operación")
	ErrValidation        = errors.New("datos inválidos")
	ErrDuplicateUsername = errors.New("el nombre de usuario ya existe")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("el recurso está referenciado por otros registros")
)

// ValidationError agrupa los errores de validación por campo (nombre json del campo → mensaje).
// errors.Is(err, ErrValidation) es verdadero para cualquier *ValidationError.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError construye un ValidationError con un único campo.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
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
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

// Is permite errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Merge añade los campos de other (si no es nil) y devuelve el receptor.
func (e *ValidationError) Merge(prefix string, other *ValidationError) *ValidationError {
	if other == nil {
		return e
	}
	if e.Fields == nil {
		e.Fields = make(map[string]string, len(other.Fields))
	}
	for k, v := range other.Fields {
		e.Fields[prefix+k] = v
	}
	return e
}
