package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrSessionExpired    = errors.New("sesión expirada")
	ErrNoSession         = errors.New("no hay sesión activa")
	ErrTransport         = errors.New("error de red")
	ErrMalformedResponse = errors.New("respuesta del backend inválida")
	ErrStaleResponse     = errors.New("respuesta descartada: hay una petición más reciente")
)

// APIError única forma de error de la capa de servicios: status HTTP fuera del rango 2xx
// con el mensaje legible del backend (campo message) o uno genérico si el cuerpo no se pudo leer.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
}

// Is permite errors.Is(err, ErrUnauthorized) y equivalentes según el status.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// ValidationError fallo de validación del lado cliente; nunca llega a la red.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Invalid construye un ValidationError.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
