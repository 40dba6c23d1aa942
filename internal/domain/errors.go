package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	// ErrUnauthenticated: la petición no trae credencial en ninguna de sus formas.
	// Se resuelve redirigiendo al portal, no es un error de servidor.
	ErrUnauthenticated = errors.New("sin credencial de sesión")

	// ErrSessionExpired: había token pero el proveedor de identidad lo rechazó.
	ErrSessionExpired = errors.New("sesión expirada")

	ErrNotFound     = errors.New("recurso no encontrado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrInvalidInput = errors.New("entrada inválida")
)
