package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")

	// Errores del motor de inventario.
	ErrInsufficientStock    = errors.New("stock disponible insuficiente")
	ErrInsufficientReserved = errors.New("cantidad reservada insuficiente")
	ErrImmutableState       = errors.New("el documento ya fue confirmado y no admite cambios")
	ErrInvalidState         = errors.New("transición de estado inválida")
	ErrRecordHasStock       = errors.New("el registro de stock tiene existencias y no puede eliminarse")
)
