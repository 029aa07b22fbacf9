package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio del punto de venta.
// Los casos de uso los envuelven con fmt.Errorf("%w: ...") para nombrar el UID, dispositivo o campo.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// Catálogo y ventas.
	ErrInsufficientStock = errors.New("stock insuficiente")

	// Usuarios y acceso. ErrUsernameTaken también es ErrDuplicate.
	ErrUserNotFound  = errors.New("usuario no encontrado")
	ErrUsernameTaken = fmt.Errorf("%w: username en uso", ErrDuplicate)
	ErrUnauthorized  = errors.New("no autorizado")
	ErrForbidden     = errors.New("acceso denegado")
)
