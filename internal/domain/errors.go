package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrVenueNotFound   = errors.New("local no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrDuplicate       = errors.New("recurso duplicado")
	ErrSlugExhausted   = errors.New("no hay slug disponible para el nombre")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrForbidden       = errors.New("acceso denegado")
	ErrConflict        = errors.New("conflicto con el estado actual")
	ErrCategoryInUse   = errors.New("la categoría tiene productos asociados")
	ErrPriceUnchanged  = errors.New("el precio no cambió")
	ErrFileTooLarge    = errors.New("archivo demasiado grande")
	ErrInvalidMIME     = errors.New("tipo de archivo no permitido")
	ErrStorageDisabled = errors.New("proveedor de storage no configurado")
)
