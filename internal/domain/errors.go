package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrNoVariants        = errors.New("el producto no tiene variantes")
	ErrAmbiguousVariant  = errors.New("se requiere SKU para productos con múltiples variantes")
	ErrVariantNotFound   = errors.New("variante no encontrada")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrAlreadyReceived   = errors.New("la orden de compra ya fue recibida")
)

// InsufficientStockError indica que una mutación dejaría el stock en negativo.
// Lleva el SKU afectado y el faltante para el mensaje al cliente.
// errors.Is(err, ErrInsufficientStock) == true.
type InsufficientStockError struct {
	SKU       string
	Requested int64 // unidades solicitadas (valor absoluto del delta negativo)
	Available int64 // stock actual de la variante
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para la variante %s: solicitado %d, disponible %d",
		e.SKU, e.Requested, e.Available)
}

// Deficit devuelve cuántas unidades faltan para completar la mutación.
func (e *InsufficientStockError) Deficit() int64 {
	return e.Requested - e.Available
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
