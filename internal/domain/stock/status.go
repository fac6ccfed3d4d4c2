package stock

import "github.com/jhoicas/StockLedger-api/internal/domain/entity"

// DefaultReorderPoint es el punto de reorden efectivo cuando el producto no
// tiene uno configurado. Se aplica de forma uniforme en todos los puntos de
// entrada (los endpoints originales usaban 0 o 10 según el caso; aquí se
// unifica en 0: sin umbral configurado el producto nunca queda en low_stock).
const DefaultReorderPoint int64 = 0

// Recompute deriva el estado agregado de un producto a partir de su stock
// total y su punto de reorden. Solo asigna los tres estados derivados;
// discontinued es una acción explícita de catálogo y nunca sale de aquí.
func Recompute(totalStock int64, reorderPoint *int64) string {
	effective := DefaultReorderPoint
	if reorderPoint != nil {
		effective = *reorderPoint
	}
	switch {
	case totalStock == 0:
		return entity.ProductStatusOutOfStock
	case totalStock <= effective:
		return entity.ProductStatusLowStock
	default:
		return entity.ProductStatusActive
	}
}

// SignedDelta convierte (tipo, magnitud) en el delta con signo a aplicar:
// received/returned suman |m|, dispatched resta |m|, adjusted/transferred
// usan la magnitud con el signo que trae el caller.
func SignedDelta(movementType string, magnitude int64) int64 {
	abs := magnitude
	if abs < 0 {
		abs = -abs
	}
	switch movementType {
	case entity.MovementTypeReceived, entity.MovementTypeReturned:
		return abs
	case entity.MovementTypeDispatched:
		return -abs
	default: // adjusted, transferred
		return magnitude
	}
}
