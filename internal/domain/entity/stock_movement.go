package entity

import "time"

// Tipos de movimiento de stock. Valores persistidos y expuestos por la API.
const (
	MovementTypeReceived    = "received"    // entrada por recepción de compra
	MovementTypeDispatched  = "dispatched"  // salida por venta
	MovementTypeAdjusted    = "adjusted"    // ajuste manual (cantidad con signo)
	MovementTypeTransferred = "transferred" // traslado (cantidad con signo)
	MovementTypeReturned    = "returned"    // devolución (entrada)
)

// ValidMovementType verifica que el tipo pertenezca al conjunto cerrado.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeReceived, MovementTypeDispatched, MovementTypeAdjusted,
		MovementTypeTransferred, MovementTypeReturned:
		return true
	}
	return false
}

// StockMovement es un hecho inmutable del libro de movimientos: una vez creado
// nunca se actualiza ni se borra. Es la única pista de auditoría de por qué
// cambió el stock de una variante. ProductName y SKU se desnormalizan al
// momento de la escritura.
type StockMovement struct {
	ID             string
	OrganizationID string
	ProductID      string
	ProductName    string
	SKU            string
	Type           string
	Quantity       int64 // con signo: positivo entra stock, negativo sale
	Reference      string // número de venta, de OC u otra referencia externa
	Notes          string
	PerformedBy    string // UserID del actor
	CreatedAt      time.Time
}
