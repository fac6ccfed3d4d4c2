package dto

import "time"

// RegisterMovementRequest body para POST /api/stock/movements.
// quantity lleva signo solo para adjusted/transferred; received/returned y
// dispatched usan el valor absoluto.
type RegisterMovementRequest struct {
	ProductID string `json:"product_id"`
	SKU       string `json:"sku,omitempty"`
	Type      string `json:"type"`
	Quantity  int64  `json:"quantity"`
	Reference string `json:"reference,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// BatchMovementRequest body para POST /api/stock/movements/batch (todo-o-nada).
type BatchMovementRequest struct {
	Movements []RegisterMovementRequest `json:"movements"`
}

// MovementResponse un registro del libro de movimientos.
type MovementResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	ProductID      string    `json:"product_id"`
	ProductName    string    `json:"product_name"`
	SKU            string    `json:"sku"`
	Type           string    `json:"type"`
	Quantity       int64     `json:"quantity"`
	Reference      string    `json:"reference,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	PerformedBy    string    `json:"performed_by"`
	CreatedAt      time.Time `json:"created_at"`
}
