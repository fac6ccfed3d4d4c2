package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// POItemPayload línea de orden de compra en el request.
type POItemPayload struct {
	ProductID       string          `json:"product_id"`
	SKU             string          `json:"sku,omitempty"`
	ProductName     string          `json:"product_name"`
	QuantityOrdered int64           `json:"quantity_ordered"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
}

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	PONumber     string          `json:"po_number"`
	SupplierID   string          `json:"supplier_id,omitempty"`
	SupplierName string          `json:"supplier_name"`
	Items        []POItemPayload `json:"items"`
	Tax          decimal.Decimal `json:"tax"`
	Shipping     decimal.Decimal `json:"shipping"`
	ExpectedDate *time.Time      `json:"expected_date,omitempty"`
	Notes        string          `json:"notes,omitempty"`
}

// ReceiveLinePayload cantidad explícita a recibir para una línea (recepción
// parcial). Quantity en 0 deja la línea sin recibir por ahora.
type ReceiveLinePayload struct {
	ProductID string `json:"product_id"`
	SKU       string `json:"sku,omitempty"`
	Quantity  int64  `json:"quantity"`
}

// ReceivePurchaseOrderRequest body para POST /api/purchase-orders/:id/receive.
// Sin líneas se recibe lo pendiente de toda la orden.
type ReceivePurchaseOrderRequest struct {
	Lines []ReceiveLinePayload `json:"lines,omitempty"`
}

// POItemResponse línea de OC persistida.
type POItemResponse struct {
	ProductID        string          `json:"product_id"`
	SKU              string          `json:"sku,omitempty"`
	ProductName      string          `json:"product_name"`
	QuantityOrdered  int64           `json:"quantity_ordered"`
	QuantityReceived int64           `json:"quantity_received"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	Total            decimal.Decimal `json:"total"`
}

// PurchaseOrderResponse representación HTTP de una orden de compra.
type PurchaseOrderResponse struct {
	ID             string           `json:"id"`
	OrganizationID string           `json:"organization_id"`
	PONumber       string           `json:"po_number"`
	SupplierID     string           `json:"supplier_id,omitempty"`
	SupplierName   string           `json:"supplier_name"`
	Status         string           `json:"status"`
	Items          []POItemResponse `json:"items"`
	Subtotal       decimal.Decimal  `json:"subtotal"`
	Tax            decimal.Decimal  `json:"tax"`
	Shipping       decimal.Decimal  `json:"shipping"`
	Total          decimal.Decimal  `json:"total"`
	ExpectedDate   *time.Time       `json:"expected_date,omitempty"`
	ReceivedDate   *time.Time       `json:"received_date,omitempty"`
	Notes          string           `json:"notes,omitempty"`
	ApprovedBy     string           `json:"approved_by,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}
