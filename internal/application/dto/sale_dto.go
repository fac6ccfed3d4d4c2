package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemPayload línea de venta en el request. unit_price en 0 toma el
// precio de la variante resuelta.
type SaleItemPayload struct {
	ProductID string          `json:"product_id"`
	SKU       string          `json:"sku,omitempty"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	SaleNumber    string            `json:"sale_number"`
	ClientName    string            `json:"client_name,omitempty"`
	ClientEmail   string            `json:"client_email,omitempty"`
	Items         []SaleItemPayload `json:"items"`
	Tax           decimal.Decimal   `json:"tax"`
	Discount      decimal.Decimal   `json:"discount"`
	PaymentMethod string            `json:"payment_method,omitempty"`
	Notes         string            `json:"notes,omitempty"`
}

// SaleItemResponse línea de venta persistida (con nombre/SKU desnormalizados).
type SaleItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	SKU         string          `json:"sku"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// SaleResponse representación HTTP de una venta.
type SaleResponse struct {
	ID             string             `json:"id"`
	OrganizationID string             `json:"organization_id"`
	SaleNumber     string             `json:"sale_number"`
	ClientName     string             `json:"client_name,omitempty"`
	ClientEmail    string             `json:"client_email,omitempty"`
	Items          []SaleItemResponse `json:"items"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	Tax            decimal.Decimal    `json:"tax"`
	Discount       decimal.Decimal    `json:"discount"`
	Total          decimal.Decimal    `json:"total"`
	PaymentMethod  string             `json:"payment_method"`
	Status         string             `json:"status"`
	Notes          string             `json:"notes,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
}
