package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// VariantPayload una variante dentro de un producto (request y response).
type VariantPayload struct {
	SKU        string            `json:"sku"`
	Attributes map[string]string `json:"attributes,omitempty"`
	UnitPrice  decimal.Decimal   `json:"unit_price"`
	CostPrice  decimal.Decimal   `json:"cost_price"`
	Stock      int64             `json:"stock"`
	Barcode    string            `json:"barcode,omitempty"`
	Weight     *float64          `json:"weight,omitempty"`
	Dimensions string            `json:"dimensions,omitempty"`
}

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name         string           `json:"name"`
	Category     string           `json:"category,omitempty"`
	Description  string           `json:"description,omitempty"`
	ReorderPoint *int64           `json:"reorder_point,omitempty"`
	Variants     []VariantPayload `json:"variants"`
}

// UpdateProductRequest body para PUT /api/products/:id. Solo catálogo;
// el stock se muta únicamente vía movimientos.
type UpdateProductRequest struct {
	Name         *string `json:"name,omitempty"`
	Category     *string `json:"category,omitempty"`
	Description  *string `json:"description,omitempty"`
	ReorderPoint *int64  `json:"reorder_point,omitempty"`
}

// ProductResponse representación HTTP de un producto con sus variantes.
type ProductResponse struct {
	ID             string           `json:"id"`
	OrganizationID string           `json:"organization_id"`
	Name           string           `json:"name"`
	Category       string           `json:"category,omitempty"`
	Description    string           `json:"description,omitempty"`
	ReorderPoint   *int64           `json:"reorder_point,omitempty"`
	Status         string           `json:"status"`
	TotalStock     int64            `json:"total_stock"`
	Variants       []VariantPayload `json:"variants"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}
