package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusCompleted = "completed"
	SaleStatusRefunded  = "refunded"
	SaleStatusCancelled = "cancelled"
)

// Métodos de pago.
const (
	PaymentMethodCash     = "cash"
	PaymentMethodCard     = "card"
	PaymentMethodTransfer = "transfer"
	PaymentMethodOther    = "other"
)

// SaleItem es una línea de venta embebida. ProductName y SKU quedan
// desnormalizados al momento de la venta.
type SaleItem struct {
	ProductID   string
	ProductName string
	SKU         string
	Quantity    int64
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
}

// Sale es una transacción de venta (punto de venta). SaleNumber es único por
// organización; un duplicado se rechaza antes de tocar el stock.
type Sale struct {
	ID             string
	OrganizationID string
	SaleNumber     string
	ClientName     string
	ClientEmail    string
	Items          []SaleItem
	Subtotal       decimal.Decimal
	Tax            decimal.Decimal
	Discount       decimal.Decimal
	Total          decimal.Decimal
	PaymentMethod  string
	Status         string
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
