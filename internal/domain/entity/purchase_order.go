package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	POStatusDraft             = "draft"
	POStatusPendingApproval   = "pending_approval"
	POStatusApproved          = "approved"
	POStatusOrdered           = "ordered"
	POStatusPartiallyReceived = "partially_received"
	POStatusReceived          = "received"
	POStatusCancelled         = "cancelled"
)

// poTransitions es la tabla cerrada de transiciones legales:
// draft → pending_approval → approved → ordered → {partially_received, received}.
// Cancelación permitida desde cualquier estado previo a la recepción.
var poTransitions = map[string][]string{
	POStatusDraft:             {POStatusPendingApproval, POStatusCancelled},
	POStatusPendingApproval:   {POStatusApproved, POStatusCancelled},
	POStatusApproved:          {POStatusOrdered, POStatusCancelled},
	POStatusOrdered:           {POStatusPartiallyReceived, POStatusReceived, POStatusCancelled},
	POStatusPartiallyReceived: {POStatusPartiallyReceived, POStatusReceived},
	POStatusReceived:          {},
	POStatusCancelled:         {},
}

// CanTransition indica si el cambio de estado from → to es legal.
func CanTransition(from, to string) bool {
	for _, next := range poTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// POItem es una línea de orden de compra. QuantityReceived acumula las
// unidades ya ingresadas (recepción parcial) contra QuantityOrdered.
type POItem struct {
	ProductID        string
	SKU              string
	ProductName      string
	QuantityOrdered  int64
	QuantityReceived int64
	UnitCost         decimal.Decimal
	Total            decimal.Decimal
}

// Remaining devuelve las unidades pendientes por recibir de la línea.
func (i *POItem) Remaining() int64 {
	if i.QuantityReceived >= i.QuantityOrdered {
		return 0
	}
	return i.QuantityOrdered - i.QuantityReceived
}

// PurchaseOrder es una orden de compra a proveedor. PONumber es único por
// organización. La recepción mueve stock a través del motor de mutaciones.
type PurchaseOrder struct {
	ID             string
	OrganizationID string
	PONumber       string
	SupplierID     string
	SupplierName   string
	Status         string
	Items          []POItem
	Subtotal       decimal.Decimal
	Tax            decimal.Decimal
	Shipping       decimal.Decimal
	Total          decimal.Decimal
	ExpectedDate   *time.Time
	ReceivedDate   *time.Time
	Notes          string
	ApprovedBy     string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FullyReceived indica si todas las líneas completaron su cantidad ordenada.
func (po *PurchaseOrder) FullyReceived() bool {
	for i := range po.Items {
		if po.Items[i].Remaining() > 0 {
			return false
		}
	}
	return true
}
