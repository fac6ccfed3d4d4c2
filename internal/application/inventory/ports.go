package inventory

import (
	"context"

	"github.com/jhoicas/StockLedger-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la atomicidad del motor de stock:
// resolución de variante, validación, actualización y registro en el libro
// se confirman o revierten como una sola unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error) error

	// RunSale agrega el repositorio de ventas a la misma transacción
	// (checkout: mutaciones + documento de venta en una unidad).
	RunSale(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error

	// RunReceipt agrega el repositorio de órdenes de compra a la misma
	// transacción (recepción: mutaciones + estado de la OC en una unidad).
	RunReceipt(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		poRepo repository.PurchaseOrderRepository,
	) error) error
}
