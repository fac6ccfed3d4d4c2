package repository

import "github.com/jhoicas/StockLedger-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE): exclusión
// mutua por producto para la secuencia leer-validar-mutar-registrar.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(organizationID, id string) (*entity.Product, error)
	GetForUpdate(organizationID, id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateVariantStock(productID, sku string, stock int64) error
	ListByOrganization(organizationID string, limit, offset int) ([]*entity.Product, error)
	Delete(organizationID, id string) error
}
