package repository

import "github.com/jhoicas/StockLedger-api/internal/domain/entity"

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra.
// GetForUpdate bloquea la fila de la OC (SELECT FOR UPDATE): la secuencia
// leer-validar-transicionar de recepción y transiciones de estado exige
// exclusión mutua por OC, igual que GetForUpdate de ProductRepository para stock.
type PurchaseOrderRepository interface {
	Create(po *entity.PurchaseOrder) error
	GetByID(organizationID, id string) (*entity.PurchaseOrder, error)
	GetForUpdate(organizationID, id string) (*entity.PurchaseOrder, error)
	GetByNumber(organizationID, poNumber string) (*entity.PurchaseOrder, error)
	Update(po *entity.PurchaseOrder) error
	ListByOrganization(organizationID, status string, limit, offset int) ([]*entity.PurchaseOrder, error)
}
