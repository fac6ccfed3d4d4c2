package repository

import "github.com/jhoicas/StockLedger-api/internal/domain/entity"

// SaleRepository define el puerto de persistencia para ventas.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(organizationID, id string) (*entity.Sale, error)
	GetByNumber(organizationID, saleNumber string) (*entity.Sale, error)
	ListByOrganization(organizationID string, limit, offset int) ([]*entity.Sale, error)
}
