package repository

import "github.com/jhoicas/StockLedger-api/internal/domain/entity"

// MovementFilters filtros opcionales para listar movimientos.
type MovementFilters struct {
	ProductID    string
	MovementType string
}

// StockMovementRepository define el puerto del libro de movimientos.
// Es append-only: no existe Update ni Delete; los listados son proyecciones
// de solo lectura ordenadas por created_at descendente.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(organizationID, id string) (*entity.StockMovement, error)
	ListByOrganization(organizationID string, filters MovementFilters, limit, offset int) ([]*entity.StockMovement, error)
	ListByProduct(organizationID, productID string, limit, offset int) ([]*entity.StockMovement, error)
}
