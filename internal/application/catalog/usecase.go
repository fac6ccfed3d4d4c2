package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/StockLedger-api/internal/application/dto"
	"github.com/jhoicas/StockLedger-api/internal/domain"
	"github.com/jhoicas/StockLedger-api/internal/domain/entity"
	"github.com/jhoicas/StockLedger-api/internal/domain/repository"
	"github.com/jhoicas/StockLedger-api/internal/domain/stock"
)

// ProductUseCase casos de uso de catálogo. El stock de las variantes NUNCA se
// modifica por aquí: toda mutación de stock pasa por el motor de movimientos.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto con sus variantes. Los SKUs deben ser únicos dentro
// del producto (comparación normalizada). El estado inicial se deriva del
// stock inicial declarado.
func (uc *ProductUseCase) Create(ctx context.Context, organizationID string, in dto.CreateProductRequest) (*entity.Product, error) {
	if in.Name == "" || len(in.Variants) == 0 {
		return nil, domain.ErrInvalidInput
	}
	seen := make(map[string]bool, len(in.Variants))
	for i := range in.Variants {
		norm := entity.NormalizeSKU(in.Variants[i].SKU)
		if norm == "" || seen[norm] {
			return nil, domain.ErrInvalidInput
		}
		seen[norm] = true
		if in.Variants[i].Stock < 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		Name:           in.Name,
		Category:       in.Category,
		Description:    in.Description,
		ReorderPoint:   in.ReorderPoint,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	product.Variants = make([]entity.Variant, len(in.Variants))
	for i, v := range in.Variants {
		product.Variants[i] = entity.Variant{
			SKU:        v.SKU,
			Attributes: v.Attributes,
			UnitPrice:  v.UnitPrice,
			CostPrice:  v.CostPrice,
			Stock:      v.Stock,
			Barcode:    v.Barcode,
			Weight:     v.Weight,
			Dimensions: v.Dimensions,
		}
	}
	product.Status = stock.Recompute(product.TotalStock(), product.ReorderPoint)

	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID obtiene un producto por ID dentro de la organización.
func (uc *ProductUseCase) GetByID(ctx context.Context, organizationID, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(organizationID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// Update actualiza atributos de catálogo (nombre, categoría, descripción,
// punto de reorden). No toca variantes ni stock.
func (uc *ProductUseCase) Update(ctx context.Context, organizationID, id string, in dto.UpdateProductRequest) (*entity.Product, error) {
	product, err := uc.repo.GetByID(organizationID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.ReorderPoint != nil {
		product.ReorderPoint = in.ReorderPoint
		// el umbral cambió: re-derivar el estado sobre el stock actual
		if product.Status != entity.ProductStatusDiscontinued {
			product.Status = stock.Recompute(product.TotalStock(), product.ReorderPoint)
		}
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Discontinue marca el producto como descontinuado. Es la única vía para
// asignar ese estado; la política de stock no lo sobreescribe.
func (uc *ProductUseCase) Discontinue(ctx context.Context, organizationID, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(organizationID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	product.Status = entity.ProductStatusDiscontinued
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// List lista productos de la organización con paginación.
func (uc *ProductUseCase) List(ctx context.Context, organizationID string, limit, offset int) ([]*entity.Product, error) {
	return uc.repo.ListByOrganization(organizationID, limit, offset)
}

// Delete elimina un producto del catálogo. Los movimientos del libro se
// conservan: son el registro histórico aunque el producto desaparezca.
func (uc *ProductUseCase) Delete(ctx context.Context, organizationID, id string) error {
	product, err := uc.repo.GetByID(organizationID, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(organizationID, id)
}
