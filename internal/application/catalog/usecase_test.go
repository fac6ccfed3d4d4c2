package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/StockLedger-api/internal/application/catalog"
	"github.com/jhoicas/StockLedger-api/internal/application/dto"
	"github.com/jhoicas/StockLedger-api/internal/domain"
	"github.com/jhoicas/StockLedger-api/internal/domain/entity"
)

const testOrg = "00000000-0000-0000-0000-00000000000a"

// fakeProductRepo repositorio en memoria para el caso de uso de catálogo.
type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(organizationID, id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok || p.OrganizationID != organizationID {
		return nil, nil
	}
	return p, nil
}

func (r *fakeProductRepo) GetForUpdate(organizationID, id string) (*entity.Product, error) {
	return r.GetByID(organizationID, id)
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) UpdateVariantStock(productID, sku string, stock int64) error {
	return nil
}

func (r *fakeProductRepo) ListByOrganization(organizationID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.OrganizationID == organizationID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Delete(organizationID, id string) error {
	delete(r.products, id)
	return nil
}

func createReq(stocks ...int64) dto.CreateProductRequest {
	req := dto.CreateProductRequest{Name: "Camiseta"}
	skus := []string{"CAM-S", "CAM-M", "CAM-L"}
	for i, s := range stocks {
		req.Variants = append(req.Variants, dto.VariantPayload{
			SKU:       skus[i],
			Stock:     s,
			UnitPrice: decimal.NewFromInt(25),
		})
	}
	return req
}

// Caso 1: creación deriva el estado inicial del stock declarado.
func TestCreate_EstadoInicial(t *testing.T) {
	uc := catalog.NewProductUseCase(newFakeProductRepo())
	ctx := context.Background()

	p, err := uc.Create(ctx, testOrg, createReq(5, 3))
	require.NoError(t, err)
	assert.Equal(t, entity.ProductStatusActive, p.Status)
	assert.Equal(t, int64(8), p.TotalStock())

	p, err = uc.Create(ctx, testOrg, createReq(0, 0))
	require.NoError(t, err)
	assert.Equal(t, entity.ProductStatusOutOfStock, p.Status)
}

// Caso 2: SKUs duplicados (comparación normalizada) se rechazan.
func TestCreate_SKUDuplicado(t *testing.T) {
	uc := catalog.NewProductUseCase(newFakeProductRepo())

	req := dto.CreateProductRequest{
		Name: "Camiseta",
		Variants: []dto.VariantPayload{
			{SKU: "CAM-S", Stock: 1},
			{SKU: " cam-s ", Stock: 2},
		},
	}
	_, err := uc.Create(context.Background(), testOrg, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Caso 3: sin nombre, sin variantes o con stock inicial negativo → inválido.
func TestCreate_EntradasInvalidas(t *testing.T) {
	uc := catalog.NewProductUseCase(newFakeProductRepo())
	ctx := context.Background()

	_, err := uc.Create(ctx, testOrg, dto.CreateProductRequest{Variants: []dto.VariantPayload{{SKU: "X", Stock: 1}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, testOrg, dto.CreateProductRequest{Name: "Camiseta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, testOrg, dto.CreateProductRequest{
		Name:     "Camiseta",
		Variants: []dto.VariantPayload{{SKU: "X", Stock: -1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Caso 4: cambiar el punto de reorden re-deriva el estado sobre el stock actual.
func TestUpdate_ReorderPointRederiva(t *testing.T) {
	repo := newFakeProductRepo()
	uc := catalog.NewProductUseCase(repo)
	ctx := context.Background()

	p, err := uc.Create(ctx, testOrg, createReq(5))
	require.NoError(t, err)
	require.Equal(t, entity.ProductStatusActive, p.Status)

	rp := int64(10)
	updated, err := uc.Update(ctx, testOrg, p.ID, dto.UpdateProductRequest{ReorderPoint: &rp})
	require.NoError(t, err)
	assert.Equal(t, entity.ProductStatusLowStock, updated.Status)
}

// Caso 5: discontinued solo se asigna vía Discontinue y no se re-deriva.
func TestDiscontinue(t *testing.T) {
	repo := newFakeProductRepo()
	uc := catalog.NewProductUseCase(repo)
	ctx := context.Background()

	p, err := uc.Create(ctx, testOrg, createReq(5))
	require.NoError(t, err)

	discontinued, err := uc.Discontinue(ctx, testOrg, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ProductStatusDiscontinued, discontinued.Status)

	// cambiar el umbral no pisa discontinued
	rp := int64(10)
	updated, err := uc.Update(ctx, testOrg, p.ID, dto.UpdateProductRequest{ReorderPoint: &rp})
	require.NoError(t, err)
	assert.Equal(t, entity.ProductStatusDiscontinued, updated.Status)
}

// Caso 6: operaciones sobre producto inexistente → ErrNotFound.
func TestNotFound(t *testing.T) {
	uc := catalog.NewProductUseCase(newFakeProductRepo())
	ctx := context.Background()

	_, err := uc.GetByID(ctx, testOrg, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Update(ctx, testOrg, "no-existe", dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = uc.Delete(ctx, testOrg, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
