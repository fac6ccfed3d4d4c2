package sales_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/StockLedger-api/internal/application/dto"
	"github.com/jhoicas/StockLedger-api/internal/application/sales"
	"github.com/jhoicas/StockLedger-api/internal/domain"
	"github.com/jhoicas/StockLedger-api/internal/domain/entity"
	"github.com/jhoicas/StockLedger-api/internal/domain/repository"
	"github.com/jhoicas/StockLedger-api/pkg/logger"
)

const (
	testOrg  = "00000000-0000-0000-0000-00000000000a"
	testUser = "00000000-0000-0000-0000-00000000000b"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria (productos, movimientos y ventas con semántica de tx)
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	movements []*entity.StockMovement
	sales     map[string]*entity.Sale // por sale_number
}

func newFakeStore(products ...*entity.Product) *fakeStore {
	s := &fakeStore{
		products: make(map[string]*entity.Product),
		sales:    make(map[string]*entity.Sale),
	}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func cloneProduct(p *entity.Product) *entity.Product {
	cp := *p
	cp.Variants = make([]entity.Variant, len(p.Variants))
	copy(cp.Variants, p.Variants)
	return &cp
}

type txState struct {
	store     *fakeStore
	products  map[string]*entity.Product
	movements []*entity.StockMovement
	sales     []*entity.Sale
}

func (t *txState) commit() {
	for id, p := range t.products {
		t.store.products[id] = p
	}
	t.store.movements = append(t.store.movements, t.movements...)
	for _, s := range t.sales {
		t.store.sales[s.SaleNumber] = s
	}
}

type txProductRepo struct{ tx *txState }

func (r *txProductRepo) Create(p *entity.Product) error { return nil }

func (r *txProductRepo) GetByID(organizationID, id string) (*entity.Product, error) {
	return r.GetForUpdate(organizationID, id)
}

func (r *txProductRepo) GetForUpdate(organizationID, id string) (*entity.Product, error) {
	if p, ok := r.tx.products[id]; ok {
		return p, nil
	}
	p, ok := r.tx.store.products[id]
	if !ok || p.OrganizationID != organizationID {
		return nil, nil
	}
	cp := cloneProduct(p)
	r.tx.products[id] = cp
	return cp, nil
}

func (r *txProductRepo) Update(p *entity.Product) error {
	r.tx.products[p.ID] = p
	return nil
}

func (r *txProductRepo) UpdateVariantStock(productID, sku string, stock int64) error {
	if p, ok := r.tx.products[productID]; ok {
		if v := p.FindVariant(sku); v != nil {
			v.Stock = stock
			return nil
		}
	}
	return domain.ErrVariantNotFound
}

func (r *txProductRepo) ListByOrganization(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *txProductRepo) Delete(string, string) error { return nil }

type txMovementRepo struct{ tx *txState }

func (r *txMovementRepo) Create(m *entity.StockMovement) error {
	r.tx.movements = append(r.tx.movements, m)
	return nil
}

func (r *txMovementRepo) GetByID(string, string) (*entity.StockMovement, error) { return nil, nil }

func (r *txMovementRepo) ListByOrganization(string, repository.MovementFilters, int, int) ([]*entity.StockMovement, error) {
	return nil, nil
}

func (r *txMovementRepo) ListByProduct(string, string, int, int) ([]*entity.StockMovement, error) {
	return nil, nil
}

type txSaleRepo struct{ tx *txState }

func (r *txSaleRepo) Create(s *entity.Sale) error {
	r.tx.sales = append(r.tx.sales, s)
	return nil
}

func (r *txSaleRepo) GetByID(string, string) (*entity.Sale, error) { return nil, nil }

func (r *txSaleRepo) GetByNumber(organizationID, saleNumber string) (*entity.Sale, error) {
	if s, ok := r.tx.store.sales[saleNumber]; ok && s.OrganizationID == organizationID {
		return s, nil
	}
	return nil, nil
}

func (r *txSaleRepo) ListByOrganization(string, int, int) ([]*entity.Sale, error) { return nil, nil }

// saleReader lado de lectura de ventas (fuera de transacción).
type saleReader struct{ store *fakeStore }

func (r *saleReader) Create(s *entity.Sale) error { return nil }

func (r *saleReader) GetByID(organizationID, id string) (*entity.Sale, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, s := range r.store.sales {
		if s.ID == id && s.OrganizationID == organizationID {
			return s, nil
		}
	}
	return nil, nil
}

func (r *saleReader) GetByNumber(organizationID, saleNumber string) (*entity.Sale, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if s, ok := r.store.sales[saleNumber]; ok && s.OrganizationID == organizationID {
		return s, nil
	}
	return nil, nil
}

func (r *saleReader) ListByOrganization(organizationID string, limit, offset int) ([]*entity.Sale, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Sale
	for _, s := range r.store.sales {
		if s.OrganizationID == organizationID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeTxRunner struct{ store *fakeStore }

func (f *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	tx := &txState{store: f.store, products: make(map[string]*entity.Product)}
	if err := fn(&txMovementRepo{tx: tx}, &txProductRepo{tx: tx}); err != nil {
		return err
	}
	tx.commit()
	return nil
}

func (f *fakeTxRunner) RunSale(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	tx := &txState{store: f.store, products: make(map[string]*entity.Product)}
	if err := fn(&txMovementRepo{tx: tx}, &txProductRepo{tx: tx}, &txSaleRepo{tx: tx}); err != nil {
		return err
	}
	tx.commit()
	return nil
}

func (f *fakeTxRunner) RunReceipt(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	poRepo repository.PurchaseOrderRepository,
) error) error {
	panic("no usado en estos tests")
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func newCheckout(store *fakeStore) *sales.CheckoutUseCase {
	return sales.NewCheckoutUseCase(&fakeTxRunner{store: store}, &saleReader{store: store}, logger.Nop())
}

func shirtProduct(stockS, stockM int64) *entity.Product {
	return &entity.Product{
		ID:             "p1",
		OrganizationID: testOrg,
		Name:           "Camiseta",
		Status:         entity.ProductStatusActive,
		Variants: []entity.Variant{
			{SKU: "CAM-S", Stock: stockS, UnitPrice: decimal.NewFromInt(25)},
			{SKU: "CAM-M", Stock: stockM, UnitPrice: decimal.NewFromInt(30)},
		},
	}
}

func variantStock(t *testing.T, store *fakeStore, productID, sku string) int64 {
	t.Helper()
	store.mu.Lock()
	defer store.mu.Unlock()
	p, ok := store.products[productID]
	require.True(t, ok)
	v := p.FindVariant(sku)
	require.NotNil(t, v)
	return v.Stock
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: venta feliz — despacha stock, desnormaliza nombre/SKU en las
// líneas, toma el precio de la variante cuando el caller no lo fija y deja
// el movimiento referenciado al número de venta.
func TestCreateSale_Feliz(t *testing.T) {
	store := newFakeStore(shirtProduct(10, 8))
	uc := newCheckout(store)

	sale, err := uc.CreateSale(context.Background(), testOrg, testUser, dto.CreateSaleRequest{
		SaleNumber: "V-001",
		ClientName: "Ana",
		Items: []dto.SaleItemPayload{
			{ProductID: "p1", SKU: "cam-s", Quantity: 2}, // precio 0: cae al de la variante
			{ProductID: "p1", SKU: "CAM-M", Quantity: 1, UnitPrice: decimal.NewFromInt(28)},
		},
		Tax: decimal.NewFromInt(5),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.SaleStatusCompleted, sale.Status)
	assert.Equal(t, entity.PaymentMethodCash, sale.PaymentMethod)

	require.Len(t, sale.Items, 2)
	assert.Equal(t, "Camiseta", sale.Items[0].ProductName)
	assert.Equal(t, "CAM-S", sale.Items[0].SKU)
	assert.True(t, sale.Items[0].UnitPrice.Equal(decimal.NewFromInt(25)))
	assert.True(t, sale.Items[0].Total.Equal(decimal.NewFromInt(50)))
	assert.True(t, sale.Items[1].UnitPrice.Equal(decimal.NewFromInt(28)))

	// subtotal = 50 + 28, total = subtotal + tax
	assert.True(t, sale.Subtotal.Equal(decimal.NewFromInt(78)))
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(83)))

	assert.Equal(t, int64(8), variantStock(t, store, "p1", "CAM-S"))
	assert.Equal(t, int64(7), variantStock(t, store, "p1", "CAM-M"))

	require.Len(t, store.movements, 2)
	assert.Equal(t, entity.MovementTypeDispatched, store.movements[0].Type)
	assert.Equal(t, int64(-2), store.movements[0].Quantity)
	assert.Equal(t, "V-001", store.movements[0].Reference)

	// la venta quedó persistida
	persisted, err := uc.GetSale(context.Background(), testOrg, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, "V-001", persisted.SaleNumber)
}

// Caso 2: número de venta duplicado → ErrDuplicate sin tocar stock.
func TestCreateSale_NumeroDuplicado(t *testing.T) {
	store := newFakeStore(shirtProduct(10, 8))
	uc := newCheckout(store)
	ctx := context.Background()

	_, err := uc.CreateSale(ctx, testOrg, testUser, dto.CreateSaleRequest{
		SaleNumber: "V-001",
		Items:      []dto.SaleItemPayload{{ProductID: "p1", SKU: "CAM-S", Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = uc.CreateSale(ctx, testOrg, testUser, dto.CreateSaleRequest{
		SaleNumber: "V-001",
		Items:      []dto.SaleItemPayload{{ProductID: "p1", SKU: "CAM-S", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, int64(9), variantStock(t, store, "p1", "CAM-S"))
}

// Caso 3: una línea sin stock rechaza la venta completa — ni movimientos,
// ni stock, ni documento de venta.
func TestCreateSale_RechazoCompleto(t *testing.T) {
	store := newFakeStore(shirtProduct(10, 2))
	uc := newCheckout(store)

	_, err := uc.CreateSale(context.Background(), testOrg, testUser, dto.CreateSaleRequest{
		SaleNumber: "V-002",
		Items: []dto.SaleItemPayload{
			{ProductID: "p1", SKU: "CAM-S", Quantity: 1},
			{ProductID: "p1", SKU: "CAM-M", Quantity: 3}, // solo hay 2
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(10), variantStock(t, store, "p1", "CAM-S"))
	assert.Equal(t, int64(2), variantStock(t, store, "p1", "CAM-M"))
	assert.Empty(t, store.movements)
	assert.Empty(t, store.sales)
}

// Caso 4: validación de entrada.
func TestCreateSale_EntradasInvalidas(t *testing.T) {
	uc := newCheckout(newFakeStore(shirtProduct(10, 8)))
	ctx := context.Background()

	_, err := uc.CreateSale(ctx, testOrg, testUser, dto.CreateSaleRequest{
		Items: []dto.SaleItemPayload{{ProductID: "p1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin número de venta")

	_, err = uc.CreateSale(ctx, testOrg, testUser, dto.CreateSaleRequest{SaleNumber: "V-003"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	_, err = uc.CreateSale(ctx, testOrg, testUser, dto.CreateSaleRequest{
		SaleNumber: "V-003",
		Items:      []dto.SaleItemPayload{{ProductID: "p1", SKU: "CAM-S", Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = uc.CreateSale(ctx, testOrg, testUser, dto.CreateSaleRequest{
		SaleNumber: "V-003",
		Items:      []dto.SaleItemPayload{{ProductID: "p1", SKU: "CAM-S", Quantity: 1, UnitPrice: decimal.NewFromInt(-1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "precio negativo")
}

// Caso 5: método de pago desconocido cae a other; vacío cae a cash.
func TestCreateSale_MetodoDePago(t *testing.T) {
	store := newFakeStore(shirtProduct(10, 8))
	uc := newCheckout(store)

	sale, err := uc.CreateSale(context.Background(), testOrg, testUser, dto.CreateSaleRequest{
		SaleNumber:    "V-010",
		PaymentMethod: "criptomoneda",
		Items:         []dto.SaleItemPayload{{ProductID: "p1", SKU: "CAM-S", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentMethodOther, sale.PaymentMethod)
}
