package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/StockLedger-api/internal/application/inventory"
	"github.com/jhoicas/StockLedger-api/internal/domain/entity"
	"github.com/jhoicas/StockLedger-api/internal/domain/repository"
	"github.com/jhoicas/StockLedger-api/pkg/logger"
)

// movementReaderStub lado de lectura del libro con registros fijos.
type movementReaderStub struct {
	movements []*entity.StockMovement
}

func (s *movementReaderStub) Create(*entity.StockMovement) error { return nil }

func (s *movementReaderStub) GetByID(string, string) (*entity.StockMovement, error) {
	return nil, nil
}

func (s *movementReaderStub) ListByOrganization(string, repository.MovementFilters, int, int) ([]*entity.StockMovement, error) {
	return s.movements, nil
}

func (s *movementReaderStub) ListByProduct(string, string, int, int) ([]*entity.StockMovement, error) {
	return s.movements, nil
}

type txRunnerStub struct{}

func (txRunnerStub) Run(context.Context, func(
	repository.StockMovementRepository,
	repository.ProductRepository,
) error) error {
	panic("no usado en estos tests")
}

func (txRunnerStub) RunSale(context.Context, func(
	repository.StockMovementRepository,
	repository.ProductRepository,
	repository.SaleRepository,
) error) error {
	panic("no usado en estos tests")
}

func (txRunnerStub) RunReceipt(context.Context, func(
	repository.StockMovementRepository,
	repository.ProductRepository,
	repository.PurchaseOrderRepository,
) error) error {
	panic("no usado en estos tests")
}

// Caso 1: los listados exponen "count" (tamaño de la página devuelta), no un
// total de colección que no calculan.
func TestMovementList_CuentaDePagina(t *testing.T) {
	reader := &movementReaderStub{movements: []*entity.StockMovement{
		{ID: "m1", OrganizationID: "org-1", ProductID: "p1", Type: entity.MovementTypeReceived, Quantity: 5, CreatedAt: time.Now()},
		{ID: "m2", OrganizationID: "org-1", ProductID: "p1", Type: entity.MovementTypeDispatched, Quantity: -2, CreatedAt: time.Now()},
	}}
	engine := inventory.NewMutationEngine(txRunnerStub{}, reader, logger.Nop())

	app := fiber.New()
	handler := NewMovementHandler(engine)
	app.Get("/api/stock/movements", handler.List)

	req := httptest.NewRequest(http.MethodGet, "/api/stock/movements", nil)
	req.Header.Set(HeaderOrganizationID, "org-1")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"count":2`)
	assert.NotContains(t, string(body), `"total"`)
}
