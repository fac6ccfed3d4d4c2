package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/StockLedger-api/internal/application/catalog"
	"github.com/jhoicas/StockLedger-api/internal/application/inventory"
	"github.com/jhoicas/StockLedger-api/internal/application/purchasing"
	"github.com/jhoicas/StockLedger-api/internal/application/sales"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC       *catalog.ProductUseCase
	MutationEngine  *inventory.MutationEngine
	CheckoutUC      *sales.CheckoutUseCase
	PurchaseOrderUC *purchasing.PurchaseOrderUseCase
}

// Router registra las rutas de la API. La identidad (tenant y actor) llega en
// cabeceras inyectadas por el gateway; ver context.go.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Products (catálogo)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Post("/:id/discontinue", productHandler.Discontinue)
	products.Delete("/:id", productHandler.Delete)

	// Stock movements (libro de movimientos)
	stock := api.Group("/stock")
	movementHandler := NewMovementHandler(deps.MutationEngine)
	stock.Post("/movements", movementHandler.Register)
	stock.Post("/movements/batch", movementHandler.RegisterBatch)
	stock.Get("/movements", movementHandler.List)
	stock.Get("/movements/:id", movementHandler.GetByID)
	stock.Get("/products/:id/history", movementHandler.ProductHistory)

	// Sales (checkout)
	salesGroup := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.CheckoutUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)

	// Purchase orders (ciclo de vida + recepción)
	pos := api.Group("/purchase-orders")
	poHandler := NewPurchaseOrderHandler(deps.PurchaseOrderUC)
	pos.Post("/", poHandler.Create)
	pos.Get("/", poHandler.List)
	pos.Get("/:id", poHandler.GetByID)
	pos.Post("/:id/submit", poHandler.Submit)
	pos.Post("/:id/approve", poHandler.Approve)
	pos.Post("/:id/order", poHandler.MarkOrdered)
	pos.Post("/:id/cancel", poHandler.Cancel)
	pos.Post("/:id/receive", poHandler.Receive)
}
