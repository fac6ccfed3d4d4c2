package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/StockLedger-api/internal/domain"
	"github.com/jhoicas/StockLedger-api/internal/domain/entity"
	"github.com/jhoicas/StockLedger-api/internal/domain/repository"
	"github.com/jhoicas/StockLedger-api/internal/domain/stock"
	"github.com/jhoicas/StockLedger-api/pkg/logger"
)

// MutationRequest describe una mutación de stock sobre una variante.
// SKU es opcional: la resolución sigue las reglas de stock.Resolve.
// Magnitude lleva signo solo para adjusted/transferred; received/returned
// y dispatched usan el valor absoluto.
type MutationRequest struct {
	ProductID string
	SKU       string
	Type      string
	Magnitude int64
	Reference string
	Notes     string
}

// MutationEngine orquesta mutaciones atómicas de stock: resuelve la variante,
// valida stock >= 0, actualiza cantidades, recalcula el estado del producto y
// registra el movimiento en el libro — todo dentro de una transacción con la
// fila del producto bloqueada (SELECT FOR UPDATE).
type MutationEngine struct {
	txRunner TxRunner
	movRepo  repository.StockMovementRepository
	log      *logger.Logger
}

// NewMutationEngine construye el motor. movRepo (sobre el pool) atiende las
// lecturas del libro; las escrituras siempre van por el TxRunner.
func NewMutationEngine(txRunner TxRunner, movRepo repository.StockMovementRepository, log *logger.Logger) *MutationEngine {
	return &MutationEngine{txRunner: txRunner, movRepo: movRepo, log: log}
}

// Apply ejecuta una mutación individual de forma atómica y devuelve el
// producto actualizado junto con el registro de movimiento creado.
func (e *MutationEngine) Apply(ctx context.Context, organizationID, userID string, req MutationRequest) (*entity.Product, *entity.StockMovement, error) {
	products, movements, err := e.ApplyBatch(ctx, organizationID, userID, []MutationRequest{req})
	if err != nil {
		return nil, nil, err
	}
	return products[0], movements[0], nil
}

// ApplyBatch ejecuta un lote de mutaciones con semántica todo-o-nada:
// primero se valida la factibilidad de cada línea sobre las filas bloqueadas
// y solo si todas pasan se confirman los deltas y los registros del libro.
func (e *MutationEngine) ApplyBatch(ctx context.Context, organizationID, userID string, reqs []MutationRequest) ([]*entity.Product, []*entity.StockMovement, error) {
	var products []*entity.Product
	var movements []*entity.StockMovement
	err := e.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		var txErr error
		products, movements, txErr = ApplyBatchInTx(movRepo, productRepo, organizationID, userID, reqs, time.Now())
		return txErr
	})
	if err != nil {
		return nil, nil, err
	}
	for _, m := range movements {
		e.log.Info().
			Str("organization_id", organizationID).
			Str("product_id", m.ProductID).
			Str("sku", m.SKU).
			Str("type", m.Type).
			Int64("quantity", m.Quantity).
			Str("reference", m.Reference).
			Msg("movimiento de stock aplicado")
	}
	return products, movements, nil
}

// ApplyBatchInTx es el núcleo del motor, ejecutable dentro de la transacción
// del caller (checkout de venta, recepción de OC). Los repos deben venir
// atados a esa transacción.
//
// Algoritmo:
//  1. Bloquear las filas de los productos tocados, en orden determinista
//     (IDs ordenados) para evitar deadlocks entre lotes concurrentes.
//  2. Validar todas las líneas: tipo, variante resuelta y stock resultante
//     >= 0 acumulando deltas por variante. Cualquier fallo aborta sin efecto.
//  3. Confirmar: escribir stocks, recalcular estado, sellar updated_at y
//     agregar un registro de movimiento por línea.
func ApplyBatchInTx(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	organizationID, userID string,
	reqs []MutationRequest,
	now time.Time,
) ([]*entity.Product, []*entity.StockMovement, error) {
	if len(reqs) == 0 {
		return nil, nil, domain.ErrInvalidInput
	}
	for i := range reqs {
		if reqs[i].ProductID == "" || !entity.ValidMovementType(reqs[i].Type) || reqs[i].Magnitude == 0 {
			return nil, nil, domain.ErrInvalidInput
		}
	}

	// 1) Bloqueo por producto en orden determinista
	ids := make([]string, 0, len(reqs))
	seen := make(map[string]bool, len(reqs))
	for i := range reqs {
		if !seen[reqs[i].ProductID] {
			seen[reqs[i].ProductID] = true
			ids = append(ids, reqs[i].ProductID)
		}
	}
	sort.Strings(ids)

	locked := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		p, err := productRepo.GetForUpdate(organizationID, id)
		if err != nil {
			return nil, nil, err
		}
		if p == nil {
			return nil, nil, domain.ErrNotFound
		}
		locked[id] = p
	}

	// 2) Validar todas las líneas acumulando stock tentativo por variante
	type lineResult struct {
		product *entity.Product
		variant *entity.Variant
		delta   int64
	}
	pending := make(map[string]map[string]int64, len(ids)) // productID -> SKU normalizado -> stock tentativo
	results := make([]lineResult, len(reqs))
	for i := range reqs {
		req := &reqs[i]
		product := locked[req.ProductID]
		variant, err := stock.Resolve(product, req.SKU)
		if err != nil {
			return nil, nil, err
		}
		norm := entity.NormalizeSKU(variant.SKU)
		if pending[product.ID] == nil {
			pending[product.ID] = make(map[string]int64)
		}
		current, tracked := pending[product.ID][norm]
		if !tracked {
			current = variant.Stock
		}
		delta := stock.SignedDelta(req.Type, req.Magnitude)
		newStock := current + delta
		if newStock < 0 {
			return nil, nil, &domain.InsufficientStockError{
				SKU:       variant.SKU,
				Requested: -delta,
				Available: current,
			}
		}
		pending[product.ID][norm] = newStock
		results[i] = lineResult{product: product, variant: variant, delta: delta}
	}

	// 3) Confirmar: stocks, estado derivado y registros del libro
	for _, id := range ids {
		product := locked[id]
		for norm, newStock := range pending[id] {
			variant := product.FindVariant(norm)
			variant.Stock = newStock
			if err := productRepo.UpdateVariantStock(product.ID, variant.SKU, newStock); err != nil {
				return nil, nil, err
			}
		}
		// discontinued es acción de catálogo; la política nunca lo pisa
		if product.Status != entity.ProductStatusDiscontinued {
			product.Status = stock.Recompute(product.TotalStock(), product.ReorderPoint)
		}
		product.UpdatedAt = now
		if err := productRepo.Update(product); err != nil {
			return nil, nil, err
		}
	}

	movements := make([]*entity.StockMovement, len(reqs))
	for i := range reqs {
		res := results[i]
		mov := &entity.StockMovement{
			ID:             uuid.New().String(),
			OrganizationID: organizationID,
			ProductID:      res.product.ID,
			ProductName:    res.product.Name,
			SKU:            res.variant.SKU,
			Type:           reqs[i].Type,
			Quantity:       res.delta,
			Reference:      reqs[i].Reference,
			Notes:          reqs[i].Notes,
			PerformedBy:    userID,
			CreatedAt:      now,
		}
		if err := movRepo.Create(mov); err != nil {
			return nil, nil, err
		}
		movements[i] = mov
	}

	products := make([]*entity.Product, len(reqs))
	for i := range reqs {
		products[i] = results[i].product
	}
	return products, movements, nil
}

// ListMovements lista el libro de movimientos de la organización con filtros
// opcionales por producto y tipo (proyección de solo lectura).
func (e *MutationEngine) ListMovements(ctx context.Context, organizationID string, filters repository.MovementFilters, limit, offset int) ([]*entity.StockMovement, error) {
	if filters.MovementType != "" && !entity.ValidMovementType(filters.MovementType) {
		return nil, domain.ErrInvalidInput
	}
	return e.movRepo.ListByOrganization(organizationID, filters, limit, offset)
}

// ProductHistory devuelve el historial de movimientos de un producto.
func (e *MutationEngine) ProductHistory(ctx context.Context, organizationID, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	return e.movRepo.ListByProduct(organizationID, productID, limit, offset)
}

// GetMovement obtiene un registro del libro por ID.
func (e *MutationEngine) GetMovement(ctx context.Context, organizationID, id string) (*entity.StockMovement, error) {
	mov, err := e.movRepo.GetByID(organizationID, id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	return mov, nil
}
