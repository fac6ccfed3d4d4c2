package purchasing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/StockLedger-api/internal/application/dto"
	"github.com/jhoicas/StockLedger-api/internal/application/inventory"
	"github.com/jhoicas/StockLedger-api/internal/domain"
	"github.com/jhoicas/StockLedger-api/internal/domain/entity"
	"github.com/jhoicas/StockLedger-api/internal/domain/repository"
	"github.com/jhoicas/StockLedger-api/pkg/logger"
)

// PurchaseOrderUseCase maneja el ciclo de vida de órdenes de compra:
// draft → pending_approval → approved → ordered → {partially_received, received}
// con cancelación antes de la recepción. La recepción ingresa stock a través
// del motor de mutaciones en una sola transacción por OC.
type PurchaseOrderUseCase struct {
	txRunner inventory.TxRunner
	poRepo   repository.PurchaseOrderRepository
	log      *logger.Logger
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(txRunner inventory.TxRunner, poRepo repository.PurchaseOrderRepository, log *logger.Logger) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{txRunner: txRunner, poRepo: poRepo, log: log}
}

// Create registra una nueva OC en estado draft. El número duplicado por
// organización se rechaza.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, organizationID string, in dto.CreatePurchaseOrderRequest) (*entity.PurchaseOrder, error) {
	if in.PONumber == "" || in.SupplierName == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for i := range in.Items {
		if in.Items[i].ProductID == "" || in.Items[i].QuantityOrdered <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if in.Items[i].UnitCost.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}
	existing, err := uc.poRepo.GetByNumber(organizationID, in.PONumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	po := &entity.PurchaseOrder{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		PONumber:       in.PONumber,
		SupplierID:     in.SupplierID,
		SupplierName:   in.SupplierName,
		Status:         entity.POStatusDraft,
		Tax:            in.Tax,
		Shipping:       in.Shipping,
		ExpectedDate:   in.ExpectedDate,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	subtotal := decimal.Zero
	po.Items = make([]entity.POItem, len(in.Items))
	for i, item := range in.Items {
		lineTotal := item.UnitCost.Mul(decimal.NewFromInt(item.QuantityOrdered))
		po.Items[i] = entity.POItem{
			ProductID:       item.ProductID,
			SKU:             item.SKU,
			ProductName:     item.ProductName,
			QuantityOrdered: item.QuantityOrdered,
			UnitCost:        item.UnitCost,
			Total:           lineTotal,
		}
		subtotal = subtotal.Add(lineTotal)
	}
	po.Subtotal = subtotal
	po.Total = subtotal.Add(po.Tax).Add(po.Shipping)

	if err := uc.poRepo.Create(po); err != nil {
		return nil, err
	}
	return po, nil
}

// Submit pasa la OC de draft a pending_approval.
func (uc *PurchaseOrderUseCase) Submit(ctx context.Context, organizationID, id string) (*entity.PurchaseOrder, error) {
	return uc.transition(ctx, organizationID, id, entity.POStatusPendingApproval, "")
}

// Approve aprueba la OC; legal solo desde pending_approval. Registra quién aprobó.
func (uc *PurchaseOrderUseCase) Approve(ctx context.Context, organizationID, id, userID string) (*entity.PurchaseOrder, error) {
	return uc.transition(ctx, organizationID, id, entity.POStatusApproved, userID)
}

// MarkOrdered marca la OC como enviada al proveedor (approved → ordered).
func (uc *PurchaseOrderUseCase) MarkOrdered(ctx context.Context, organizationID, id string) (*entity.PurchaseOrder, error) {
	return uc.transition(ctx, organizationID, id, entity.POStatusOrdered, "")
}

// Cancel cancela la OC; legal desde cualquier estado previo a la recepción.
func (uc *PurchaseOrderUseCase) Cancel(ctx context.Context, organizationID, id string) (*entity.PurchaseOrder, error) {
	return uc.transition(ctx, organizationID, id, entity.POStatusCancelled, "")
}

// transition valida y aplica el cambio de estado sobre la fila bloqueada:
// dos llamadas concurrentes sobre la misma OC se serializan y la segunda
// valida contra el estado ya confirmado, no contra una lectura vieja.
func (uc *PurchaseOrderUseCase) transition(ctx context.Context, organizationID, id, to, approver string) (*entity.PurchaseOrder, error) {
	var out *entity.PurchaseOrder
	err := uc.txRunner.RunReceipt(ctx, func(
		_ repository.StockMovementRepository,
		_ repository.ProductRepository,
		poRepo repository.PurchaseOrderRepository,
	) error {
		po, err := poRepo.GetForUpdate(organizationID, id)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if !entity.CanTransition(po.Status, to) {
			return domain.ErrConflict
		}
		po.Status = to
		if approver != "" {
			po.ApprovedBy = approver
		}
		po.UpdatedAt = time.Now()
		if err := poRepo.Update(po); err != nil {
			return err
		}
		out = po
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Receive ingresa el stock de la OC a través del motor de mutaciones.
//
// Reglas (contrato de lote del motor aplicado a las líneas de la OC):
//   - Una OC ya recibida se rechaza con ErrAlreadyReceived (la recepción no
//     es idempotente; decisión registrada en DESIGN.md).
//   - Solo es legal desde ordered o partially_received.
//   - Sin cantidades explícitas se recibe lo pendiente de cada línea; con
//     cantidades parciales la OC queda partially_received hasta completar
//     todas las líneas.
//   - Todas las líneas pasan o ninguna se aplica: las mutaciones, las
//     cantidades recibidas y el estado de la OC se confirman en una sola
//     transacción, con la fila de la OC bloqueada desde la lectura. Dos
//     recepciones concurrentes de la misma OC se serializan: la segunda
//     valida contra el estado ya confirmado y falla sin duplicar stock.
func (uc *PurchaseOrderUseCase) Receive(ctx context.Context, organizationID, userID, id string, in dto.ReceivePurchaseOrderRequest) (*entity.PurchaseOrder, error) {
	now := time.Now()
	var out *entity.PurchaseOrder
	err := uc.txRunner.RunReceipt(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		poRepo repository.PurchaseOrderRepository,
	) error {
		po, err := poRepo.GetForUpdate(organizationID, id)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if po.Status == entity.POStatusReceived {
			return domain.ErrAlreadyReceived
		}
		if po.Status != entity.POStatusOrdered && po.Status != entity.POStatusPartiallyReceived {
			return domain.ErrConflict
		}

		// Cantidad a recibir por línea: lo pendiente, salvo cantidad explícita
		quantities := make([]int64, len(po.Items))
		for i := range po.Items {
			quantities[i] = po.Items[i].Remaining()
		}
		for _, line := range in.Lines {
			idx := findPOItem(po, line.ProductID, line.SKU)
			if idx < 0 {
				return domain.ErrInvalidInput
			}
			if line.Quantity < 0 || line.Quantity > po.Items[idx].Remaining() {
				return domain.ErrInvalidInput
			}
			quantities[idx] = line.Quantity
		}

		var reqs []inventory.MutationRequest
		var reqIdx []int
		for i := range po.Items {
			if quantities[i] == 0 {
				continue
			}
			reqs = append(reqs, inventory.MutationRequest{
				ProductID: po.Items[i].ProductID,
				SKU:       po.Items[i].SKU,
				Type:      entity.MovementTypeReceived,
				Magnitude: quantities[i],
				Reference: po.PONumber,
			})
			reqIdx = append(reqIdx, i)
		}
		if len(reqs) == 0 {
			return domain.ErrInvalidInput
		}

		if _, _, txErr := inventory.ApplyBatchInTx(movRepo, productRepo, organizationID, userID, reqs, now); txErr != nil {
			return txErr
		}
		for k, i := range reqIdx {
			po.Items[i].QuantityReceived += reqs[k].Magnitude
		}
		next := entity.POStatusPartiallyReceived
		if po.FullyReceived() {
			next = entity.POStatusReceived
			po.ReceivedDate = &now
		}
		if !entity.CanTransition(po.Status, next) {
			return domain.ErrConflict
		}
		po.Status = next
		po.UpdatedAt = now
		if err := poRepo.Update(po); err != nil {
			return err
		}
		out = po
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("organization_id", organizationID).
		Str("po_number", out.PONumber).
		Str("status", out.Status).
		Msg("orden de compra recibida")
	return out, nil
}

// GetByID obtiene una OC por ID.
func (uc *PurchaseOrderUseCase) GetByID(ctx context.Context, organizationID, id string) (*entity.PurchaseOrder, error) {
	po, err := uc.poRepo.GetByID(organizationID, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	return po, nil
}

// List lista OCs de la organización, con filtro opcional por estado.
func (uc *PurchaseOrderUseCase) List(ctx context.Context, organizationID, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	return uc.poRepo.ListByOrganization(organizationID, status, limit, offset)
}

// findPOItem ubica la línea por producto y SKU normalizado.
func findPOItem(po *entity.PurchaseOrder, productID, sku string) int {
	for i := range po.Items {
		if po.Items[i].ProductID == productID &&
			entity.NormalizeSKU(po.Items[i].SKU) == entity.NormalizeSKU(sku) {
			return i
		}
	}
	return -1
}
