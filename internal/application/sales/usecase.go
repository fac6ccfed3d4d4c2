package sales

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

// CheckoutUseCase crea una venta descontando el stock de cada línea en una
// sola transacción (todo-o-nada): si alguna línea no es factible la venta
// completa se rechaza y ningún stock queda tocado.
type CheckoutUseCase struct {
	txRunner inventory.TxRunner
	saleRepo repository.SaleRepository
	log      *logger.Logger
}

// NewCheckoutUseCase construye el caso de uso.
func NewCheckoutUseCase(txRunner inventory.TxRunner, saleRepo repository.SaleRepository, log *logger.Logger) *CheckoutUseCase {
	return &CheckoutUseCase{txRunner: txRunner, saleRepo: saleRepo, log: log}
}

// CreateSale valida el número de venta y todas las líneas, despacha el stock
// vía el motor de mutaciones y persiste el documento de venta en la misma
// transacción. El número duplicado se rechaza antes de intentar mutación
// alguna; la constraint única (organización, número) cubre la carrera.
func (uc *CheckoutUseCase) CreateSale(ctx context.Context, organizationID, userID string, in dto.CreateSaleRequest) (*entity.Sale, error) {
	if in.SaleNumber == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for i := range in.Items {
		if in.Items[i].ProductID == "" || in.Items[i].Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if in.Items[i].UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	existing, err := uc.saleRepo.GetByNumber(organizationID, in.SaleNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	reqs := make([]inventory.MutationRequest, len(in.Items))
	for i, item := range in.Items {
		reqs[i] = inventory.MutationRequest{
			ProductID: item.ProductID,
			SKU:       item.SKU,
			Type:      entity.MovementTypeDispatched,
			Magnitude: item.Quantity,
			Reference: in.SaleNumber,
		}
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		SaleNumber:     in.SaleNumber,
		ClientName:     in.ClientName,
		ClientEmail:    in.ClientEmail,
		PaymentMethod:  paymentMethodOrDefault(in.PaymentMethod),
		Status:         entity.SaleStatusCompleted,
		Notes:          in.Notes,
		Tax:            in.Tax,
		Discount:       in.Discount,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = uc.txRunner.RunSale(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		products, movements, txErr := inventory.ApplyBatchInTx(movRepo, productRepo, organizationID, userID, reqs, now)
		if txErr != nil {
			return txErr
		}

		// Armar líneas con nombre/SKU desnormalizados por la resolución y
		// precio de la variante cuando el caller no lo fija.
		subtotal := decimal.Zero
		sale.Items = make([]entity.SaleItem, len(in.Items))
		for i, item := range in.Items {
			unitPrice := item.UnitPrice
			if unitPrice.IsZero() {
				if v := products[i].FindVariant(movements[i].SKU); v != nil {
					unitPrice = v.UnitPrice
				}
			}
			lineTotal := unitPrice.Mul(decimal.NewFromInt(item.Quantity))
			sale.Items[i] = entity.SaleItem{
				ProductID:   item.ProductID,
				ProductName: movements[i].ProductName,
				SKU:         movements[i].SKU,
				Quantity:    item.Quantity,
				UnitPrice:   unitPrice,
				Total:       lineTotal,
			}
			subtotal = subtotal.Add(lineTotal)
		}
		sale.Subtotal = subtotal
		sale.Total = subtotal.Add(sale.Tax).Sub(sale.Discount)

		// La venta se persiste solo después de que todas las mutaciones pasaron
		return saleRepo.Create(sale)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("organization_id", organizationID).
		Str("sale_number", sale.SaleNumber).
		Int("items", len(sale.Items)).
		Str("total", sale.Total.String()).
		Msg("venta registrada")
	return sale, nil
}

// GetSale obtiene una venta por ID.
func (uc *CheckoutUseCase) GetSale(ctx context.Context, organizationID, id string) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(organizationID, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return sale, nil
}

// ListSales lista ventas de la organización con paginación.
func (uc *CheckoutUseCase) ListSales(ctx context.Context, organizationID string, limit, offset int) ([]*entity.Sale, error) {
	return uc.saleRepo.ListByOrganization(organizationID, limit, offset)
}

func paymentMethodOrDefault(m string) string {
	switch m {
	case entity.PaymentMethodCash, entity.PaymentMethodCard, entity.PaymentMethodTransfer, entity.PaymentMethodOther:
		return m
	case "":
		return entity.PaymentMethodCash
	default:
		return entity.PaymentMethodOther
	}
}
