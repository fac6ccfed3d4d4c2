package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/StockLedger-api/internal/application/dto"
	"github.com/jhoicas/StockLedger-api/internal/application/purchasing"
	"github.com/jhoicas/StockLedger-api/internal/domain/entity"
)

// PurchaseOrderHandler maneja las peticiones HTTP de órdenes de compra.
type PurchaseOrderHandler struct {
	uc *purchasing.PurchaseOrderUseCase
}

// NewPurchaseOrderHandler construye el handler.
func NewPurchaseOrderHandler(uc *purchasing.PurchaseOrderUseCase) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear una orden de compra (estado draft)
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseOrderRequest  true  "orden de compra"
// @Success      201   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [post]
func (h *PurchaseOrderHandler) Create(c *fiber.Ctx) error {
	organizationID, _, ok := requireIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "identidad no presente"})
	}
	var in dto.CreatePurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	po, err := h.uc.Create(c.Context(), organizationID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPurchaseOrderResponse(po))
}

// GetByID obtiene una orden de compra.
func (h *PurchaseOrderHandler) GetByID(c *fiber.Ctx) error {
	organizationID, _, ok := requireIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "identidad no presente"})
	}
	po, err := h.uc.GetByID(c.Context(), organizationID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toPurchaseOrderResponse(po))
}

// List godoc
// @Summary      Listar órdenes de compra (filtro opcional por estado)
// @Tags         purchase-orders
// @Produce      json
// @Param        status  query  string  false  "Filtrar por estado"
// @Success      200  {array}  dto.PurchaseOrderResponse
// @Router       /api/purchase-orders [get]
func (h *PurchaseOrderHandler) List(c *fiber.Ctx) error {
	organizationID, _, ok := requireIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "identidad no presente"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.List(c.Context(), organizationID, c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, po := range list {
		out = append(out, toPurchaseOrderResponse(po))
	}
	return c.JSON(fiber.Map{"count": len(out), "purchase_orders": out})
}

// Submit pasa la OC a pending_approval.
func (h *PurchaseOrderHandler) Submit(c *fiber.Ctx) error {
	organizationID, _, ok := requireIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "identidad no presente"})
	}
	po, err := h.uc.Submit(c.Context(), organizationID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toPurchaseOrderResponse(po))
}

// Approve aprueba la OC registrando el actor.
func (h *PurchaseOrderHandler) Approve(c *fiber.Ctx) error {
	organizationID, userID, ok := requireIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "identidad no presente"})
	}
	po, err := h.uc.Approve(c.Context(), organizationID, c.Params("id"), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toPurchaseOrderResponse(po))
}

// MarkOrdered marca la OC como enviada al proveedor.
func (h *PurchaseOrderHandler) MarkOrdered(c *fiber.Ctx) error {
	organizationID, _, ok := requireIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "identidad no presente"})
	}
	po, err := h.uc.MarkOrdered(c.Context(), organizationID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toPurchaseOrderResponse(po))
}

// Cancel cancela la OC si aún no fue recibida.
func (h *PurchaseOrderHandler) Cancel(c *fiber.Ctx) error {
	organizationID, _, ok := requireIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "identidad no presente"})
	}
	po, err := h.uc.Cancel(c.Context(), organizationID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toPurchaseOrderResponse(po))
}

// Receive godoc
// @Summary      Recibir la OC (ingresa stock; parcial o total, todo-o-nada)
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true   "ID de la OC"
// @Param        body  body  dto.ReceivePurchaseOrderRequest  false  "líneas parciales (vacío = todo lo pendiente)"
// @Success      200   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/receive [post]
func (h *PurchaseOrderHandler) Receive(c *fiber.Ctx) error {
	organizationID, userID, ok := requireIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "identidad no presente"})
	}
	var in dto.ReceivePurchaseOrderRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	po, err := h.uc.Receive(c.Context(), organizationID, userID, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toPurchaseOrderResponse(po))
}

func toPurchaseOrderResponse(po *entity.PurchaseOrder) dto.PurchaseOrderResponse {
	items := make([]dto.POItemResponse, len(po.Items))
	for i, it := range po.Items {
		items[i] = dto.POItemResponse{
			ProductID:        it.ProductID,
			SKU:              it.SKU,
			ProductName:      it.ProductName,
			QuantityOrdered:  it.QuantityOrdered,
			QuantityReceived: it.QuantityReceived,
			UnitCost:         it.UnitCost,
			Total:            it.Total,
		}
	}
	return dto.PurchaseOrderResponse{
		ID:             po.ID,
		OrganizationID: po.OrganizationID,
		PONumber:       po.PONumber,
		SupplierID:     po.SupplierID,
		SupplierName:   po.SupplierName,
		Status:         po.Status,
		Items:          items,
		Subtotal:       po.Subtotal,
		Tax:            po.Tax,
		Shipping:       po.Shipping,
		Total:          po.Total,
		ExpectedDate:   po.ExpectedDate,
		ReceivedDate:   po.ReceivedDate,
		Notes:          po.Notes,
		ApprovedBy:     po.ApprovedBy,
		CreatedAt:      po.CreatedAt,
		UpdatedAt:      po.UpdatedAt,
	}
}
