package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/StockLedger-api/internal/application/dto"
	"github.com/jhoicas/StockLedger-api/internal/application/inventory"
	"github.com/jhoicas/StockLedger-api/internal/domain/entity"
	"github.com/jhoicas/StockLedger-api/internal/domain/repository"
)

// MovementHandler maneja las peticiones HTTP del libro de movimientos de stock.
type MovementHandler struct {
	engine *inventory.MutationEngine
}

// NewMovementHandler construye el handler.
func NewMovementHandler(engine *inventory.MutationEngine) *MovementHandler {
	return &MovementHandler{engine: engine}
}

// Register godoc
// @Summary      Registrar un movimiento de stock
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, sku (opcional), type, quantity, reference, notes"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	organizationID, userID, ok := requireIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "identidad no presente"})
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	_, mov, err := h.engine.Apply(c.Context(), organizationID, userID, inventory.MutationRequest{
		ProductID: in.ProductID,
		SKU:       in.SKU,
		Type:      in.Type,
		Magnitude: in.Quantity,
		Reference: in.Reference,
		Notes:     in.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// RegisterBatch godoc
// @Summary      Registrar un lote de movimientos (todo-o-nada)
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BatchMovementRequest  true  "líneas del lote"
// @Success      201   {array}   dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements/batch [post]
func (h *MovementHandler) RegisterBatch(c *fiber.Ctx) error {
	organizationID, userID, ok := requireIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "identidad no presente"})
	}
	var in dto.BatchMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	reqs := make([]inventory.MutationRequest, len(in.Movements))
	for i, m := range in.Movements {
		reqs[i] = inventory.MutationRequest{
			ProductID: m.ProductID,
			SKU:       m.SKU,
			Type:      m.Type,
			Magnitude: m.Quantity,
			Reference: m.Reference,
			Notes:     m.Notes,
		}
	}
	_, movements, err := h.engine.ApplyBatch(c.Context(), organizationID, userID, reqs)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.MovementResponse, len(movements))
	for i, m := range movements {
		out[i] = toMovementResponse(m)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar movimientos de stock
// @Tags         stock
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        type        query  string  false  "Filtrar por tipo de movimiento"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	organizationID, _, ok := requireIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "identidad no presente"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	filters := repository.MovementFilters{
		ProductID:    c.Query("product_id"),
		MovementType: c.Query("type"),
	}
	movements, err := h.engine.ListMovements(c.Context(), organizationID, filters, page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementResponse(m))
	}
	return c.JSON(fiber.Map{"count": len(out), "movements": out})
}

// GetByID devuelve un registro del libro.
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	organizationID, _, ok := requireIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "identidad no presente"})
	}
	mov, err := h.engine.GetMovement(c.Context(), organizationID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toMovementResponse(mov))
}

// ProductHistory devuelve el historial de movimientos de un producto.
func (h *MovementHandler) ProductHistory(c *fiber.Ctx) error {
	organizationID, _, ok := requireIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "identidad no presente"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	movements, err := h.engine.ProductHistory(c.Context(), organizationID, c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementResponse(m))
	}
	return c.JSON(fiber.Map{"count": len(out), "movements": out})
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:             m.ID,
		OrganizationID: m.OrganizationID,
		ProductID:      m.ProductID,
		ProductName:    m.ProductName,
		SKU:            m.SKU,
		Type:           m.Type,
		Quantity:       m.Quantity,
		Reference:      m.Reference,
		Notes:          m.Notes,
		PerformedBy:    m.PerformedBy,
		CreatedAt:      m.CreatedAt,
	}
}
