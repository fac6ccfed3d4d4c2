package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/StockLedger-api/internal/application/dto"
	"github.com/jhoicas/StockLedger-api/internal/domain"
)

// writeError mapea errores de dominio a respuestas HTTP con código y mensaje.
// Todos son errores recuperables de cara al caller: ninguno deja estado
// parcial (ver motor de mutaciones).
func writeError(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientStockError
	if errors.As(err, &insufficient) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: insufficient.Error(),
		})
	}
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrNoVariants):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NO_VARIANTS", Message: "el producto no tiene variantes"})
	case errors.Is(err, domain.ErrAmbiguousVariant):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "AMBIGUOUS_VARIANT", Message: "se requiere SKU para productos con múltiples variantes"})
	case errors.Is(err, domain.ErrVariantNotFound):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VARIANT_NOT_FOUND", Message: "variante no encontrada para el SKU indicado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe un recurso con ese número"})
	case errors.Is(err, domain.ErrAlreadyReceived):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_RECEIVED", Message: "la orden de compra ya fue recibida"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ILLEGAL_TRANSITION", Message: "transición de estado no permitida"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// requireIdentity valida que el gateway haya inyectado tenant y actor.
func requireIdentity(c *fiber.Ctx) (organizationID, userID string, ok bool) {
	organizationID = GetOrganizationID(c)
	userID = GetUserID(c)
	if organizationID == "" {
		return "", "", false
	}
	return organizationID, userID, true
}
