package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/loyalty-api/internal/application/dto"
	apployalty "github.com/jhoicas/loyalty-api/internal/application/loyalty"
)

// PurchaseHandler maneja el registro y consulta de compras.
type PurchaseHandler struct {
	uc *apployalty.PurchaseUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *apployalty.PurchaseUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

// Record POST /api/purchases (solo admin; la ruta ya exige el rol)
func (h *PurchaseHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordPurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	purchase, err := h.uc.Record(c.Context(), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(purchase)
}

// ListByCustomer GET /api/customers/:id/purchases (admin o el propio cliente)
func (h *PurchaseHandler) ListByCustomer(c *fiber.Ctx) error {
	customerID := c.Params("id")
	if !isSelfOrAdmin(c, customerID) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	}
	limit, offset := pageParams(c)
	list, err := h.uc.ListByCustomer(customerID, limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(list)
}
