package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/loyalty-api/internal/application/dto"
	apployalty "github.com/jhoicas/loyalty-api/internal/application/loyalty"
)

// CouponHandler maneja creación, listado, verificación y canje de cupones.
type CouponHandler struct {
	uc *apployalty.CouponUseCase
}

// NewCouponHandler construye el handler.
func NewCouponHandler(uc *apployalty.CouponUseCase) *CouponHandler {
	return &CouponHandler{uc: uc}
}

// Create POST /api/customers/:id/coupons
// Autoservicio estricto: solo el propio dueño del recurso, nunca un tercero;
// el flujo "admin en nombre de un cliente" queda fuera de este endpoint.
func (h *CouponHandler) Create(c *fiber.Ctx) error {
	customerID := c.Params("id")
	if GetCustomerID(c) != customerID {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo el dueño puede crear sus cupones"})
	}
	coupon, err := h.uc.Create(c.Context(), customerID)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(coupon)
}

// ListByCustomer GET /api/customers/:id/coupons (admin o el propio cliente)
func (h *CouponHandler) ListByCustomer(c *fiber.Ctx) error {
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

// Lookup GET /api/coupons/:code (solo admin; la ruta ya exige el rol)
func (h *CouponHandler) Lookup(c *fiber.Ctx) error {
	out, err := h.uc.Lookup(c.Params("code"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Redeem POST /api/coupons/:code/redeem (solo admin)
func (h *CouponHandler) Redeem(c *fiber.Ctx) error {
	out, err := h.uc.Redeem(c.Context(), c.Params("code"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
