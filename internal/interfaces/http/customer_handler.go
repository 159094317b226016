package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/loyalty-api/internal/application/dto"
	apployalty "github.com/jhoicas/loyalty-api/internal/application/loyalty"
	"github.com/jhoicas/loyalty-api/internal/domain/entity"
)

// CustomerHandler maneja las peticiones HTTP de clientes.
type CustomerHandler struct {
	uc *apployalty.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *apployalty.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// isSelfOrAdmin determina si el actor del token puede operar sobre el cliente
// objetivo: o es admin, o el ID del token coincide con el del recurso.
func isSelfOrAdmin(c *fiber.Ctx, customerID string) bool {
	return GetRole(c) == entity.RoleAdmin || GetCustomerID(c) == customerID
}

// pageParams lee limit/offset del query string con los defaults de la API.
func pageParams(c *fiber.Ctx) (int, int) {
	var p dto.PageRequest
	_ = c.QueryParser(&p)
	p.DefaultPage()
	return p.Limit, p.Offset
}

// Create POST /api/customers (solo admin; la ruta ya exige el rol)
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	customer, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// List GET /api/customers?limit=20&offset=0 (solo admin)
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	list, err := h.uc.List(limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/customers/:id (admin o el propio cliente)
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if !isSelfOrAdmin(c, id) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	}
	customer, err := h.uc.GetByID(id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(customer)
}

// Update PUT /api/customers/:id (admin o el propio cliente; role solo admin)
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if !isSelfOrAdmin(c, id) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	}
	var in dto.UpdateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	customer, err := h.uc.Update(id, in, GetRole(c) == entity.RoleAdmin)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(customer)
}

// Delete DELETE /api/customers/:id (solo admin)
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
