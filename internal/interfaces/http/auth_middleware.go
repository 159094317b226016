package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/loyalty-api/internal/application/dto"
	"github.com/jhoicas/loyalty-api/pkg/jwt"
)

// Locals keys para los claims del token en Fiber.
const (
	LocalCustomerID = "customer_id"
	LocalLoyaltyID  = "loyalty_id"
	LocalRole       = "role"
)

// AuthMiddleware valida el Bearer Token JWT y extrae customer ID, loyalty ID
// y rol a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		customerID, loyaltyID, role, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalCustomerID, customerID)
		c.Locals(LocalLoyaltyID, loyaltyID)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// RequireRole devuelve un middleware que solo deja pasar actores cuyo rol del
// token esté en allowedRoles. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 MISSING_ROLE → el token no trae claim de rol (token legacy).
//   - 403 FORBIDDEN    → el rol no está permitido para la ruta.
func RequireRole(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "MISSING_ROLE",
				Message: "el token no incluye rol",
			})
		}
		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: "rol sin permiso para esta operación",
		})
	}
}

// GetCustomerID devuelve el customer ID del contexto (después del middleware de auth).
func GetCustomerID(c *fiber.Ctx) string {
	return localString(c, LocalCustomerID)
}

// GetLoyaltyID devuelve el loyalty ID del contexto (después del middleware de auth).
func GetLoyaltyID(c *fiber.Ctx) string {
	return localString(c, LocalLoyaltyID)
}

// GetRole devuelve el rol del contexto (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	return localString(c, LocalRole)
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
