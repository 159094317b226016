package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/loyalty-api/internal/application/auth"
	apployalty "github.com/jhoicas/loyalty-api/internal/application/loyalty"
	"github.com/jhoicas/loyalty-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CustomerUC *apployalty.CustomerUseCase
	PurchaseUC *apployalty.PurchaseUseCase
	CouponUC   *apployalty.CouponUseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", adminOnly, customerHandler.Create)
	customers.Get("/", adminOnly, customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", adminOnly, customerHandler.Delete)

	// Purchases
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	protected.Post("/purchases", adminOnly, purchaseHandler.Record)
	customers.Get("/:id/purchases", purchaseHandler.ListByCustomer)

	// Coupons
	couponHandler := NewCouponHandler(deps.CouponUC)
	customers.Post("/:id/coupons", couponHandler.Create)
	customers.Get("/:id/coupons", couponHandler.ListByCustomer)
	coupons := protected.Group("/coupons")
	coupons.Get("/:code", adminOnly, couponHandler.Lookup)
	coupons.Post("/:code/redeem", adminOnly, couponHandler.Redeem)
}
