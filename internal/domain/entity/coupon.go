package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Coupon unidad de recompensa canjeable. Se compra con puntos del cliente y
// se canjea una sola vez: Redeemed pasa de false a true y nunca vuelve atrás.
type Coupon struct {
	ID         string
	Code       string // ej. COUP-2024-003, único
	CustomerID string
	Value      decimal.Decimal
	Redeemed   bool
	CreatedAt  time.Time
	RedeemedAt *time.Time // solo se asigna al canjear
}
