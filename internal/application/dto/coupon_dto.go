package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CouponResponse proyección de un cupón.
type CouponResponse struct {
	ID         string          `json:"id"`
	Code       string          `json:"code"`
	CustomerID string          `json:"customer_id"`
	Value      decimal.Decimal `json:"value"`
	Redeemed   bool            `json:"redeemed"`
	CreatedAt  time.Time       `json:"created_at"`
	RedeemedAt *time.Time      `json:"redeemed_at,omitempty"`
}

// CouponOwner identidad mínima del dueño, para la pantalla de verificación.
type CouponOwner struct {
	CustomerID string `json:"customer_id"`
	LoyaltyID  string `json:"loyalty_id"`
	Name       string `json:"name"`
}

// CouponLookupResponse cupón más la proyección de su dueño (verificación admin).
type CouponLookupResponse struct {
	Coupon CouponResponse `json:"coupon"`
	Owner  CouponOwner    `json:"owner"`
}
