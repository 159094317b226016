package repository

import (
	"time"

	"github.com/jhoicas/loyalty-api/internal/domain/entity"
)

// CouponRepository define el puerto de persistencia para Coupon.
type CouponRepository interface {
	Create(coupon *entity.Coupon) error
	GetByCode(code string) (*entity.Coupon, error)
	// GetByCodeForUpdate obtiene el cupón bloqueando la fila (SELECT FOR UPDATE);
	// el canje usa este lock para que dos intentos concurrentes no vean ambos
	// redeemed = false.
	GetByCodeForUpdate(code string) (*entity.Coupon, error)
	ListByCustomer(customerID string, limit, offset int) ([]*entity.Coupon, error)
	// LastCode devuelve el máximo código por orden lexicográfico ("" si no hay
	// cupones). Debe leerse dentro de la transacción que crea el cupón.
	LastCode() (string, error)
	MarkRedeemed(id string, at time.Time) error
}
