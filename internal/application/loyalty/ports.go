package loyalty

import (
	"context"

	"github.com/jhoicas/loyalty-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repos de
// fidelización atados a ella. Las tres secuencias atómicas del sistema
// (registrar compra, crear cupón, canjear cupón) pasan por aquí: o todos los
// efectos del callback se confirman, o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		customerRepo repository.CustomerRepository,
		purchaseRepo repository.PurchaseRepository,
		couponRepo repository.CouponRepository,
	) error) error
}
