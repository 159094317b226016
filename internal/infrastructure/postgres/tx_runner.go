package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	apployalty "github.com/jhoicas/loyalty-api/internal/application/loyalty"
	"github.com/jhoicas/loyalty-api/internal/domain/repository"
)

// Ensure TxRunner implements apployalty.TxRunner.
var _ apployalty.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Los SELECT FOR UPDATE de los repos solo surten efecto
// dentro de este envoltorio.
func (r *TxRunner) Run(ctx context.Context, fn func(
	customerRepo repository.CustomerRepository,
	purchaseRepo repository.PurchaseRepository,
	couponRepo repository.CouponRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	customerRepo := NewCustomerRepository(tx)
	purchaseRepo := NewPurchaseRepository(tx)
	couponRepo := NewCouponRepository(tx)

	if err := fn(customerRepo, purchaseRepo, couponRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
