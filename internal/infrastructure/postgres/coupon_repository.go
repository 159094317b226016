package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/loyalty-api/internal/domain"
	"github.com/jhoicas/loyalty-api/internal/domain/entity"
	"github.com/jhoicas/loyalty-api/internal/domain/repository"
)

var _ repository.CouponRepository = (*CouponRepo)(nil)

// CouponRepo implementación de CouponRepository (usable con pool o tx).
type CouponRepo struct {
	q Querier
}

// NewCouponRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCouponRepository(q Querier) *CouponRepo {
	return &CouponRepo{q: q}
}

const couponColumns = `id, code, customer_id, value, redeemed, created_at, redeemed_at`

// Create persiste un nuevo cupón. Una colisión del UNIQUE de code se mapea a
// ErrDuplicate para que el caso de uso reintente con el siguiente número.
func (r *CouponRepo) Create(coupon *entity.Coupon) error {
	query := `
		INSERT INTO coupons (id, code, customer_id, value, redeemed, created_at, redeemed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		coupon.ID, coupon.Code, coupon.CustomerID, coupon.Value, coupon.Redeemed,
		coupon.CreatedAt, coupon.RedeemedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert coupon: %w", err)
	}
	return nil
}

// GetByCode obtiene un cupón por código.
func (r *CouponRepo) GetByCode(code string) (*entity.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE code = $1`
	return r.scanOne(query, code)
}

// GetByCodeForUpdate obtiene el cupón bloqueando la fila (SELECT FOR UPDATE).
// El canje usa este lock para que dos intentos concurrentes produzcan
// exactamente un éxito.
func (r *CouponRepo) GetByCodeForUpdate(code string) (*entity.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE code = $1 FOR UPDATE`
	return r.scanOne(query, code)
}

func (r *CouponRepo) scanOne(query string, arg any) (*entity.Coupon, error) {
	var c entity.Coupon
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&c.ID, &c.Code, &c.CustomerID, &c.Value, &c.Redeemed, &c.CreatedAt, &c.RedeemedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get coupon: %w", err)
	}
	return &c, nil
}

// ListByCustomer lista los cupones de un cliente, más recientes primero.
func (r *CouponRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE customer_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list coupons: %w", err)
	}
	defer rows.Close()
	var list []*entity.Coupon
	for rows.Next() {
		var c entity.Coupon
		if err := rows.Scan(&c.ID, &c.Code, &c.CustomerID, &c.Value, &c.Redeemed, &c.CreatedAt, &c.RedeemedAt); err != nil {
			return nil, fmt.Errorf("scan coupon: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// LastCode devuelve el máximo código por orden lexicográfico ("" si no hay
// cupones). El orden por string reinicia la secuencia al cambiar de año.
func (r *CouponRepo) LastCode() (string, error) {
	var code string
	err := r.q.QueryRow(context.Background(), `SELECT COALESCE(MAX(code), '') FROM coupons`).Scan(&code)
	if err != nil {
		return "", fmt.Errorf("last coupon code: %w", err)
	}
	return code, nil
}

// MarkRedeemed marca el cupón como canjeado con su timestamp.
func (r *CouponRepo) MarkRedeemed(id string, at time.Time) error {
	query := `UPDATE coupons SET redeemed = TRUE, redeemed_at = $2 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, at)
	if err != nil {
		return fmt.Errorf("mark coupon redeemed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCouponNotFound
	}
	return nil
}
