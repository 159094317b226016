package loyalty

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/loyalty-api/internal/application/dto"
	"github.com/jhoicas/loyalty-api/internal/domain"
	"github.com/jhoicas/loyalty-api/internal/domain/entity"
	"github.com/jhoicas/loyalty-api/internal/domain/loyalty"
	"github.com/jhoicas/loyalty-api/internal/domain/repository"
)

// CouponUseCase intercambio de puntos por cupones y máquina de estados de canje.
type CouponUseCase struct {
	coupons   repository.CouponRepository
	customers repository.CustomerRepository
	tx        TxRunner
}

// NewCouponUseCase construye el caso de uso.
func NewCouponUseCase(coupons repository.CouponRepository, customers repository.CustomerRepository, tx TxRunner) *CouponUseCase {
	return &CouponUseCase{coupons: coupons, customers: customers, tx: tx}
}

// Create emite un cupón para el cliente descontando 100 puntos, todo en una
// transacción: el saldo se verifica sobre la fila bloqueada (FOR UPDATE), por
// lo que dos peticiones concurrentes con exactamente 100 puntos producen a lo
// sumo un cupón. El código se deriva del máximo existente dentro de la misma
// transacción. Si el insert choca con el UNIQUE de code es porque otro creador
// confirmó primero el mismo número; PostgreSQL deja la transacción abortada
// (25P02) y ninguna sentencia posterior puede ejecutarse en ella, así que el
// reintento corre la secuencia completa en una transacción nueva, que ya ve el
// código confirmado por el ganador y deriva el siguiente.
func (uc *CouponUseCase) Create(ctx context.Context, customerID string) (*dto.CouponResponse, error) {
	coupon, err := uc.create(ctx, customerID)
	if errors.Is(err, domain.ErrDuplicate) {
		coupon, err = uc.create(ctx, customerID)
	}
	if err != nil {
		return nil, err
	}
	return toCouponResponse(coupon), nil
}

func (uc *CouponUseCase) create(ctx context.Context, customerID string) (*entity.Coupon, error) {
	var coupon *entity.Coupon
	err := uc.tx.Run(ctx, func(
		customerRepo repository.CustomerRepository,
		_ repository.PurchaseRepository,
		couponRepo repository.CouponRepository,
	) error {
		customer, err := customerRepo.GetByIDForUpdate(customerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrCustomerNotFound
		}
		if customer.Points < loyalty.CouponCostPoints {
			return domain.ErrInsufficientPoints
		}

		last, err := couponRepo.LastCode()
		if err != nil {
			return err
		}
		now := time.Now()
		coupon = &entity.Coupon{
			ID:         uuid.New().String(),
			Code:       loyalty.NextCouponCode(loyalty.CouponSequence(last), now.Year()),
			CustomerID: customer.ID,
			Value:      loyalty.CouponValue(),
			Redeemed:   false,
			CreatedAt:  now,
		}
		// El insert va antes del descuento: si colisiona, la transacción se
		// descarta sin haber tocado al cliente.
		if err := couponRepo.Create(coupon); err != nil {
			return err
		}

		customer.Points -= loyalty.CouponCostPoints
		customer.UpdatedAt = now
		return customerRepo.Update(customer)
	})
	if err != nil {
		return nil, err
	}
	return coupon, nil
}

// Lookup busca un cupón por código y devuelve también la identidad mínima del
// dueño. Lectura pura: no muta estado aunque el cupón ya esté canjeado; el
// llamador decide cómo reaccionar.
func (uc *CouponUseCase) Lookup(code string) (*dto.CouponLookupResponse, error) {
	coupon, err := uc.coupons.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, domain.ErrCouponNotFound
	}
	owner, err := uc.customers.GetByID(coupon.CustomerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrCustomerNotFound
	}
	return &dto.CouponLookupResponse{
		Coupon: *toCouponResponse(coupon),
		Owner: dto.CouponOwner{
			CustomerID: owner.ID,
			LoyaltyID:  owner.LoyaltyID,
			Name:       owner.Name,
		},
	}, nil
}

// Redeem canjea un cupón: transición única redeemed false -> true con
// redeemed_at. El chequeo y la escritura ocurren sobre la fila bloqueada, de
// modo que dos canjes concurrentes del mismo código terminan en exactamente
// un éxito y un ErrCouponRedeemed. El canje no toca puntos ni otros campos
// del cliente.
func (uc *CouponUseCase) Redeem(ctx context.Context, code string) (*dto.CouponResponse, error) {
	var coupon *entity.Coupon
	err := uc.tx.Run(ctx, func(
		_ repository.CustomerRepository,
		_ repository.PurchaseRepository,
		couponRepo repository.CouponRepository,
	) error {
		var err error
		coupon, err = couponRepo.GetByCodeForUpdate(code)
		if err != nil {
			return err
		}
		if coupon == nil {
			return domain.ErrCouponNotFound
		}
		if coupon.Redeemed {
			return domain.ErrCouponRedeemed
		}
		now := time.Now()
		if err := couponRepo.MarkRedeemed(coupon.ID, now); err != nil {
			return err
		}
		coupon.Redeemed = true
		coupon.RedeemedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCouponResponse(coupon), nil
}

// ListByCustomer lista los cupones de un cliente, más recientes primero.
func (uc *CouponUseCase) ListByCustomer(customerID string, limit, offset int) ([]*dto.CouponResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.coupons.ListByCustomer(customerID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CouponResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCouponResponse(c))
	}
	return out, nil
}

func toCouponResponse(c *entity.Coupon) *dto.CouponResponse {
	if c == nil {
		return nil
	}
	return &dto.CouponResponse{
		ID:         c.ID,
		Code:       c.Code,
		CustomerID: c.CustomerID,
		Value:      c.Value,
		Redeemed:   c.Redeemed,
		CreatedAt:  c.CreatedAt,
		RedeemedAt: c.RedeemedAt,
	}
}
