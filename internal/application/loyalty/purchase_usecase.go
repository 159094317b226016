package loyalty

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/loyalty-api/internal/application/dto"
	"github.com/jhoicas/loyalty-api/internal/domain"
	"github.com/jhoicas/loyalty-api/internal/domain/entity"
	"github.com/jhoicas/loyalty-api/internal/domain/loyalty"
	"github.com/jhoicas/loyalty-api/internal/domain/repository"
)

// PurchaseUseCase registro de compras y consulta de historial.
type PurchaseUseCase struct {
	purchases repository.PurchaseRepository
	tx        TxRunner
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(purchases repository.PurchaseRepository, tx TxRunner) *PurchaseUseCase {
	return &PurchaseUseCase{purchases: purchases, tx: tx}
}

// Record registra una compra y aplica sus cinco efectos como unidad atómica:
// inserta la compra con los puntos calculados, suma puntos y monto al cliente,
// incrementa el contador de visitas y evalúa la promoción de rol sobre el
// contador ya incrementado. La fila del cliente se bloquea (FOR UPDATE) para
// que compras y cupones concurrentes no intercalen lecturas del saldo.
func (uc *PurchaseUseCase) Record(ctx context.Context, in dto.RecordPurchaseRequest) (*dto.PurchaseResponse, error) {
	if in.CustomerID == "" || !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	var purchase *entity.Purchase
	err := uc.tx.Run(ctx, func(
		customerRepo repository.CustomerRepository,
		purchaseRepo repository.PurchaseRepository,
		_ repository.CouponRepository,
	) error {
		customer, err := customerRepo.GetByIDForUpdate(in.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrCustomerNotFound
		}

		earned := loyalty.PointsForPurchase(in.Amount, customer.Role)
		receipt := in.ReceiptNumber
		if receipt == "" {
			receipt = loyalty.RandomReceiptNumber()
		}
		now := time.Now()
		purchase = &entity.Purchase{
			ID:            uuid.New().String(),
			CustomerID:    customer.ID,
			Amount:        in.Amount,
			PointsEarned:  earned,
			ReceiptNumber: receipt,
			CreatedAt:     now,
		}
		if err := purchaseRepo.Create(purchase); err != nil {
			return err
		}

		customer.Points += earned
		customer.TotalSpent = customer.TotalSpent.Add(in.Amount)
		customer.VisitCount++
		customer.Role = loyalty.RoleAfterVisit(customer.Role, customer.VisitCount)
		customer.UpdatedAt = now
		return customerRepo.Update(customer)
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseResponse(purchase), nil
}

// ListByCustomer lista las compras de un cliente, más recientes primero.
func (uc *PurchaseUseCase) ListByCustomer(customerID string, limit, offset int) ([]*dto.PurchaseResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.purchases.ListByCustomer(customerID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPurchaseResponse(p))
	}
	return out, nil
}

func toPurchaseResponse(p *entity.Purchase) *dto.PurchaseResponse {
	if p == nil {
		return nil
	}
	return &dto.PurchaseResponse{
		ID:            p.ID,
		CustomerID:    p.CustomerID,
		Amount:        p.Amount,
		PointsEarned:  p.PointsEarned,
		ReceiptNumber: p.ReceiptNumber,
		CreatedAt:     p.CreatedAt,
	}
}
