package repository

import "github.com/jhoicas/loyalty-api/internal/domain/entity"

// PurchaseRepository define el puerto de persistencia para Purchase.
// Las compras son inmutables: solo se insertan y se listan; el borrado
// ocurre únicamente por cascada al eliminar el cliente.
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	ListByCustomer(customerID string, limit, offset int) ([]*entity.Purchase, error)
}
