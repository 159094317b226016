package repository

import "github.com/jhoicas/loyalty-api/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	// GetByIDForUpdate obtiene el cliente bloqueando la fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción del TxRunner.
	GetByIDForUpdate(id string) (*entity.Customer, error)
	GetByLoyaltyID(loyaltyID string) (*entity.Customer, error)
	List(limit, offset int) ([]*entity.Customer, error)
	// MaxLoyaltySequence devuelve el mayor sufijo numérico entre los loyalty IDs
	// existentes (0 si no hay clientes). Debe leerse dentro de la transacción
	// que crea el cliente para serializar la asignación.
	MaxLoyaltySequence() (int, error)
	Update(customer *entity.Customer) error
	Delete(id string) error
}
