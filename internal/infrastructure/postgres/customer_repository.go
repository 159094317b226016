package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/loyalty-api/internal/domain"
	"github.com/jhoicas/loyalty-api/internal/domain/entity"
	"github.com/jhoicas/loyalty-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, loyalty_id, name, email, phone, pin_hash, points, total_spent, visit_count, role, created_at, updated_at`

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, loyalty_id, name, email, phone, pin_hash, points, total_spent, visit_count, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.LoyaltyID, customer.Name, customer.Email, customer.Phone,
		customer.PINHash, customer.Points, customer.TotalSpent, customer.VisitCount, customer.Role,
		customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByIDForUpdate obtiene el cliente y bloquea la fila (SELECT FOR UPDATE).
// Usado por las secuencias atómicas de compra y cupón; solo tiene efecto
// dentro de una transacción.
func (r *CustomerRepo) GetByIDForUpdate(id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

// GetByLoyaltyID obtiene un cliente por su loyalty ID (login).
func (r *CustomerRepo) GetByLoyaltyID(loyaltyID string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE loyalty_id = $1`
	return r.scanOne(query, loyaltyID)
}

func (r *CustomerRepo) scanOne(query string, arg any) (*entity.Customer, error) {
	var c entity.Customer
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&c.ID, &c.LoyaltyID, &c.Name, &c.Email, &c.Phone, &c.PINHash,
		&c.Points, &c.TotalSpent, &c.VisitCount, &c.Role, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// List lista clientes por loyalty ID con paginación.
func (r *CustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY loyalty_id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(
			&c.ID, &c.LoyaltyID, &c.Name, &c.Email, &c.Phone, &c.PINHash,
			&c.Points, &c.TotalSpent, &c.VisitCount, &c.Role, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// MaxLoyaltySequence devuelve el mayor sufijo numérico de los loyalty IDs
// con prefijo CUST (0 si no hay clientes). Leer dentro de la transacción que
// crea el cliente; el UNIQUE de loyalty_id respalda cualquier carrera.
func (r *CustomerRepo) MaxLoyaltySequence() (int, error) {
	query := `
		SELECT COALESCE(MAX(CAST(SUBSTRING(loyalty_id FROM 5) AS INTEGER)), 0)
		FROM customers WHERE loyalty_id LIKE 'CUST%'`
	var max int
	if err := r.q.QueryRow(context.Background(), query).Scan(&max); err != nil {
		return 0, fmt.Errorf("max loyalty sequence: %w", err)
	}
	return max, nil
}

// Update actualiza todos los campos mutables del cliente.
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, email = $3, phone = $4, pin_hash = $5, points = $6,
		    total_spent = $7, visit_count = $8, role = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, customer.Email, customer.Phone, customer.PINHash,
		customer.Points, customer.TotalSpent, customer.VisitCount, customer.Role, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// Delete elimina un cliente; compras y cupones caen por FK ON DELETE CASCADE.
func (r *CustomerRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}
