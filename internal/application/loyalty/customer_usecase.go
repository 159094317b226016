package loyalty

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/loyalty-api/internal/application/dto"
	"github.com/jhoicas/loyalty-api/internal/domain"
	"github.com/jhoicas/loyalty-api/internal/domain/entity"
	"github.com/jhoicas/loyalty-api/internal/domain/loyalty"
	"github.com/jhoicas/loyalty-api/internal/domain/repository"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

var validRoles = map[string]bool{
	entity.RoleNormal: true,
	entity.RoleLoyal:  true,
	entity.RoleOwner:  true,
	entity.RoleAdmin:  true,
}

// CustomerUseCase altas, consultas, actualización y baja de clientes.
type CustomerUseCase struct {
	repo repository.CustomerRepository
	tx   TxRunner
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, tx TxRunner) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, tx: tx}
}

// Create crea un cliente con rol NORMAL y 0 puntos. El loyalty ID se asigna
// leyendo el último número dentro de la misma transacción que inserta, para
// serializar la asignación bajo creaciones concurrentes. La respuesta incluye
// el PIN en claro por única vez; a partir de aquí solo existe su hash bcrypt.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" || in.Email == "" {
		return nil, domain.ErrInvalidInput
	}
	if !emailPattern.MatchString(in.Email) {
		return nil, domain.ErrInvalidInput
	}
	pin := in.PIN
	if pin == "" {
		pin = loyalty.RandomPIN()
	} else if !loyalty.ValidPIN(pin) {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var customer *entity.Customer
	err = uc.tx.Run(ctx, func(
		customerRepo repository.CustomerRepository,
		_ repository.PurchaseRepository,
		_ repository.CouponRepository,
	) error {
		last, err := customerRepo.MaxLoyaltySequence()
		if err != nil {
			return err
		}
		now := time.Now()
		customer = &entity.Customer{
			ID:         uuid.New().String(),
			LoyaltyID:  loyalty.NextLoyaltyID(last),
			Name:       in.Name,
			Email:      in.Email,
			Phone:      in.Phone,
			PINHash:    string(hash),
			Points:     0,
			TotalSpent: decimal.Zero,
			VisitCount: 0,
			Role:       entity.RoleNormal,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		return customerRepo.Create(customer)
	})
	if err != nil {
		return nil, err
	}
	out := ToCustomerResponse(customer)
	out.PIN = pin
	return out, nil
}

// GetByID obtiene un cliente por ID.
func (uc *CustomerUseCase) GetByID(id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}
	return ToCustomerResponse(customer), nil
}

// List lista clientes con paginación.
func (uc *CustomerUseCase) List(limit, offset int) ([]*dto.CustomerResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, ToCustomerResponse(c))
	}
	return out, nil
}

// Update actualiza campos de perfil. El campo role solo se aplica cuando
// actorIsAdmin es true: la auto-actualización del cliente lo excluye siempre.
func (uc *CustomerUseCase) Update(id string, in dto.UpdateCustomerRequest, actorIsAdmin bool) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		customer.Name = *in.Name
	}
	if in.Email != nil {
		if !emailPattern.MatchString(*in.Email) {
			return nil, domain.ErrInvalidInput
		}
		customer.Email = *in.Email
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.Role != nil {
		if !actorIsAdmin {
			return nil, domain.ErrForbidden
		}
		if !validRoles[*in.Role] {
			return nil, domain.ErrInvalidInput
		}
		customer.Role = *in.Role
	}
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	return ToCustomerResponse(customer), nil
}

// Delete elimina un cliente; compras y cupones caen por cascada (FK).
func (uc *CustomerUseCase) Delete(id string) error {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrCustomerNotFound
	}
	return uc.repo.Delete(id)
}

// ToCustomerResponse proyecta la entidad al DTO público. El hash del PIN
// nunca se copia.
func ToCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:         c.ID,
		LoyaltyID:  c.LoyaltyID,
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		Points:     c.Points,
		TotalSpent: c.TotalSpent,
		VisitCount: c.VisitCount,
		Role:       c.Role,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
