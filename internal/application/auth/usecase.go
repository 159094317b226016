package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/loyalty-api/internal/application/dto"
	apployalty "github.com/jhoicas/loyalty-api/internal/application/loyalty"
	"github.com/jhoicas/loyalty-api/internal/domain"
	"github.com/jhoicas/loyalty-api/internal/domain/repository"
	"github.com/jhoicas/loyalty-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase caso de uso de autenticación: login con loyalty ID + PIN.
type AuthUseCase struct {
	customers repository.CustomerRepository
	jwtCfg    JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(customers repository.CustomerRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{customers: customers, jwtCfg: jwtCfg}
}

// Login verifica loyalty ID + PIN, genera JWT y retorna token + cliente.
// Loyalty ID inexistente y PIN incorrecto devuelven el mismo ErrUnauthorized:
// la respuesta no revela cuál de los dos falló.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.LoyaltyID == "" || in.PIN == "" {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customers.GetByLoyaltyID(in.LoyaltyID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(customer.PINHash), []byte(in.PIN)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, customer.ID, customer.LoyaltyID, customer.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:    token,
		Customer: *apployalty.ToCustomerResponse(customer),
	}, nil
}
