package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest alta de cliente (solo admin). Si PIN viene vacío se
// genera uno aleatorio de 8 dígitos.
type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	PIN   string `json:"pin,omitempty"`
}

// UpdateCustomerRequest actualización parcial de perfil. Punteros para
// distinguir "no enviado" de "vaciar". Role solo se honra para actores admin.
type UpdateCustomerRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Role  *string `json:"role,omitempty"`
}

// CustomerResponse proyección pública del cliente. El hash del PIN jamás se
// serializa; el PIN en claro solo viaja en la respuesta de creación.
type CustomerResponse struct {
	ID         string          `json:"id"`
	LoyaltyID  string          `json:"loyalty_id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone,omitempty"`
	Points     int64           `json:"points"`
	TotalSpent decimal.Decimal `json:"total_spent"`
	VisitCount int             `json:"visit_count"`
	Role       string          `json:"role"`
	PIN        string          `json:"pin,omitempty"` // solo en creación
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
