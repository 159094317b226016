package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Roles válidos para Customer. NORMAL, LOYAL y OWNER forman la escalera de
// promoción por visitas; ADMIN es capacidad administrativa, no un nivel.
const (
	RoleNormal = "NORMAL"
	RoleLoyal  = "LOYAL"
	RoleOwner  = "OWNER"
	RoleAdmin  = "ADMIN"
)

// Customer representa un cliente del programa de fidelización.
type Customer struct {
	ID         string
	LoyaltyID  string // ej. CUST003; inmutable, usado para login
	Name       string
	Email      string
	Phone      string
	PINHash    string // bcrypt hash del PIN de 8 dígitos, nunca plano después de persistir
	Points     int64  // saldo de puntos, nunca negativo
	TotalSpent decimal.Decimal
	VisitCount int
	Role       string // NORMAL, LOYAL, OWNER, ADMIN
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
