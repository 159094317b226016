// seed aplica el esquema inicial y crea la cuenta ADMIN de arranque si no
// existe ninguna. Sin un admin no se pueden crear clientes ni registrar
// compras, así que este comando es el primer paso tras levantar la DB.
//
// Uso: go run ./cmd/seed
// Variables: ADMIN_NAME, ADMIN_EMAIL y ADMIN_PIN (opcional; si falta se
// genera un PIN aleatorio y se imprime una única vez).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/loyalty-api/internal/domain/entity"
	"github.com/jhoicas/loyalty-api/internal/domain/loyalty"
	"github.com/jhoicas/loyalty-api/internal/infrastructure/postgres"
	"github.com/jhoicas/loyalty-api/pkg/config"
)

const migrationPath = "internal/infrastructure/postgres/migrations/001_init.sql"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	ddl, err := os.ReadFile(migrationPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "leer migración: %v\n", err)
		os.Exit(1)
	}
	if _, err := pool.Exec(ctx, string(ddl)); err != nil {
		fmt.Fprintf(os.Stderr, "aplicar esquema: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("esquema aplicado")

	var admins int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM customers WHERE role = $1`, entity.RoleAdmin).Scan(&admins); err != nil {
		fmt.Fprintf(os.Stderr, "contar admins: %v\n", err)
		os.Exit(1)
	}
	if admins > 0 {
		fmt.Println("ya existe una cuenta ADMIN, nada que hacer")
		return
	}

	name := envOr("ADMIN_NAME", "Administrador")
	email := envOr("ADMIN_EMAIL", "admin@example.com")
	pin := os.Getenv("ADMIN_PIN")
	generated := false
	if pin == "" {
		pin = loyalty.RandomPIN()
		generated = true
	} else if !loyalty.ValidPIN(pin) {
		fmt.Fprintln(os.Stderr, "ADMIN_PIN debe tener exactamente 8 dígitos")
		os.Exit(1)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hashear PIN: %v\n", err)
		os.Exit(1)
	}

	repo := postgres.NewCustomerRepository(pool)
	last, err := repo.MaxLoyaltySequence()
	if err != nil {
		fmt.Fprintf(os.Stderr, "leer secuencia: %v\n", err)
		os.Exit(1)
	}
	now := time.Now()
	admin := &entity.Customer{
		ID:         uuid.New().String(),
		LoyaltyID:  loyalty.NextLoyaltyID(last),
		Name:       name,
		Email:      email,
		PINHash:    string(hash),
		Points:     0,
		TotalSpent: decimal.Zero,
		VisitCount: 0,
		Role:       entity.RoleAdmin,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := repo.Create(admin); err != nil {
		fmt.Fprintf(os.Stderr, "crear admin: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("admin creado: loyalty_id=%s email=%s\n", admin.LoyaltyID, admin.Email)
	if generated {
		// Única vez que el PIN aparece en claro; guardarlo ahora.
		fmt.Printf("PIN generado: %s\n", pin)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
