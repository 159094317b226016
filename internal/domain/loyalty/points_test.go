package loyalty_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/loyalty-api/internal/domain/entity"
	"github.com/jhoicas/loyalty-api/internal/domain/loyalty"
)

// ──────────────────────────────────────────────────────────────────────────────
// PointsForPurchase — vectores de referencia exactos.
//
// Estos valores son el "canario en la mina" del motor de puntos: si alguien
// cambia inadvertidamente el multiplicador de un rol o sustituye el floor por
// un redondeo al más cercano, el test falla de inmediato.
//
//	base = floor(monto / 100)
//	puntos = floor(base * multiplicador)
// ──────────────────────────────────────────────────────────────────────────────

func TestPointsForPurchase_VectoresPorRol(t *testing.T) {
	cases := []struct {
		name   string
		amount int64
		role   string
		want   int64
	}{
		{"NORMAL 2500 -> floor(25*1.1) = 27", 2500, entity.RoleNormal, 27},
		{"LOYAL 2500 -> floor(25*1.4) = 35", 2500, entity.RoleLoyal, 35},
		{"OWNER 2500 -> floor(25*1.7) = 42", 2500, entity.RoleOwner, 42},
		{"ADMIN 2500 -> multiplicador 1.0 = 25", 2500, entity.RoleAdmin, 25},
		{"rol desconocido -> multiplicador 1.0", 2500, "VIP", 25},
		{"NORMAL 100 -> base 1, floor(1.1) = 1", 100, entity.RoleNormal, 1},
		{"monto 99 -> base 0, 0 puntos para cualquier rol", 99, entity.RoleOwner, 0},
		{"NORMAL 199 -> base 1, floor(1.1) = 1", 199, entity.RoleNormal, 1},
		{"LOYAL 1000 -> floor(10*1.4) = 14", 1000, entity.RoleLoyal, 14},
		{"OWNER 999 -> floor(9*1.7) = 15", 999, entity.RoleOwner, 15},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := loyalty.PointsForPurchase(decimal.NewFromInt(tc.amount), tc.role)
			assert.Equal(t, tc.want, got)
		})
	}
}

// El mismo input debe producir siempre el mismo entero (función pura).
func TestPointsForPurchase_Determinista(t *testing.T) {
	amount := decimal.NewFromInt(2500)
	first := loyalty.PointsForPurchase(amount, entity.RoleNormal)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, loyalty.PointsForPurchase(amount, entity.RoleNormal),
			"llamadas repetidas con el mismo input deben dar el mismo resultado")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// RoleAfterVisit — umbrales de promoción y monotonía.
// ──────────────────────────────────────────────────────────────────────────────

func TestRoleAfterVisit_Umbrales(t *testing.T) {
	cases := []struct {
		name   string
		role   string
		visits int
		want   string
	}{
		{"19 visitas no promociona", entity.RoleNormal, 19, entity.RoleNormal},
		{"la visita 20 exacta promociona a LOYAL", entity.RoleNormal, 20, entity.RoleLoyal},
		{"49 visitas sigue LOYAL", entity.RoleLoyal, 49, entity.RoleLoyal},
		{"la visita 50 exacta promociona a OWNER", entity.RoleLoyal, 50, entity.RoleOwner},
		{"NORMAL salta directo a OWNER al cruzar 50", entity.RoleNormal, 50, entity.RoleOwner},
		{"ADMIN nunca cambia por visitas", entity.RoleAdmin, 100, entity.RoleAdmin},
		{"1 visita deja NORMAL", entity.RoleNormal, 1, entity.RoleNormal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, loyalty.RoleAfterVisit(tc.role, tc.visits))
		})
	}
}

// La promoción es unidireccional: aunque un admin edite las visitas hacia
// abajo, un rol ya promovido no retrocede.
func TestRoleAfterVisit_NuncaDegrada(t *testing.T) {
	assert.Equal(t, entity.RoleOwner, loyalty.RoleAfterVisit(entity.RoleOwner, 3),
		"OWNER con visitas editadas a la baja sigue siendo OWNER")
	assert.Equal(t, entity.RoleOwner, loyalty.RoleAfterVisit(entity.RoleOwner, 25),
		"OWNER no vuelve a LOYAL al cruzar 20 de nuevo")
	assert.Equal(t, entity.RoleLoyal, loyalty.RoleAfterVisit(entity.RoleLoyal, 5),
		"LOYAL con pocas visitas no vuelve a NORMAL")
}

// Secuencia completa: un cliente NORMAL acumula visitas y cruza ambos umbrales.
func TestRoleAfterVisit_SecuenciaDeVisitas(t *testing.T) {
	role := entity.RoleNormal
	for visits := 1; visits <= 60; visits++ {
		role = loyalty.RoleAfterVisit(role, visits)
		switch {
		case visits < 20:
			assert.Equal(t, entity.RoleNormal, role, "antes de 20 visitas debe ser NORMAL")
		case visits < 50:
			assert.Equal(t, entity.RoleLoyal, role, "entre 20 y 49 visitas debe ser LOYAL")
		default:
			assert.Equal(t, entity.RoleOwner, role, "desde 50 visitas debe ser OWNER")
		}
	}
}
