// Package loyalty contiene la lógica pura del programa de fidelización:
// cálculo de puntos por compra, promoción de rol por visitas y generación de
// identificadores legibles. Todas las funciones son deterministas y sin I/O;
// la atomicidad de su aplicación es responsabilidad de la capa de aplicación.
package loyalty

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/loyalty-api/internal/domain/entity"
)

// Umbrales de promoción por visitas. Se evalúan sobre el contador DESPUÉS de
// incrementar por la compra en curso.
const (
	VisitsForLoyal = 20
	VisitsForOwner = 50
)

// Costo y valor fijo del cupón.
const CouponCostPoints = 100

// CouponValue valor nominal del cupón (1000 unidades de moneda).
func CouponValue() decimal.Decimal {
	return decimal.NewFromInt(1000)
}

// Multiplicadores de puntos por rol. Un rol desconocido multiplica por 1.
var pointMultipliers = map[string]decimal.Decimal{
	entity.RoleNormal: decimal.RequireFromString("1.1"),
	entity.RoleLoyal:  decimal.RequireFromString("1.4"),
	entity.RoleOwner:  decimal.RequireFromString("1.7"),
	entity.RoleAdmin:  decimal.NewFromInt(1),
}

var oneHundred = decimal.NewFromInt(100)

// PointsForPurchase calcula los puntos ganados por una compra:
// base = floor(amount / 100), resultado = floor(base * multiplicador(rol)).
// El truncamiento es siempre hacia cero (floor), nunca redondeo al más
// cercano; la aritmética decimal evita ambigüedades de coma flotante.
// Asume amount > 0 (validado aguas arriba).
func PointsForPurchase(amount decimal.Decimal, role string) int64 {
	base := amount.Div(oneHundred).Floor()
	mult, ok := pointMultipliers[role]
	if !ok {
		mult = decimal.NewFromInt(1)
	}
	return base.Mul(mult).Floor().IntPart()
}

// RoleAfterVisit devuelve el rol del cliente tras registrar una visita.
// newVisitCount es el contador ya incrementado, de modo que la compra en
// curso puede disparar la promoción. La función nunca degrada: ADMIN queda
// intacto y un rol promovido no retrocede aunque las visitas se editen.
func RoleAfterVisit(currentRole string, newVisitCount int) string {
	if currentRole == entity.RoleAdmin {
		return entity.RoleAdmin
	}
	switch {
	case newVisitCount >= VisitsForOwner:
		return entity.RoleOwner
	case newVisitCount >= VisitsForLoyal:
		if currentRole == entity.RoleOwner {
			return entity.RoleOwner
		}
		return entity.RoleLoyal
	default:
		return currentRole
	}
}
