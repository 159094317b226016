package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase registro inmutable de una compra. Los puntos ganados se calculan
// al crearla y quedan congelados aunque el rol del cliente cambie después.
type Purchase struct {
	ID            string
	CustomerID    string
	Amount        decimal.Decimal // valor positivo, unidades enteras de moneda
	PointsEarned  int64
	ReceiptNumber string // generado si el llamador no lo provee
	CreatedAt     time.Time
}
