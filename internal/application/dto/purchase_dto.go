package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordPurchaseRequest registro de una compra (solo admin).
// ReceiptNumber es opcional: si viene vacío se genera uno.
type RecordPurchaseRequest struct {
	CustomerID    string          `json:"customer_id"`
	Amount        decimal.Decimal `json:"amount"`
	ReceiptNumber string          `json:"receipt_number,omitempty"`
}

// PurchaseResponse proyección de una compra registrada.
type PurchaseResponse struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customer_id"`
	Amount        decimal.Decimal `json:"amount"`
	PointsEarned  int64           `json:"points_earned"`
	ReceiptNumber string          `json:"receipt_number"`
	CreatedAt     time.Time       `json:"created_at"`
}
