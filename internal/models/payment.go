package models

import "time"

// Статусы платежа.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// DefaultPaymentMethod способ оплаты мок-платежа по умолчанию.
const DefaultPaymentMethod = "mock_card"

// PaymentRecord представляет запись журнала платежей. Журнал только
// дополняется: записи никогда не изменяются после создания.
type PaymentRecord struct {
	ID             int       `json:"id"`
	UserID         int       `json:"user_id"`
	SubscriptionID *int      `json:"subscription_id,omitempty"`
	Amount         float64   `json:"amount"`
	Status         string    `json:"status"`
	PaymentMethod  string    `json:"payment_method"`
	TransactionID  string    `json:"transaction_id"`
	CreatedAt      time.Time `json:"created_at"`
}
