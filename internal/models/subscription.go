package models

import "time"

// Статусы подписки. Переходы: active ⇄ paused, active → cancelled,
// paused → cancelled. Статус cancelled — терминальный.
const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusPaused    = "paused"
	SubscriptionStatusCancelled = "cancelled"
)

// Subscription представляет подписку пользователя на тарифный план.
// MassagesRemaining — счётчик оставшихся массажей в текущем месяце,
// никогда не опускается ниже нуля.
type Subscription struct {
	ID                int       `json:"id"`
	UserID            int       `json:"user_id"`
	PlanID            int       `json:"plan_id"`
	Status            string    `json:"status"`
	StartDate         time.Time `json:"start_date"`
	NextBillingDate   time.Time `json:"next_billing_date"`
	MassagesRemaining int       `json:"massages_remaining"`
	CreatedAt         time.Time `json:"created_at"`
}

// SubscriptionWithPlan объединяет подписку с данными её тарифного плана
// для ответа на запрос текущей подписки.
type SubscriptionWithPlan struct {
	Subscription
	Plan Plan `json:"plan"`
}

// DummySubscribe используется для приёма данных оформления подписки.
// PaymentMethod — способ оплаты для мок-платежа, по умолчанию mock_card.
type DummySubscribe struct {
	PlanID        int    `json:"plan_id" validate:"required,gt=0"`
	PaymentMethod string `json:"payment_method" validate:"omitempty"`
}
