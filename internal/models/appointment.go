package models

import "time"

// Статусы записи на сеанс.
const (
	AppointmentStatusScheduled = "scheduled"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusCancelled = "cancelled"
)

// DefaultAppointmentMinutes длительность сеанса по умолчанию.
const DefaultAppointmentMinutes = 60

// Appointment представляет запись пользователя на сеанс массажа.
// SubscriptionID заполнен, если сеанс оплачен кредитом подписки:
// в этом случае при создании записи с подписки был списан ровно один
// массаж, и при отмене записи он возвращается обратно.
type Appointment struct {
	ID              int       `json:"id"`
	UserID          int       `json:"user_id"`
	SubscriptionID  *int      `json:"subscription_id,omitempty"`
	DateTime        time.Time `json:"date_time"`
	DurationMinutes int       `json:"duration_minutes"`
	ServiceType     string    `json:"service_type"`
	Status          string    `json:"status"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// DummyBook используется для приёма данных бронирования сеанса.
// DateTime приходит строкой в формате RFC3339 и парсится вручную.
type DummyBook struct {
	DateTime        string `json:"date_time" validate:"required"`
	DurationMinutes int    `json:"duration_minutes" validate:"omitempty,gt=0"`
	ServiceType     string `json:"service_type" validate:"required"`
	Notes           string `json:"notes" validate:"omitempty"`
	UseSubscription bool   `json:"use_subscription"`
}

// Slot описывает доступное время для записи на сеанс.
type Slot struct {
	DateTime  time.Time `json:"date_time"`
	Available bool      `json:"available"`
}
