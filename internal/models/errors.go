package models

import "errors"

// Доменные ошибки бизнес-операций. Обработчики сопоставляют их
// с HTTP-статусами через errors.Is, не сворачивая в общую ошибку.
var (
	// Отсутствующие записи.
	ErrUserNotFound        = errors.New("user not found")
	ErrPlanNotFound        = errors.New("plan not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrContentNotFound     = errors.New("content not found")

	// Конфликты состояния.
	ErrEmailTaken                  = errors.New("email already registered")
	ErrDuplicateActiveSubscription = errors.New("user already has an active subscription")
	ErrNoActiveSubscription        = errors.New("no active subscription found")
	ErrNoPausedSubscription        = errors.New("no paused subscription found")
	ErrAppointmentAlreadyCancelled = errors.New("appointment is already cancelled")

	// Некорректный ввод.
	ErrInvalidDateTime = errors.New("invalid date_time format")

	// Доступ и ресурсы.
	ErrSubscriptionRequired = errors.New("subscription required")
	ErrCreditsExhausted     = errors.New("no massages remaining in subscription")
	ErrInvalidCredentials   = errors.New("invalid email or password")
)
