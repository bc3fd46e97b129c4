// Package models содержит доменные структуры клуба массажа:
// пользователей, тарифные планы, подписки, записи на сеансы, платежи
// и бонусный контент, а также вспомогательные типы для приёма JSON-запросов.
package models

import "time"

// User представляет зарегистрированного пользователя клуба.
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        *string   `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DummyRegister используется для приёма данных регистрации из JSON-запроса.
type DummyRegister struct {
	Email     string `json:"email" validate:"required,email"`        // Электронная почта
	Password  string `json:"password" validate:"required,min=8"`     // Пароль (минимум 8 символов)
	FirstName string `json:"first_name" validate:"required"`         // Имя
	LastName  string `json:"last_name" validate:"required"`          // Фамилия
	Phone     string `json:"phone" validate:"omitempty,min=7"`       // Телефон (опционально)
}

// DummyLogin используется для приёма данных входа из JSON-запроса.
type DummyLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// DummyProfileUpdate используется для приёма данных обновления профиля.
type DummyProfileUpdate struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Phone     string `json:"phone" validate:"omitempty,min=7"`
}
