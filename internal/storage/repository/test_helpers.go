package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/massage-club/internal/models"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя и возвращает его ID
func (f *TestDataFactory) CreateUser(t *testing.T, email, firstName, lastName string) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO users
		(email, password_hash, first_name, last_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW()) RETURNING id`,
		email, "hashedpassword", firstName, lastName).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreatePlan создает тестовый тарифный план и возвращает его ID
func (f *TestDataFactory) CreatePlan(t *testing.T, name string, price float64, massagesPerMonth int) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO subscription_plans
		(name, description, price_monthly, massages_per_month, duration_minutes, features, is_active)
		VALUES ($1, $2, $3, $4, 60, '[]', true) RETURNING id`,
		name, name+" plan", price, massagesPerMonth).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateSubscription создает тестовую подписку и возвращает её ID
func (f *TestDataFactory) CreateSubscription(t *testing.T, userID, planID int, status string, massagesRemaining int) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO user_subscriptions
		(user_id, plan_id, status, start_date, next_billing_date, massages_remaining, created_at)
		VALUES ($1, $2, $3, NOW(), NOW() + INTERVAL '1 month', $4, NOW()) RETURNING id`,
		userID, planID, status, massagesRemaining).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateContent создает тестовую единицу бонусного контента и возвращает её ID
func (f *TestDataFactory) CreateContent(t *testing.T, title, category string, isFeatured, subscriberOnly bool, publishedAt time.Time) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO bonus_content
		(title, description, content_type, content_url, category, is_featured, subscriber_only, published_at, created_at)
		VALUES ($1, $2, 'video', 'https://example.com/video', $3, $4, $5, $6, NOW()) RETURNING id`,
		title, title+" description", category, isFeatured, subscriberOnly, publishedAt).Scan(&id)
	require.NoError(t, err)
	return id
}

// MassagesRemaining возвращает текущий остаток сеансов подписки
func (f *TestDataFactory) MassagesRemaining(t *testing.T, subscriptionID int) int {
	var remaining int
	err := f.storage.DB.QueryRow(
		`SELECT massages_remaining FROM user_subscriptions WHERE id = $1`,
		subscriptionID).Scan(&remaining)
	require.NoError(t, err)
	return remaining
}

// TestAppointment возвращает запись с заполненными обязательными полями
func TestAppointment(userID int, dateTime time.Time) models.Appointment {
	return models.Appointment{
		UserID:          userID,
		DateTime:        dateTime,
		DurationMinutes: models.DefaultAppointmentMinutes,
		ServiceType:     "swedish",
		Status:          models.AppointmentStatusScheduled,
		CreatedAt:       time.Now().UTC(),
	}
}

func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(3*time.Minute)),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	// Пробуем подключиться несколько раз с ретраями
	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			err = storage.DB.Ping()
			if err == nil {
				break
			}
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	// Создаем таблицы
	_, err = storage.DB.Exec(`
        CREATE TABLE users (
            id SERIAL PRIMARY KEY,
            email TEXT NOT NULL UNIQUE,
            password_hash TEXT NOT NULL,
            first_name TEXT NOT NULL,
            last_name TEXT NOT NULL,
            phone TEXT,
            created_at TIMESTAMPTZ NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL
        );

        CREATE TABLE subscription_plans (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            description TEXT NOT NULL,
            price_monthly DOUBLE PRECISION NOT NULL,
            massages_per_month INT NOT NULL,
            duration_minutes INT NOT NULL,
            features TEXT NOT NULL,
            is_active BOOLEAN NOT NULL DEFAULT true
        );

        CREATE TABLE user_subscriptions (
            id SERIAL PRIMARY KEY,
            user_id INT NOT NULL REFERENCES users(id),
            plan_id INT NOT NULL REFERENCES subscription_plans(id),
            status TEXT NOT NULL DEFAULT 'active',
            start_date TIMESTAMPTZ NOT NULL,
            next_billing_date TIMESTAMPTZ NOT NULL,
            massages_remaining INT NOT NULL CHECK (massages_remaining >= 0),
            created_at TIMESTAMPTZ NOT NULL
        );

        CREATE UNIQUE INDEX uniq_active_subscription_per_user
            ON user_subscriptions (user_id)
            WHERE status = 'active';

        CREATE TABLE appointments (
            id SERIAL PRIMARY KEY,
            user_id INT NOT NULL REFERENCES users(id),
            subscription_id INT REFERENCES user_subscriptions(id),
            date_time TIMESTAMPTZ NOT NULL,
            duration_minutes INT NOT NULL,
            service_type TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT 'scheduled',
            notes TEXT,
            created_at TIMESTAMPTZ NOT NULL
        );

        CREATE TABLE payment_history (
            id SERIAL PRIMARY KEY,
            user_id INT NOT NULL REFERENCES users(id),
            subscription_id INT REFERENCES user_subscriptions(id),
            amount DOUBLE PRECISION NOT NULL,
            status TEXT NOT NULL DEFAULT 'completed',
            payment_method TEXT NOT NULL DEFAULT 'mock_card',
            transaction_id TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL
        );

        CREATE TABLE bonus_content (
            id SERIAL PRIMARY KEY,
            title TEXT NOT NULL,
            description TEXT NOT NULL,
            content_type TEXT NOT NULL,
            content_url TEXT NOT NULL,
            thumbnail_url TEXT,
            duration TEXT,
            category TEXT NOT NULL,
            is_featured BOOLEAN NOT NULL DEFAULT false,
            subscriber_only BOOLEAN NOT NULL DEFAULT true,
            published_at TIMESTAMPTZ NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );
    `)
	require.NoError(t, err, "failed to create tables")

	cleanup := func() {
		_ = storage.DB.Close()
		_ = pgContainer.Terminate(ctx)
	}
	return storage, cleanup
}
