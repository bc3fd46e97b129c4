package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/massage-club/internal/models"
)

func TestStorage_SubscriptionCreditLifecycle(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	userID := factory.CreateUser(t, "anna@example.com", "Anna", "Petrova")
	planID := factory.CreatePlan(t, "Wellness", 159, 2)

	now := time.Now().UTC()
	sub := models.Subscription{
		UserID:            userID,
		PlanID:            planID,
		Status:            models.SubscriptionStatusActive,
		StartDate:         now,
		NextBillingDate:   now.AddDate(0, 1, 0),
		MassagesRemaining: 2,
		CreatedAt:         now,
	}
	payment := models.PaymentRecord{
		UserID:        userID,
		Amount:        159,
		Status:        models.PaymentStatusCompleted,
		PaymentMethod: models.DefaultPaymentMethod,
		TransactionID: "mock_txn_lifecycle",
		CreatedAt:     now,
	}

	created, recorded, err := storage.CreateSubscriptionWithPayment(ctx, sub, payment)
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.Equal(t, 2, factory.MassagesRemaining(t, created.ID))
	assert.Equal(t, created.ID, *recorded.SubscriptionID)

	// Первая запись списывает один сеанс
	first, err := storage.BookWithSubscription(ctx, TestAppointment(userID, now.Add(24*time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, 1, factory.MassagesRemaining(t, created.ID))

	// Отмена возвращает сеанс на счётчик
	require.NoError(t, storage.CancelAppointment(ctx, first.ID, userID))
	assert.Equal(t, 2, factory.MassagesRemaining(t, created.ID))

	// Повторная отмена той же записи отклоняется без изменения счётчика
	err = storage.CancelAppointment(ctx, first.ID, userID)
	assert.ErrorIs(t, err, models.ErrAppointmentAlreadyCancelled)
	assert.Equal(t, 2, factory.MassagesRemaining(t, created.ID))

	// Счётчик исчерпывается за две записи
	_, err = storage.BookWithSubscription(ctx, TestAppointment(userID, now.Add(48*time.Hour)))
	require.NoError(t, err)
	_, err = storage.BookWithSubscription(ctx, TestAppointment(userID, now.Add(72*time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, 0, factory.MassagesRemaining(t, created.ID))

	// Третья запись отклоняется, счётчик не уходит в минус
	_, err = storage.BookWithSubscription(ctx, TestAppointment(userID, now.Add(96*time.Hour)))
	assert.ErrorIs(t, err, models.ErrCreditsExhausted)
	assert.Equal(t, 0, factory.MassagesRemaining(t, created.ID))
}

func TestStorage_DuplicateActiveSubscription(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	userID := factory.CreateUser(t, "anna@example.com", "Anna", "Petrova")
	planID := factory.CreatePlan(t, "Relaxation", 89, 1)
	factory.CreateSubscription(t, userID, planID, models.SubscriptionStatusActive, 1)

	now := time.Now().UTC()
	sub := models.Subscription{
		UserID:            userID,
		PlanID:            planID,
		Status:            models.SubscriptionStatusActive,
		StartDate:         now,
		NextBillingDate:   now.AddDate(0, 1, 0),
		MassagesRemaining: 1,
		CreatedAt:         now,
	}
	payment := models.PaymentRecord{
		UserID:        userID,
		Amount:        89,
		Status:        models.PaymentStatusCompleted,
		PaymentMethod: models.DefaultPaymentMethod,
		TransactionID: "mock_txn_duplicate",
		CreatedAt:     now,
	}

	_, _, err := storage.CreateSubscriptionWithPayment(ctx, sub, payment)
	assert.ErrorIs(t, err, models.ErrDuplicateActiveSubscription)

	// Платеж не должен был записаться: транзакция откатилась целиком
	payments, err := storage.ListPayments(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestStorage_SubscriptionStatusTransitions(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	userID := factory.CreateUser(t, "anna@example.com", "Anna", "Petrova")
	planID := factory.CreatePlan(t, "Wellness", 159, 2)
	subID := factory.CreateSubscription(t, userID, planID, models.SubscriptionStatusActive, 2)

	// active → paused, остаток сохраняется
	count, err := storage.PauseSubscription(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, 2, factory.MassagesRemaining(t, subID))

	// Повторная пауза не находит активной подписки
	count, err = storage.PauseSubscription(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// paused → active
	count, err = storage.ResumeSubscription(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// active → cancelled
	count, err = storage.CancelSubscription(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Отмененная подписка больше не видна как активная
	_, err = storage.GetActiveSubscription(ctx, userID)
	assert.ErrorIs(t, err, models.ErrNoActiveSubscription)

	// Из cancelled возврата нет
	count, err = storage.ResumeSubscription(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestStorage_CancelFromPaused(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	userID := factory.CreateUser(t, "anna@example.com", "Anna", "Petrova")
	planID := factory.CreatePlan(t, "Wellness", 159, 2)
	factory.CreateSubscription(t, userID, planID, models.SubscriptionStatusPaused, 2)

	count, err := storage.CancelSubscription(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStorage_BookWithoutSubscription(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	userID := factory.CreateUser(t, "anna@example.com", "Anna", "Petrova")

	_, err := storage.BookWithSubscription(ctx, TestAppointment(userID, time.Now().UTC().Add(24*time.Hour)))
	assert.ErrorIs(t, err, models.ErrNoActiveSubscription)

	// Разовая запись без подписки создается свободно
	appt, err := storage.CreateAppointment(ctx, TestAppointment(userID, time.Now().UTC().Add(24*time.Hour)))
	require.NoError(t, err)
	assert.Nil(t, appt.SubscriptionID)
}

func TestStorage_CreateUserDuplicateEmail(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	factory.CreateUser(t, "anna@example.com", "Anna", "Petrova")

	now := time.Now().UTC()
	_, err := storage.CreateUser(ctx, models.User{
		Email:        "anna@example.com",
		PasswordHash: "hashedpassword",
		FirstName:    "Other",
		LastName:     "Anna",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	assert.ErrorIs(t, err, models.ErrEmailTaken)
}

func TestStorage_ContentVisibility(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	factory.CreateContent(t, "Self-Massage Basics", "wellness", true, false, base)
	factory.CreateContent(t, "Deep Relaxation Audio", "relaxation", true, true, base.AddDate(0, 0, 1))
	factory.CreateContent(t, "Stretching Routine", "wellness", false, true, base.AddDate(0, 0, 2))

	// Без подписки виден только открытый контент
	free, err := storage.ListContent(ctx, false, "")
	require.NoError(t, err)
	assert.Len(t, free, 1)
	assert.Equal(t, "Self-Massage Basics", free[0].Title)

	// Подписчик видит всю библиотеку, по дате публикации по убыванию
	all, err := storage.ListContent(ctx, true, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Stretching Routine", all[0].Title)

	// Фильтр по категории
	wellness, err := storage.ListContent(ctx, true, "wellness")
	require.NoError(t, err)
	assert.Len(t, wellness, 2)

	// Избранное ограничено лимитом
	featured, err := storage.ListFeaturedContent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, featured, 2)

	latest, err := storage.ListLatestContent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, "Stretching Routine", latest[0].Title)
}

func TestStorage_ResumeWithActiveSubscription(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	userID := factory.CreateUser(t, "marina@example.com", "Marina", "Sokolova")
	planID := factory.CreatePlan(t, "Wellness", 159, 2)

	factory.CreateSubscription(t, userID, planID, models.SubscriptionStatusPaused, 1)
	factory.CreateSubscription(t, userID, planID, models.SubscriptionStatusActive, 2)

	// Возобновление приостановленной подписки при уже активной
	// упирается в частичный уникальный индекс
	_, err := storage.ResumeSubscription(ctx, userID)
	require.ErrorIs(t, err, models.ErrDuplicateActiveSubscription)

	// Приостановленная подписка осталась нетронутой
	active, err := storage.GetActiveSubscription(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, active.MassagesRemaining)
}

func TestStorage_CheckDatabaseReady(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	require.NoError(t, CheckDatabaseReady(storage))
}
