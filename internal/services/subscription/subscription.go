// Package services содержит бизнес-логику жизненного цикла подписки:
// оформление с мок-платежом, отмену, приостановку и возобновление,
// а также чтение каталога планов и журнала платежей.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/massage-club/internal/models"
)

// SubscriptionRepository определяет методы для работы с подписками в хранилище.
type SubscriptionRepository interface {
	// GetPlan возвращает тарифный план по ID или models.ErrPlanNotFound.
	GetPlan(ctx context.Context, planID int) (*models.Plan, error)
	// ListActivePlans возвращает каталог активных планов.
	ListActivePlans(ctx context.Context) ([]*models.Plan, error)
	// CreateSubscriptionWithPayment атомарно вставляет подписку и платеж.
	CreateSubscriptionWithPayment(ctx context.Context, sub models.Subscription, payment models.PaymentRecord) (*models.Subscription, *models.PaymentRecord, error)
	// CancelSubscription переводит подписку в cancelled, возвращает число строк.
	CancelSubscription(ctx context.Context, userID int) (int, error)
	// PauseSubscription переводит активную подписку в paused.
	PauseSubscription(ctx context.Context, userID int) (int, error)
	// ResumeSubscription возвращает приостановленную подписку в active.
	ResumeSubscription(ctx context.Context, userID int) (int, error)
	// GetActiveSubscriptionWithPlan возвращает активную подписку с планом.
	GetActiveSubscriptionWithPlan(ctx context.Context, userID int) (*models.SubscriptionWithPlan, error)
	// ListPayments возвращает журнал платежей пользователя.
	ListPayments(ctx context.Context, userID int) ([]*models.PaymentRecord, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
}

const plansCacheKey = "plans:active"

// SubscriptionService реализует бизнес-логику жизненного цикла подписки.
type SubscriptionService struct {
	repo  SubscriptionRepository
	cache Cache
	log   *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, cache Cache, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Subscribe оформляет подписку пользователя на тарифный план.
// Счётчик массажей устанавливается в квоту плана, следующая дата
// списания — через месяц. Мок-платёж на сумму плана записывается
// в той же транзакции, что и подписка: при ошибке записи платежа
// подписка не сохраняется.
func (s *SubscriptionService) Subscribe(ctx context.Context, userID int, req models.DummySubscribe) (*models.SubscriptionWithPlan, *models.PaymentRecord, error) {
	plan, err := s.repo.GetPlan(ctx, req.PlanID)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	sub := models.Subscription{
		UserID:            userID,
		PlanID:            plan.ID,
		Status:            models.SubscriptionStatusActive,
		StartDate:         now,
		NextBillingDate:   now.AddDate(0, 1, 0),
		MassagesRemaining: plan.MassagesPerMonth,
		CreatedAt:         now,
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.DefaultPaymentMethod
	}
	payment := models.PaymentRecord{
		UserID:        userID,
		Amount:        plan.PriceMonthly,
		Status:        models.PaymentStatusCompleted,
		PaymentMethod: paymentMethod,
		TransactionID: "mock_txn_" + uuid.NewString(),
		CreatedAt:     now,
	}

	created, recorded, err := s.repo.CreateSubscriptionWithPayment(ctx, sub, payment)
	if err != nil {
		return nil, nil, err
	}

	s.log.Info("created new subscription",
		slog.Int("id", created.ID),
		slog.Int("plan_id", plan.ID),
		slog.String("transaction_id", recorded.TransactionID))

	return &models.SubscriptionWithPlan{Subscription: *created, Plan: *plan}, recorded, nil
}

// Cancel отменяет подписку пользователя. Разрешена отмена как активной,
// так и приостановленной подписки; строка не удаляется, счётчик
// массажей не изменяется.
func (s *SubscriptionService) Cancel(ctx context.Context, userID int) error {
	count, err := s.repo.CancelSubscription(ctx, userID)
	if err != nil {
		return err
	}
	if count == 0 {
		return models.ErrNoActiveSubscription
	}
	s.log.Info("cancelled subscription", slog.Int("user_id", userID))
	return nil
}

// Pause приостанавливает активную подписку пользователя.
func (s *SubscriptionService) Pause(ctx context.Context, userID int) error {
	count, err := s.repo.PauseSubscription(ctx, userID)
	if err != nil {
		return err
	}
	if count == 0 {
		return models.ErrNoActiveSubscription
	}
	s.log.Info("paused subscription", slog.Int("user_id", userID))
	return nil
}

// Resume возобновляет приостановленную подписку пользователя.
// Счётчик массажей при паузе и возобновлении не изменяется.
func (s *SubscriptionService) Resume(ctx context.Context, userID int) error {
	count, err := s.repo.ResumeSubscription(ctx, userID)
	if err != nil {
		return err
	}
	if count == 0 {
		return models.ErrNoPausedSubscription
	}
	s.log.Info("resumed subscription", slog.Int("user_id", userID))
	return nil
}

// My возвращает текущую активную подписку пользователя вместе с планом
// или models.ErrNoActiveSubscription.
func (s *SubscriptionService) My(ctx context.Context, userID int) (*models.SubscriptionWithPlan, error) {
	return s.repo.GetActiveSubscriptionWithPlan(ctx, userID)
}

// ListPlans возвращает каталог активных тарифных планов, используя кеш.
func (s *SubscriptionService) ListPlans(ctx context.Context) ([]*models.Plan, error) {
	var plans []*models.Plan
	found, err := s.cache.Get(plansCacheKey, &plans)
	if err != nil {
		s.log.Warn("failed to read plans from cache", slog.Any("err", err))
	}
	if found {
		return plans, nil
	}

	plans, err = s.repo.ListActivePlans(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(plansCacheKey, plans, 10*time.Minute); err != nil {
		s.log.Warn("failed to cache plans", slog.String("key", plansCacheKey), slog.Any("err", err))
	}
	return plans, nil
}

// PaymentHistory возвращает журнал платежей пользователя.
func (s *SubscriptionService) PaymentHistory(ctx context.Context, userID int) ([]*models.PaymentRecord, error) {
	return s.repo.ListPayments(ctx, userID)
}
