package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/massage-club/internal/models"
)

// GetActiveSubscription возвращает активную подписку пользователя.
// Возвращает models.ErrNoActiveSubscription, если её нет.
func (s *Storage) GetActiveSubscription(ctx context.Context, userID int) (*models.Subscription, error) {
	const op = "storage.GetActiveSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, plan_id, status, start_date, next_billing_date,
			      massages_remaining, created_at
			  FROM user_subscriptions
			  WHERE user_id = $1 AND status = 'active'`
	var sub models.Subscription
	row := s.DB.QueryRowContext(ctx, query, userID)
	if err := row.Scan(&sub.ID, &sub.UserID, &sub.PlanID, &sub.Status, &sub.StartDate,
		&sub.NextBillingDate, &sub.MassagesRemaining, &sub.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNoActiveSubscription
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &sub, nil
}

// GetActiveSubscriptionWithPlan возвращает активную подписку пользователя
// вместе с данными её тарифного плана.
func (s *Storage) GetActiveSubscriptionWithPlan(ctx context.Context, userID int) (*models.SubscriptionWithPlan, error) {
	const op = "storage.GetActiveSubscriptionWithPlan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT s.id, s.user_id, s.plan_id, s.status, s.start_date,
			      s.next_billing_date, s.massages_remaining, s.created_at,
			      p.id, p.name, p.description, p.price_monthly, p.massages_per_month,
			      p.duration_minutes, p.features, p.is_active
			  FROM user_subscriptions s
			  JOIN subscription_plans p ON s.plan_id = p.id
			  WHERE s.user_id = $1 AND s.status = 'active'`
	var result models.SubscriptionWithPlan
	var featuresRaw []byte
	row := s.DB.QueryRowContext(ctx, query, userID)
	if err := row.Scan(&result.ID, &result.UserID, &result.PlanID, &result.Status,
		&result.StartDate, &result.NextBillingDate, &result.MassagesRemaining, &result.CreatedAt,
		&result.Plan.ID, &result.Plan.Name, &result.Plan.Description, &result.Plan.PriceMonthly,
		&result.Plan.MassagesPerMonth, &result.Plan.DurationMinutes, &featuresRaw,
		&result.Plan.IsActive); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNoActiveSubscription
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := json.Unmarshal(featuresRaw, &result.Plan.Features); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// HasActiveSubscription сообщает, есть ли у пользователя активная подписка.
// Приостановленные и отменённые подписки не считаются.
func (s *Storage) HasActiveSubscription(ctx context.Context, userID int) (bool, error) {
	const op = "storage.HasActiveSubscription"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS (
			      SELECT 1 FROM user_subscriptions
			      WHERE user_id = $1 AND status = 'active')`
	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// CreateSubscriptionWithPayment вставляет подписку и запись мок-платежа
// в одной транзакции: при ошибке записи платежа подписка не сохраняется.
// Частичный уникальный индекс по (user_id) WHERE status = 'active'
// гарантирует не более одной активной подписки на пользователя,
// нарушение возвращается как models.ErrDuplicateActiveSubscription.
func (s *Storage) CreateSubscriptionWithPayment(ctx context.Context, sub models.Subscription, payment models.PaymentRecord) (*models.Subscription, *models.PaymentRecord, error) {
	const op = "storage.CreateSubscriptionWithPayment"
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	subQuery := `INSERT INTO user_subscriptions (user_id, plan_id, status, start_date,
			         next_billing_date, massages_remaining, created_at)
			     VALUES ($1, $2, $3, $4, $5, $6, $7)
			     RETURNING id`
	if err = tx.QueryRowContext(ctx, subQuery,
		sub.UserID, sub.PlanID, sub.Status, sub.StartDate, sub.NextBillingDate,
		sub.MassagesRemaining, sub.CreatedAt).Scan(&sub.ID); err != nil {
		if isUniqueViolation(err) {
			return nil, nil, models.ErrDuplicateActiveSubscription
		}
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	payment.SubscriptionID = &sub.ID
	payQuery := `INSERT INTO payment_history (user_id, subscription_id, amount, status,
			         payment_method, transaction_id, created_at)
			     VALUES ($1, $2, $3, $4, $5, $6, $7)
			     RETURNING id`
	if err = tx.QueryRowContext(ctx, payQuery,
		payment.UserID, payment.SubscriptionID, payment.Amount, payment.Status,
		payment.PaymentMethod, payment.TransactionID, payment.CreatedAt).Scan(&payment.ID); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	return &sub, &payment, nil
}

// CancelSubscription переводит подписку пользователя в статус cancelled.
// Отмена разрешена и из active, и из paused. Возвращает количество
// изменённых строк; 0 означает, что отменять нечего.
func (s *Storage) CancelSubscription(ctx context.Context, userID int) (int, error) {
	const op = "storage.CancelSubscription"
	return s.transitionStatus(ctx, op, userID,
		[]string{models.SubscriptionStatusActive, models.SubscriptionStatusPaused},
		models.SubscriptionStatusCancelled)
}

// PauseSubscription переводит активную подписку в статус paused.
func (s *Storage) PauseSubscription(ctx context.Context, userID int) (int, error) {
	const op = "storage.PauseSubscription"
	return s.transitionStatus(ctx, op, userID,
		[]string{models.SubscriptionStatusActive}, models.SubscriptionStatusPaused)
}

// ResumeSubscription возвращает приостановленную подписку в статус active.
func (s *Storage) ResumeSubscription(ctx context.Context, userID int) (int, error) {
	const op = "storage.ResumeSubscription"
	return s.transitionStatus(ctx, op, userID,
		[]string{models.SubscriptionStatusPaused}, models.SubscriptionStatusActive)
}

// transitionStatus выполняет условный переход статуса подписки одним
// атомарным UPDATE, проверяя текущий статус в WHERE.
func (s *Storage) transitionStatus(ctx context.Context, op string, userID int, from []string, to string) (int, error) {
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE user_subscriptions
			  SET status = $1
			  WHERE user_id = $2 AND status = ANY($3)`
	result, err := s.DB.ExecContext(ctx, query, to, userID, from)
	if err != nil {
		// Возобновление при уже существующей активной подписке
		// нарушает частичный уникальный индекс.
		if isUniqueViolation(err) {
			return 0, models.ErrDuplicateActiveSubscription
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
