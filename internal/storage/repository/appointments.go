package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/massage-club/internal/models"
)

// BookWithSubscription создает запись на сеанс, оплаченную кредитом подписки.
// Вся последовательность выполняется в одной транзакции:
// поиск активной подписки, условное списание одного массажа
// (UPDATE ... WHERE massages_remaining > 0 с проверкой числа строк)
// и вставка записи со ссылкой на подписку. Два конкурентных бронирования
// не могут оба списать последний кредит.
func (s *Storage) BookWithSubscription(ctx context.Context, appt models.Appointment) (*models.Appointment, error) {
	const op = "storage.BookWithSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var subID int
	subQuery := `SELECT id FROM user_subscriptions
			     WHERE user_id = $1 AND status = 'active'`
	if err = tx.QueryRowContext(ctx, subQuery, appt.UserID).Scan(&subID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNoActiveSubscription
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	debitQuery := `UPDATE user_subscriptions
			       SET massages_remaining = massages_remaining - 1
			       WHERE id = $1 AND massages_remaining > 0`
	result, err := tx.ExecContext(ctx, debitQuery, subID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return nil, models.ErrCreditsExhausted
	}

	appt.SubscriptionID = &subID
	insertQuery := `INSERT INTO appointments (user_id, subscription_id, date_time,
			            duration_minutes, service_type, status, notes, created_at)
			        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			        RETURNING id`
	if err = tx.QueryRowContext(ctx, insertQuery,
		appt.UserID, appt.SubscriptionID, appt.DateTime, appt.DurationMinutes,
		appt.ServiceType, appt.Status, appt.Notes, appt.CreatedAt).Scan(&appt.ID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &appt, nil
}

// CreateAppointment создает запись на разовый сеанс без привязки к подписке.
func (s *Storage) CreateAppointment(ctx context.Context, appt models.Appointment) (*models.Appointment, error) {
	const op = "storage.CreateAppointment"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO appointments (user_id, subscription_id, date_time,
			      duration_minutes, service_type, status, notes, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query,
		appt.UserID, appt.SubscriptionID, appt.DateTime, appt.DurationMinutes,
		appt.ServiceType, appt.Status, appt.Notes, appt.CreatedAt).Scan(&appt.ID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &appt, nil
}

// CancelAppointment отменяет запись пользователя на сеанс.
// Перевод в cancelled и возврат кредита выполняются в одной транзакции.
// Повторная отмена возвращает models.ErrAppointmentAlreadyCancelled —
// кредит не может быть возвращён дважды. Если запись была оплачена
// подпиской, счётчик восстанавливается независимо от текущего статуса
// подписки: кредит был списан именно с неё.
func (s *Storage) CancelAppointment(ctx context.Context, appointmentID, userID int) error {
	const op = "storage.CancelAppointment"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var subscriptionID sql.NullInt64
	var status string
	readQuery := `SELECT subscription_id, status FROM appointments
			      WHERE id = $1 AND user_id = $2
			      FOR UPDATE`
	if err = tx.QueryRowContext(ctx, readQuery, appointmentID, userID).Scan(&subscriptionID, &status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrAppointmentNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if status == models.AppointmentStatusCancelled {
		return models.ErrAppointmentAlreadyCancelled
	}

	cancelQuery := `UPDATE appointments
			        SET status = 'cancelled'
			        WHERE id = $1 AND status <> 'cancelled'`
	result, err := tx.ExecContext(ctx, cancelQuery, appointmentID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return models.ErrAppointmentAlreadyCancelled
	}

	if subscriptionID.Valid {
		creditQuery := `UPDATE user_subscriptions
			            SET massages_remaining = massages_remaining + 1
			            WHERE id = $1`
		if _, err = tx.ExecContext(ctx, creditQuery, subscriptionID.Int64); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListAppointments возвращает все записи пользователя, отсортированные
// по времени сеанса по возрастанию.
func (s *Storage) ListAppointments(ctx context.Context, userID int) ([]*models.Appointment, error) {
	const op = "storage.ListAppointments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, subscription_id, date_time, duration_minutes,
			      service_type, status, notes, created_at
			  FROM appointments
			  WHERE user_id = $1
			  ORDER BY date_time`
	return s.queryAppointments(ctx, op, query, userID)
}

// ListUpcomingAppointments возвращает будущие запланированные записи
// пользователя, отсортированные по времени сеанса по возрастанию.
func (s *Storage) ListUpcomingAppointments(ctx context.Context, userID int, now time.Time) ([]*models.Appointment, error) {
	const op = "storage.ListUpcomingAppointments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, subscription_id, date_time, duration_minutes,
			      service_type, status, notes, created_at
			  FROM appointments
			  WHERE user_id = $1 AND date_time >= $2 AND status = 'scheduled'
			  ORDER BY date_time`
	return s.queryAppointments(ctx, op, query, userID, now)
}

func (s *Storage) queryAppointments(ctx context.Context, op, query string, args ...any) ([]*models.Appointment, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Appointment
	for rows.Next() {
		var item models.Appointment
		var subscriptionID sql.NullInt64
		var notes sql.NullString
		if err := rows.Scan(&item.ID, &item.UserID, &subscriptionID, &item.DateTime,
			&item.DurationMinutes, &item.ServiceType, &item.Status, &notes,
			&item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if subscriptionID.Valid {
			id := int(subscriptionID.Int64)
			item.SubscriptionID = &id
		}
		if notes.Valid {
			item.Notes = &notes.String
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
