package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/massage-club/internal/models"
)

// ListPayments возвращает журнал платежей пользователя,
// от старых к новым. Записи журнала никогда не изменяются.
func (s *Storage) ListPayments(ctx context.Context, userID int) ([]*models.PaymentRecord, error) {
	const op = "storage.ListPayments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, subscription_id, amount, status, payment_method,
			      transaction_id, created_at
			  FROM payment_history
			  WHERE user_id = $1
			  ORDER BY created_at`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.PaymentRecord
	for rows.Next() {
		var item models.PaymentRecord
		var subscriptionID sql.NullInt64
		if err := rows.Scan(&item.ID, &item.UserID, &subscriptionID, &item.Amount,
			&item.Status, &item.PaymentMethod, &item.TransactionID, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if subscriptionID.Valid {
			id := int(subscriptionID.Int64)
			item.SubscriptionID = &id
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
