package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/massage-club/internal/models"
)

// ListActivePlans возвращает каталог активных тарифных планов.
func (s *Storage) ListActivePlans(ctx context.Context) ([]*models.Plan, error) {
	const op = "storage.ListActivePlans"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, description, price_monthly, massages_per_month,
			      duration_minutes, features, is_active
			  FROM subscription_plans
			  WHERE is_active = true
			  ORDER BY price_monthly`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Plan
	for rows.Next() {
		item, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetPlan возвращает тарифный план по его ID.
func (s *Storage) GetPlan(ctx context.Context, planID int) (*models.Plan, error) {
	const op = "storage.GetPlan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, description, price_monthly, massages_per_month,
			      duration_minutes, features, is_active
			  FROM subscription_plans
			  WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, planID)

	item, err := scanPlan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrPlanNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

// scanner покрывает *sql.Row и *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanPlan читает строку тарифного плана, разворачивая JSON-список опций.
func scanPlan(row scanner) (*models.Plan, error) {
	var item models.Plan
	var featuresRaw []byte
	if err := row.Scan(&item.ID, &item.Name, &item.Description, &item.PriceMonthly,
		&item.MassagesPerMonth, &item.DurationMinutes, &featuresRaw, &item.IsActive); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(featuresRaw, &item.Features); err != nil {
		return nil, fmt.Errorf("unmarshal plan features: %w", err)
	}
	return &item, nil
}
