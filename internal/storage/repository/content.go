package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/massage-club/internal/models"
)

const contentColumns = `id, title, description, content_type, content_url,
			      thumbnail_url, duration, category, is_featured, subscriber_only,
			      published_at, created_at`

// ListContent возвращает бонусный контент, отсортированный по дате
// публикации по убыванию. При includeSubscriberOnly = false строки
// с subscriber_only = true отфильтровываются. Непустая category
// добавляет фильтр точного совпадения по категории.
func (s *Storage) ListContent(ctx context.Context, includeSubscriberOnly bool, category string) ([]*models.BonusContent, error) {
	const op = "storage.ListContent"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + contentColumns + `
			  FROM bonus_content
			  WHERE ($1 OR subscriber_only = false)
			    AND ($2::text = '' OR category = $2)
			  ORDER BY published_at DESC`
	return s.queryContent(ctx, op, query, includeSubscriberOnly, category)
}

// GetContent возвращает единицу контента по ID.
func (s *Storage) GetContent(ctx context.Context, contentID int) (*models.BonusContent, error) {
	const op = "storage.GetContent"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + contentColumns + `
			  FROM bonus_content
			  WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, contentID)
	item, err := scanContent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrContentNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

// ListFeaturedContent возвращает рекомендованный контент для главного
// экрана: is_featured = true, не более limit строк, по дате публикации
// по убыванию. Проверка подписки не выполняется — подборка публичная.
func (s *Storage) ListFeaturedContent(ctx context.Context, limit int) ([]*models.BonusContent, error) {
	const op = "storage.ListFeaturedContent"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + contentColumns + `
			  FROM bonus_content
			  WHERE is_featured = true
			  ORDER BY published_at DESC
			  LIMIT $1`
	return s.queryContent(ctx, op, query, limit)
}

// ListLatestContent возвращает limit последних публикаций без фильтров.
func (s *Storage) ListLatestContent(ctx context.Context, limit int) ([]*models.BonusContent, error) {
	const op = "storage.ListLatestContent"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + contentColumns + `
			  FROM bonus_content
			  ORDER BY published_at DESC
			  LIMIT $1`
	return s.queryContent(ctx, op, query, limit)
}

func (s *Storage) queryContent(ctx context.Context, op, query string, args ...any) ([]*models.BonusContent, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.BonusContent
	for rows.Next() {
		item, err := scanContent(rows)
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

func scanContent(row scanner) (*models.BonusContent, error) {
	var item models.BonusContent
	var thumbnailURL, duration sql.NullString
	if err := row.Scan(&item.ID, &item.Title, &item.Description, &item.ContentType,
		&item.ContentURL, &thumbnailURL, &duration, &item.Category, &item.IsFeatured,
		&item.SubscriberOnly, &item.PublishedAt, &item.CreatedAt); err != nil {
		return nil, err
	}
	if thumbnailURL.Valid {
		item.ThumbnailURL = &thumbnailURL.String
	}
	if duration.Valid {
		item.Duration = &duration.String
	}
	return &item, nil
}
