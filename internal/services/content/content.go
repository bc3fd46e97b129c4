// Package services содержит бизнес-логику доступа к бонусному контенту.
// Видимость вычисляется на каждый запрос: подписчики видят весь контент,
// остальные — только строки без флага subscriber_only. Публичные подборки
// featured и latest отдаются без проверки подписки и кешируются.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/massage-club/internal/models"
)

// ContentRepository определяет методы для работы с контентом в хранилище.
type ContentRepository interface {
	// HasActiveSubscription сообщает, есть ли у пользователя активная подписка.
	HasActiveSubscription(ctx context.Context, userID int) (bool, error)
	// ListContent возвращает контент с учетом видимости и категории.
	ListContent(ctx context.Context, includeSubscriberOnly bool, category string) ([]*models.BonusContent, error)
	// GetContent возвращает единицу контента по ID или models.ErrContentNotFound.
	GetContent(ctx context.Context, contentID int) (*models.BonusContent, error)
	// ListFeaturedContent возвращает рекомендованный контент.
	ListFeaturedContent(ctx context.Context, limit int) ([]*models.BonusContent, error)
	// ListLatestContent возвращает последние публикации.
	ListLatestContent(ctx context.Context, limit int) ([]*models.BonusContent, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
}

const (
	featuredCacheKey = "content:featured"
	latestCacheKey   = "content:latest"

	featuredLimit = 3
	latestLimit   = 5

	publicCacheTTL = 5 * time.Minute
)

// ContentService реализует фильтр доступа к бонусному контенту.
type ContentService struct {
	repo  ContentRepository
	cache Cache
	log   *slog.Logger
}

// NewContentService создает новый экземпляр ContentService.
func NewContentService(repo ContentRepository, cache Cache, log *slog.Logger) *ContentService {
	return &ContentService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// HasActiveSubscription сообщает, является ли пользователь подписчиком.
// Приостановленная или отменённая подписка подписчиком не делает.
func (s *ContentService) HasActiveSubscription(ctx context.Context, userID int) (bool, error) {
	return s.repo.HasActiveSubscription(ctx, userID)
}

// List возвращает видимый пользователю контент, по дате публикации
// по убыванию. category — опциональный фильтр точного совпадения.
// Первым значением возвращается признак подписки для ответа клиенту.
func (s *ContentService) List(ctx context.Context, userID int, category string) (bool, []*models.BonusContent, error) {
	subscribed, err := s.repo.HasActiveSubscription(ctx, userID)
	if err != nil {
		return false, nil, err
	}
	items, err := s.repo.ListContent(ctx, subscribed, category)
	if err != nil {
		return false, nil, err
	}
	return subscribed, items, nil
}

// Read возвращает единицу контента по ID. Для контента с флагом
// subscriber_only без активной подписки возвращается
// models.ErrSubscriptionRequired.
func (s *ContentService) Read(ctx context.Context, userID, contentID int) (*models.BonusContent, error) {
	item, err := s.repo.GetContent(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if item.SubscriberOnly {
		subscribed, err := s.repo.HasActiveSubscription(ctx, userID)
		if err != nil {
			return nil, err
		}
		if !subscribed {
			return nil, models.ErrSubscriptionRequired
		}
	}
	return item, nil
}

// Featured возвращает до трех рекомендованных публикаций для главного
// экрана. Подборка публичная и кешируется.
func (s *ContentService) Featured(ctx context.Context) ([]*models.BonusContent, error) {
	return s.cachedList(ctx, featuredCacheKey, func(ctx context.Context) ([]*models.BonusContent, error) {
		return s.repo.ListFeaturedContent(ctx, featuredLimit)
	})
}

// Latest возвращает до пяти последних публикаций. Подборка публичная
// и кешируется.
func (s *ContentService) Latest(ctx context.Context) ([]*models.BonusContent, error) {
	return s.cachedList(ctx, latestCacheKey, func(ctx context.Context) ([]*models.BonusContent, error) {
		return s.repo.ListLatestContent(ctx, latestLimit)
	})
}

func (s *ContentService) cachedList(ctx context.Context, key string, load func(context.Context) ([]*models.BonusContent, error)) ([]*models.BonusContent, error) {
	var items []*models.BonusContent
	found, err := s.cache.Get(key, &items)
	if err != nil {
		s.log.Warn("failed to read content from cache", slog.String("key", key), slog.Any("err", err))
	}
	if found {
		return items, nil
	}

	items, err = load(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(key, items, publicCacheTTL); err != nil {
		s.log.Warn("failed to cache content", slog.String("key", key), slog.Any("err", err))
	}
	return items, nil
}
