package models

import "time"

// BonusContent представляет единицу бонусного контента (видео, статья, аудио).
// Видимость для конкретного пользователя вычисляется на каждый запрос
// по флагу SubscriberOnly и статусу его подписки, отдельно не хранится.
type BonusContent struct {
	ID             int       `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	ContentType    string    `json:"content_type"`
	ContentURL     string    `json:"content_url"`
	ThumbnailURL   *string   `json:"thumbnail_url,omitempty"`
	Duration       *string   `json:"duration,omitempty"`
	Category       string    `json:"category"`
	IsFeatured     bool      `json:"is_featured"`
	SubscriberOnly bool      `json:"subscriber_only"`
	PublishedAt    time.Time `json:"published_at"`
	CreatedAt      time.Time `json:"created_at"`
}
