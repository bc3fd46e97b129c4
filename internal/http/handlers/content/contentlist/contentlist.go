// Package contentlist реализует HTTP-обработчик получения библиотеки бонусных материалов.
//
// Пользователям без активного абонемента видны только открытые
// материалы; подписчикам — библиотека целиком. Необязательный
// параметр пути category дополнительно фильтрует выдачу.
package contentlist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/massage-club/internal/http/middlewarectx"
	"github.com/magabrotheeeer/massage-club/internal/http/response"
	"github.com/magabrotheeeer/massage-club/internal/lib/sl"
	"github.com/magabrotheeeer/massage-club/internal/models"
)

// Handler управляет HTTP-запросами на получение библиотеки материалов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики библиотеки материалов.
type Service interface {
	List(ctx context.Context, userID int, category string) (bool, []*models.BonusContent, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить бонусные материалы
// @Description Возвращает материалы с учетом статуса абонемента. Без подписки видны только открытые материалы.
// @Tags Content
// @Produce  json
// @Security BearerAuth
// @Param category path string false "Категория материалов"
// @Success 200 {object} map[string]any "Список материалов и флаг подписки"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /content [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.content.contentlist"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := r.Context().Value(middlewarectx.UserID).(int)
	if !ok || userID == 0 {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	category := chi.URLParam(r, "category")

	subscribed, items, err := h.service.List(r.Context(), userID, category)
	if err != nil {
		log.Error("failed to list content", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list content"))
		return
	}

	log.Info("success to list content",
		slog.Int("count", len(items)),
		slog.Bool("subscribed", subscribed))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"subscribed": subscribed,
		"items":      items,
	}))
}
