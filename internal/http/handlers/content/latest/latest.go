// Package latest реализует HTTP-обработчик получения последних опубликованных материалов.
//
// Маршрут открыт без авторизации и используется на главной странице.
package latest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/massage-club/internal/http/response"
	"github.com/magabrotheeeer/massage-club/internal/lib/sl"
	"github.com/magabrotheeeer/massage-club/internal/models"
)

// Handler управляет HTTP-запросами на получение последних материалов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики последних материалов.
type Service interface {
	Latest(ctx context.Context) ([]*models.BonusContent, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить последние материалы
// @Description Возвращает до пяти последних материалов, отсортированных по дате публикации по убыванию.
// @Tags Content
// @Produce  json
// @Success 200 {object} map[string]any "Последние материалы"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /content/latest [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.content.latest"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	items, err := h.service.Latest(r.Context())
	if err != nil {
		log.Error("failed to list latest content", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list latest content"))
		return
	}

	log.Info("success to list latest content", slog.Int("count", len(items)))
	render.JSON(w, r, response.StatusOKWithData(items))
}
