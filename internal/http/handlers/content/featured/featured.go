// Package featured реализует HTTP-обработчик получения избранных материалов.
//
// Маршрут открыт без авторизации и используется на главной странице.
package featured

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

// Handler управляет HTTP-запросами на получение избранных материалов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики избранных материалов.
type Service interface {
	Featured(ctx context.Context) ([]*models.BonusContent, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить избранные материалы
// @Description Возвращает до трех избранных материалов, отсортированных по дате публикации по убыванию.
// @Tags Content
// @Produce  json
// @Success 200 {object} map[string]any "Избранные материалы"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /content/featured [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.content.featured"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	items, err := h.service.Featured(r.Context())
	if err != nil {
		log.Error("failed to list featured content", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list featured content"))
		return
	}

	log.Info("success to list featured content", slog.Int("count", len(items)))
	render.JSON(w, r, response.StatusOKWithData(items))
}
