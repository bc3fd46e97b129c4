// Package list реализует HTTP-обработчик получения всех записей пользователя.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/massage-club/internal/http/middlewarectx"
	"github.com/magabrotheeeer/massage-club/internal/http/response"
	"github.com/magabrotheeeer/massage-club/internal/lib/sl"
	"github.com/magabrotheeeer/massage-club/internal/models"
)

// Handler управляет HTTP-запросами на получение записей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики получения записей.
type Service interface {
	List(ctx context.Context, userID int) ([]*models.Appointment, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить все записи на сеансы
// @Description Возвращает все записи пользователя, отсортированные по дате сеанса.
// @Tags Appointments
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Список записей"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /appointments [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.appointment.list"
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

	appointments, err := h.service.List(r.Context(), userID)
	if err != nil {
		log.Error("failed to list appointments", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list appointments"))
		return
	}

	log.Info("success to list appointments", slog.Int("count", len(appointments)))
	render.JSON(w, r, response.StatusOKWithData(appointments))
}
