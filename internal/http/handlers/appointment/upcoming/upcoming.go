// Package upcoming реализует HTTP-обработчик получения будущих записей пользователя.
package upcoming

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

// Handler управляет HTTP-запросами на получение будущих записей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики получения будущих записей.
type Service interface {
	Upcoming(ctx context.Context, userID int) ([]*models.Appointment, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить будущие записи
// @Description Возвращает запланированные записи пользователя начиная с текущего момента.
// @Tags Appointments
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Список будущих записей"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /appointments/upcoming [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.appointment.upcoming"
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

	appointments, err := h.service.Upcoming(r.Context(), userID)
	if err != nil {
		log.Error("failed to list upcoming appointments", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list upcoming appointments"))
		return
	}

	log.Info("success to list upcoming appointments", slog.Int("count", len(appointments)))
	render.JSON(w, r, response.StatusOKWithData(appointments))
}
