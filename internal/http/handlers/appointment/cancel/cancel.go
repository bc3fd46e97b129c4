// Package cancel реализует HTTP-обработчик отмены записи на сеанс.
//
// Если запись была оплачена абонементом, один сеанс возвращается
// на его счётчик. Повторная отмена отклоняется.
package cancel

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/massage-club/internal/http/middlewarectx"
	"github.com/magabrotheeeer/massage-club/internal/http/response"
	"github.com/magabrotheeeer/massage-club/internal/lib/sl"
	"github.com/magabrotheeeer/massage-club/internal/models"
)

// Handler управляет HTTP-запросами на отмену записи.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики отмены записи.
type Service interface {
	Cancel(ctx context.Context, appointmentID, userID int) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Отменить запись на сеанс
// @Description Переводит запись в статус cancelled и возвращает сеанс на счётчик абонемента, если запись была им оплачена.
// @Tags Appointments
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID записи"
// @Success 200 {object} map[string]any "Запись отменена"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID или запись уже отменена"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Запись не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /appointments/{id}/cancel [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.appointment.cancel"
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

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid appointment id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid appointment id"))
		return
	}

	if err := h.service.Cancel(r.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, models.ErrAppointmentNotFound):
			log.Error("appointment not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("appointment not found"))
		case errors.Is(err, models.ErrAppointmentAlreadyCancelled):
			log.Error("appointment already cancelled", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("appointment is already cancelled"))
		default:
			log.Error("failed to cancel appointment", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not cancel appointment"))
		}
		return
	}

	log.Info("success to cancel appointment", slog.Int("appointment_id", id))
	render.JSON(w, r, response.StatusOKWithMessage("appointment cancelled"))
}
