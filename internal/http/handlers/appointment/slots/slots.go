// Package slots реализует HTTP-обработчик получения доступных слотов для записи.
//
// Расписание мастеров не ведется, поэтому занятость слотов имитируется.
package slots

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/massage-club/internal/http/response"
	"github.com/magabrotheeeer/massage-club/internal/lib/sl"
	"github.com/magabrotheeeer/massage-club/internal/models"
)

// Handler управляет HTTP-запросами на получение слотов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики генерации слотов.
type Service interface {
	AvailableSlots(date string) ([]models.Slot, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить доступные слоты
// @Description Возвращает слоты рабочего дня на выбранную дату. Без параметра date используется сегодняшний день.
// @Tags Appointments
// @Produce  json
// @Param date query string false "Дата в формате 2006-01-02"
// @Success 200 {object} map[string]any "Список слотов"
// @Failure 400 {object} response.ErrorResponse "Некорректная дата"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /appointments/available-slots [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.appointment.slots"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	date := r.URL.Query().Get("date")

	slots, err := h.service.AvailableSlots(date)
	if err != nil {
		if errors.Is(err, models.ErrInvalidDateTime) {
			log.Error("invalid date", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid date, expected 2006-01-02"))
			return
		}
		log.Error("failed to build slots", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build slots"))
		return
	}

	log.Info("success to build slots", slog.Int("count", len(slots)))
	render.JSON(w, r, response.StatusOKWithData(slots))
}
