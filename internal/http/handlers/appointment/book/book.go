// Package book реализует HTTP-обработчик записи на массажный сеанс.
//
// Handler принимает JSON-запрос с датой и типом сеанса, валидирует его
// и создает запись. При use_subscription=true списывает один сеанс
// из остатка активного абонемента в той же транзакции.
package book

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/massage-club/internal/http/middlewarectx"
	"github.com/magabrotheeeer/massage-club/internal/http/response"
	"github.com/magabrotheeeer/massage-club/internal/lib/sl"
	"github.com/magabrotheeeer/massage-club/internal/models"
)

// Handler управляет HTTP-запросами на запись на сеанс.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики записи на сеанс.
type Service interface {
	Book(ctx context.Context, userID int, req models.DummyBook) (*models.Appointment, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Записаться на сеанс
// @Description Создает запись на массажный сеанс. При use_subscription=true списывает сеанс из абонемента.
// @Tags Appointments
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyBook true "Данные записи"
// @Success 201 {object} map[string]any "Созданная запись"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON, нет абонемента или исчерпан лимит сеансов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при записи"
// @Router /appointments [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.appointment.book"
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

	var req models.DummyBook
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	appointment, err := h.service.Book(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidDateTime):
			log.Error("invalid date_time", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid date_time, expected RFC3339"))
		case errors.Is(err, models.ErrNoActiveSubscription):
			log.Error("no active subscription", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("no active subscription"))
		case errors.Is(err, models.ErrCreditsExhausted):
			log.Error("no massages remaining", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("no massages remaining this month"))
		default:
			log.Error("failed to book appointment", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not book appointment"))
		}
		return
	}

	log.Info("success to book appointment", slog.Int("appointment_id", appointment.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(appointment))
}
