// Package services содержит бизнес-логику бронирования сеансов массажа:
// создание записи с опциональным списанием кредита подписки, отмену
// с возвратом кредита и чтение расписания.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/magabrotheeeer/massage-club/internal/models"
)

// AppointmentRepository определяет методы для работы с записями в хранилище.
type AppointmentRepository interface {
	// BookWithSubscription атомарно списывает кредит и создает запись.
	BookWithSubscription(ctx context.Context, appt models.Appointment) (*models.Appointment, error)
	// CreateAppointment создает запись без привязки к подписке.
	CreateAppointment(ctx context.Context, appt models.Appointment) (*models.Appointment, error)
	// CancelAppointment отменяет запись и возвращает кредит, если он был списан.
	CancelAppointment(ctx context.Context, appointmentID, userID int) error
	// ListAppointments возвращает все записи пользователя.
	ListAppointments(ctx context.Context, userID int) ([]*models.Appointment, error)
	// ListUpcomingAppointments возвращает будущие запланированные записи.
	ListUpcomingAppointments(ctx context.Context, userID int, now time.Time) ([]*models.Appointment, error)
}

// AppointmentService реализует бизнес-логику бронирования сеансов.
type AppointmentService struct {
	repo AppointmentRepository
	log  *slog.Logger
}

// NewAppointmentService создает новый экземпляр AppointmentService.
func NewAppointmentService(repo AppointmentRepository, log *slog.Logger) *AppointmentService {
	return &AppointmentService{
		repo: repo,
		log:  log,
	}
}

// Book создает запись на сеанс массажа.
//
// При req.UseSubscription = true с активной подписки пользователя
// атомарно списывается один массаж и запись привязывается к подписке;
// без активной подписки возвращается models.ErrNoActiveSubscription,
// при исчерпанном счётчике — models.ErrCreditsExhausted, счётчик
// при этом не изменяется. При req.UseSubscription = false создается
// разовая запись без привязки.
func (s *AppointmentService) Book(ctx context.Context, userID int, req models.DummyBook) (*models.Appointment, error) {
	dateTime, err := time.Parse(time.RFC3339, req.DateTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidDateTime, req.DateTime)
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = models.DefaultAppointmentMinutes
	}

	var notes *string
	if req.Notes != "" {
		notes = &req.Notes
	}

	appt := models.Appointment{
		UserID:          userID,
		DateTime:        dateTime.UTC(),
		DurationMinutes: duration,
		ServiceType:     req.ServiceType,
		Status:          models.AppointmentStatusScheduled,
		Notes:           notes,
		CreatedAt:       time.Now().UTC(),
	}

	var created *models.Appointment
	if req.UseSubscription {
		created, err = s.repo.BookWithSubscription(ctx, appt)
	} else {
		created, err = s.repo.CreateAppointment(ctx, appt)
	}
	if err != nil {
		return nil, err
	}

	s.log.Info("booked appointment",
		slog.Int("id", created.ID),
		slog.Bool("use_subscription", req.UseSubscription))
	return created, nil
}

// Cancel отменяет запись пользователя на сеанс. Если запись была
// оплачена подпиской, ровно один кредит возвращается на её счётчик.
// Повторная отмена возвращает models.ErrAppointmentAlreadyCancelled.
func (s *AppointmentService) Cancel(ctx context.Context, appointmentID, userID int) error {
	if err := s.repo.CancelAppointment(ctx, appointmentID, userID); err != nil {
		return err
	}
	s.log.Info("cancelled appointment", slog.Int("id", appointmentID))
	return nil
}

// List возвращает все записи пользователя, по времени сеанса по возрастанию.
func (s *AppointmentService) List(ctx context.Context, userID int) ([]*models.Appointment, error) {
	return s.repo.ListAppointments(ctx, userID)
}

// Upcoming возвращает будущие запланированные записи пользователя.
func (s *AppointmentService) Upcoming(ctx context.Context, userID int) ([]*models.Appointment, error) {
	return s.repo.ListUpcomingAppointments(ctx, userID, time.Now().UTC())
}

// Рабочие часы салона для генерации слотов; 12:00 — перерыв.
var slotHours = []int{9, 10, 11, 13, 14, 15, 16, 17}

// AvailableSlots возвращает мок-список доступных слотов на выбранную
// дату (формат 2006-01-02, пустая строка — сегодня). Часть слотов
// случайно помечается занятой.
func (s *AppointmentService) AvailableSlots(date string) ([]models.Slot, error) {
	day := time.Now().UTC()
	if date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", models.ErrInvalidDateTime, date)
		}
		day = parsed
	}

	slots := make([]models.Slot, 0, len(slotHours))
	for _, hour := range slotHours {
		slotTime := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC)
		slots = append(slots, models.Slot{
			DateTime:  slotTime,
			Available: rand.Float64() > 0.3,
		})
	}
	return slots, nil
}
