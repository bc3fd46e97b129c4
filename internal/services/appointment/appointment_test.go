package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/massage-club/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) BookWithSubscription(ctx context.Context, appt models.Appointment) (*models.Appointment, error) {
	args := m.Called(ctx, appt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}
func (m *RepoMock) CreateAppointment(ctx context.Context, appt models.Appointment) (*models.Appointment, error) {
	args := m.Called(ctx, appt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}
func (m *RepoMock) CancelAppointment(ctx context.Context, appointmentID, userID int) error {
	return m.Called(ctx, appointmentID, userID).Error(0)
}
func (m *RepoMock) ListAppointments(ctx context.Context, userID int) ([]*models.Appointment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Appointment), args.Error(1)
}
func (m *RepoMock) ListUpcomingAppointments(ctx context.Context, userID int, now time.Time) ([]*models.Appointment, error) {
	args := m.Called(ctx, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Appointment), args.Error(1)
}

func newTestService(repo *RepoMock) *AppointmentService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAppointmentService(repo, logger)
}

func TestBook(t *testing.T) {
	t.Run("запись со списанием сеанса из абонемента", func(t *testing.T) {
		repo := new(RepoMock)
		svc := newTestService(repo)

		repo.On("BookWithSubscription", mock.Anything, mock.MatchedBy(func(a models.Appointment) bool {
			return a.UserID == 7 &&
				a.ServiceType == "deep_tissue" &&
				a.DurationMinutes == models.DefaultAppointmentMinutes &&
				a.Status == models.AppointmentStatusScheduled
		})).Return(&models.Appointment{ID: 5, UserID: 7, ServiceType: "deep_tissue"}, nil)

		got, err := svc.Book(context.Background(), 7, models.DummyBook{
			DateTime:        "2026-09-01T14:00:00Z",
			ServiceType:     "deep_tissue",
			UseSubscription: true,
		})
		assert.NoError(t, err)
		assert.Equal(t, 5, got.ID)
		repo.AssertExpectations(t)
	})

	t.Run("разовая запись без абонемента", func(t *testing.T) {
		repo := new(RepoMock)
		svc := newTestService(repo)

		repo.On("CreateAppointment", mock.Anything, mock.MatchedBy(func(a models.Appointment) bool {
			return a.DurationMinutes == 90 && a.Notes != nil && *a.Notes == "lower back"
		})).Return(&models.Appointment{ID: 6, UserID: 7}, nil)

		got, err := svc.Book(context.Background(), 7, models.DummyBook{
			DateTime:        "2026-09-01T14:00:00Z",
			DurationMinutes: 90,
			ServiceType:     "swedish",
			Notes:           "lower back",
		})
		assert.NoError(t, err)
		assert.Equal(t, 6, got.ID)
		repo.AssertExpectations(t)
	})

	t.Run("некорректный формат даты", func(t *testing.T) {
		repo := new(RepoMock)
		svc := newTestService(repo)

		_, err := svc.Book(context.Background(), 7, models.DummyBook{
			DateTime:    "01.09.2026 14:00",
			ServiceType: "swedish",
		})
		assert.ErrorIs(t, err, models.ErrInvalidDateTime)
		repo.AssertNotCalled(t, "BookWithSubscription")
		repo.AssertNotCalled(t, "CreateAppointment")
	})

	t.Run("исчерпан лимит сеансов", func(t *testing.T) {
		repo := new(RepoMock)
		svc := newTestService(repo)

		repo.On("BookWithSubscription", mock.Anything, mock.Anything).
			Return(nil, models.ErrCreditsExhausted)

		_, err := svc.Book(context.Background(), 7, models.DummyBook{
			DateTime:        "2026-09-01T14:00:00Z",
			ServiceType:     "swedish",
			UseSubscription: true,
		})
		assert.ErrorIs(t, err, models.ErrCreditsExhausted)
		repo.AssertExpectations(t)
	})
}

func TestCancelAppointment(t *testing.T) {
	t.Run("успешная отмена", func(t *testing.T) {
		repo := new(RepoMock)
		svc := newTestService(repo)

		repo.On("CancelAppointment", mock.Anything, 5, 7).Return(nil)

		assert.NoError(t, svc.Cancel(context.Background(), 5, 7))
		repo.AssertExpectations(t)
	})

	t.Run("повторная отмена отклоняется", func(t *testing.T) {
		repo := new(RepoMock)
		svc := newTestService(repo)

		repo.On("CancelAppointment", mock.Anything, 5, 7).
			Return(models.ErrAppointmentAlreadyCancelled)

		assert.ErrorIs(t, svc.Cancel(context.Background(), 5, 7), models.ErrAppointmentAlreadyCancelled)
		repo.AssertExpectations(t)
	})
}

func TestAvailableSlots(t *testing.T) {
	svc := newTestService(new(RepoMock))

	t.Run("слоты на выбранную дату", func(t *testing.T) {
		slots, err := svc.AvailableSlots("2026-09-01")
		assert.NoError(t, err)
		assert.Len(t, slots, 8)
		for _, slot := range slots {
			assert.Equal(t, time.September, slot.DateTime.Month())
			assert.Equal(t, 1, slot.DateTime.Day())
			assert.NotEqual(t, 12, slot.DateTime.Hour())
		}
	})

	t.Run("пустая дата означает сегодня", func(t *testing.T) {
		slots, err := svc.AvailableSlots("")
		assert.NoError(t, err)
		assert.Len(t, slots, 8)
	})

	t.Run("некорректная дата", func(t *testing.T) {
		_, err := svc.AvailableSlots("01.09.2026")
		assert.ErrorIs(t, err, models.ErrInvalidDateTime)
	})
}
