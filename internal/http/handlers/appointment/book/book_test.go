package book

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/massage-club/internal/http/middlewarectx"
	"github.com/magabrotheeeer/massage-club/internal/models"
)

// MockService реализует интерфейс book.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Book(ctx context.Context, userID int, req models.DummyBook) (*models.Appointment, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func TestBookHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		userID         any
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "успешная запись с абонементом",
			body:   `{"date_time": "2026-09-01T14:00:00Z", "service_type": "deep_tissue", "use_subscription": true}`,
			userID: 7,
			setupMock: func(m *MockService) {
				m.On("Book", mock.Anything, 7, mock.MatchedBy(func(req models.DummyBook) bool {
					return req.ServiceType == "deep_tissue" && req.UseSubscription
				})).Return(&models.Appointment{ID: 5, UserID: 7, ServiceType: "deep_tissue"}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"service_type":"deep_tissue"`,
		},
		{
			name:           "отсутствует дата сеанса",
			body:           `{"service_type": "swedish"}`,
			userID:         7,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"status":"Error"`,
		},
		{
			name:   "исчерпан лимит сеансов",
			body:   `{"date_time": "2026-09-01T14:00:00Z", "service_type": "swedish", "use_subscription": true}`,
			userID: 7,
			setupMock: func(m *MockService) {
				m.On("Book", mock.Anything, 7, mock.Anything).
					Return(nil, models.ErrCreditsExhausted)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"no massages remaining this month"`,
		},
		{
			name:   "нет активного абонемента",
			body:   `{"date_time": "2026-09-01T14:00:00Z", "service_type": "swedish", "use_subscription": true}`,
			userID: 7,
			setupMock: func(m *MockService) {
				m.On("Book", mock.Anything, 7, mock.Anything).
					Return(nil, models.ErrNoActiveSubscription)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"no active subscription"`,
		},
		{
			name:   "некорректный формат даты",
			body:   `{"date_time": "01.09.2026", "service_type": "swedish"}`,
			userID: 7,
			setupMock: func(m *MockService) {
				m.On("Book", mock.Anything, 7, mock.Anything).
					Return(nil, models.ErrInvalidDateTime)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid date_time, expected RFC3339"`,
		},
		{
			name:           "пользователь не авторизован",
			body:           `{"date_time": "2026-09-01T14:00:00Z", "service_type": "swedish"}`,
			userID:         nil,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
		{
			name:   "ошибка сервиса",
			body:   `{"date_time": "2026-09-01T14:00:00Z", "service_type": "swedish"}`,
			userID: 7,
			setupMock: func(m *MockService) {
				m.On("Book", mock.Anything, 7, mock.Anything).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not book appointment"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(tt.body))
			if tt.userID != nil {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserID, tt.userID))
			}

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
