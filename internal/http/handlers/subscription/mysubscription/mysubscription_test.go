package mysubscription

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

// MockService реализует интерфейс mysubscription.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) My(ctx context.Context, userID int) (*models.SubscriptionWithPlan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubscriptionWithPlan), args.Error(1)
}

func TestMySubscriptionHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		userID         any
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "успешное чтение абонемента",
			userID: 7,
			setupMock: func(m *MockService) {
				sub := &models.SubscriptionWithPlan{
					Subscription: models.Subscription{
						ID:                11,
						UserID:            7,
						Status:            models.SubscriptionStatusActive,
						MassagesRemaining: 2,
					},
					Plan: models.Plan{ID: 2, Name: "Wellness"},
				}
				m.On("My", mock.Anything, 7).Return(sub, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"hasSubscription":true`,
		},
		{
			name:   "в ответе есть данные плана",
			userID: 7,
			setupMock: func(m *MockService) {
				sub := &models.SubscriptionWithPlan{
					Subscription: models.Subscription{ID: 11, UserID: 7, Status: models.SubscriptionStatusActive},
					Plan:         models.Plan{ID: 2, Name: "Wellness"},
				}
				m.On("My", mock.Anything, 7).Return(sub, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"name":"Wellness"`,
		},
		{
			name:           "пользователь не авторизован",
			userID:         nil,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
		{
			name:   "нет активного абонемента",
			userID: 7,
			setupMock: func(m *MockService) {
				m.On("My", mock.Anything, 7).Return(nil, models.ErrNoActiveSubscription)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"hasSubscription":false`,
		},
		{
			name:   "ошибка сервиса",
			userID: 7,
			setupMock: func(m *MockService) {
				m.On("My", mock.Anything, 7).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not read subscription"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/subscriptions/my-subscription", nil)
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
