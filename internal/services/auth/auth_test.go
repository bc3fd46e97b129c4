package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/massage-club/internal/lib/jwt"
	"github.com/magabrotheeeer/massage-club/internal/lib/password"
	"github.com/magabrotheeeer/massage-club/internal/models"
)

type UsersMock struct{ mock.Mock }

func (m *UsersMock) CreateUser(ctx context.Context, user models.User) (int, error) {
	args := m.Called(ctx, user)
	return args.Int(0), args.Error(1)
}
func (m *UsersMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *UsersMock) GetUser(ctx context.Context, userID int) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *UsersMock) UpdateProfile(ctx context.Context, userID int, firstName, lastName string, phone *string, updatedAt time.Time) (int, error) {
	args := m.Called(ctx, userID, firstName, lastName, phone, updatedAt)
	return args.Int(0), args.Error(1)
}

func newTestService(users *UsersMock) *AuthService {
	maker := jwt.NewJWTMaker("test-secret", time.Hour)
	return NewAuthService(users, maker)
}

func TestRegister(t *testing.T) {
	t.Run("успешная регистрация", func(t *testing.T) {
		users := new(UsersMock)
		svc := newTestService(users)

		users.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
			return u.Email == "anna@example.com" &&
				u.FirstName == "Anna" &&
				u.PasswordHash != "" &&
				u.PasswordHash != "secretpass"
		})).Return(7, nil)

		user, token, err := svc.Register(context.Background(), models.DummyRegister{
			Email:     "anna@example.com",
			Password:  "secretpass",
			FirstName: "Anna",
			LastName:  "Petrova",
		})
		assert.NoError(t, err)
		assert.Equal(t, 7, user.ID)
		assert.NotEmpty(t, token)
		users.AssertExpectations(t)
	})

	t.Run("email уже занят", func(t *testing.T) {
		users := new(UsersMock)
		svc := newTestService(users)

		users.On("CreateUser", mock.Anything, mock.Anything).Return(0, models.ErrEmailTaken)

		_, _, err := svc.Register(context.Background(), models.DummyRegister{
			Email:     "anna@example.com",
			Password:  "secretpass",
			FirstName: "Anna",
			LastName:  "Petrova",
		})
		assert.ErrorIs(t, err, models.ErrEmailTaken)
		users.AssertExpectations(t)
	})
}

func TestLogin(t *testing.T) {
	hash, err := password.GetHash("secretpass")
	require.NoError(t, err)

	stored := &models.User{
		ID:           7,
		Email:        "anna@example.com",
		PasswordHash: hash,
	}

	t.Run("успешный вход", func(t *testing.T) {
		users := new(UsersMock)
		svc := newTestService(users)

		users.On("GetUserByEmail", mock.Anything, "anna@example.com").Return(stored, nil)

		user, token, err := svc.Login(context.Background(), "anna@example.com", "secretpass")
		assert.NoError(t, err)
		assert.Equal(t, 7, user.ID)
		assert.NotEmpty(t, token)
		users.AssertExpectations(t)
	})

	t.Run("неверный пароль", func(t *testing.T) {
		users := new(UsersMock)
		svc := newTestService(users)

		users.On("GetUserByEmail", mock.Anything, "anna@example.com").Return(stored, nil)

		_, _, err := svc.Login(context.Background(), "anna@example.com", "wrongpass")
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
		users.AssertExpectations(t)
	})

	t.Run("несуществующий email неотличим от неверного пароля", func(t *testing.T) {
		users := new(UsersMock)
		svc := newTestService(users)

		users.On("GetUserByEmail", mock.Anything, "ghost@example.com").
			Return(nil, models.ErrUserNotFound)

		_, _, err := svc.Login(context.Background(), "ghost@example.com", "secretpass")
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
		users.AssertExpectations(t)
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Run("успешное обновление", func(t *testing.T) {
		users := new(UsersMock)
		svc := newTestService(users)

		users.On("UpdateProfile", mock.Anything, 7, "Anna", "Petrova",
			mock.MatchedBy(func(phone *string) bool { return phone != nil && *phone == "+79990001122" }),
			mock.Anything).Return(1, nil)

		err := svc.UpdateProfile(context.Background(), 7, models.DummyProfileUpdate{
			FirstName: "Anna",
			LastName:  "Petrova",
			Phone:     "+79990001122",
		})
		assert.NoError(t, err)
		users.AssertExpectations(t)
	})

	t.Run("пользователь не найден", func(t *testing.T) {
		users := new(UsersMock)
		svc := newTestService(users)

		users.On("UpdateProfile", mock.Anything, 7, "Anna", "Petrova",
			mock.Anything, mock.Anything).Return(0, nil)

		err := svc.UpdateProfile(context.Background(), 7, models.DummyProfileUpdate{
			FirstName: "Anna",
			LastName:  "Petrova",
		})
		assert.ErrorIs(t, err, models.ErrUserNotFound)
		users.AssertExpectations(t)
	})
}
