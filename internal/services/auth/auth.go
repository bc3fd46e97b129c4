// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/magabrotheeeer/massage-club/internal/lib/jwt"
	"github.com/magabrotheeeer/massage-club/internal/lib/password"
	"github.com/magabrotheeeer/massage-club/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его ID.
	CreateUser(ctx context.Context, user models.User) (int, error)

	// GetUserByEmail возвращает пользователя по email или models.ErrUserNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUser возвращает пользователя по ID.
	GetUser(ctx context.Context, userID int) (*models.User, error)

	// UpdateProfile обновляет профиль, возвращает число измененных строк.
	UpdateProfile(ctx context.Context, userID int, firstName, lastName string, phone *string, updatedAt time.Time) (int, error)
}

// AuthService отвечает за регистрацию, авторизацию и профиль пользователя.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля
// и возвращает пользователя вместе с токеном доступа.
// Возвращает models.ErrEmailTaken, если email уже занят.
func (s *AuthService) Register(ctx context.Context, req models.DummyRegister) (*models.User, string, error) {
	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	var phone *string
	if req.Phone != "" {
		phone = &req.Phone
	}
	user := models.User{
		Email:        req.Email,
		PasswordHash: hashed,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	id, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, "", err
	}
	user.ID = id

	token, err := s.jwtMaker.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// Login проверяет пароль пользователя и генерирует JWT.
// Несуществующий email и неверный пароль неразличимы для вызывающего:
// оба возвращают models.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*models.User, string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, "", models.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, "", models.ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Profile возвращает профиль пользователя по ID.
func (s *AuthService) Profile(ctx context.Context, userID int) (*models.User, error) {
	return s.users.GetUser(ctx, userID)
}

// UpdateProfile обновляет имя, фамилию и телефон пользователя.
// Время обновления назначается здесь, в момент операции.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int, req models.DummyProfileUpdate) error {
	var phone *string
	if req.Phone != "" {
		phone = &req.Phone
	}
	count, err := s.users.UpdateProfile(ctx, userID, req.FirstName, req.LastName, phone, time.Now().UTC())
	if err != nil {
		return err
	}
	if count == 0 {
		return models.ErrUserNotFound
	}
	return nil
}
