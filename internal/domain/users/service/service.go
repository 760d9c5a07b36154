package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/IT-Nick/psytest/internal/domain/dto"
	"github.com/IT-Nick/psytest/internal/domain/model"
	"github.com/IT-Nick/psytest/internal/domain/users/repository"
	"github.com/IT-Nick/psytest/internal/domain/validation"
	"github.com/IT-Nick/psytest/internal/infra/auth"
	"github.com/IT-Nick/psytest/internal/infra/log"
	"github.com/rs/zerolog"
)

var (
	ErrUserExists         = errors.New("Пользователь с таким ФИО уже существует")
	ErrInvalidCredentials = errors.New("Неверное ФИО или пароль")
	ErrUserNotFound       = errors.New("Пользователь не найден")
)

// UserRepository хранилище пользователей
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByFullName(ctx context.Context, firstName, lastName, middleName string) (*model.User, error)
	GetUserForLogin(ctx context.Context, firstName, lastName, middleName, faculty string, course int) (*model.User, error)
	GetUserByID(ctx context.Context, userID int) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

// UserService содержит логику бизнес-операций для пользователей
type UserService struct {
	userRepo UserRepository
	logger   zerolog.Logger
}

// NewUserService создает новый экземпляр UserService
func NewUserService(userRepo UserRepository) *UserService {
	return &UserService{userRepo: userRepo, logger: log.WithComponent("users")}
}

// Register регистрирует студента. Ошибки полей возвращаются как validation.Errors.
func (s *UserService) Register(ctx context.Context, req dto.RegisterRequest) (*model.User, error) {
	if err := validation.Register(&req); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetUserByFullName(ctx, req.FirstName, req.LastName, req.MiddleName)
	if err != nil {
		return nil, fmt.Errorf("failed to check user: %w", err)
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		MiddleName:   req.MiddleName,
		Faculty:      req.Faculty,
		Course:       req.Course,
		PasswordHash: hash,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info().
		Int("user_id", user.ID).
		Str("faculty", user.Faculty).
		Int("course", user.Course).
		Msg("user registered")
	return user, nil
}

// Authenticate проверяет ФИО, факультет, курс и пароль
func (s *UserService) Authenticate(ctx context.Context, req dto.LoginRequest) (*model.User, error) {
	if err := validation.Login(&req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserForLogin(ctx, req.FirstName, req.LastName, req.MiddleName, req.Faculty, req.Course)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	ok, err := auth.CheckPassword(user.PasswordHash, req.Password)
	if err != nil {
		s.logger.Warn().Err(err).Int("user_id", user.ID).Msg("stored password hash is unusable")
		return nil, ErrInvalidCredentials
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetByID возвращает пользователя или ErrUserNotFound
func (s *UserService) GetByID(ctx context.Context, userID int) (*model.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// List все зарегистрированные пользователи
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
