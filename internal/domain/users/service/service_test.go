package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/IT-Nick/psytest/internal/domain/dto"
	"github.com/IT-Nick/psytest/internal/domain/model"
	"github.com/IT-Nick/psytest/internal/domain/users/repository"
	"github.com/IT-Nick/psytest/internal/domain/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	mu        sync.Mutex
	users     []model.User
	createErr error
	getErr    error
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	user.ID = len(r.users) + 1
	user.CreatedAt = time.Now().UTC()
	r.users = append(r.users, *user)
	return nil
}

func (r *fakeUserRepo) GetUserByFullName(_ context.Context, first, last, middle string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	for _, u := range r.users {
		if u.FirstName == first && u.LastName == last && u.MiddleName == middle {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetUserForLogin(_ context.Context, first, last, middle, faculty string, course int) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.FirstName == first && u.LastName == last && u.MiddleName == middle &&
			u.Faculty == faculty && u.Course == course {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id int) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ListUsers(_ context.Context) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.User(nil), r.users...), nil
}

func registerRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		FirstName:  "иван",
		LastName:   "петров",
		MiddleName: "иванович",
		Faculty:    "ФКСИС",
		Course:     3,
		Password:   "secret1",
	}
}

func TestRegister(t *testing.T) {
	repo := &fakeUserRepo{}
	s := NewUserService(repo)
	ctx := context.Background()

	user, err := s.Register(ctx, registerRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, "Петров Иван Иванович", user.FullName())
	assert.NotEqual(t, "secret1", user.PasswordHash)

	_, err = s.Register(ctx, registerRequest())
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestRegister_Validation(t *testing.T) {
	s := NewUserService(&fakeUserRepo{})
	req := registerRequest()
	req.Password = "123"

	_, err := s.Register(context.Background(), req)
	var errs validation.Errors
	require.True(t, errors.As(err, &errs))
	assert.Equal(t, []string{"password: Минимум 6 символов"}, errs.Details())
}

func TestRegister_DuplicateRace(t *testing.T) {
	s := NewUserService(&fakeUserRepo{createErr: repository.ErrDuplicate})
	_, err := s.Register(context.Background(), registerRequest())
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestRegister_RepoError(t *testing.T) {
	boom := errors.New("connection refused")
	s := NewUserService(&fakeUserRepo{getErr: boom})
	_, err := s.Register(context.Background(), registerRequest())
	assert.ErrorIs(t, err, boom)
}

func TestAuthenticate(t *testing.T) {
	repo := &fakeUserRepo{}
	s := NewUserService(repo)
	ctx := context.Background()

	_, err := s.Register(ctx, registerRequest())
	require.NoError(t, err)

	login := dto.LoginRequest(registerRequest())
	user, err := s.Authenticate(ctx, login)
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)

	wrong := login
	wrong.Password = "other-password"
	_, err = s.Authenticate(ctx, wrong)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	wrong = login
	wrong.Course = 4
	_, err = s.Authenticate(ctx, wrong)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetByIDAndList(t *testing.T) {
	repo := &fakeUserRepo{}
	s := NewUserService(repo)
	ctx := context.Background()

	_, err := s.GetByID(ctx, 1)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = s.Register(ctx, registerRequest())
	require.NoError(t, err)

	user, err := s.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Иван", user.FirstName)

	users, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
