package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/IT-Nick/psytest/internal/domain/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDuplicate пользователь с таким ФИО уже есть (нарушение уникального индекса)
var ErrDuplicate = errors.New("user already exists")

const uniqueViolation = "23505"

const userColumns = `id, first_name, last_name, middle_name, faculty, course, password_hash, created_at`

// UserRepository реализация хранилища пользователей на PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository создает новый экземпляр UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.MiddleName, &u.Faculty, &u.Course, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser сохраняет пользователя и заполняет ID и CreatedAt
func (r *UserRepository) CreateUser(ctx context.Context, user *model.User) error {
	err := r.db.QueryRow(ctx, `
                INSERT INTO users (first_name, last_name, middle_name, faculty, course, password_hash)
                VALUES ($1, $2, $3, $4, $5, $6)
                RETURNING id, created_at
        `, user.FirstName, user.LastName, user.MiddleName, user.Faculty, user.Course, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByFullName ищет пользователя по ФИО
func (r *UserRepository) GetUserByFullName(ctx context.Context, firstName, lastName, middleName string) (*model.User, error) {
	row := r.db.QueryRow(ctx, `
                SELECT `+userColumns+`
                FROM users
                WHERE first_name = $1 AND last_name = $2 AND middle_name = $3
        `, firstName, lastName, middleName)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Если пользователя нет, возвращаем nil
		}
		return nil, fmt.Errorf("failed to get user by full name: %w", err)
	}
	return user, nil
}

// GetUserForLogin ищет пользователя по всем полям формы входа, кроме пароля
func (r *UserRepository) GetUserForLogin(ctx context.Context, firstName, lastName, middleName, faculty string, course int) (*model.User, error) {
	row := r.db.QueryRow(ctx, `
                SELECT `+userColumns+`
                FROM users
                WHERE first_name = $1 AND last_name = $2 AND middle_name = $3
                  AND faculty = $4 AND course = $5
        `, firstName, lastName, middleName, faculty, course)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user for login: %w", err)
	}
	return user, nil
}

// GetUserByID получает пользователя по ID
func (r *UserRepository) GetUserByID(ctx context.Context, userID int) (*model.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

// ListUsers возвращает всех пользователей по порядку регистрации
func (r *UserRepository) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}

	return users, nil
}
