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

var (
	// ErrDuplicateTest тест с таким файлом уже добавлен
	ErrDuplicateTest = errors.New("test already exists")
	// ErrDuplicateCompletion пользователь уже завершил этот тест
	ErrDuplicateCompletion = errors.New("test already completed")
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// TestRepository репозиторий для работы с тестами и их прохождениями
type TestRepository struct {
	db *pgxpool.Pool
}

// NewTestRepository создает новый экземпляр TestRepository
func NewTestRepository(db *pgxpool.Pool) *TestRepository {
	return &TestRepository{db: db}
}

func scanTests(rows pgx.Rows) ([]model.Test, error) {
	defer rows.Close()

	var tests []model.Test
	for rows.Next() {
		var test model.Test
		if err := rows.Scan(&test.ID, &test.Filename, &test.IsAvailable, &test.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan test: %w", err)
		}
		tests = append(tests, test)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}
	return tests, nil
}

// ListTests возвращает тесты по возрастанию id. onlyAvailable отсекает выключенные.
func (r *TestRepository) ListTests(ctx context.Context, onlyAvailable bool) ([]model.Test, error) {
	query := "SELECT id, filename, is_available, created_at FROM tests"
	if onlyAvailable {
		query += " WHERE is_available"
	}
	query += " ORDER BY id"

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tests: %w", err)
	}
	return scanTests(rows)
}

// GetTestByID получает тест по ID, nil если его нет
func (r *TestRepository) GetTestByID(ctx context.Context, testID int) (*model.Test, error) {
	var test model.Test
	err := r.db.QueryRow(ctx, "SELECT id, filename, is_available, created_at FROM tests WHERE id = $1", testID).
		Scan(&test.ID, &test.Filename, &test.IsAvailable, &test.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get test by ID: %w", err)
	}
	return &test, nil
}

// CreateTest добавляет тест по имени файла
func (r *TestRepository) CreateTest(ctx context.Context, filename string, available bool) (*model.Test, error) {
	test := model.Test{Filename: filename, IsAvailable: available}
	err := r.db.QueryRow(ctx, `
                INSERT INTO tests (filename, is_available)
                VALUES ($1, $2)
                RETURNING id, created_at
        `, filename, available).Scan(&test.ID, &test.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateTest
		}
		return nil, fmt.Errorf("failed to create test: %w", err)
	}
	return &test, nil
}

// SetAvailability включает или выключает тест. Возвращает false, если теста нет.
func (r *TestRepository) SetAvailability(ctx context.Context, testID int, available bool) (bool, error) {
	tag, err := r.db.Exec(ctx, "UPDATE tests SET is_available = $1 WHERE id = $2", available, testID)
	if err != nil {
		return false, fmt.Errorf("failed to update test availability: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// CountTests общее количество тестов
func (r *TestRepository) CountTests(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM tests").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to get total test count: %w", err)
	}
	return count, nil
}

// GetUserTest прохождение теста пользователем, nil если тест не завершен
func (r *TestRepository) GetUserTest(ctx context.Context, userID, testID int) (*model.UserTest, error) {
	var ut model.UserTest
	err := r.db.QueryRow(ctx, `
                SELECT id, user_id, test_id, answers, result, completed_at
                FROM user_tests
                WHERE user_id = $1 AND test_id = $2
        `, userID, testID).Scan(&ut.ID, &ut.UserID, &ut.TestID, &ut.Answers, &ut.Result, &ut.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user test: %w", err)
	}
	return &ut, nil
}

// ListUserTests все завершенные пользователем тесты
func (r *TestRepository) ListUserTests(ctx context.Context, userID int) ([]model.UserTest, error) {
	rows, err := r.db.Query(ctx, `
                SELECT id, user_id, test_id, answers, result, completed_at
                FROM user_tests
                WHERE user_id = $1
                ORDER BY completed_at
        `, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user tests: %w", err)
	}
	defer rows.Close()

	var out []model.UserTest
	for rows.Next() {
		var ut model.UserTest
		if err := rows.Scan(&ut.ID, &ut.UserID, &ut.TestID, &ut.Answers, &ut.Result, &ut.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user test: %w", err)
		}
		out = append(out, ut)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error in rows: %w", err)
	}
	return out, nil
}

// CreateUserTest сохраняет завершение теста и заполняет ID
func (r *TestRepository) CreateUserTest(ctx context.Context, ut *model.UserTest) error {
	err := r.db.QueryRow(ctx, `
                INSERT INTO user_tests (user_id, test_id, answers, result, completed_at)
                VALUES ($1, $2, $3, $4, $5)
                RETURNING id
        `, ut.UserID, ut.TestID, ut.Answers, ut.Result, ut.CompletedAt).Scan(&ut.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateCompletion
		}
		return fmt.Errorf("failed to save user test: %w", err)
	}
	return nil
}
