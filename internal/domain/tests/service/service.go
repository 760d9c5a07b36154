package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/IT-Nick/psytest/internal/domain/definitions"
	"github.com/IT-Nick/psytest/internal/domain/dto"
	"github.com/IT-Nick/psytest/internal/domain/model"
	"github.com/IT-Nick/psytest/internal/domain/tests/repository"
	"github.com/IT-Nick/psytest/internal/domain/validation"
	"github.com/IT-Nick/psytest/internal/infra/log"
	"github.com/IT-Nick/psytest/internal/infra/metrics"
	"github.com/rs/zerolog"
)

// DefaultTestFile тест, который добавляется в пустую базу
const DefaultTestFile = "questions.json"

// MessageCompleted ответ на успешное завершение теста
const MessageCompleted = "Тест успешно завершен"

var (
	ErrTestNotAvailable = errors.New("Тест не найден или недоступен")
	ErrTestNotFound     = errors.New("Тест не найден")
	ErrAlreadyCompleted = errors.New("Тест уже завершен")
	ErrResultsNotFound  = errors.New("Результаты теста не найдены. Тест не завершен.")
	ErrTestExists       = errors.New("Тест с таким файлом уже существует")
)

// TestRepository хранилище тестов и прохождений
type TestRepository interface {
	ListTests(ctx context.Context, onlyAvailable bool) ([]model.Test, error)
	GetTestByID(ctx context.Context, testID int) (*model.Test, error)
	CreateTest(ctx context.Context, filename string, available bool) (*model.Test, error)
	SetAvailability(ctx context.Context, testID int, available bool) (bool, error)
	CountTests(ctx context.Context) (int, error)
	GetUserTest(ctx context.Context, userID, testID int) (*model.UserTest, error)
	ListUserTests(ctx context.Context, userID int) ([]model.UserTest, error)
	CreateUserTest(ctx context.Context, ut *model.UserTest) error
}

// Definitions источник файлов с вопросами
type Definitions interface {
	Load(filename string) (*definitions.Definition, error)
	Title(filename string) string
}

// Notifier сообщает администраторам о завершении теста
type Notifier interface {
	TestCompleted(user model.User, testTitle string)
}

type nopNotifier struct{}

func (nopNotifier) TestCompleted(model.User, string) {}

// TestService для работы с тестами
type TestService struct {
	testRepo TestRepository
	defs     Definitions
	notifier Notifier
	logger   zerolog.Logger
	now      func() time.Time
}

// NewTestService создает новый экземпляр TestService. notifier может быть nil.
func NewTestService(testRepo TestRepository, defs Definitions, notifier Notifier) *TestService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &TestService{
		testRepo: testRepo,
		defs:     defs,
		notifier: notifier,
		logger:   log.WithComponent("tests"),
		now:      time.Now,
	}
}

// ListAll все тесты, включая выключенные
func (s *TestService) ListAll(ctx context.Context) ([]model.Test, error) {
	tests, err := s.testRepo.ListTests(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get tests: %w", err)
	}
	return tests, nil
}

// ListAvailable тесты, доступные для прохождения
func (s *TestService) ListAvailable(ctx context.Context) ([]model.Test, error) {
	tests, err := s.testRepo.ListTests(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to get available tests: %w", err)
	}
	return tests, nil
}

// GetAvailableByID доступный тест или ErrTestNotAvailable
func (s *TestService) GetAvailableByID(ctx context.Context, testID int) (*model.Test, error) {
	test, err := s.GetByID(ctx, testID)
	if err != nil {
		if errors.Is(err, ErrTestNotFound) {
			return nil, ErrTestNotAvailable
		}
		return nil, err
	}
	if !test.IsAvailable {
		return nil, ErrTestNotAvailable
	}
	return test, nil
}

// GetByID тест независимо от доступности или ErrTestNotFound
func (s *TestService) GetByID(ctx context.Context, testID int) (*model.Test, error) {
	test, err := s.testRepo.GetTestByID(ctx, testID)
	if err != nil {
		return nil, fmt.Errorf("failed to get test: %w", err)
	}
	if test == nil {
		return nil, ErrTestNotFound
	}
	return test, nil
}

// Create добавляет тест. Файл должен существовать и разбираться.
func (s *TestService) Create(ctx context.Context, filename string, available bool) (*model.Test, error) {
	if _, err := s.defs.Load(filename); err != nil {
		return nil, fmt.Errorf("failed to load definition: %w", err)
	}

	test, err := s.testRepo.CreateTest(ctx, filename, available)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateTest) {
			return nil, ErrTestExists
		}
		return nil, fmt.Errorf("failed to create test: %w", err)
	}

	s.logger.Info().
		Int("test_id", test.ID).
		Str("filename", filename).
		Bool("available", available).
		Msg("test created")
	return test, nil
}

// SetAvailability включает или выключает тест
func (s *TestService) SetAvailability(ctx context.Context, testID int, available bool) error {
	found, err := s.testRepo.SetAvailability(ctx, testID, available)
	if err != nil {
		return fmt.Errorf("failed to set availability: %w", err)
	}
	if !found {
		return ErrTestNotFound
	}
	return nil
}

// Seed добавляет тест по умолчанию, если таблица пуста. Возвращает созданный тест или nil.
func (s *TestService) Seed(ctx context.Context) (*model.Test, error) {
	count, err := s.testRepo.CountTests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count tests: %w", err)
	}
	if count > 0 {
		return nil, nil
	}
	return s.Create(ctx, DefaultTestFile, true)
}

// Statuses статус каждого доступного теста для пользователя
func (s *TestService) Statuses(ctx context.Context, userID int) ([]dto.TestStatus, error) {
	tests, err := s.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}

	completed, err := s.completedByTest(ctx, userID)
	if err != nil {
		return nil, err
	}

	statuses := make([]dto.TestStatus, 0, len(tests))
	for _, test := range tests {
		status := dto.TestStatus{
			TestID:    test.ID,
			TestTitle: s.defs.Title(test.Filename),
			Status:    model.StatusNotStarted,
		}
		if ut, ok := completed[test.ID]; ok {
			completedAt := ut.CompletedAt
			status.Status = model.StatusCompleted
			status.CompletedAt = &completedAt
			status.Result = ut.Result
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// Completed краткие сведения о пройденных тестах для профиля
func (s *TestService) Completed(ctx context.Context, userID int) ([]dto.CompletedTestInfo, error) {
	uts, err := s.testRepo.ListUserTests(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get completed tests: %w", err)
	}
	out := make([]dto.CompletedTestInfo, 0, len(uts))
	for _, ut := range uts {
		out = append(out, dto.CompletedTestInfo{
			TestID:      ut.TestID,
			Result:      ut.Result,
			CompletedAt: ut.CompletedAt,
		})
	}
	return out, nil
}

func (s *TestService) completedByTest(ctx context.Context, userID int) (map[int]model.UserTest, error) {
	uts, err := s.testRepo.ListUserTests(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get completed tests: %w", err)
	}
	out := make(map[int]model.UserTest, len(uts))
	for _, ut := range uts {
		out[ut.TestID] = ut
	}
	return out, nil
}

// Complete сохраняет ответы пользователя. Если у теста есть шкалы, результат
// считается на сервере, иначе берется присланный клиентом.
func (s *TestService) Complete(ctx context.Context, user *model.User, testID int, req dto.CompleteTestRequest) (*dto.CompleteTestResponse, error) {
	test, err := s.GetAvailableByID(ctx, testID)
	if err != nil {
		return nil, err
	}

	errs := validation.Answers(req.Answers)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	existing, err := s.testRepo.GetUserTest(ctx, user.ID, testID)
	if err != nil {
		return nil, fmt.Errorf("failed to check completion: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyCompleted
	}

	answers := make([]string, len(req.Answers))
	for i, a := range req.Answers {
		answers[i] = strings.ToLower(strings.TrimSpace(a))
	}

	title := definitions.TitleFromFilename(test.Filename)
	result := req.Result
	if def, err := s.defs.Load(test.Filename); err != nil {
		s.logger.Warn().Err(err).Int("test_id", testID).Msg("definition unavailable, keeping client result")
	} else {
		title = def.Title
		if def.HasScales() {
			result = definitions.ResultMap(definitions.Score(def, answers))
		}
	}
	if len(result) == 0 {
		errs.Add(validation.FieldResult, "Поле обязательно для заполнения")
		return nil, errs
	}

	ut := &model.UserTest{
		UserID:      user.ID,
		TestID:      testID,
		Answers:     answers,
		Result:      result,
		CompletedAt: s.now().UTC(),
	}
	if err := s.testRepo.CreateUserTest(ctx, ut); err != nil {
		if errors.Is(err, repository.ErrDuplicateCompletion) {
			return nil, ErrAlreadyCompleted
		}
		return nil, fmt.Errorf("failed to save completion: %w", err)
	}

	metrics.RecordTestCompleted(testID)
	s.notifier.TestCompleted(*user, title)
	log.FromContext(ctx).Info().
		Str("component", "tests").
		Int("user_id", user.ID).
		Int("test_id", testID).
		Msg("test completed")

	return &dto.CompleteTestResponse{
		Message: MessageCompleted,
		TestID:  testID,
		Result:  result,
	}, nil
}

// Results результат завершенного теста
func (s *TestService) Results(ctx context.Context, userID, testID int) (*dto.TestResult, error) {
	test, err := s.GetByID(ctx, testID)
	if err != nil {
		return nil, err
	}

	ut, err := s.testRepo.GetUserTest(ctx, userID, testID)
	if err != nil {
		return nil, fmt.Errorf("failed to get results: %w", err)
	}
	if ut == nil {
		return nil, ErrResultsNotFound
	}

	return &dto.TestResult{
		TestID:      testID,
		TestTitle:   s.defs.Title(test.Filename),
		Result:      ut.Result,
		CompletedAt: ut.CompletedAt,
	}, nil
}
