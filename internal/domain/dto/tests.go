package dto

import "time"

// TestResponse данные теста
type TestResponse struct {
	ID          int       `json:"id"`
	Filename    string    `json:"filename"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
}

// TestStatus статус теста для текущего пользователя
type TestStatus struct {
	TestID      int            `json:"test_id"`
	TestTitle   string         `json:"test_title"`
	Status      string         `json:"status"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	Result      map[string]any `json:"result,omitempty"`
}

// TestResult результат завершенного теста
type TestResult struct {
	TestID      int            `json:"test_id"`
	TestTitle   string         `json:"test_title"`
	Result      map[string]any `json:"result"`
	CompletedAt time.Time      `json:"completed_at"`
}

// CompleteTestRequest финальные ответы и результат, посчитанный клиентом
type CompleteTestRequest struct {
	Answers []string       `json:"answers"`
	Result  map[string]any `json:"result"`
}

// CompleteTestResponse ответ на завершение теста
type CompleteTestResponse struct {
	Message string         `json:"message"`
	TestID  int            `json:"test_id"`
	Result  map[string]any `json:"result"`
}
