package model

import "time"

// Статусы прохождения теста пользователем
const (
	StatusNotStarted = "not_started"
	StatusCompleted  = "completed"
)

// UserTest завершенное прохождение теста
type UserTest struct {
	ID          int            `json:"id"`
	UserID      int            `json:"user_id"`
	TestID      int            `json:"test_id"`
	Answers     []string       `json:"answers"`
	Result      map[string]any `json:"result"`
	CompletedAt time.Time      `json:"completed_at"`
}
