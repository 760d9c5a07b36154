package model

import "time"

// Test запись о тесте. Вопросы лежат в JSON-файле Filename.
type Test struct {
	ID          int       `json:"id"`
	Filename    string    `json:"filename"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
}
