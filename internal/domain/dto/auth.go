package dto

import "time"

// RegisterRequest данные формы регистрации
type RegisterRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	MiddleName string `json:"middle_name"`
	Faculty    string `json:"faculty"`
	Course     int    `json:"course"`
	Password   string `json:"password"`
}

// LoginRequest данные формы входа. Поля совпадают с регистрацией.
type LoginRequest RegisterRequest

// TokenResponse ответ с JWT токеном
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// CompletedTestInfo краткие сведения о пройденном тесте в профиле
type CompletedTestInfo struct {
	TestID      int            `json:"test_id"`
	Result      map[string]any `json:"result"`
	CompletedAt time.Time      `json:"completed_at"`
}

// UserResponse профиль текущего пользователя
type UserResponse struct {
	ID             int                 `json:"id"`
	FirstName      string              `json:"first_name"`
	LastName       string              `json:"last_name"`
	MiddleName     string              `json:"middle_name"`
	Faculty        string              `json:"faculty"`
	Course         int                 `json:"course"`
	CreatedAt      time.Time           `json:"created_at"`
	CompletedTests []CompletedTestInfo `json:"completed_tests"`
}

// MessageResponse простой ответ с сообщением
type MessageResponse struct {
	Message string `json:"message"`
}
