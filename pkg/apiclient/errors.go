package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Сообщения для пользователя
const (
	AuthErrorMessage       = "Ошибка авторизации. Пожалуйста, войдите в систему заново."
	ValidationErrorMessage = "Ошибка валидации данных. Проверьте правильность заполнения полей."
	UnknownErrorMessage    = "Произошла неизвестная ошибка"
)

// APIError ответ сервера со статусом вне 2xx
type APIError struct {
	StatusCode int
	Message    string
	Details    []string
}

func (e *APIError) Error() string {
	return e.Message
}

func newAPIError(status int, body []byte) *APIError {
	var payload struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
		Details []string        `json:"details"`
	}
	apiErr := &APIError{StatusCode: status}
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Details = payload.Details
		var detail string
		if json.Unmarshal(payload.Detail, &detail) == nil && detail != "" {
			apiErr.Message = detail
		} else if payload.Message != "" {
			apiErr.Message = payload.Message
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("HTTP error! status: %d", status)
	}
	return apiErr
}

// IsAuthError ошибка авторизации: 401 или сообщение о токене
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == 401 {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "401") ||
		strings.Contains(msg, "Unauthorized") ||
		strings.Contains(msg, "токен")
}

// IsValidationError ошибка валидации: 422 или сообщение о validation
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == 422 {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "422") || strings.Contains(msg, "validation")
}

// FormatErrorMessage текст ошибки для показа пользователю
func FormatErrorMessage(err error) string {
	switch {
	case err == nil:
		return UnknownErrorMessage
	case IsAuthError(err):
		return AuthErrorMessage
	case IsValidationError(err):
		return ValidationErrorMessage
	case err.Error() != "":
		return err.Error()
	default:
		return UnknownErrorMessage
	}
}
