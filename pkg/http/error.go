package http

import (
	"encoding/json"
	"net/http"
)

// ValidationMessage общий текст для ошибок валидации входных данных
const ValidationMessage = "Ошибка валидации данных"

// ErrorBody тело ответа с ошибкой. Поле detail дублирует message, чтобы клиенты,
// ожидающие формат FastAPI, продолжали работать.
type ErrorBody struct {
	Error      bool     `json:"error"`
	Message    string   `json:"message"`
	Detail     string   `json:"detail"`
	Details    []string `json:"details,omitempty"`
	StatusCode int      `json:"status_code"`
}

// ErrorResponse отправляет JSON с ошибкой и заданным статусом
func ErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	writeError(w, ErrorBody{
		Error:      true,
		Message:    message,
		Detail:     message,
		StatusCode: statusCode,
	})
}

// ValidationResponse отправляет 422 со списком ошибок по полям
func ValidationResponse(w http.ResponseWriter, details []string) {
	writeError(w, ErrorBody{
		Error:      true,
		Message:    ValidationMessage,
		Detail:     ValidationMessage,
		Details:    details,
		StatusCode: http.StatusUnprocessableEntity,
	})
}

// UnauthorizedResponse отправляет 401 с заголовком WWW-Authenticate
func UnauthorizedResponse(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	ErrorResponse(w, http.StatusUnauthorized, message)
}

// JSONResponse сериализует v в тело ответа
func JSONResponse(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, body ErrorBody) {
	JSONResponse(w, body.StatusCode, body)
}
