package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/renameio/v2"
)

// ErrNoSession команда требует входа в систему
var ErrNoSession = errors.New("Вы не вошли в систему. Выполните: psytest client login")

// ErrSessionServerMismatch адрес API не совпадает с сервером сессии
var ErrSessionServerMismatch = errors.New("Сессия относится к другому серверу")

// Session сохраненный между запусками токен
type Session struct {
	BaseURL  string    `json:"base_url"`
	Token    string    `json:"token"`
	FullName string    `json:"full_name,omitempty"`
	SavedAt  time.Time `json:"saved_at"`
}

// DefaultSessionPath ~/.psytest/session.json
func DefaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".psytest", "session.json")
	}
	return filepath.Join(home, ".psytest", "session.json")
}

// LoadSession читает сессию. Если файла нет или токен пуст, возвращает ErrNoSession.
func LoadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", path, err)
	}
	if s.Token == "" {
		return nil, ErrNoSession
	}
	return &s, nil
}

// Save атомарно записывает сессию, доступную только владельцу
func (s *Session) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := renameio.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// ClearSession удаляет файл сессии. Отсутствие файла не ошибка.
func ClearSession(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
