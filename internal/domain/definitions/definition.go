// Package definitions загружает JSON-файлы с вопросами тестов и считает
// результаты по шкалам.
package definitions

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Значения по умолчанию для неполных файлов
const (
	DefaultTitle       = "Неизвестный тест"
	DefaultDescription = "Описание недоступно"
)

var ErrEmptyDefinition = errors.New("definition is empty")

// Question вопрос теста
type Question struct {
	Question string `json:"question"`
}

// Scale шкала: номера вопросов (с 1), за которые начисляется балл
// при ответе "да" (Positive) или "нет" (Negative)
type Scale struct {
	Description string `json:"description"`
	Positive    []int  `json:"positive"`
	Negative    []int  `json:"negative"`
}

// Definition содержимое файла теста
type Definition struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Questions   []Question       `json:"questions"`
	Results     map[string]Scale `json:"results,omitempty"`
}

// HasScales true, если результат можно посчитать на сервере
func (d *Definition) HasScales() bool {
	return d != nil && len(d.Results) > 0
}

type metadata struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Questions   []Question       `json:"questions"`
	Results     map[string]Scale `json:"results"`
}

// Parse разбирает файл теста. Поддерживаются два формата:
// массив, где первый элемент содержит метаданные, а остальные - вопросы,
// и объект с полями title, description, questions, results.
func Parse(data []byte) (*Definition, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmptyDefinition
	}

	var def Definition
	switch data[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("decode definition array: %w", err)
		}
		if len(items) == 0 {
			return nil, ErrEmptyDefinition
		}
		var meta metadata
		if err := json.Unmarshal(items[0], &meta); err != nil {
			return nil, fmt.Errorf("decode definition metadata: %w", err)
		}
		def.Title, def.Description, def.Results = meta.Title, meta.Description, meta.Results
		for i, raw := range items[1:] {
			var q Question
			if err := json.Unmarshal(raw, &q); err != nil {
				return nil, fmt.Errorf("decode question %d: %w", i+1, err)
			}
			if q.Question != "" {
				def.Questions = append(def.Questions, q)
			}
		}
	case '{':
		var meta metadata
		if err := json.Unmarshal(data, &meta); err != nil {
			return nil, fmt.Errorf("decode definition object: %w", err)
		}
		def.Title, def.Description, def.Results = meta.Title, meta.Description, meta.Results
		for _, q := range meta.Questions {
			if q.Question != "" {
				def.Questions = append(def.Questions, q)
			}
		}
	default:
		return nil, fmt.Errorf("unexpected definition format: starts with %q", data[0])
	}

	if def.Title == "" {
		def.Title = DefaultTitle
	}
	if def.Description == "" {
		def.Description = DefaultDescription
	}
	return &def, nil
}
