package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/IT-Nick/psytest/internal/domain/definitions"
	"github.com/IT-Nick/psytest/internal/domain/dto"
)

type (
	TestResponse         = dto.TestResponse
	TestStatus           = dto.TestStatus
	TestResult           = dto.TestResult
	CompleteTestRequest  = dto.CompleteTestRequest
	CompleteTestResponse = dto.CompleteTestResponse
	TestDefinition       = definitions.Definition
)

// AvailableTests тесты, доступные для прохождения
func (c *Client) AvailableTests(ctx context.Context) ([]TestResponse, error) {
	var resp []TestResponse
	if err := c.do(ctx, http.MethodGet, "/tests/available", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// TestByID сведения о тесте
func (c *Client) TestByID(ctx context.Context, testID int) (*TestResponse, error) {
	var resp TestResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tests/%d", testID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TestStatuses статусы тестов текущего пользователя
func (c *Client) TestStatuses(ctx context.Context) ([]TestStatus, error) {
	var resp []TestStatus
	if err := c.do(ctx, http.MethodGet, "/user-tests/status", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// LoadTestDefinition загружает и разбирает файл с вопросами теста
func (c *Client) LoadTestDefinition(ctx context.Context, filename string) (*TestDefinition, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/static/"+url.PathEscape(filename), nil, &raw); err != nil {
		return nil, fmt.Errorf("Не удалось загрузить файл теста: %s: %w", filename, err)
	}
	def, err := definitions.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	return def, nil
}

// CompleteTest отправляет ответы и результат
func (c *Client) CompleteTest(ctx context.Context, testID int, req CompleteTestRequest) (*CompleteTestResponse, error) {
	var resp CompleteTestResponse
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/user-tests/%d/complete", testID), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TestResults результат пройденного теста
func (c *Client) TestResults(ctx context.Context, testID int) (*TestResult, error) {
	var resp TestResult
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/user-tests/%d/results", testID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
