package handlerutil

import (
	"fmt"
	"net/http"

	"github.com/IT-Nick/psytest/internal/domain/dto"
	"github.com/IT-Nick/psytest/internal/domain/model"
	"github.com/IT-Nick/psytest/internal/infra/auth"
)

// TokenType значение token_type в ответе
const TokenType = "bearer"

// StartSession выпускает токен, кладет его в cookie и возвращает тело ответа
func StartSession(w http.ResponseWriter, tokens *auth.TokenManager, user *model.User, secureCookie bool) (*dto.TokenResponse, error) {
	token, _, err := tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	auth.SetCookie(w, token, tokens.TTL(), secureCookie)
	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   TokenType,
		ExpiresIn:   int(tokens.TTL().Seconds()),
	}, nil
}
