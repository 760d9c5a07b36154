package notifier

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/telebot.v4"
)

// Logger пишет входящие обновления бота в debug-лог
func Logger(logger zerolog.Logger) telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			event := logger.Debug().Int("update_id", c.Update().ID)
			if chat := c.Chat(); chat != nil {
				event = event.Int64("chat_id", chat.ID)
			}
			if text := c.Text(); text != "" {
				event = event.Str("text", text)
			}
			event.Msg("telegram update")
			return next(c)
		}
	}
}

// Recover перехватывает панику в обработчике бота и возвращает ее как ошибку
func Recover(logger zerolog.Logger) telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				switch x := r.(type) {
				case error:
					err = x
				case string:
					err = errors.New(x)
				default:
					err = fmt.Errorf("panic: %v", x)
				}
				logger.Error().Err(err).Msg("recovered from panic in bot handler")
			}()
			return next(c)
		}
	}
}
