// Package notifier отправляет администраторам сообщения в Telegram,
// когда студент завершает тест.
package notifier

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/IT-Nick/psytest/internal/domain/model"
	"github.com/IT-Nick/psytest/internal/infra/log"
	"github.com/IT-Nick/psytest/internal/infra/metrics"
	"github.com/rs/zerolog"
	"gopkg.in/telebot.v4"
)

// Sender часть telebot.Bot, которая нужна для отправки
type Sender interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// Notifier рассылает уведомления. Нулевой или nil Notifier ничего не делает.
type Notifier struct {
	bot    *telebot.Bot
	sender Sender
	chats  []int64
	logger zerolog.Logger
	wg     sync.WaitGroup
}

// New создает бота. При пустом токене уведомления отключены.
func New(token string, chats []int64) (*Notifier, error) {
	n := &Notifier{chats: chats, logger: log.WithComponent("notifier")}
	if token == "" {
		n.logger.Info().Msg("telegram token is empty, notifications disabled")
		return n, nil
	}

	bot, err := telebot.NewBot(telebot.Settings{
		Token:  token,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, fmt.Errorf("telebot.NewBot: %w", err)
	}
	n.bot = bot
	n.sender = bot
	bot.Use(Recover(n.logger), Logger(n.logger))
	n.bootstrapHandlers()
	return n, nil
}

// NewWithSender уведомления через произвольный Sender
func NewWithSender(sender Sender, chats []int64) *Notifier {
	return &Notifier{sender: sender, chats: chats, logger: log.WithComponent("notifier")}
}

// Enabled true, если есть куда и чем отправлять
func (n *Notifier) Enabled() bool {
	return n != nil && n.sender != nil && len(n.chats) > 0
}

// bootstrapHandlers /start подсказывает chat id для admin_chat_ids
func (n *Notifier) bootstrapHandlers() {
	n.bot.Handle("/start", func(c telebot.Context) error {
		if c.Chat() == nil {
			return nil
		}
		id := c.Chat().ID
		for _, chat := range n.chats {
			if chat == id {
				return c.Send("Вы подписаны на уведомления о завершении тестов.")
			}
		}
		return c.Send(fmt.Sprintf("Ваш chat id: %d. Добавьте его в telegram_bot.admin_chat_ids, чтобы получать уведомления.", id))
	})
}

// Run принимает команды бота до отмены ctx. Без токена сразу ждет ctx.
func (n *Notifier) Run(ctx context.Context) error {
	if n == nil || n.bot == nil {
		<-ctx.Done()
		return nil
	}
	go n.bot.Start()
	<-ctx.Done()
	n.bot.Stop()
	n.Wait()
	return nil
}

// Message текст уведомления
func Message(user model.User, testTitle string) string {
	return fmt.Sprintf("Студент %s (%s, %d курс) завершил тест «%s»", user.FullName(), user.Faculty, user.Course, testTitle)
}

// TestCompleted отправляет уведомление в фоне. Ошибки только логируются.
func (n *Notifier) TestCompleted(user model.User, testTitle string) {
	if !n.Enabled() {
		return
	}
	text := Message(user, testTitle)
	for _, chat := range n.chats {
		n.wg.Add(1)
		go func(chatID int64) {
			defer n.wg.Done()
			_, err := n.sender.Send(&telebot.Chat{ID: chatID}, text)
			metrics.RecordNotification(err)
			if err != nil {
				n.logger.Error().Err(err).Int64("chat_id", chatID).Int("user_id", user.ID).Msg("failed to send notification")
				return
			}
			n.logger.Debug().Int64("chat_id", chatID).Int("user_id", user.ID).Msg("notification sent")
		}(chat)
	}
}

// Wait ждет завершения отправок
func (n *Notifier) Wait() {
	if n == nil {
		return
	}
	n.wg.Wait()
}
