package bot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/th3funto/ninja-store/internal/config"
	"github.com/th3funto/ninja-store/internal/session"
)

// Sender is the part of *tgbotapi.BotAPI the handlers talk to.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Bot struct {
	api           *tgbotapi.BotAPI
	sender        Sender
	logger        *zap.Logger
	sessions      *session.Manager
	updateTimeout int
	commands      map[string]func(ctx context.Context, chatID int64, args string)
}

// New authorizes against Telegram, retrying transient failures until
// cfg.ConnectTimeout passes. A rejected token fails immediately.
func New(ctx context.Context, cfg config.Telegram, sessions *session.Manager, logger *zap.Logger) (*Bot, error) {
	const operation = "bot.New"

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.MaxElapsedTime = cfg.ConnectTimeout

	var botAPI *tgbotapi.BotAPI
	err := backoff.RetryNotify(
		func() error {
			var err error
			botAPI, err = tgbotapi.NewBotAPI(cfg.Token)
			var apiErr *tgbotapi.Error
			if errors.As(err, &apiErr) && apiErr.Code == http.StatusUnauthorized {
				return backoff.Permanent(err)
			}
			return err
		},
		backoff.WithContext(retryPolicy, ctx),
		func(err error, next time.Duration) {
			logger.Warn("Telegram authorization failed, retrying...",
				zap.Error(err),
				zap.Duration("next_attempt_in", next))
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create bot API: %w", operation, err)
	}

	botAPI.Debug = cfg.Debug

	logger.Info("Bot authorized",
		zap.String("username", botAPI.Self.UserName),
		zap.Int64("id", botAPI.Self.ID))

	b := newBot(botAPI, sessions, logger)
	b.api = botAPI
	b.updateTimeout = cfg.UpdateTimeout
	return b, nil
}

func newBot(sender Sender, sessions *session.Manager, logger *zap.Logger) *Bot {
	b := &Bot{
		sender:   sender,
		logger:   logger,
		sessions: sessions,
	}
	b.registerCommands()
	return b
}

// Start long-polls updates until ctx is cancelled. Updates are handled one
// at a time.
func (b *Bot) Start(ctx context.Context) error {
	if b.api == nil {
		return errors.New("bot.Start: bot is not connected")
	}

	b.logger.Info("Starting bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.updateTimeout
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Shutting down bot")
			b.api.StopReceivingUpdates()
			return nil

		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		b.processMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.processCallback(ctx, update.CallbackQuery)
	}
}

func (b *Bot) processMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	b.logger.Debug("Processing message",
		zap.Int64("chat_id", chatID),
		zap.String("text", msg.Text))

	if msg.IsCommand() {
		b.handleCommand(ctx, chatID, msg.Command(), msg.CommandArguments())
		return
	}

	sess, err := b.sessions.Get(ctx, chatID)
	if err != nil {
		b.logger.Error("Failed to get session",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Erro ao carregar a calculadora. Tente novamente.")
		return
	}

	if sess.Step == session.StepIdle {
		b.handleDefault(ctx, chatID)
		return
	}

	b.handleInput(ctx, chatID, sess.Step, msg.Text)
}

func (b *Bot) processCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	if callback.Message == nil || callback.Message.Chat == nil {
		return
	}
	chatID := callback.Message.Chat.ID

	b.logger.Debug("Processing callback",
		zap.Int64("chat_id", chatID),
		zap.String("data", callback.Data))

	if _, err := b.sender.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		b.logger.Warn("Failed to answer callback",
			zap.String("callback_id", callback.ID),
			zap.Error(err))
	}

	b.handleButton(ctx, chatID, callback.Data)
}

func (b *Bot) sendMessage(msg tgbotapi.MessageConfig) {
	if _, err := b.sender.Send(msg); err != nil {
		b.logger.Error("Failed to send message",
			zap.Int64("chat_id", msg.ChatID),
			zap.Error(err))
	}
}

func (b *Bot) sendError(chatID int64, text string) {
	b.sendMessage(tgbotapi.NewMessage(chatID, "❌ "+text))
}
