package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/th3funto/ninja-store/internal/pricing"
	"github.com/th3funto/ninja-store/internal/session"
)

// BOT COMMANDS

func (b *Bot) registerCommands() {
	b.commands = map[string]func(ctx context.Context, chatID int64, args string){
		"start":      func(ctx context.Context, chatID int64, _ string) { b.handleStart(ctx, chatID) },
		"help":       func(_ context.Context, chatID int64, _ string) { b.handleHelp(chatID) },
		"painel":     func(ctx context.Context, chatID int64, _ string) { b.showPanel(ctx, chatID) },
		"produto":    b.fieldCommand(session.StepProductName),
		"preco":      b.fieldCommand(session.StepUSDPrice),
		"cotacao":    b.fieldCommand(session.StepExchangeRate),
		"taxa":       b.fieldCommand(session.StepImportFee),
		"margem":     b.fieldCommand(session.StepMargin),
		"arredondar": func(ctx context.Context, chatID int64, _ string) { b.handleToggleRounding(ctx, chatID) },
		"cartao":     b.handleCard,
		"parcelas":   b.handleInstallments,
		"oferta":     func(ctx context.Context, chatID int64, _ string) { b.handleOffer(ctx, chatID) },
		"cancel":     func(ctx context.Context, chatID int64, _ string) { b.handleCancel(ctx, chatID) },
	}
}

func (b *Bot) handleCommand(ctx context.Context, chatID int64, command, args string) {
	handler, ok := b.commands[strings.ToLower(command)]
	if !ok {
		b.handleUnknownCommand(chatID)
		return
	}
	handler(ctx, chatID, strings.TrimSpace(args))
}

func (b *Bot) handleDefault(_ context.Context, chatID int64) {
	b.sendError(chatID, "Não entendi. Use os botões do painel ou /help.")
}

func (b *Bot) handleUnknownCommand(chatID int64) {
	b.sendError(chatID, "Comando desconhecido. Use /help para ver os comandos.")
}

func (b *Bot) handleHelp(chatID int64) {
	b.sendMessage(tgbotapi.NewMessage(chatID, helpText))
}

func (b *Bot) handleStart(ctx context.Context, chatID int64) {
	sess, err := b.sessions.Reset(ctx, chatID)
	if err != nil {
		b.logger.Error("Failed to reset session",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Erro ao iniciar a calculadora. Tente novamente.")
		return
	}
	b.sendPanel(chatID, sess)
}

func (b *Bot) showPanel(ctx context.Context, chatID int64) {
	sess, ok := b.loadSession(ctx, chatID)
	if !ok {
		return
	}
	b.sendPanel(chatID, sess)
}

// fieldCommand sets the field directly when arguments are given and
// otherwise asks for it.
func (b *Bot) fieldCommand(step session.Step) func(ctx context.Context, chatID int64, args string) {
	return func(ctx context.Context, chatID int64, args string) {
		if args != "" {
			b.handleInput(ctx, chatID, step, args)
			return
		}
		b.askField(ctx, chatID, step)
	}
}

func (b *Bot) askField(ctx context.Context, chatID int64, step session.Step) {
	sess, err := b.sessions.SetStep(ctx, chatID, step)
	if err != nil {
		b.logger.Error("Failed to set step",
			zap.Int64("chat_id", chatID),
			zap.String("step", string(step)),
			zap.Error(err))
		b.sendError(chatID, "Erro ao salvar. Tente novamente.")
		return
	}

	msg := tgbotapi.NewMessage(chatID, renderPrompt(sess, step))
	msg.ReplyMarkup = tgbotapi.ForceReply{ForceReply: true, Selective: true}
	b.sendMessage(msg)
}

func (b *Bot) handleToggleRounding(ctx context.Context, chatID int64) {
	sess, err := b.sessions.ToggleRounding(ctx, chatID)
	if err != nil {
		b.logger.Error("Failed to toggle rounding",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Erro ao salvar. Tente novamente.")
		return
	}
	b.sendPanel(chatID, sess)
}

func (b *Bot) handleCard(ctx context.Context, chatID int64, args string) {
	if args == "" {
		b.showInstallments(ctx, chatID)
		return
	}

	id, ok := parseProfileArg(args)
	if !ok {
		b.sendError(chatID, "Cartão desconhecido. Use /cartao visa ou /cartao elo.")
		return
	}
	b.selectProfile(ctx, chatID, id)
}

func (b *Bot) selectProfile(ctx context.Context, chatID int64, id pricing.ProfileID) {
	sess, err := b.sessions.SetProfile(ctx, chatID, id)
	if errors.Is(err, pricing.ErrUnknownProfile) {
		b.sendError(chatID, "Cartão desconhecido.")
		return
	}
	if err != nil {
		b.logger.Error("Failed to set profile",
			zap.Int64("chat_id", chatID),
			zap.String("profile", string(id)),
			zap.Error(err))
		b.sendError(chatID, "Erro ao salvar. Tente novamente.")
		return
	}
	b.sendInstallments(chatID, sess)
}

// handleInstallments shows the whole table, or a single plan when an
// installment count is given.
func (b *Bot) handleInstallments(ctx context.Context, chatID int64, args string) {
	if args == "" {
		b.showInstallments(ctx, chatID)
		return
	}

	n, err := strconv.Atoi(args)
	if err != nil {
		b.sendError(chatID, fmt.Sprintf("Informe o número de parcelas, de 1 a %d.", pricing.MaxInstallments))
		return
	}

	sess, ok := b.loadSession(ctx, chatID)
	if !ok {
		return
	}
	profile, ok := b.sessionProfile(chatID, sess)
	if !ok {
		return
	}

	row, err := pricing.Quote(sess.Breakdown().FinalCashPrice, profile, n)
	if err != nil {
		b.sendError(chatID, fmt.Sprintf("Informe o número de parcelas, de 1 a %d.", pricing.MaxInstallments))
		return
	}

	text := fmt.Sprintf("%s · %s\n%dx de %s (total %s, taxa %s)",
		profile.Name, row.Label, row.Count,
		pricing.FormatBRL(row.PerInstallment),
		pricing.FormatBRL(row.TotalCharge),
		pricing.FormatRate(row.Rate))
	b.sendMessage(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) showInstallments(ctx context.Context, chatID int64) {
	sess, ok := b.loadSession(ctx, chatID)
	if !ok {
		return
	}
	b.sendInstallments(chatID, sess)
}

func (b *Bot) handleOffer(ctx context.Context, chatID int64) {
	sess, ok := b.loadSession(ctx, chatID)
	if !ok {
		return
	}
	profile, ok := b.sessionProfile(chatID, sess)
	if !ok {
		return
	}

	// Plain text so the message can be forwarded or copied as is.
	text := pricing.OfferText(sess.ProductName, sess.Breakdown().FinalCashPrice, profile)
	b.sendMessage(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) handleCancel(ctx context.Context, chatID int64) {
	sess, err := b.sessions.SetStep(ctx, chatID, session.StepIdle)
	if err != nil {
		b.logger.Error("Failed to cancel input",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Erro ao cancelar. Tente novamente.")
		return
	}
	b.sendMessage(tgbotapi.NewMessage(chatID, "Edição cancelada."))
	b.sendPanel(chatID, sess)
}

func (b *Bot) loadSession(ctx context.Context, chatID int64) (session.Session, bool) {
	sess, err := b.sessions.Get(ctx, chatID)
	if err != nil {
		b.logger.Error("Failed to get session",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Erro ao carregar a calculadora. Tente novamente.")
		return session.Session{}, false
	}
	return sess, true
}

func (b *Bot) sessionProfile(chatID int64, sess session.Session) (pricing.FeeProfile, bool) {
	profile, err := sess.FeeProfile()
	if err != nil {
		b.logger.Warn("Session has unknown profile",
			zap.Int64("chat_id", chatID),
			zap.String("profile", string(sess.Profile)))
		b.sendError(chatID, "Cartão desconhecido. Use /cartao visa ou /cartao elo.")
		return pricing.FeeProfile{}, false
	}
	return profile, true
}

func (b *Bot) sendPanel(chatID int64, sess session.Session) {
	msg := tgbotapi.NewMessage(chatID, renderPanel(sess))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = panelKeyboard(sess)
	b.sendMessage(msg)
}

func (b *Bot) sendInstallments(chatID int64, sess session.Session) {
	profile, ok := b.sessionProfile(chatID, sess)
	if !ok {
		return
	}

	msg := tgbotapi.NewMessage(chatID, renderInstallments(sess.Breakdown().FinalCashPrice, profile))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = installmentsKeyboard(profile.ID)
	b.sendMessage(msg)
}
