package bot

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/th3funto/ninja-store/internal/pricing"
	"github.com/th3funto/ninja-store/internal/session"
)

// handleInput stores text into the field of step and redraws the panel.
func (b *Bot) handleInput(ctx context.Context, chatID int64, step session.Step, text string) {
	sess, err := b.sessions.SetField(ctx, chatID, step, text)
	if err != nil {
		b.logger.Error("Failed to update field",
			zap.Int64("chat_id", chatID),
			zap.String("step", string(step)),
			zap.Error(err))
		b.sendError(chatID, "Erro ao salvar. Tente novamente.")
		return
	}

	b.logger.Debug("Field updated",
		zap.Int64("chat_id", chatID),
		zap.String("step", string(step)))

	b.sendPanel(chatID, sess)
}

func (b *Bot) handleButton(ctx context.Context, chatID int64, data string) {
	switch {
	case strings.HasPrefix(data, callbackEdit):
		step := session.Step(strings.TrimPrefix(data, callbackEdit))
		if !editable(step) {
			b.sendError(chatID, "Campo desconhecido.")
			return
		}
		b.askField(ctx, chatID, step)

	case strings.HasPrefix(data, callbackProfile):
		b.selectProfile(ctx, chatID, pricing.ProfileID(strings.TrimPrefix(data, callbackProfile)))

	case data == callbackRound:
		b.handleToggleRounding(ctx, chatID)

	case data == callbackTable:
		b.showInstallments(ctx, chatID)

	case data == callbackOffer:
		b.handleOffer(ctx, chatID)

	case data == callbackPanel:
		b.showPanel(ctx, chatID)

	default:
		b.logger.Warn("Unknown callback",
			zap.Int64("chat_id", chatID),
			zap.String("data", data))
	}
}

func editable(step session.Step) bool {
	switch step {
	case session.StepProductName, session.StepUSDPrice, session.StepExchangeRate,
		session.StepImportFee, session.StepMargin:
		return true
	}
	return false
}
