package bot

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/th3funto/ninja-store/internal/pricing"
	"github.com/th3funto/ninja-store/internal/session"
)

// BOT KEYBOARDS

const (
	callbackEdit    = "edit:"
	callbackProfile = "profile:"
	callbackRound   = "round"
	callbackTable   = "table"
	callbackOffer   = "offer"
	callbackPanel   = "panel"
)

func editButton(text string, step session.Step) tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData(text, callbackEdit+string(step))
}

func panelKeyboard(sess session.Session) tgbotapi.InlineKeyboardMarkup {
	rounding := "🪄 Arredondar: Não"
	if sess.Inputs.SmartRounding {
		rounding = "🪄 Arredondar: Sim"
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			editButton("✏️ Produto", session.StepProductName),
			editButton("💵 Preço USD", session.StepUSDPrice),
		),
		tgbotapi.NewInlineKeyboardRow(
			editButton("💱 Cotação", session.StepExchangeRate),
			editButton("📦 Taxa Import.", session.StepImportFee),
			editButton("📈 Margem", session.StepMargin),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(rounding, callbackRound),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💳 Parcelamento", callbackTable),
			tgbotapi.NewInlineKeyboardButtonData("📋 Copiar Oferta", callbackOffer),
		),
	)
}

func installmentsKeyboard(selected pricing.ProfileID) tgbotapi.InlineKeyboardMarkup {
	profiles := make([]tgbotapi.InlineKeyboardButton, 0, 2)
	for _, p := range pricing.Profiles() {
		label := p.Name
		if p.ID == selected {
			label = "✅ " + label
		}
		profiles = append(profiles, tgbotapi.NewInlineKeyboardButtonData(label, callbackProfile+string(p.ID)))
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		profiles,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Painel", callbackPanel),
			tgbotapi.NewInlineKeyboardButtonData("📋 Copiar Oferta", callbackOffer),
		),
	)
}

// parseProfileArg maps what a user types after /cartao to a profile id.
func parseProfileArg(arg string) (pricing.ProfileID, bool) {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "visa", "master", "mastercard", "visamaster", "visa/master":
		return pricing.VisaMasterID, true
	case "elo", "amex", "eloamex", "elo/amex":
		return pricing.EloAmexID, true
	default:
		return "", false
	}
}
