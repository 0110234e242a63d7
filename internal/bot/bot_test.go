package bot

import (
	"context"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/th3funto/ninja-store/internal/pricing"
	"github.com/th3funto/ninja-store/internal/session"
)

const testChatID int64 = 100

type fakeSender struct {
	sent     []tgbotapi.MessageConfig
	requests []tgbotapi.Chattable
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeSender) last(t *testing.T) tgbotapi.MessageConfig {
	t.Helper()
	require.NotEmpty(t, f.sent)
	return f.sent[len(f.sent)-1]
}

func newTestBot() (*Bot, *fakeSender, *session.Manager) {
	sender := &fakeSender{}
	sessions := session.NewManager(session.NewMemoryStore(time.Hour), session.DefaultDefaults())
	return newBot(sender, sessions, zap.NewNop()), sender, sessions
}

func command(text string) *tgbotapi.Message {
	name := strings.SplitN(text, " ", 2)[0]
	return &tgbotapi.Message{
		Chat:     &tgbotapi.Chat{ID: testChatID},
		Text:     text,
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(name)}},
	}
}

func text(s string) *tgbotapi.Message {
	return &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: testChatID}, Text: s}
}

func callback(data string) *tgbotapi.CallbackQuery {
	return &tgbotapi.CallbackQuery{
		ID:      "cb-1",
		Data:    data,
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: testChatID}},
	}
}

func TestStart_SendsPanel(t *testing.T) {
	b, sender, _ := newTestBot()

	b.processMessage(context.Background(), command("/start"))

	msg := sender.last(t)
	assert.Equal(t, testChatID, msg.ChatID)
	assert.Equal(t, tgbotapi.ModeHTML, msg.ParseMode)
	assert.Contains(t, msg.Text, "Iphone 16 / 125gb")
	assert.Contains(t, msg.Text, "Preço Final (À Vista): R$\u00a04.850,00")
	assert.Contains(t, msg.Text, "🪄 Arredondado")
	assert.IsType(t, tgbotapi.InlineKeyboardMarkup{}, msg.ReplyMarkup)
}

func TestEditFlow_ButtonThenText(t *testing.T) {
	ctx := context.Background()
	b, sender, sessions := newTestBot()

	b.processCallback(ctx, callback(callbackEdit+string(session.StepUSDPrice)))

	require.Len(t, sender.requests, 1)
	assert.Contains(t, sender.last(t).Text, "preço em dólar")

	sess, err := sessions.Get(ctx, testChatID)
	require.NoError(t, err)
	assert.Equal(t, session.StepUSDPrice, sess.Step)

	b.processMessage(ctx, text("1000"))

	assert.Contains(t, sender.last(t).Text, "R$\u00a06.065,00")

	sess, err = sessions.Get(ctx, testChatID)
	require.NoError(t, err)
	assert.Equal(t, session.StepIdle, sess.Step)
	assert.Equal(t, "1000", sess.Inputs.ForeignPrice)
}

func TestFieldCommand_WithArgs(t *testing.T) {
	ctx := context.Background()
	b, sender, sessions := newTestBot()

	b.processMessage(ctx, command("/margem abc"))

	sess, err := sessions.Get(ctx, testChatID)
	require.NoError(t, err)
	assert.Equal(t, "abc", sess.Inputs.MarginPct)
	assert.Contains(t, sender.last(t).Text, "R$\u00a04.620,00")
}

func TestFieldCommand_WithoutArgsAsks(t *testing.T) {
	ctx := context.Background()
	b, sender, sessions := newTestBot()

	b.processMessage(ctx, command("/produto"))

	assert.IsType(t, tgbotapi.ForceReply{}, sender.last(t).ReplyMarkup)

	b.processMessage(ctx, text("Playstation 5"))

	sess, err := sessions.Get(ctx, testChatID)
	require.NoError(t, err)
	assert.Equal(t, "Playstation 5", sess.ProductName)
}

func TestIdleText_Rejected(t *testing.T) {
	b, sender, _ := newTestBot()

	b.processMessage(context.Background(), text("olá"))

	assert.True(t, strings.HasPrefix(sender.last(t).Text, "❌ "))
}

func TestUnknownCommand(t *testing.T) {
	b, sender, _ := newTestBot()

	b.processMessage(context.Background(), command("/pix"))

	assert.True(t, strings.HasPrefix(sender.last(t).Text, "❌ "))
}

func TestToggleRounding(t *testing.T) {
	ctx := context.Background()
	b, sender, _ := newTestBot()

	b.processCallback(ctx, callback(callbackRound))

	msg := sender.last(t)
	assert.Contains(t, msg.Text, "📏 Exato")
	assert.Contains(t, msg.Text, "R$\u00a04.851,00")
}

func TestOffer_PlainText(t *testing.T) {
	b, sender, _ := newTestBot()

	b.processMessage(context.Background(), command("/oferta"))

	msg := sender.last(t)
	assert.Empty(t, msg.ParseMode)
	assert.Equal(t, pricing.OfferText("Iphone 16 / 125gb", 4850, pricing.MustProfile(pricing.VisaMasterID)), msg.Text)
}

func TestCard_SwitchesProfile(t *testing.T) {
	ctx := context.Background()
	b, sender, sessions := newTestBot()

	b.processMessage(ctx, command("/cartao elo"))

	msg := sender.last(t)
	assert.Contains(t, msg.Text, "Elo / Amex")
	assert.Contains(t, msg.Text, pricing.DebitLabel)
	assert.Contains(t, msg.Text, "12x Crédito")

	sess, err := sessions.Get(ctx, testChatID)
	require.NoError(t, err)
	assert.Equal(t, pricing.EloAmexID, sess.Profile)

	b.processMessage(ctx, command("/cartao diners"))
	assert.True(t, strings.HasPrefix(sender.last(t).Text, "❌ "))
}

func TestProfileButton_Unknown(t *testing.T) {
	b, sender, _ := newTestBot()

	b.processCallback(context.Background(), callback(callbackProfile+"diners"))

	assert.True(t, strings.HasPrefix(sender.last(t).Text, "❌ "))
}

func TestInstallments_SinglePlan(t *testing.T) {
	ctx := context.Background()
	b, sender, _ := newTestBot()

	b.processMessage(ctx, command("/parcelas 6"))
	assert.Contains(t, sender.last(t).Text, "6x de R$\u00a0881,31")

	b.processMessage(ctx, command("/parcelas 13"))
	assert.True(t, strings.HasPrefix(sender.last(t).Text, "❌ "))
}

func TestCancel_ReturnsToIdle(t *testing.T) {
	ctx := context.Background()
	b, _, sessions := newTestBot()

	b.processMessage(ctx, command("/cotacao"))
	b.processMessage(ctx, command("/cancel"))

	sess, err := sessions.Get(ctx, testChatID)
	require.NoError(t, err)
	assert.Equal(t, session.StepIdle, sess.Step)
	assert.Equal(t, "5.5", sess.Inputs.ExchangeRate)
}

func TestRenderChart(t *testing.T) {
	b := pricing.Derive(pricing.DefaultInputs())
	lines := strings.Split(renderChart(pricing.Composition(b)), "\n")

	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.Equal(t, chartWidth, strings.Count(line, "█")+strings.Count(line, "░"))
	}
	assert.True(t, strings.HasPrefix(lines[0], "Custo Base"))
}

func TestRenderPanel_EscapesProduct(t *testing.T) {
	sess := session.DefaultDefaults().New()
	sess.ProductName = "<b>x</b>"

	assert.Contains(t, renderPanel(sess), "&lt;b&gt;x&lt;/b&gt;")
}

func TestParseProfileArg(t *testing.T) {
	id, ok := parseProfileArg(" Visa ")
	assert.True(t, ok)
	assert.Equal(t, pricing.VisaMasterID, id)

	id, ok = parseProfileArg("AMEX")
	assert.True(t, ok)
	assert.Equal(t, pricing.EloAmexID, id)

	_, ok = parseProfileArg("diners")
	assert.False(t, ok)
}
