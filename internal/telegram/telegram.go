package telegram

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Arlind90/telegram-coffee-bot/internal/commands"
)

const pollTimeoutSeconds = 30

// Bot wraps the Telegram Bot API: it sends messages (satisfying the
// broadcaster's Sender capability) and polls for inbound commands.
type Bot struct {
	api *tgbotapi.BotAPI
}

// New authenticates against the Telegram Bot API.
func New(token string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	slog.Info("telegram bot authorized", "username", api.Self.UserName)
	return &Bot{api: api}, nil
}

// Send delivers one text message to one chat.
func (b *Bot) Send(chatID int64, text string) error {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}

// Listen polls for updates and dispatches commands until ctx is canceled.
// Every command runs in its own goroutine: a /coffeeprice that is sitting
// in fetch retry delays must not hold up other chats' commands.
func (b *Bot) Listen(ctx context.Context, handler *commands.Handler) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeoutSeconds
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			msg := update.Message
			if msg == nil || !msg.IsCommand() {
				continue
			}
			go b.dispatch(ctx, handler, msg)
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, handler *commands.Handler, msg *tgbotapi.Message) {
	var reply string
	switch msg.Command() {
	case "start":
		reply = handler.Subscribe(msg.Chat.ID)
	case "coffeeprice":
		reply = handler.Query(ctx)
	case "unsubscribe":
		reply = handler.Unsubscribe(msg.Chat.ID)
	case "help":
		reply = handler.Help()
	default:
		return
	}

	if err := b.Send(msg.Chat.ID, reply); err != nil {
		slog.Error("failed to send command reply",
			"chat_id", msg.Chat.ID,
			"command", msg.Command(),
			"error", err)
	}
}
