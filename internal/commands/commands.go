package commands

import (
	"context"
	"log/slog"

	"github.com/Arlind90/telegram-coffee-bot/internal/quote"
	"github.com/Arlind90/telegram-coffee-bot/internal/store"
)

// Reply texts. Subscription mutations that fail to persist get a distinct
// failure message instead of silently claiming success.
const (
	welcomeText = "Welcome! You've been subscribed to daily coffee price updates. Use /coffeeprice to get the latest coffee price.\nUse /unsubscribe to stop receiving daily updates."

	unsubscribedText  = "You've been unsubscribed from daily updates."
	notSubscribedText = "You're not currently subscribed to updates."

	subscribeFailedText   = "Something went wrong saving your subscription. Please try /start again."
	unsubscribeFailedText = "Something went wrong updating your subscription. Please try again."

	helpText = "Available commands:\n/start - Start the bot and subscribe to updates\n/coffeeprice - Get coffee price\n/unsubscribe - Stop receiving daily updates\n/help - Show this help message"
)

// QuoteService resolves an on-demand price query.
type QuoteService interface {
	FetchQuote(ctx context.Context) (quote.NormalizedQuote, error)
}

// Handler maps the four inbound commands onto the subscriber store and the
// price fetcher. Each method returns the single reply text the transport
// sends back.
type Handler struct {
	subs   *store.Store
	quotes QuoteService
}

// New creates a command handler over the given store and quote service.
func New(subs *store.Store, quotes QuoteService) *Handler {
	return &Handler{
		subs:   subs,
		quotes: quotes,
	}
}

// Subscribe adds the chat to the daily update list. Subscribing twice is
// harmless and gets the same welcome reply.
func (h *Handler) Subscribe(chatID int64) string {
	added, err := h.subs.Add(chatID)
	if err != nil {
		slog.Error("subscribe failed", "chat_id", chatID, "error", err)
		return subscribeFailedText
	}
	if added {
		slog.Info("subscriber added", "chat_id", chatID, "total", h.subs.Len())
	}
	return welcomeText
}

// Unsubscribe removes the chat from the daily update list.
func (h *Handler) Unsubscribe(chatID int64) string {
	removed, err := h.subs.Remove(chatID)
	if err != nil {
		slog.Error("unsubscribe failed", "chat_id", chatID, "error", err)
		return unsubscribeFailedText
	}
	if !removed {
		return notSubscribedText
	}
	slog.Info("subscriber removed", "chat_id", chatID, "total", h.subs.Len())
	return unsubscribedText
}

// Query fetches the current price on demand.
func (h *Handler) Query(ctx context.Context) string {
	q, err := h.quotes.FetchQuote(ctx)
	if err != nil {
		return quote.UnavailableMessage
	}
	return q.Message()
}

// Help lists the available commands.
func (h *Handler) Help() string {
	return helpText
}
