package job

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arlind90/telegram-coffee-bot/internal/broadcast"
	"github.com/Arlind90/telegram-coffee-bot/internal/quote"
	"github.com/Arlind90/telegram-coffee-bot/internal/store"
	"github.com/Arlind90/telegram-coffee-bot/internal/testutil"
)

func newStore(t *testing.T, ids ...int64) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "subscribers.json"))
	require.NoError(t, err)
	for _, id := range ids {
		_, err := s.Add(id)
		require.NoError(t, err)
	}
	return s
}

func TestRun_SendsQuoteToSubscribers(t *testing.T) {
	quotes := &testutil.MockQuoteService{
		Quote: quote.NormalizedQuote{
			PerKg: 7.105,
			Date:  time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		},
	}
	sender := &testutil.MockSender{}
	j := New(quotes, broadcast.New(newStore(t, 1, 2), sender))

	j.Run(context.Background())

	assert.Equal(t, 1, quotes.Calls, "price is fetched once per run, not per recipient")
	sent := sender.Sent()
	require.Len(t, sent, 2)
	for _, msg := range sent {
		assert.Equal(t, "☕ Coffee Price (as of 2026-01-02): $7.105 per kg", msg.Text)
	}
}

func TestRun_UnavailableStillBroadcasts(t *testing.T) {
	quotes := &testutil.MockQuoteService{Err: quote.ErrUnavailable}
	sender := &testutil.MockSender{}
	j := New(quotes, broadcast.New(newStore(t, 1), sender))

	j.Run(context.Background())

	sent := sender.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, quote.UnavailableMessage, sent[0].Text)
}

func TestRun_NoSubscribers(t *testing.T) {
	quotes := &testutil.MockQuoteService{
		Quote: quote.NormalizedQuote{PerKg: 7, Date: time.Now()},
	}
	sender := &testutil.MockSender{}
	j := New(quotes, broadcast.New(newStore(t), sender))

	j.Run(context.Background())

	assert.Empty(t, sender.Sent(), "empty store means the send capability is never called")
}
