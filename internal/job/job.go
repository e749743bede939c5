package job

import (
	"context"
	"log/slog"

	"github.com/Arlind90/telegram-coffee-bot/internal/broadcast"
	"github.com/Arlind90/telegram-coffee-bot/internal/quote"
)

// QuoteService resolves the price for one scheduled run.
type QuoteService interface {
	FetchQuote(ctx context.Context) (quote.NormalizedQuote, error)
}

// Job is the scheduled daily update: fetch once, format once, broadcast to
// whoever is subscribed when the trigger fires.
type Job struct {
	quotes QuoteService
	caster *broadcast.Broadcaster
}

// New creates the scheduled job.
func New(quotes QuoteService, caster *broadcast.Broadcaster) *Job {
	return &Job{
		quotes: quotes,
		caster: caster,
	}
}

// Run executes one scheduled update. A fetch failure still broadcasts the
// fixed unavailable message; subscribers expect to hear something at the
// scheduled time either way.
func (j *Job) Run(ctx context.Context) {
	text := quote.UnavailableMessage
	if q, err := j.quotes.FetchQuote(ctx); err == nil {
		text = q.Message()
	}

	report := j.caster.Broadcast(text)
	slog.Info("daily price update sent",
		"attempted", report.Attempted,
		"succeeded", report.Succeeded,
		"failed", report.Failed)
}
