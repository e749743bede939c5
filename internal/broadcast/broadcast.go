package broadcast

import (
	"log/slog"
	"sync"
)

// Sender is the outbound message capability; the Telegram bot satisfies it.
type Sender interface {
	Send(chatID int64, text string) error
}

// Subscribers supplies the point-in-time recipient list for one broadcast.
type Subscribers interface {
	Snapshot() []int64
}

// Report aggregates the outcome of one broadcast.
type Report struct {
	Attempted int
	Succeeded int
	Failed    int
}

// result carries one recipient's outcome from a send goroutine back to the
// aggregation loop.
type result struct {
	chatID int64
	err    error
}

// Broadcaster fans one message out to every current subscriber.
type Broadcaster struct {
	subs   Subscribers
	sender Sender
}

// New creates a Broadcaster over the given subscriber source and sender.
func New(subs Subscribers, sender Sender) *Broadcaster {
	return &Broadcaster{
		subs:   subs,
		sender: sender,
	}
}

// Broadcast sends text to a snapshot of the subscriber set, one send
// attempt per recipient. Each send runs in its own goroutine; a failure
// for one recipient is logged and counted, never retried, and never stops
// delivery to the rest.
func (b *Broadcaster) Broadcast(text string) Report {
	ids := b.subs.Snapshot()
	report := Report{Attempted: len(ids)}
	if len(ids) == 0 {
		return report
	}

	resultChan := make(chan result, len(ids))

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(chatID int64) {
			defer wg.Done()
			resultChan <- result{chatID: chatID, err: b.sender.Send(chatID, text)}
		}(id)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	for r := range resultChan {
		if r.err != nil {
			report.Failed++
			slog.Error("broadcast send failed", "chat_id", r.chatID, "error", r.err)
		} else {
			report.Succeeded++
		}
	}

	return report
}
