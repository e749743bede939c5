package schedule

import (
	"context"
	"log/slog"
	"time"
)

// Weekdays fires Monday through Friday at a fixed wall-clock time in one
// timezone, matching the cadence of the US market close the price follows.
type Weekdays struct {
	Hour     int
	Minute   int
	Location *time.Location
}

// Next returns the first weekday instant at the configured time strictly
// after now.
func (s Weekdays) Next(now time.Time) time.Time {
	t := now.In(s.Location)
	next := time.Date(t.Year(), t.Month(), t.Day(), s.Hour, s.Minute, 0, 0, s.Location)
	if !next.After(t) {
		next = next.AddDate(0, 0, 1)
	}
	for next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Run invokes fn at every scheduled instant until ctx is canceled. The
// trigger waits out a running fn before arming the next timer, so two runs
// never overlap.
func (s Weekdays) Run(ctx context.Context, fn func(context.Context)) {
	for {
		next := s.Next(time.Now())
		slog.Info("next scheduled update", "at", next)

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			fn(ctx)
		}
	}
}
