package quote

import (
	"context"
	"log/slog"
	"math/rand"
	"time"
)

const (
	// Attempts per symbol before the cascade moves on.
	defaultRetryCount = 3

	// Jitter window before a symbol's first attempt. A short randomized
	// pause spaces the next symbol's query out from the failures that led
	// to it, lowering the odds of upstream rate limiting.
	attemptWaitMin = 250 * time.Millisecond
	attemptWaitMax = 1 * time.Second

	// Wider jitter window between retries of the same symbol, after a
	// failed attempt.
	retryWaitMin = 1 * time.Second
	retryWaitMax = 4 * time.Second
)

// SymbolSource pairs a source with the unit rate that brings its raw
// values into dollars per pound. The rate is a property of the symbol, not
// a runtime decision.
type SymbolSource struct {
	Source   Source
	UnitRate float64
}

// Fetcher owns the cascade policy: an ordered list of symbol sources, each
// with a retry budget, and an optional one-shot direct fallback. It holds
// no persistent state; FetchQuote is a pure function from "now" to a
// normalized quote or ErrUnavailable.
type Fetcher struct {
	symbols  []SymbolSource
	fallback *SymbolSource
	retries  int

	// Overridable in tests so the cascade runs without real pauses.
	sleep  func(time.Duration)
	jitter func(min, max time.Duration) time.Duration
}

// NewFetcher creates a Fetcher over the given symbol sources and direct
// fallback. A nil fallback means retry exhaustion goes straight to
// ErrUnavailable.
func NewFetcher(symbols []SymbolSource, fallback *SymbolSource) *Fetcher {
	return &Fetcher{
		symbols:  symbols,
		fallback: fallback,
		retries:  defaultRetryCount,
		sleep:    time.Sleep,
		jitter:   randomDelay,
	}
}

// FetchQuote walks the cascade until one source yields a valid sample:
// each symbol gets up to the retry budget, a success short-circuits
// everything, and only after every symbol is exhausted does the direct
// fallback get its single shot. Per-attempt failures are logged and
// swallowed; the only error this returns is ErrUnavailable.
func (f *Fetcher) FetchQuote(ctx context.Context) (NormalizedQuote, error) {
	for i, sym := range f.symbols {
		for attempt := 1; attempt <= f.retries; attempt++ {
			switch {
			case i == 0 && attempt == 1:
				// Nothing to space out before the very first attempt.
			case attempt == 1:
				f.sleep(f.jitter(attemptWaitMin, attemptWaitMax))
			default:
				f.sleep(f.jitter(retryWaitMin, retryWaitMax))
			}

			sample, ok := f.try(ctx, sym.Source, attempt)
			if ok {
				return normalize(sample, sym.UnitRate), nil
			}
		}
	}

	// Last resort: one shot at the direct endpoint, no retry budget.
	if f.fallback != nil {
		sample, ok := f.try(ctx, f.fallback.Source, 1)
		if ok {
			return normalize(sample, f.fallback.UnitRate), nil
		}
	}

	return NormalizedQuote{}, ErrUnavailable
}

// try runs one source attempt and classifies the outcome. An invalid
// sample (zero price or timestamp) counts as a failed attempt just like a
// source error.
func (f *Fetcher) try(ctx context.Context, src Source, attempt int) (Sample, bool) {
	sample, err := src.Fetch(ctx)
	if err != nil {
		slog.Warn("quote attempt failed",
			"source", src.Name(),
			"attempt", attempt,
			"error", err)
		return Sample{}, false
	}
	if !sample.Valid() {
		slog.Warn("quote attempt returned unusable sample",
			"source", src.Name(),
			"attempt", attempt)
		return Sample{}, false
	}
	return sample, true
}

// normalize applies the symbol's unit rate, then the fixed pound-to-kg
// constant, and carries the winning sample's trading timestamp through.
func normalize(s Sample, unitRate float64) NormalizedQuote {
	return NormalizedQuote{
		PerKg: s.Price * unitRate * poundsPerKilogram,
		Date:  s.Time,
	}
}

func randomDelay(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)))
}
