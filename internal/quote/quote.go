package quote

import (
	"context"
	"fmt"
	"time"
)

// poundsPerKilogram converts a dollars-per-pound price into dollars per
// kilogram (1 kg = 2.20462 lb).
const poundsPerKilogram = 2.20462

// UnavailableMessage is the fixed text shown when the whole cascade,
// fallback included, failed to produce a price.
const UnavailableMessage = "Could not fetch coffee price. Please try again later."

// Source is a single strategy for obtaining one raw price sample.
// Implementations perform exactly one outbound query per Fetch call and
// never retry internally; retries belong to the Fetcher cascade.
type Source interface {
	// Fetch performs one query and returns the most recent sample the
	// source has, or a *SourceError describing why it has none.
	Fetch(ctx context.Context) (Sample, error)

	// Name identifies the source in logs, e.g. "yahoo-chart:KC=F".
	Name() string
}

// Sample is the canonical shape every source normalizes its raw response
// into: a price in the source's native unit plus the trading timestamp it
// is valid for. Keeping one shape for both the symbol path and the direct
// endpoint means unit conversion is written once, in the Fetcher.
type Sample struct {
	Price float64
	Time  time.Time
}

// Valid reports whether the sample carries a usable price point.
func (s Sample) Valid() bool {
	return s.Price > 0 && !s.Time.IsZero()
}

// NormalizedQuote is a coffee price expressed in dollars per kilogram
// together with the trading date it is valid for. This is the only
// artifact exposed outward, always as formatted text.
type NormalizedQuote struct {
	PerKg float64
	Date  time.Time
}

// Message renders the quote the way it is sent to subscribers.
func (q NormalizedQuote) Message() string {
	return fmt.Sprintf("☕ Coffee Price (as of %s): $%.3f per kg", q.Date.Format("2006-01-02"), q.PerKg)
}

// unitRates maps a ticker symbol to the factor that brings its raw value
// into dollars per pound. KC=F (ICE Coffee C) trades in cents per pound.
// Symbols absent from the table pass through unchanged; RC=F (Robusta)
// trades in dollars per tonne, so its identity rate is questionable and
// worth revisiting before the secondary symbol is relied on.
var unitRates = map[string]float64{
	"KC=F": 0.01,
}

// UnitRate returns the dollars-per-pound conversion factor for a symbol.
// Unknown symbols are assumed to already be in dollars per pound.
func UnitRate(symbol string) float64 {
	if r, ok := unitRates[symbol]; ok {
		return r
	}
	return 1
}

// DefaultSymbols is the cascade order: the primary Coffee C future, then
// the Robusta future as a secondary instrument for the same commodity.
var DefaultSymbols = []string{"KC=F", "RC=F"}

// FallbackSymbol is the single symbol the direct-endpoint fallback
// queries. It deliberately does not follow the configured symbol list.
const FallbackSymbol = "KC=F"
