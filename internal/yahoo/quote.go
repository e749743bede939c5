package yahoo

import (
	"context"
	"fmt"
	"time"

	"resty.dev/v3"

	"github.com/Arlind90/telegram-coffee-bot/internal/quote"
	"github.com/Arlind90/telegram-coffee-bot/internal/ratelimit"
)

// QuoteResponse represents the Yahoo Finance v7 quote API response. The
// market time is epoch seconds, unlike the chart endpoint's bar timestamps.
type QuoteResponse struct {
	QuoteResponse struct {
		Result []struct {
			Symbol             string  `json:"symbol"`
			RegularMarketPrice float64 `json:"regularMarketPrice"`
			RegularMarketTime  int64   `json:"regularMarketTime"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteResponse"`
}

// QuoteSource performs a single direct query for a symbol's most recent
// price. It is the cascade's one-shot fallback, on a different endpoint
// than the chart path.
type QuoteSource struct {
	symbol string
	client *resty.Client
}

// NewQuoteSource creates a direct quote source for one ticker symbol.
func NewQuoteSource(symbol, baseURL string) *QuoteSource {
	return &QuoteSource{
		symbol: symbol,
		client: newClient(baseURL),
	}
}

// Fetch performs one direct quote query and returns the most recent price
// with its epoch-second market timestamp.
func (s *QuoteSource) Fetch(ctx context.Context) (quote.Sample, error) {
	if err := ratelimit.GetLimiter().Wait(ctx, ratelimit.APIYahooQuote); err != nil {
		return quote.Sample{}, quote.NewTransportError(s.Name(), err)
	}

	var result QuoteResponse

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("symbols", s.symbol).
		SetResult(&result).
		Get("/v7/finance/quote")

	if err != nil {
		return quote.Sample{}, quote.NewTransportError(s.Name(), err)
	}
	if !resp.IsSuccess() {
		return quote.Sample{}, quote.NewStatusError(s.Name(), resp.StatusCode())
	}

	if result.QuoteResponse.Error != nil {
		return quote.Sample{}, quote.NewMalformedError(s.Name(),
			fmt.Sprintf("quote error: %s", result.QuoteResponse.Error.Description), nil)
	}
	if len(result.QuoteResponse.Result) == 0 {
		return quote.Sample{}, quote.NewNoDataError(s.Name())
	}

	q := result.QuoteResponse.Result[0]
	if q.RegularMarketPrice == 0 || q.RegularMarketTime == 0 {
		return quote.Sample{}, quote.NewNoDataError(s.Name())
	}

	return quote.Sample{
		Price: q.RegularMarketPrice,
		Time:  time.Unix(q.RegularMarketTime, 0).UTC(),
	}, nil
}

// Name identifies this source in logs.
func (s *QuoteSource) Name() string {
	return fmt.Sprintf("yahoo-quote:%s", s.symbol)
}
