package yahoo

import (
	"context"
	"fmt"
	"time"

	"resty.dev/v3"

	"github.com/Arlind90/telegram-coffee-bot/internal/quote"
	"github.com/Arlind90/telegram-coffee-bot/internal/ratelimit"
)

// lookback covers several trading days so the latest close survives
// weekends and holidays.
const chartRange = "5d"

// ChartResponse represents the Yahoo Finance chart API response. Close
// prices are pointers because Yahoo reports null for days without a trade.
type ChartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// ChartSource fetches a symbol's recent daily closes from the Yahoo
// Finance chart endpoint and reports the latest one as a sample.
type ChartSource struct {
	symbol string
	client *resty.Client
}

// NewChartSource creates a chart source for one ticker symbol.
func NewChartSource(symbol, baseURL string) *ChartSource {
	return &ChartSource{
		symbol: symbol,
		client: newClient(baseURL),
	}
}

// Fetch retrieves the last few daily bars and returns the most recent
// non-null close with its trading timestamp.
func (s *ChartSource) Fetch(ctx context.Context) (quote.Sample, error) {
	if err := ratelimit.GetLimiter().Wait(ctx, ratelimit.APIYahooChart); err != nil {
		return quote.Sample{}, quote.NewTransportError(s.Name(), err)
	}

	var result ChartResponse

	resp, err := s.client.R().
		SetContext(ctx).
		SetPathParam("symbol", s.symbol).
		SetQueryParams(map[string]string{
			"range":    chartRange,
			"interval": "1d",
		}).
		SetResult(&result).
		Get("/v8/finance/chart/{symbol}")

	if err != nil {
		return quote.Sample{}, quote.NewTransportError(s.Name(), err)
	}
	if !resp.IsSuccess() {
		return quote.Sample{}, quote.NewStatusError(s.Name(), resp.StatusCode())
	}

	if result.Chart.Error != nil {
		return quote.Sample{}, quote.NewMalformedError(s.Name(),
			fmt.Sprintf("chart error: %s", result.Chart.Error.Description), nil)
	}
	if len(result.Chart.Result) == 0 {
		return quote.Sample{}, quote.NewMalformedError(s.Name(), "chart result missing", nil)
	}

	bars := result.Chart.Result[0]
	if len(bars.Indicators.Quote) == 0 {
		return quote.Sample{}, quote.NewMalformedError(s.Name(), "quote indicators missing", nil)
	}

	closes := bars.Indicators.Quote[0].Close
	// Walk backwards to the newest bar that actually closed.
	for i := len(bars.Timestamp) - 1; i >= 0; i-- {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		return quote.Sample{
			Price: *closes[i],
			Time:  time.Unix(bars.Timestamp[i], 0).UTC(),
		}, nil
	}

	return quote.Sample{}, quote.NewNoDataError(s.Name())
}

// Name identifies this source in logs.
func (s *ChartSource) Name() string {
	return fmt.Sprintf("yahoo-chart:%s", s.symbol)
}
