package yahoo

import (
	"time"

	"resty.dev/v3"
)

const requestTimeout = 10 * time.Second

// newClient creates the HTTP client both Yahoo sources share. Resty's
// built-in retry stays disabled: the fetch cascade owns the retry budget,
// and a source must issue exactly one request per attempt.
func newClient(baseURL string) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(requestTimeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "telegram-coffee-bot/1.0")
}
