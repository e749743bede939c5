package testutil

import (
	"context"
	"sync"

	"github.com/Arlind90/telegram-coffee-bot/internal/quote"
)

// MockSource is a mock implementation of the quote.Source interface for testing
type MockSource struct {
	FetchFunc func(ctx context.Context) (quote.Sample, error)
	NameFunc  func() string

	mu    sync.Mutex
	calls int
}

// Fetch implements the Source interface and counts invocations
func (m *MockSource) Fetch(ctx context.Context) (quote.Sample, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx)
	}
	return quote.Sample{}, nil
}

// Name implements the Source interface
func (m *MockSource) Name() string {
	if m.NameFunc != nil {
		return m.NameFunc()
	}
	return "mock:source"
}

// Calls returns how many times Fetch was invoked
func (m *MockSource) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// NewMockSource creates a simple mock source with predefined values
func NewMockSource(name string, sample quote.Sample, err error) *MockSource {
	return &MockSource{
		FetchFunc: func(ctx context.Context) (quote.Sample, error) {
			return sample, err
		},
		NameFunc: func() string {
			return name
		},
	}
}

// MockQuoteService is a canned quote service for handler and job tests
type MockQuoteService struct {
	Quote quote.NormalizedQuote
	Err   error
	Calls int
}

// FetchQuote returns the canned quote or error
func (m *MockQuoteService) FetchQuote(ctx context.Context) (quote.NormalizedQuote, error) {
	m.Calls++
	return m.Quote, m.Err
}

// SentMessage records one delivered message
type SentMessage struct {
	ChatID int64
	Text   string
}

// MockSender records sends and fails for configured chat IDs
type MockSender struct {
	FailFor map[int64]error

	mu   sync.Mutex
	sent []SentMessage
}

// Send implements the broadcast.Sender interface
func (m *MockSender) Send(chatID int64, text string) error {
	if err, ok := m.FailFor[chatID]; ok {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, SentMessage{ChatID: chatID, Text: text})
	return nil
}

// Sent returns a copy of the successfully delivered messages
func (m *MockSender) Sent() []SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentMessage(nil), m.sent...)
}
