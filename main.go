package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Arlind90/telegram-coffee-bot/internal/broadcast"
	"github.com/Arlind90/telegram-coffee-bot/internal/commands"
	"github.com/Arlind90/telegram-coffee-bot/internal/config"
	"github.com/Arlind90/telegram-coffee-bot/internal/job"
	"github.com/Arlind90/telegram-coffee-bot/internal/logging"
	"github.com/Arlind90/telegram-coffee-bot/internal/quote"
	"github.com/Arlind90/telegram-coffee-bot/internal/schedule"
	"github.com/Arlind90/telegram-coffee-bot/internal/store"
	"github.com/Arlind90/telegram-coffee-bot/internal/telegram"
	"github.com/Arlind90/telegram-coffee-bot/internal/yahoo"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logging.Init(cfg.LogLevel)

	// Create context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Load persisted subscribers; a malformed file is a startup fault
	subs, err := store.Open(cfg.SubscribersFile)
	if err != nil {
		log.Fatalf("Failed to open subscriber store: %v", err)
	}

	// Build the quote cascade from the configured symbol order
	symbols := cfg.Symbols
	if len(symbols) == 0 {
		symbols = quote.DefaultSymbols
	}
	var sources []quote.SymbolSource
	for _, sym := range symbols {
		sources = append(sources, quote.SymbolSource{
			Source:   yahoo.NewChartSource(sym, cfg.ChartBaseURL),
			UnitRate: quote.UnitRate(sym),
		})
	}
	fallback := &quote.SymbolSource{
		Source:   yahoo.NewQuoteSource(quote.FallbackSymbol, cfg.QuoteBaseURL),
		UnitRate: quote.UnitRate(quote.FallbackSymbol),
	}
	fetcher := quote.NewFetcher(sources, fallback)

	// Telegram transport
	bot, err := telegram.New(cfg.TelegramAPIKey)
	if err != nil {
		log.Fatalf("Failed to create Telegram bot: %v", err)
	}

	// Scheduled daily broadcast
	loc, err := time.LoadLocation(cfg.BroadcastTimezone)
	if err != nil {
		log.Fatalf("Invalid broadcast timezone %q: %v", cfg.BroadcastTimezone, err)
	}
	daily := job.New(fetcher, broadcast.New(subs, bot))
	sched := schedule.Weekdays{
		Hour:     cfg.BroadcastHour,
		Minute:   cfg.BroadcastMinute,
		Location: loc,
	}
	go sched.Run(ctx, daily.Run)

	// Block on the command loop until shutdown
	bot.Listen(ctx, commands.New(subs, fetcher))
}
