package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/satriadp/jadwalbot/internal/config"
	"github.com/satriadp/jadwalbot/internal/dialog"
	"github.com/satriadp/jadwalbot/internal/gcal"
	"github.com/satriadp/jadwalbot/internal/gemini"
	"github.com/satriadp/jadwalbot/internal/session"
	"github.com/satriadp/jadwalbot/internal/telegram"
	"github.com/satriadp/jadwalbot/internal/timeutil"
)

func main() {
	cfg := config.LoadFromEnv()

	location, fellBack := timeutil.ResolveLocation(cfg.Timezone)
	if fellBack && cfg.Timezone != "" {
		fmt.Printf("Warning: unknown timezone %q, using UTC\n", cfg.Timezone)
	}

	// Phase 1: Calendar
	gcalClient := initCalendar(cfg)

	// Phase 2: AI model
	model := initGemini(cfg)

	// Phase 3: Dialogue engine
	engineCfg := dialog.EngineConfig{
		Sessions: session.NewStore(),
		Timezone: cfg.Timezone,
		Location: location,
	}
	// Assign only non-nil clients so the engine's nil checks stay meaningful.
	if gcalClient != nil {
		engineCfg.Calendar = gcalClient
	}
	if model != nil {
		engineCfg.Model = model
	}
	engine := dialog.NewEngine(engineCfg)

	// Phase 4: Telegram transport
	tgClient, dispatcher := initTelegram(cfg, engine)
	if tgClient == nil {
		fatal("telegram", fmt.Errorf("transport is required, set TELEGRAM_BOT_TOKEN, TELEGRAM_API_ID and TELEGRAM_API_HASH"))
	}

	waitForShutdown(dispatcher, tgClient)
}

func initCalendar(cfg *config.Config) *gcal.Client {
	gcalClient, err := gcal.NewClient(cfg.GoogleCredentialsFile, cfg.GoogleTokenFile)
	if err != nil {
		fmt.Printf("Warning: Failed to create Google Calendar client: %v\n", err)
		return nil
	}

	if !gcalClient.IsAuthenticated() {
		fmt.Println("Google Calendar: Not authorized, starting authorization flow...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		if err := gcalClient.Authorize(ctx); err != nil {
			fmt.Printf("Warning: Google Calendar authorization failed: %v\n", err)
			fmt.Println("Calendar features will be unavailable until the bot is restarted and authorized")
			return gcalClient
		}
	}

	fmt.Println("Google Calendar client initialized")
	return gcalClient
}

func initGemini(cfg *config.Config) *gemini.Client {
	if cfg.GeminiAPIKey == "" {
		fmt.Println("Warning: GEMINI_API_KEY not set, AI assistant disabled")
		return nil
	}

	location, _ := timeutil.ResolveLocation(cfg.Timezone)
	client := gemini.NewClient(gemini.Config{
		APIKey:      cfg.GeminiAPIKey,
		Model:       cfg.GeminiModel,
		Temperature: cfg.GeminiTemperature,
		Timezone:    cfg.Timezone,
		Location:    location,
		HistorySize: cfg.ChatHistorySize,
	})
	fmt.Printf("Gemini client configured (model %s)\n", cfg.GeminiModel)
	return client
}

func initTelegram(cfg *config.Config, engine *dialog.Engine) (*telegram.Client, *telegram.Dispatcher) {
	if cfg.TelegramAPIID == 0 || cfg.TelegramAPIHash == "" || cfg.TelegramBotToken == "" {
		fmt.Println("Telegram: Not configured (TELEGRAM_BOT_TOKEN, TELEGRAM_API_ID and TELEGRAM_API_HASH required)")
		return nil, nil
	}

	handler := telegram.NewHandler()

	tgClient, err := telegram.NewClient(telegram.ClientConfig{
		APIID:       cfg.TelegramAPIID,
		APIHash:     cfg.TelegramAPIHash,
		BotToken:    cfg.TelegramBotToken,
		SessionPath: cfg.TelegramSessionPath,
		Handler:     handler,
	})
	if err != nil {
		fmt.Printf("Warning: Failed to create Telegram client: %v\n", err)
		return nil, nil
	}

	if err := tgClient.Connect(); err != nil {
		fmt.Printf("Warning: Failed to connect Telegram: %v\n", err)
		return nil, nil
	}
	tgClient.StartUpdateLoop()

	dispatcher := telegram.NewDispatcher(engine, tgClient, handler.TurnChan(), cfg.TurnWorkers)
	dispatcher.Start()

	if tgClient.IsConnected() {
		fmt.Println("Telegram bot running")
	} else {
		fmt.Println("Telegram: connected but not signed in yet")
	}
	return tgClient, dispatcher
}

func fatal(context string, err error) {
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", context, err)
	os.Exit(1)
}

func waitForShutdown(dispatcher *telegram.Dispatcher, tgClient *telegram.Client) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	fmt.Println("Shutting down...")

	if dispatcher != nil {
		dispatcher.Stop()
	}
	if tgClient != nil {
		tgClient.Disconnect()
	}
}
