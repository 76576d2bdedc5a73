package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"visawatch/pkg/booking"
	"visawatch/pkg/captcha"
	"visawatch/pkg/config"
	"visawatch/pkg/history"
	"visawatch/pkg/journal"
	"visawatch/pkg/logger"
	"visawatch/pkg/monitor"
	"visawatch/pkg/notifier"
	"visawatch/pkg/slots"
	"visawatch/pkg/webhook"

	"go.uber.org/zap"
)

func main() {
	var (
		configPath = flag.String("config", "", "config file path (empty uses default search locations)")
		duration   = flag.Int("duration", 0, "run duration in minutes (0 runs until stopped)")
	)
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Get log level from config, default to "info" if not specified
	logLevel := "info"
	if cfg.App != nil && cfg.App.LogLevel != "" {
		logLevel = cfg.App.LogLevel
	}

	if err := logger.InitLogger(true, "", logLevel); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	logger.Info("🛂 Visa Slot Monitor")
	logger.Info("Press Ctrl+C to stop")

	monitorCfg := cfg.GetMonitorConfig()
	telegramCfg := cfg.GetTelegramConfig()

	checker := slots.NewChecker(cfg.GetSlotsConfig(), monitorCfg.Cities)
	cooldownWindow := time.Duration(telegramCfg.Cooldown) * time.Second
	mon := monitor.New(monitorCfg, checker, cooldownWindow)

	cities := monitorCfg.Cities
	if len(cities) == 0 {
		cities = slots.KnownConsulates()
	}
	logger.Info("📋 Monitor Configuration",
		zap.Int("cities", len(cities)),
		zap.Int("interval_seconds", monitorCfg.Interval),
		zap.Bool("book_on_slot", monitorCfg.BookOnSlot))

	logger.Info("🏛 Consulates to watch:")
	for _, city := range cities {
		logger.Info("  • " + city)
	}

	var jnl *journal.Journal
	if jc := cfg.GetJournalConfig(); jc.Enabled {
		j, jerr := journal.Open(jc)
		if jerr != nil {
			logger.Error("Failed to open journal", zap.Error(jerr))
			os.Exit(1)
		}
		jnl = j
		defer jnl.Close()
	}

	wireChannels(cfg, mon, jnl)

	if chc := cfg.GetClickHouseConfig(); chc.Enabled {
		store, serr := history.Open(chc)
		if serr != nil {
			logger.Error("Failed to open check-history store", zap.Error(serr))
			os.Exit(1)
		}
		defer store.Close()

		schemaCtx, schemaCancel := context.WithTimeout(context.Background(), 10*time.Second)
		serr = store.EnsureSchema(schemaCtx)
		schemaCancel()
		if serr != nil {
			logger.Error("Failed to ensure check-history schema", zap.Error(serr))
			os.Exit(1)
		}
		mon.SetRecorder(store)
	}

	if bc := cfg.GetBookingConfig(); bc.Enabled {
		solver, cerr := captcha.NewSolver(bc.Captcha)
		if cerr != nil {
			logger.Warn("CAPTCHA solver unavailable, attempts abort on CAPTCHA", zap.Error(cerr))
			solver = nil
		}
		bot := booking.NewBot(bc, solver)
		if bc.Captcha.Provider == "witai" {
			bot.SetTranscriber(captcha.NewWitClient(bc.Captcha))
		}
		if jnl != nil {
			bot.SetSink(jnl)
		}
		mon.SetBooker(bot, time.Duration(bc.RetryTimeout)*time.Second)
	}

	// Setup context and signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("🛑 Shutdown signal received")
		cancel()
	}()

	runMinutes := *duration
	if runMinutes == 0 {
		runMinutes = monitorCfg.DurationMinutes
	}

	if runMinutes > 0 {
		err = mon.RunFor(ctx, time.Duration(runMinutes)*time.Minute)
	} else {
		err = mon.Run(ctx)
	}
	if err != nil && ctx.Err() == nil {
		logger.Error("Monitor failed", zap.Error(err))
		os.Exit(1)
	}

	// Show final status before exit
	status := mon.Status()
	if status.Checks > 0 {
		logger.Info("📊 Final Status Summary:")
		statusJSON, _ := json.MarshalIndent(status, "", "  ")
		fmt.Println(string(statusJSON))
	}

	logger.Info("👋 Monitor stopped")
}

// wireChannels registers every enabled notification channel, journaled
// when the journal is open.
func wireChannels(cfg *config.Config, mon *monitor.Monitor, jnl *journal.Journal) {
	var channels []monitor.Notifier

	if tc := cfg.GetTelegramConfig(); tc.Enabled {
		channels = append(channels, notifier.NewTelegramNotifier(tc))
	}
	if wc := cfg.GetWebhookConfig(); wc.Enabled {
		channels = append(channels, webhook.NewClient(wc))
	}

	for _, ch := range channels {
		if jnl != nil {
			mon.AddNotifier(jnl.WrapNotifier(ch))
			continue
		}
		mon.AddNotifier(ch)
	}

	if len(channels) == 0 {
		logger.Warn("No notification channels configured, slots are logged only")
	}
}
