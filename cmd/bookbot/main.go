package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"visawatch/pkg/booking"
	"visawatch/pkg/captcha"
	"visawatch/pkg/config"
	"visawatch/pkg/journal"
	"visawatch/pkg/logger"
	"visawatch/pkg/slots"

	"go.uber.org/zap"
)

func main() {
	var (
		configPath = flag.String("config", "", "config file path (empty uses default search locations)")
		consulate  = flag.String("consulate", "", "consulate to book at (required)")
		targetDate = flag.String("date", "", "preferred appointment date (YYYY-MM-DD, empty takes the earliest)")
		timeout    = flag.Int("timeout", 600, "attempt timeout in seconds")
	)
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	logLevel := "info"
	if cfg.App != nil && cfg.App.LogLevel != "" {
		logLevel = cfg.App.LogLevel
	}
	if err := logger.InitLogger(true, "", logLevel); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	if *consulate == "" {
		logger.Error("A consulate is required, pick one of " + fmt.Sprintf("%v", slots.KnownConsulates()))
		os.Exit(1)
	}
	if _, ok := slots.LookupConsulate(*consulate); !ok {
		logger.Error("Unknown consulate: " + *consulate)
		os.Exit(1)
	}

	bookingCfg := cfg.GetBookingConfig()
	if bookingCfg.Portal == nil || bookingCfg.Portal.Username == "" || bookingCfg.Portal.Password == "" {
		logger.Error("Portal credentials are not configured")
		os.Exit(1)
	}

	logger.Info("🤖 Booking bot",
		zap.String("consulate", *consulate),
		zap.String("target_date", *targetDate),
		zap.Bool("headless", bookingCfg.Headless))

	solver, err := captcha.NewSolver(bookingCfg.Captcha)
	if err != nil {
		logger.Warn("CAPTCHA solver unavailable, attempt aborts on CAPTCHA", zap.Error(err))
		solver = nil
	}

	bot := booking.NewBot(bookingCfg, solver)
	if bookingCfg.Captcha.Provider == "witai" {
		bot.SetTranscriber(captcha.NewWitClient(bookingCfg.Captcha))
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
		bot.SetSink(jnl)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(*timeout)*time.Second)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("🛑 Shutdown signal received")
		cancel()
	}()

	attempt, err := bot.Attempt(ctx, *consulate, *targetDate)
	if attempt != nil {
		printAttempt(attempt)
	}
	if err != nil {
		logger.Error("Booking attempt failed", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("🎉 Appointment booked")
}

// printAttempt logs the step trail of a finished attempt.
func printAttempt(attempt *booking.Attempt) {
	logger.Info("📊 Attempt Summary:",
		zap.String("attempt_id", attempt.ID),
		zap.String("consulate", attempt.Consulate),
		zap.Bool("booked", attempt.Booked),
		zap.Duration("duration", attempt.Duration()))

	for _, step := range attempt.Steps {
		line := fmt.Sprintf("  %s: %s (%dms)", step.Step, step.Status, step.DurationMS)
		if step.Detail != "" {
			line += ": " + step.Detail
		}
		logger.Info(line)
	}

	if attempt.FailedStep != "" {
		logger.Warn("Attempt aborted",
			zap.String("failed_step", attempt.FailedStep),
			zap.String("error", attempt.Error))
	}
}
